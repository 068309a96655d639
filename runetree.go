package moonspeak

// Nodes with more children than this are looked up through the map rather
// than by scanning the array.
const runeArrThreshold = 10

type RuneNode struct {
	rune      rune               // The rune this node represents.
	runes     []rune             // The prior runes that led to this node.
	terminal  bool               // If this node ends a symbol.
	childs    map[rune]*RuneNode // The child nodes.
	childsArr []*RuneNode        // The child nodes in an array, for small fan-out.
}

func newRuneNode(r rune, runes []rune) *RuneNode {
	return &RuneNode{
		rune:      r,
		runes:     runes,
		childs:    make(map[rune]*RuneNode, 0),
		childsArr: make([]*RuneNode, 0),
	}
}

// newRuneTree builds a trie over the given symbols.
func newRuneTree(keys []string) *RuneNode {
	root := newRuneNode(0, []rune{})
	for _, key := range keys {
		root.insert([]rune(key))
	}
	return root
}

func (root *RuneNode) insert(keyRunes []rune) {
	node := root
	for i, r := range keyRunes {
		child, ok := node.childs[r]
		if !ok {
			child = newRuneNode(r, keyRunes[:i+1])
			node.childs[r] = child
			if len(node.childs) > runeArrThreshold {
				node.childsArr = nil
			} else {
				node.childsArr = append(node.childsArr, child)
			}
		}
		node = child
	}
	if node != root {
		node.terminal = true
	}
}

func (node *RuneNode) evaluate(r rune) *RuneNode {
	if node.childsArr != nil {
		for _, child := range node.childsArr {
			if child.rune == r {
				return child
			}
		}
		return nil
	}
	return node.childs[r]
}

// longestMatch returns the length in runes of the longest symbol that
// starts at runes[start], or 0 if none does.
func (root *RuneNode) longestMatch(runes []rune, start int) int {
	longest := 0
	node := root
	for idx := start; idx < len(runes); idx++ {
		node = node.evaluate(runes[idx])
		if node == nil {
			break
		}
		if node.terminal {
			longest = len(node.runes)
		}
	}
	return longest
}
