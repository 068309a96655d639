package moonspeak

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/wbrown/moonspeak/resources"
	"github.com/wbrown/moonspeak/types"
)

type ConfigurationError = resources.ConfigurationError

var ErrEmptyDictionary = resources.ErrNoEntries

// Context is the lookup index built from a dictionary. It is immutable once
// NewContext returns, so a single Context may be shared between goroutines
// without locking.
type Context struct {
	Id                  string
	symbolToName        map[string]string
	symbolToDescription map[string]string
	nameToSymbol        map[string]string
	descriptionToSymbol map[string]string
	stopWords           map[string]bool
	windowStopWords     map[string]bool
	maxWindow           int
	symbols             []string // Unique symbols, in first-seen order.
	symbolRunes         map[rune]bool
	symbolWidth         int
	symbolTree          *RuneNode
	replacements        []replacement
}

// replacement is one step of the phrase substitution pass.
type replacement struct {
	phrase string
	padded string
}

// Stats summarizes the size of each lookup table.
type Stats struct {
	Symbols      int
	Descriptions int
	Names        int
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[strings.ToLower(word)] = true
	}
	return set
}

// NewContext builds the lookup index for a set of entries. When two entries
// share a symbol the later one wins. Entries without a symbol are ignored;
// if no entry is left a ConfigurationError is returned.
func NewContext(entries types.Entries,
	config resources.DictionaryConfig) (*Context, error) {
	ctx := &Context{
		symbolToName:        make(map[string]string, len(entries)),
		symbolToDescription: make(map[string]string, len(entries)),
		nameToSymbol:        make(map[string]string, len(entries)),
		descriptionToSymbol: make(map[string]string, len(entries)),
		stopWords:           toSet(config.StopWords),
		windowStopWords:     toSet(config.WindowStopWords),
		maxWindow:           config.MaxWindow,
		symbols:             make([]string, 0, len(entries)),
		symbolRunes:         make(map[rune]bool, len(entries)),
	}
	if ctx.maxWindow <= 0 {
		ctx.maxWindow = resources.DefaultMaxWindow
	}

	for _, entry := range entries {
		if entry.Symbol == "" {
			continue
		}
		if _, seen := ctx.symbolToName[entry.Symbol]; !seen {
			ctx.symbols = append(ctx.symbols, entry.Symbol)
		}
		ctx.symbolToName[entry.Symbol] = entry.Name
		ctx.symbolToDescription[entry.Symbol] = entry.Description
	}
	if len(ctx.symbols) == 0 {
		return nil, &ConfigurationError{Source: "entries",
			Err: ErrEmptyDictionary}
	}

	synonyms := make(map[string][]string, len(config.Synonyms))
	for description, phrases := range config.Synonyms {
		synonyms[strings.ToLower(description)] = phrases
	}

	// Phrases keep the position of their first insertion, which breaks ties
	// between phrases of equal length below.
	phraseOrder := make([]string, 0, len(ctx.symbols))
	addPhrase := func(phrase, symbol string) {
		if phrase == "" {
			return
		}
		if _, seen := ctx.descriptionToSymbol[phrase]; !seen {
			phraseOrder = append(phraseOrder, phrase)
		}
		ctx.descriptionToSymbol[phrase] = symbol
	}
	for _, symbol := range ctx.symbols {
		description := strings.ToLower(ctx.symbolToDescription[symbol])
		if description != "" {
			addPhrase(description, symbol)
			for _, synonym := range synonyms[description] {
				addPhrase(strings.ToLower(synonym), symbol)
			}
		}
		if name := ctx.symbolToName[symbol]; name != "" {
			ctx.nameToSymbol[strings.ToLower(name)] = symbol
		}
		width := utf8.RuneCountInString(symbol)
		if width == 1 {
			r, _ := utf8.DecodeRuneInString(symbol)
			ctx.symbolRunes[r] = true
		}
		if width > ctx.symbolWidth {
			ctx.symbolWidth = width
		}
	}

	sort.SliceStable(phraseOrder, func(i, j int) bool {
		return utf8.RuneCountInString(phraseOrder[i]) >
			utf8.RuneCountInString(phraseOrder[j])
	})
	ctx.replacements = make([]replacement, len(phraseOrder))
	for idx, phrase := range phraseOrder {
		ctx.replacements[idx] = replacement{phrase,
			" " + ctx.descriptionToSymbol[phrase] + " "}
	}
	ctx.symbolTree = newRuneTree(ctx.symbols)
	return ctx, nil
}

// NewContextFromDictionary loads a dictionary by id (embedded name, local
// path, or URL) and indexes it.
func NewContextFromDictionary(dictId string) (*Context, error) {
	dictionary, err := resources.LoadDictionary(dictId)
	if err != nil {
		return nil, err
	}
	ctx, err := NewContext(dictionary.Entries, dictionary.Config)
	if err != nil {
		return nil, err
	}
	ctx.Id = dictId
	return ctx, nil
}

// IsSymbol reports whether token is a dictionary symbol.
func (ctx *Context) IsSymbol(token string) bool {
	_, ok := ctx.symbolToName[token]
	return ok
}

// Name returns the canonical name for a symbol.
func (ctx *Context) Name(symbol string) (string, bool) {
	name, ok := ctx.symbolToName[symbol]
	return name, ok
}

// Description returns the human-readable description for a symbol.
func (ctx *Context) Description(symbol string) (string, bool) {
	description, ok := ctx.symbolToDescription[symbol]
	return description, ok
}

// SymbolForName looks a name up case-insensitively.
func (ctx *Context) SymbolForName(name string) (string, bool) {
	symbol, ok := ctx.nameToSymbol[strings.ToLower(name)]
	return symbol, ok
}

// SymbolForPhrase looks a description or synonym up case-insensitively.
func (ctx *Context) SymbolForPhrase(phrase string) (string, bool) {
	symbol, ok := ctx.descriptionToSymbol[strings.ToLower(phrase)]
	return symbol, ok
}

// Symbols returns the unique symbols in dictionary order.
func (ctx *Context) Symbols() []string {
	return append([]string(nil), ctx.symbols...)
}

// Phrases returns the phrase substitution order used by Encode.
func (ctx *Context) Phrases() []string {
	phrases := make([]string, len(ctx.replacements))
	for idx := range ctx.replacements {
		phrases[idx] = ctx.replacements[idx].phrase
	}
	return phrases
}

// SymbolWidth is the width in runes of the widest symbol. Dictionaries wider
// than one rune are tokenized by longest match.
func (ctx *Context) SymbolWidth() int {
	return ctx.symbolWidth
}

func (ctx *Context) Stats() Stats {
	return Stats{
		Symbols:      len(ctx.symbolToName),
		Descriptions: len(ctx.descriptionToSymbol),
		Names:        len(ctx.nameToSymbol),
	}
}

// ContainsSymbol reports whether any dictionary symbol occurs in text.
func (ctx *Context) ContainsSymbol(text string) bool {
	if ctx.symbolWidth <= 1 {
		for _, r := range text {
			if ctx.symbolRunes[r] {
				return true
			}
		}
		return false
	}
	runes := []rune(text)
	for idx := range runes {
		if ctx.symbolTree.longestMatch(runes, idx) > 0 {
			return true
		}
	}
	return false
}
