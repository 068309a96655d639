package moonspeak

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode"
)

const RUNEBUF_SZ = 16384
const TOKENCHAN_SZ = 4096

type NextRuneFunc func() (rune, int, error)

// ScanTokenize splits a mixed expression into symbols and words, one rune
// at a time. Every single-rune symbol is its own token, and words are the
// runs between symbols and whitespace. Whitespace never produces a token.
func (ctx *Context) ScanTokenize(expression string) []string {
	tokens := make([]string, 0)
	var word strings.Builder
	flush := func() {
		if trimmed := strings.TrimSpace(word.String()); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
		word.Reset()
	}
	for _, r := range expression {
		switch {
		case ctx.symbolRunes[r]:
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// MatchTokenize splits an expression by trying, at each position, the
// longest symbol first, then a run of word characters, then a single
// parenthesis or comma. Anything else, whitespace included, is dropped.
func (ctx *Context) MatchTokenize(expression string) []string {
	runes := []rune(expression)
	tokens := make([]string, 0)
	for idx := 0; idx < len(runes); {
		if width := ctx.symbolTree.longestMatch(runes, idx); width > 0 {
			tokens = append(tokens, string(runes[idx:idx+width]))
			idx += width
			continue
		}
		r := runes[idx]
		switch {
		case isWordRune(r):
			end := idx + 1
			for end < len(runes) && isWordRune(runes[end]) {
				end++
			}
			tokens = append(tokens, string(runes[idx:end]))
			idx = end
		case r == '(' || r == ')' || r == ',':
			tokens = append(tokens, string(r))
			idx++
		default:
			idx++
		}
	}
	return tokens
}

// Tokenize picks the tokenizer the dictionary needs: the rune scanner when
// every symbol is a single rune, longest match otherwise.
func (ctx *Context) Tokenize(expression string) []string {
	if ctx.symbolWidth > 1 {
		return ctx.MatchTokenize(expression)
	}
	return ctx.ScanTokenize(expression)
}

// splitLinesOntoChan tokenizes one line at a time onto tokensChan until
// the input ends, a read fails, or done is closed. A line cut short by a
// read error is not emitted.
func (ctx *Context) splitLinesOntoChan(
	nextRuneFunc NextRuneFunc,
	tokensChan chan<- string,
	done <-chan struct{},
) error {
	runeAccumulator := make([]rune, 0, RUNEBUF_SZ)
	for {
		// Collect runes until we reach the end of our IO stream, or hit a
		// newline. Symbols never span lines.
		eof := false
		for {
			r, size, err := nextRuneFunc()
			if errors.Is(err, io.EOF) || (err == nil && size == 0) {
				eof = true
				break
			} else if err != nil {
				return err
			}
			runeAccumulator = append(runeAccumulator, r)
			if r == '\n' {
				break
			}
		}

		if len(runeAccumulator) > 0 {
			for _, token := range ctx.Tokenize(string(runeAccumulator)) {
				select {
				case tokensChan <- token:
				case <-done:
					return nil
				}
			}
			runeAccumulator = runeAccumulator[:0]
		}
		if eof {
			return nil
		}
	}
}

// TokenSplitter
// Returns an iterator function that reads from an io.RuneReader and splits
// the input into tokens, along with a stop function. Each invocation of the
// iterator returns one token, or nil once the input is exhausted or a read
// has failed. Callers must call stop when they are done, whether or not the
// iterator was drained; it releases the reading goroutine and returns the
// read error, if there was one.
func (ctx *Context) TokenSplitter(reader io.RuneReader) (
	next func() *string,
	stop func() error,
) {
	tokensChan := make(chan string, TOKENCHAN_SZ)
	done := make(chan struct{})
	var readErr error
	go func() {
		defer close(tokensChan)
		readErr = ctx.splitLinesOntoChan(reader.ReadRune, tokensChan, done)
	}()

	next = func() *string {
		token, more := <-tokensChan
		if !more {
			return nil
		}
		return &token
	}
	var stopOnce sync.Once
	stop = func() error {
		stopOnce.Do(func() {
			close(done)
			for range tokensChan {
			}
		})
		return readErr
	}
	return next, stop
}
