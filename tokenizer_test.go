package moonspeak

import (
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

type TokenizeTest struct {
	Input    string
	Expected []string
}

var scanTests = []TokenizeTest{
	{"", []string{}},
	{"  a♦b  c ", []string{"a", "♦", "b", "c"}},
	{"♦♥", []string{"♦", "♥"}},
	{"x,♦(y)", []string{"x,", "♦", "(y)"}},
	{"The ♥\tmarket\n", []string{"The", "♥", "market"}},
	{"=> stays", []string{"=>", "stays"}},
}

var matchTests = []TokenizeTest{
	{"", []string{}},
	{"p=>q <=> (r,s)",
		[]string{"p", "=>", "q", "<=>", "(", "r", ",", "s", ")"}},
	{"a∧b", []string{"a", "∧", "b"}},
	{"x!? y_2", []string{"x", "y_2"}},
	{"<=>=>", []string{"<=>", "=>"}},
	{"<= =", []string{}},
}

func TestScanTokenize(t *testing.T) {
	for _, test := range scanTests {
		assert.Equal(t, test.Expected, cardsCtx.ScanTokenize(test.Input),
			test.Input)
	}
}

func TestMatchTokenize(t *testing.T) {
	for _, test := range matchTests {
		assert.Equal(t, test.Expected, arrowsCtx.MatchTokenize(test.Input),
			test.Input)
	}
}

func TestTokenize_PicksByWidth(t *testing.T) {
	input := "p=>q ♦"
	assert.Equal(t, cardsCtx.ScanTokenize(input), cardsCtx.Tokenize(input))
	assert.Equal(t, arrowsCtx.MatchTokenize(input),
		arrowsCtx.Tokenize(input))
}

func TestTokenize_Idempotent(t *testing.T) {
	inputs := []string{
		"  a♦b  c ",
		"The ♥ market, (today)!",
		"p=>q <=> (r,s)",
		"\n\t ♦ \n",
	}
	for _, ctx := range []*Context{cardsCtx, arrowsCtx, logicCtx} {
		for _, input := range inputs {
			tokens := ctx.Tokenize(input)
			for _, token := range tokens {
				assert.NotEqual(t, "", strings.TrimSpace(token))
			}
			again := ctx.Tokenize(strings.Join(tokens, " "))
			assert.LessOrEqual(t, len(again), len(tokens), input)
		}
	}
}

func TestTokenSplitter(t *testing.T) {
	input := "The ♥ market\n♦♦ and ♣\n\nlast"
	nextToken, stop := cardsCtx.TokenSplitter(strings.NewReader(input))
	tokens := make([]string, 0)
	for {
		token := nextToken()
		if token == nil {
			break
		}
		tokens = append(tokens, *token)
	}
	assert.Equal(t, cardsCtx.Tokenize(input), tokens)
	assert.Nil(t, stop())

	nextToken, stop = arrowsCtx.TokenSplitter(
		strings.NewReader("p=>\nq<=>r"))
	assert.Equal(t, "p", *nextToken())
	assert.Equal(t, "=>", *nextToken())
	assert.Equal(t, "q", *nextToken())
	assert.Equal(t, "<=>", *nextToken())
	assert.Equal(t, "r", *nextToken())
	assert.Nil(t, nextToken())
	assert.Nil(t, stop())
}

// failingReader yields the runes of text up to limit, then fails.
type failingReader struct {
	runes []rune
	limit int
	read  int
}

var errReadFailed = errors.New("read failed")

func newFailingReader(text string, limit int) *failingReader {
	return &failingReader{runes: []rune(text), limit: limit}
}

func (reader *failingReader) ReadRune() (rune, int, error) {
	if reader.read >= reader.limit {
		return 0, 0, errReadFailed
	}
	if reader.read >= len(reader.runes) {
		return 0, 0, io.EOF
	}
	r := reader.runes[reader.read]
	reader.read++
	return r, utf8.RuneLen(r), nil
}

func TestTokenSplitter_ReadError(t *testing.T) {
	nextToken, stop := cardsCtx.TokenSplitter(
		newFailingReader("♦ and\n♥ and more", 8))
	assert.Equal(t, "♦", *nextToken())
	assert.Equal(t, "and", *nextToken())
	// The line cut short by the failure is not emitted.
	assert.Nil(t, nextToken())
	assert.ErrorIs(t, stop(), errReadFailed)
}

func TestTokenSplitter_StopEarly(t *testing.T) {
	input := strings.Repeat("♦ and ♥\n", 4*TOKENCHAN_SZ)
	nextToken, stop := cardsCtx.TokenSplitter(strings.NewReader(input))
	assert.Equal(t, "♦", *nextToken())
	assert.Nil(t, stop())
	assert.Nil(t, stop())
	for nextToken() != nil {
	}
	assert.Nil(t, nextToken())
}
