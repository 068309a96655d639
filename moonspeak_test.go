package moonspeak

import (
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wbrown/moonspeak/resources"
	"github.com/wbrown/moonspeak/types"
)

var realEstateCtx *Context
var logicCtx *Context
var cardsCtx *Context
var arrowsCtx *Context

var cardEntries = types.Entries{
	{Symbol: "♦", Name: "TRUST", Category: "x", Priority: 1,
		Description: "real estate investment trust"},
	{Symbol: "♥", Name: "PROP", Category: "x", Priority: 1,
		Description: "real estate"},
	{Symbol: "♣", Name: "THE", Category: "x", Priority: 1,
		Description: "definite article"},
}

var arrowEntries = types.Entries{
	{Symbol: "<=>", Name: "IFF", Description: "equivalence"},
	{Symbol: "=>", Name: "IMPLIES", Description: "implication"},
	{Symbol: "∧", Name: "AND", Description: "conjunction"},
}

// bareConfig has the default stop words but no synonyms.
func bareConfig() resources.DictionaryConfig {
	config := resources.DefaultDictionaryConfig()
	config.Synonyms = nil
	return config
}

func init() {
	var err error
	if realEstateCtx, err = NewContextFromDictionary("realestate"); err != nil {
		log.Fatalf("Error loading realestate: %v", err)
	}
	if logicCtx, err = NewContextFromDictionary("logic"); err != nil {
		log.Fatalf("Error loading logic: %v", err)
	}
	if cardsCtx, err = NewContext(cardEntries, bareConfig()); err != nil {
		log.Fatalf("Error indexing cards: %v", err)
	}
	if arrowsCtx, err = NewContext(arrowEntries, bareConfig()); err != nil {
		log.Fatalf("Error indexing arrows: %v", err)
	}
}

func TestNewContext_Empty(t *testing.T) {
	_, err := NewContext(types.Entries{}, bareConfig())
	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = NewContext(types.Entries{{Name: "NOSYMBOL"}}, bareConfig())
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestNewContext_MissingDictionary(t *testing.T) {
	_, err := NewContextFromDictionary("/nonexistent/moonspeak")
	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
}

func TestNewContext_DuplicateSymbolLastWins(t *testing.T) {
	entries := types.Entries{
		{Symbol: "♦", Name: "FIRST", Description: "first thing"},
		{Symbol: "♥", Name: "OTHER", Description: "other thing"},
		{Symbol: "♦", Name: "SECOND", Description: "second thing"},
	}
	ctx, err := NewContext(entries, bareConfig())
	assert.Nil(t, err)
	assert.Equal(t, []string{"♦", "♥"}, ctx.Symbols())
	name, _ := ctx.Name("♦")
	assert.Equal(t, "SECOND", name)
	assert.Equal(t, "second thing", ctx.Decode("♦"))
	assert.Equal(t, "♦", ctx.Encode("second"))
	assert.Equal(t, Stats{Symbols: 2, Descriptions: 2, Names: 2},
		ctx.Stats())
}

func TestNewContext_PhraseOrder(t *testing.T) {
	config := bareConfig()
	config.Synonyms = map[string][]string{
		"Real Estate": {"realty", "property"},
	}
	ctx, err := NewContext(cardEntries, config)
	assert.Nil(t, err)
	assert.Equal(t, []string{
		"real estate investment trust",
		"definite article",
		"real estate",
		"property",
		"realty",
	}, ctx.Phrases())
	symbol, ok := ctx.SymbolForPhrase("Realty")
	assert.True(t, ok)
	assert.Equal(t, "♥", symbol)
	symbol, ok = ctx.SymbolForName("trust")
	assert.True(t, ok)
	assert.Equal(t, "♦", symbol)
}

func TestNewContext_Embedded(t *testing.T) {
	assert.Equal(t, "realestate", realEstateCtx.Id)
	assert.Equal(t, 1, realEstateCtx.SymbolWidth())
	assert.Equal(t, 46, realEstateCtx.Stats().Symbols)
	assert.Equal(t, 46, realEstateCtx.Stats().Names)
	assert.Equal(t, 24, logicCtx.Stats().Symbols)
	assert.True(t, logicCtx.IsSymbol("∀"))
	assert.False(t, logicCtx.IsSymbol("FORALL"))
}

func TestDecode_EverySymbol(t *testing.T) {
	for _, ctx := range []*Context{realEstateCtx, logicCtx, cardsCtx,
		arrowsCtx} {
		for _, symbol := range ctx.Symbols() {
			description, _ := ctx.Description(symbol)
			assert.Equal(t, description, ctx.Decode(symbol),
				"%s: %q", ctx.Id, symbol)
		}
	}
}

func TestEncode_LongestPhraseWins(t *testing.T) {
	assert.Equal(t, "♦", cardsCtx.Encode("real estate investment trust"))
	assert.Equal(t, "♥ is booming", cardsCtx.Encode("Real Estate is booming"))
}

func TestEncode_Blank(t *testing.T) {
	assert.Equal(t, "", cardsCtx.Encode(""))
	assert.Equal(t, "", cardsCtx.Encode(" \t\n "))
	assert.Equal(t, "", cardsCtx.EncodeWindows(""))
	assert.Equal(t, "", cardsCtx.Decode(""))
	assert.Equal(t, "", cardsCtx.Decode("   "))
}

func TestEncode_Names(t *testing.T) {
	assert.Equal(t, "♥ ♦!", cardsCtx.Encode("prop trust!"))
	assert.Equal(t, "♥(), ♦?", cardsCtx.Encode("(Prop), TRUST?"))
}

func TestEncode_StopWordsNeverReplaced(t *testing.T) {
	// THE is a name, but "the" is a stop word.
	assert.Equal(t, "the cat", cardsCtx.Encode("The cat"))
	assert.Equal(t, "the cat", cardsCtx.EncodeWindows("The cat"))
	assert.Equal(t, "♣", cardsCtx.Encode("definite article"))
}

func TestEncode_Embedded(t *testing.T) {
	assert.Equal(t, "the \ue008 bought \ue000 .",
		realEstateCtx.Encode("The REIT bought real estate."))
	assert.Equal(t, "\ue005 and \ue011",
		realEstateCtx.Encode("Property management and property tax"))
	assert.Equal(t, "\ue000", realEstateCtx.Encode("Realty"))
	assert.Equal(t, "∀ x ∃ y",
		logicCtx.Encode("for all x there exists y"))
}

// Phrase substitution works on substrings, so phrases match inside longer
// words. These cases pin that behavior.
func TestEncode_SubstringGreediness(t *testing.T) {
	assert.Equal(t, "sur ♥ s", cardsCtx.Encode("surreal estates"))
	assert.Equal(t, "¬ hing is certain",
		logicCtx.Encode("nothing is certain"))
	assert.Equal(t, "can ¬", logicCtx.Encode("cannot"))
}

func TestEncodeWindows(t *testing.T) {
	assert.Equal(t, "♦ today",
		cardsCtx.EncodeWindows("Real estate investment trust, today!"))
	assert.Equal(t, "the ♥ ♥ stuff",
		cardsCtx.EncodeWindows("the prop (of) real estate & stuff"))
	assert.Equal(t, "(♥)", cardsCtx.EncodeWindows("( prop )"))
	assert.Equal(t, "then ♥", cardsCtx.EncodeWindows("Then PROP."))
	// Windows are whole words only.
	assert.Equal(t, "surreal estates",
		cardsCtx.EncodeWindows("surreal estates"))
}

func TestEncodeWindows_MaxWindow(t *testing.T) {
	config := bareConfig()
	config.MaxWindow = 2
	ctx, err := NewContext(cardEntries, config)
	assert.Nil(t, err)
	assert.Equal(t, "♥ investment ♦",
		ctx.EncodeWindows("real estate investment trust"))
}

func TestEncodeMode(t *testing.T) {
	text := "surreal estates"
	assert.Equal(t, cardsCtx.Encode(text), cardsCtx.EncodeMode(text,
		PhraseMode))
	assert.Equal(t, cardsCtx.EncodeWindows(text),
		cardsCtx.EncodeMode(text, WindowMode))

	mode, err := ParseEncodeMode("Window")
	assert.Nil(t, err)
	assert.Equal(t, WindowMode, mode)
	assert.Equal(t, "window", mode.String())
	_, err = ParseEncodeMode("sideways")
	assert.NotNil(t, err)
}

func TestDecode(t *testing.T) {
	ctx, err := NewContext(types.Entries{
		{Symbol: "♦", Name: "PROP", Description: "real estate"},
	}, bareConfig())
	assert.Nil(t, err)
	assert.Equal(t, "The real estate market", ctx.Decode("The ♦ market"))
	assert.Equal(t, "real estate real estate", ctx.Decode("♦♦"))
	assert.Equal(t, "x, real estate (y)", ctx.Decode("x,♦(y)"))
	assert.Equal(t, "∀ x", ctx.Decode("∀ x"))
}

func TestDecode_MultiRune(t *testing.T) {
	assert.Equal(t, "p implication q", arrowsCtx.Decode("p=>q"))
	assert.Equal(t, "p equivalence ( q conjunction r )",
		arrowsCtx.Decode("p <=> (q∧r)"))
}

func TestDecodeReader(t *testing.T) {
	inputs := []string{
		"The ♥ market\n♦♦ and ♣\n",
		"",
		"no symbols here",
	}
	for _, input := range inputs {
		var out strings.Builder
		assert.Nil(t, cardsCtx.DecodeReader(strings.NewReader(input), &out))
		assert.Equal(t, cardsCtx.Decode(input), out.String())
	}
}

func TestDecodeReader_ReadError(t *testing.T) {
	var out strings.Builder
	err := cardsCtx.DecodeReader(newFailingReader("♦ and ♥ and more", 3),
		&out)
	assert.ErrorIs(t, err, errReadFailed)
	assert.Equal(t, "", out.String())

	out.Reset()
	err = cardsCtx.DecodeReader(
		newFailingReader("♦ and ♥ and more", 100), &out)
	assert.Nil(t, err)
	assert.Equal(t, "real estate investment trust and real estate and more",
		out.String())
}

func TestRoundTripKeepsLiterals(t *testing.T) {
	text := "the prop is in real estate today"
	encoded := cardsCtx.Encode(text)
	assert.Equal(t, "the ♥ is in ♥ today", encoded)
	decoded := cardsCtx.Decode(encoded)
	for _, word := range []string{"the", "is", "in", "today"} {
		assert.Contains(t, strings.Fields(decoded), word)
	}
}

func TestContainsSymbol(t *testing.T) {
	assert.True(t, cardsCtx.ContainsSymbol("a ♦ b"))
	assert.False(t, cardsCtx.ContainsSymbol("plain text"))
	assert.True(t, arrowsCtx.ContainsSymbol("x => y"))
	assert.False(t, arrowsCtx.ContainsSymbol("a<=b"))
}

func TestAnalyzeCompression(t *testing.T) {
	assert.Equal(t, CompressionReport{}, AnalyzeCompression("", ""))
	assert.Equal(t, CompressionReport{}, AnalyzeCompression("♦ !", "x"))
	assert.Equal(t,
		CompressionReport{OriginalTokens: 4, CompressedTokens: 0,
			RatioPercent: 100, TokensSaved: 4},
		AnalyzeCompression("real estate investment trust", "♦"))
	assert.Equal(t,
		CompressionReport{OriginalTokens: 4, CompressedTokens: 3,
			RatioPercent: 25, TokensSaved: 1},
		AnalyzeCompression("a b c d", "x y z"))
	assert.Equal(t,
		CompressionReport{OriginalTokens: 1, CompressedTokens: 2,
			RatioPercent: -100, TokensSaved: -1},
		AnalyzeCompression("a", "b c"))
}

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 4, CountTokens("Hello, world_2 foo-bar"))
	assert.Equal(t, 0, CountTokens(" ♦♥ ... "))
	assert.Equal(t, 3, CountTokens("naïve café 42"))
}

func TestCompressionTotals(t *testing.T) {
	var totals CompressionTotals
	totals.Add(AnalyzeCompression("a b c d", "x y z"))
	totals.Add(AnalyzeCompression("real estate investment trust", "♦"))
	assert.Equal(t, 2, totals.Items)
	report := totals.Report()
	assert.Equal(t, 8, report.OriginalTokens)
	assert.Equal(t, 3, report.CompressedTokens)
	assert.Equal(t, 62.5, report.RatioPercent)

	var merged CompressionTotals
	merged.Merge(totals)
	merged.Merge(totals)
	assert.Equal(t, 4, merged.Items)
	assert.Equal(t, 16, merged.OriginalTokens)
}
