package moonspeak

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

const ENCODE_LRU_SZ = 8192

type Direction uint8

const (
	ToSymbols Direction = iota
	ToText
)

func (direction Direction) String() string {
	if direction == ToText {
		return "decode"
	}
	return "encode"
}

// Translator wraps a Context with an encoding cache, a mode, and the counter
// used for compression reports. Encoding, analysis and SetMode are safe for
// concurrent use; Counter must be set before the translator is shared.
type Translator struct {
	*Context
	Counter   TokenCounter
	Cache     *lru.ARCCache
	LruHits   atomic.Int64
	LruMisses atomic.Int64
	mode      atomic.Uint32
}

// Cached encodings are keyed by mode, so a mode switch never serves an
// encoding made in the other mode.
type cacheKey struct {
	mode EncodeMode
	text string
}

// Translation is the result of an auto-detected translation. Report is only
// set when encoding.
type Translation struct {
	Input     string
	Output    string
	Direction Direction
	Report    *CompressionReport
}

// Analysis pairs one text with its encoding and compression report.
type Analysis struct {
	Input   string            `json:"input" msgpack:"input"`
	Encoded string            `json:"encoded" msgpack:"encoded"`
	Report  CompressionReport `json:"report" msgpack:"report"`
}

func NewTranslator(ctx *Context, mode EncodeMode) (*Translator, error) {
	cache, err := lru.NewARC(ENCODE_LRU_SZ)
	if err != nil {
		return nil, err
	}
	translator := &Translator{
		Context: ctx,
		Counter: WordCounter{},
		Cache:   cache,
	}
	translator.SetMode(mode)
	return translator, nil
}

func (translator *Translator) Mode() EncodeMode {
	return EncodeMode(translator.mode.Load())
}

// SetMode switches the mode later Encode calls use.
func (translator *Translator) SetMode(mode EncodeMode) {
	translator.mode.Store(uint32(mode))
}

// Encode encodes text in the translator's mode, caching results.
func (translator *Translator) Encode(text string) string {
	key := cacheKey{translator.Mode(), text}
	if lookup, ok := translator.Cache.Get(key); ok {
		translator.LruHits.Add(1)
		return lookup.(string)
	}
	translator.LruMisses.Add(1)
	encoded := translator.Context.EncodeMode(text, key.mode)
	translator.Cache.Add(key, encoded)
	return encoded
}

// Analyze reports compression with the translator's counter.
func (translator *Translator) Analyze(original,
	compressed string) CompressionReport {
	return AnalyzeCompressionWith(translator.Counter, original, compressed)
}

// Translate decodes text that contains any symbol and encodes anything else.
func (translator *Translator) Translate(text string) Translation {
	if translator.ContainsSymbol(text) {
		return Translation{
			Input:     text,
			Output:    translator.Decode(text),
			Direction: ToText,
		}
	}
	encoded := translator.Encode(text)
	report := translator.Analyze(text, encoded)
	return Translation{
		Input:     text,
		Output:    encoded,
		Direction: ToSymbols,
		Report:    &report,
	}
}

// AnalyzeBatch encodes each text and totals the reports.
func (translator *Translator) AnalyzeBatch(texts []string) ([]Analysis,
	CompressionTotals) {
	analyses := make([]Analysis, 0, len(texts))
	var totals CompressionTotals
	for _, text := range texts {
		encoded := translator.Encode(text)
		report := translator.Analyze(text, encoded)
		totals.Add(report)
		analyses = append(analyses, Analysis{text, encoded, report})
	}
	return analyses, totals
}
