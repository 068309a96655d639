package bpecount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wbrown/moonspeak"
)

var gpt2Counter *Counter

func init() {
	var err error
	if gpt2Counter, err = New(""); err != nil {
		panic(err)
	}
}

func TestNew_VocabIds(t *testing.T) {
	assert.Equal(t, DefaultVocabId, gpt2Counter.VocabId)
	counter, err := New("gpt2")
	assert.Nil(t, err)
	assert.Equal(t, "gpt2-tokenizer", counter.VocabId)
}

func TestCounter_CountTokens(t *testing.T) {
	assert.Equal(t, 0, gpt2Counter.CountTokens(""))
	assert.Equal(t, 2, gpt2Counter.CountTokens("hello world"))
}

func TestCounter_AnalyzeCompression(t *testing.T) {
	report := moonspeak.AnalyzeCompressionWith(gpt2Counter,
		"real estate investment trust", "\ue008")
	assert.Greater(t, report.OriginalTokens, 0)
	assert.Greater(t, report.CompressedTokens, 0)
	assert.Equal(t, report.OriginalTokens-report.CompressedTokens,
		report.TokensSaved)
}
