//go:build cgo

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitDictionary(t *testing.T) {
	assert.True(t, wrapInitDictionary("realestate"))
	assert.True(t, wrapInitDictionary("logic"))
	assert.False(t, wrapInitDictionary("no-such-dictionary"))
}

func TestEncodeDecodeText(t *testing.T) {
	encoded := wrapEncodeText("realestate", "phrase", "Cash flow is king")
	assert.Equal(t, "\ue003 is king", encoded)
	assert.Equal(t, "cash flow is king", wrapDecodeText("realestate", encoded))
	assert.Equal(t, "\ue003 is king",
		wrapEncodeText("realestate", "window", "cash flow is king"))
}

func TestDecodeBuffer(t *testing.T) {
	_, decoded := testBuffer("logic", []byte("∀ x ∃ y"))
	assert.Equal(t,
		"universal quantifier x existential quantifier y", decoded)
}

func TestAnalyzeCompression(t *testing.T) {
	report := wrapAnalyzeCompression("real estate investment trust",
		"\ue008")
	assert.Equal(t, 4, report.OriginalTokens)
	assert.Equal(t, 0, report.CompressedTokens)
	assert.Equal(t, 4, report.TokensSaved)
	assert.Equal(t, 100.0, report.RatioPercent)

	report = wrapAnalyzeCompression("a", "b c")
	assert.Equal(t, -1, report.TokensSaved)
}

func BenchmarkDecodeBuffer(b *testing.B) {
	wrapInitDictionary("realestate")
	corpus := []byte(strings.Repeat(
		"the \ue008 bought \ue000 .\n\ue003 is king\n", 4096))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		duration, decoded := testBuffer("realestate", corpus)
		if i == 0 {
			b.Logf("%d bytes decoded to %d bytes in %vms", len(corpus),
				len(decoded), duration.Milliseconds())
		}
	}
}
