//go:build !wasip1 && !js

package moonspeak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_AnalyzeDocument(t *testing.T) {
	translator, err := NewTranslator(cardsCtx, PhraseMode)
	assert.Nil(t, err)
	analysis, err := translator.AnalyzeDocument(
		"Real estate is booming. The trust bought more real estate " +
			"investment trust shares.")
	assert.Nil(t, err)
	assert.Len(t, analysis.Sentences, 2)
	assert.Equal(t, "♥ is booming.", analysis.Sentences[0].Encoded)
	assert.Equal(t, 2, analysis.Totals.Items)
	assert.Less(t, analysis.Totals.CompressedTokens,
		analysis.Totals.OriginalTokens)
}
