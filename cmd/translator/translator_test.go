package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wbrown/moonspeak"
)

func newTestTranslator(t *testing.T) *moonspeak.Translator {
	ctx, err := moonspeak.NewContextFromDictionary("realestate")
	assert.Nil(t, err)
	translator, err := moonspeak.NewTranslator(ctx, moonspeak.PhraseMode)
	assert.Nil(t, err)
	return translator
}

func TestTranslateLines_Encode(t *testing.T) {
	var out bytes.Buffer
	totals, err := TranslateLines(newTestTranslator(t), "encode",
		strings.NewReader("Cash flow is king\n\nreal estate\n"), &out, false)
	assert.Nil(t, err)
	assert.Equal(t, "\ue003 is king\n\n\ue000\n", out.String())
	assert.Equal(t, 2, totals.Items)
	assert.Equal(t, 6, totals.OriginalTokens)
	assert.Equal(t, 2, totals.CompressedTokens)
}

func TestTranslateLines_Decode(t *testing.T) {
	var out bytes.Buffer
	totals, err := TranslateLines(newTestTranslator(t), "decode",
		strings.NewReader("\ue003 is king\n\ue000\n"), &out, false)
	assert.Nil(t, err)
	assert.Equal(t, "cash flow is king\nreal estate\n", out.String())
	assert.Equal(t, 0, totals.Items)
}

func TestTranslateLines_Auto(t *testing.T) {
	var out bytes.Buffer
	totals, err := TranslateLines(newTestTranslator(t), "auto",
		strings.NewReader("cash flow\n\ue000\n"), &out, true)
	assert.Nil(t, err)
	assert.Equal(t, "\ue003\nreal estate\n", out.String())
	assert.Equal(t, 1, totals.Items)
}

func TestTranslateLines_InvalidDirection(t *testing.T) {
	var out bytes.Buffer
	_, err := TranslateLines(newTestTranslator(t), "sideways",
		strings.NewReader("cash flow\n"), &out, false)
	assert.NotNil(t, err)
}
