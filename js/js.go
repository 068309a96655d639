package main

//go:generate gopherjs build --minify

import (
	"log"

	"github.com/gopherjs/gopherjs/js"
	"github.com/wbrown/moonspeak"
)

var translator *moonspeak.Translator

func Encode(text string) string {
	return translator.Encode(text)
}

func EncodeWindows(text string) string {
	return translator.EncodeWindows(text)
}

func Decode(text string) string {
	return translator.Decode(text)
}

// Analyze returns the compression report as a plain object.
func Analyze(text string) map[string]interface{} {
	encoded := translator.Encode(text)
	report := translator.Analyze(text, encoded)
	return map[string]interface{}{
		"encoded":           encoded,
		"original_tokens":   report.OriginalTokens,
		"compressed_tokens": report.CompressedTokens,
		"compression_ratio": report.RatioPercent,
		"tokens_saved":      report.TokensSaved,
	}
}

// UseDictionary switches to another embedded dictionary.
func UseDictionary(dictId string) bool {
	ctx, err := moonspeak.NewContextFromDictionary(dictId)
	if err != nil {
		log.Printf("MoonSpeak dictionary %s: %v", dictId, err)
		return false
	}
	next, err := moonspeak.NewTranslator(ctx, moonspeak.PhraseMode)
	if err != nil {
		return false
	}
	translator = next
	return true
}

func init() {
	if !UseDictionary("realestate") {
		panic("cannot load the realestate dictionary")
	}
	js.Module.Get("exports").Set("encode", Encode)
	js.Module.Get("exports").Set("encodeWindows", EncodeWindows)
	js.Module.Get("exports").Set("decode", Decode)
	js.Module.Get("exports").Set("analyze", Analyze)
	js.Module.Get("exports").Set("useDictionary", UseDictionary)
	log.Printf("MoonSpeak Translator Loaded")
}

func main() {

}
