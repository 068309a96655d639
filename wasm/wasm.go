package main

import (
	"fmt"

	"github.com/extism/go-pdk"
	msgpack "github.com/vmihailenco/msgpack/v5"
	"github.com/wbrown/moonspeak"
)

var translator *moonspeak.Translator

func useDictionary(dictId string) error {
	ctx, err := moonspeak.NewContextFromDictionary(dictId)
	if err != nil {
		return err
	}
	next, err := moonspeak.NewTranslator(ctx, moonspeak.PhraseMode)
	if err != nil {
		return err
	}
	translator = next
	return nil
}

func init() {
	// Start on the real estate dictionary; use_dictionary switches.
	if err := useDictionary("realestate"); err != nil {
		panic(err)
	}
}

//go:wasmexport use_dictionary
func UseDictionary() int32 {
	if err := useDictionary(pdk.InputString()); err != nil {
		pdk.SetError(err)
		return 1
	}
	return 0
}

//go:wasmexport encode
func Encode() int32 {
	pdk.OutputString(translator.Encode(pdk.InputString()))
	return 0
}

//go:wasmexport encode_windows
func EncodeWindows() int32 {
	pdk.OutputString(translator.EncodeWindows(pdk.InputString()))
	return 0
}

//go:wasmexport decode
func Decode() int32 {
	pdk.OutputString(translator.Decode(pdk.InputString()))
	return 0
}

// analyze takes a msgpack array of strings and returns a msgpack array of
// analyses.
//
//go:wasmexport analyze
func Analyze() int32 {
	var texts []string
	if err := msgpack.Unmarshal(pdk.Input(), &texts); err != nil {
		pdk.SetError(err)
		return 1
	}
	analyses, _ := translator.AnalyzeBatch(texts)
	bytes, err := msgpack.Marshal(&analyses)
	if err != nil {
		pdk.SetError(err)
		return 1
	}
	pdk.Output(bytes)
	return 0
}

func EncodeAndBackFull() error {
	// Mostly for debugging
	text := "The REIT bought real estate."
	analyses, _ := translator.AnalyzeBatch([]string{text})
	bytes, err := msgpack.Marshal(&analyses)
	if err != nil {
		return err
	}

	var analyses2 []moonspeak.Analysis
	if err = msgpack.Unmarshal(bytes, &analyses2); err != nil {
		return err
	}
	fmt.Println(translator.Decode(analyses2[0].Encoded),
		analyses2[0].Report.RatioPercent)
	return nil
}

func main() {
	err := EncodeAndBackFull()
	if err != nil {
		fmt.Println("Error:", err)
	}
}
