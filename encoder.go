package moonspeak

import (
	"fmt"
	"strings"
)

type EncodeMode uint8

const (
	// PhraseMode substitutes every description and synonym in the text,
	// longest first, then maps the remaining words by name.
	PhraseMode EncodeMode = iota
	// WindowMode slides over the words, trying the widest word window
	// that matches a description exactly.
	WindowMode
)

// Characters stripped from the ends of a window before lookup.
const windowTrimChars = ".,!?;:"

func (mode EncodeMode) String() string {
	switch mode {
	case PhraseMode:
		return "phrase"
	case WindowMode:
		return "window"
	default:
		return fmt.Sprintf("EncodeMode(%d)", uint8(mode))
	}
}

func ParseEncodeMode(name string) (EncodeMode, error) {
	switch strings.ToLower(name) {
	case "", "phrase":
		return PhraseMode, nil
	case "window":
		return WindowMode, nil
	default:
		return PhraseMode, fmt.Errorf("unknown encode mode %q", name)
	}
}

// Encode compresses natural-language text into symbols. The text is
// lowercased, every known phrase is replaced by its padded symbol in
// longest-first order, and each remaining word whose letters and digits
// form a known name becomes that symbol with the word's punctuation
// appended. Stop words are left alone.
func (ctx *Context) Encode(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	result := strings.ToLower(text)
	for idx := range ctx.replacements {
		step := &ctx.replacements[idx]
		if strings.Contains(result, step.phrase) {
			result = strings.ReplaceAll(result, step.phrase, step.padded)
		}
	}

	words := strings.Fields(result)
	for idx, word := range words {
		cleanWord := keepWordRunes(word)
		if ctx.stopWords[cleanWord] {
			continue
		}
		if symbol, ok := ctx.nameToSymbol[cleanWord]; ok {
			words[idx] = symbol + dropWordRunes(word)
		}
	}
	return strings.Join(words, " ")
}

// matchWindow tries the widest window of leading words first and returns
// the symbol and the number of words it covers.
func (ctx *Context) matchWindow(words []string) (string, int) {
	width := ctx.maxWindow
	if width > len(words) {
		width = len(words)
	}
	for ; width > 0; width-- {
		phrase := strings.Trim(strings.Join(words[:width], " "),
			windowTrimChars)
		if symbol, ok := ctx.descriptionToSymbol[phrase]; ok {
			return symbol, width
		}
	}
	return "", 0
}

// EncodeWindows compresses text with a sliding window of whole words. A
// word that matches no window is kept when it is a window stop word, a
// plain alphanumeric word, or a parenthesis, and replaced when it is a
// name. Other words are dropped.
func (ctx *Context) EncodeWindows(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(text))
	resultTokens := make([]string, 0, len(words))
	for idx := 0; idx < len(words); {
		if symbol, width := ctx.matchWindow(words[idx:]); width > 0 {
			resultTokens = append(resultTokens, symbol)
			idx += width
			continue
		}
		cleanWord := strings.Trim(words[idx], windowTrimChars)
		if ctx.windowStopWords[cleanWord] {
			resultTokens = append(resultTokens, cleanWord)
		} else if symbol, ok := ctx.nameToSymbol[cleanWord]; ok {
			resultTokens = append(resultTokens, symbol)
		} else if isAlnum(cleanWord) || cleanWord == "(" || cleanWord == ")" {
			resultTokens = append(resultTokens, cleanWord)
		}
		idx++
	}
	result := strings.Join(resultTokens, " ")
	result = strings.ReplaceAll(result, "( ", "(")
	return strings.ReplaceAll(result, " )", ")")
}

// EncodeMode dispatches to Encode or EncodeWindows.
func (ctx *Context) EncodeMode(text string, mode EncodeMode) string {
	if mode == WindowMode {
		return ctx.EncodeWindows(text)
	}
	return ctx.Encode(text)
}
