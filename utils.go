package moonspeak

import (
	"strings"
	"unicode"
)

// isWordRune matches the characters that make up words: letters, digits
// and the underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// keepWordRunes drops everything but word characters from s.
func keepWordRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return -1
	}, s)
}

// dropWordRunes keeps only the punctuation and other non-word characters
// of s, in order.
func dropWordRunes(s string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return -1
		}
		return r
	}, s)
}

// isAlnum reports whether s is non-empty and made only of letters and
// digits. Unlike isWordRune, the underscore does not count.
func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
