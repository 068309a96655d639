package main

import (
	"regexp"
	"strings"
)

var extraWhitespace = regexp.MustCompile("[[:space:]]+")
var spacedColon = regexp.MustCompile(" +:")
var repeatedNewlines = regexp.MustCompile("\n{2,}")

// SanitizeText normalizes whitespace before encoding. Windows `\r` is
// dropped, escaped `\n` becomes a newline, runs of spaces and tabs collapse
// to one space, spaces before a colon are removed, every line is trimmed,
// and runs of blank lines collapse to a single newline.
func SanitizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\\n", "\n")
	lines := strings.Split(text, "\n")
	for lineIdx := range lines {
		line := extraWhitespace.ReplaceAllString(lines[lineIdx], " ")
		line = spacedColon.ReplaceAllString(line, ":")
		lines[lineIdx] = strings.TrimSpace(line)
	}
	return repeatedNewlines.ReplaceAllString(strings.Join(lines, "\n"), "\n")
}

// LineSanitizer sanitizes a stream one line at a time, dropping blank lines
// that follow another blank line.
type LineSanitizer struct {
	lastBlank bool
}

// Sanitize returns the lines a raw input line turns into.
func (sanitizer *LineSanitizer) Sanitize(line string) []string {
	lines := make([]string, 0, 1)
	for _, sanitized := range strings.Split(SanitizeText(line), "\n") {
		blank := sanitized == ""
		if blank && sanitizer.lastBlank {
			continue
		}
		sanitizer.lastBlank = blank
		lines = append(lines, sanitized)
	}
	return lines
}
