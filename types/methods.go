package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fields returns the number of pipe-separated fields a record of this
// format carries, or 0 for FormatAuto.
func (format Format) Fields() int {
	switch format {
	case FormatSymbolFirst:
		return SymbolFirstFields
	case FormatCodeFirst:
		return CodeFirstFields
	default:
		return 0
	}
}

func (format Format) String() string {
	switch format {
	case FormatSymbolFirst:
		return "symbol-first"
	case FormatCodeFirst:
		return "code-first"
	default:
		return "auto"
	}
}

// ParseFormat accepts the names produced by Format.String, as well as the
// field counts "5" and "6".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "symbol-first", "5":
		return FormatSymbolFirst, nil
	case "code-first", "6":
		return FormatCodeFirst, nil
	}
	return FormatAuto, fmt.Errorf("unknown dictionary format %q", name)
}

// FormatForFields maps a field count back to its record shape.
func FormatForFields(fields int) Format {
	switch fields {
	case SymbolFirstFields:
		return FormatSymbolFirst
	case CodeFirstFields:
		return FormatCodeFirst
	default:
		return FormatAuto
	}
}

// CodePoint returns the entry's unicode code. When the entry came from a
// symbol-first dictionary it has no code, so one is derived from the symbol
// if the symbol is a single rune.
func (entry Entry) CodePoint() string {
	if entry.Code != "" {
		return entry.Code
	}
	if utf8.RuneCountInString(entry.Symbol) != 1 {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(entry.Symbol)
	return fmt.Sprintf("U+%04X", r)
}

// Line renders the entry as a dictionary line in the given format. Lines
// rendered here parse back into an identical entry, apart from the fields
// the target format does not carry.
func (entry Entry) Line(format Format) string {
	var fields []string
	switch format {
	case FormatCodeFirst:
		fields = []string{entry.CodePoint(), entry.Symbol, entry.Name,
			entry.Category, entry.Subcategory, entry.Description}
	default:
		fields = []string{entry.Symbol, entry.Name, entry.Category,
			strconv.Itoa(entry.Priority), entry.Description}
	}
	return strings.Join(fields, FieldSeparator)
}

func (entry Entry) String() string {
	return fmt.Sprintf("%s -> %s (%s)", entry.Symbol, entry.Name,
		entry.Description)
}

// Symbols returns every entry's symbol, in order, duplicates included.
func (entries Entries) Symbols() []string {
	symbols := make([]string, 0, len(entries))
	for idx := range entries {
		symbols = append(symbols, entries[idx].Symbol)
	}
	return symbols
}

// MaxSymbolRunes is the width in runes of the widest symbol.
func (entries Entries) MaxSymbolRunes() (width int) {
	for idx := range entries {
		if n := utf8.RuneCountInString(entries[idx].Symbol); n > width {
			width = n
		}
	}
	return width
}
