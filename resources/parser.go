package resources

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wbrown/moonspeak/types"
)

const maxLineSz = 1024 * 1024

var (
	ErrIgnoredLine = errors.New("blank or comment line")
	ErrFieldCount  = errors.New("unexpected field count")
	ErrEmptySymbol = errors.New("empty symbol")
	ErrEmptyName   = errors.New("empty name")
	ErrBadPriority = errors.New("invalid priority")
)

// ParsedLine is the outcome of parsing one dictionary line. Exactly one of
// Entry or Err is meaningful. Warning flags a field that was defaulted on an
// otherwise good entry.
type ParsedLine struct {
	Number  int
	Text    string
	Entry   types.Entry
	Err     error
	Warning error
}

func (parsed ParsedLine) Ok() bool {
	return parsed.Err == nil
}

// ParseResult holds the entries a dictionary source yielded, along with the
// data lines that were rejected. Blank and comment lines are in neither.
type ParseResult struct {
	Format   types.Format
	Entries  types.Entries
	Skipped  []ParsedLine
	Warnings []ParsedLine
}

// ParseLine parses a single pipe-delimited dictionary line in the given
// format. FormatAuto picks the shape from the field count.
func ParseLine(line string, format types.Format) ParsedLine {
	parsed := ParsedLine{Text: line}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		parsed.Err = ErrIgnoredLine
		return parsed
	}
	parts := strings.Split(line, types.FieldSeparator)
	if format == types.FormatAuto {
		format = types.FormatForFields(len(parts))
	}
	if format == types.FormatAuto || len(parts) != format.Fields() {
		parsed.Err = fmt.Errorf("%w: got %d", ErrFieldCount, len(parts))
		return parsed
	}

	var entry types.Entry
	switch format {
	case types.FormatSymbolFirst:
		// Priority is informational; a bad one defaults to 0.
		priority, priorityErr := strconv.Atoi(strings.TrimSpace(parts[3]))
		if priorityErr != nil {
			priority = 0
			parsed.Warning = fmt.Errorf("%w: %q", ErrBadPriority, parts[3])
		}
		entry = types.Entry{
			Symbol:      parts[0],
			Name:        parts[1],
			Category:    parts[2],
			Priority:    priority,
			Description: parts[4],
		}
	case types.FormatCodeFirst:
		entry = types.Entry{
			Code:        parts[0],
			Symbol:      parts[1],
			Name:        parts[2],
			Category:    parts[3],
			Subcategory: parts[4],
			Description: parts[5],
		}
	}
	if entry.Symbol == "" {
		parsed.Err = ErrEmptySymbol
	} else if entry.Name == "" {
		parsed.Err = ErrEmptyName
	} else {
		parsed.Entry = entry
	}
	return parsed
}

// DetectFormat returns the record shape of the first data line with a
// recognized field count, or FormatAuto when there is none.
func DetectFormat(line string) types.Format {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return types.FormatAuto
	}
	return types.FormatForFields(
		strings.Count(line, types.FieldSeparator) + 1)
}

// ParseDictionary reads a dictionary source line by line. Malformed lines are
// never fatal: they are collected in Skipped and the remaining lines are
// still parsed. Entries kept with a defaulted field are also listed in
// Warnings. Only read errors are returned.
func ParseDictionary(reader io.Reader, format types.Format) (*ParseResult,
	error) {
	result := &ParseResult{
		Format:  format,
		Entries:  make(types.Entries, 0),
		Skipped:  make([]ParsedLine, 0),
		Warnings: make([]ParsedLine, 0),
	}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSz)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		text := scanner.Text()
		if result.Format == types.FormatAuto {
			result.Format = DetectFormat(text)
		}
		parsed := ParseLine(text, result.Format)
		parsed.Number = lineNumber
		if parsed.Ok() {
			result.Entries = append(result.Entries, parsed.Entry)
			if parsed.Warning != nil {
				result.Warnings = append(result.Warnings, parsed)
			}
		} else if !errors.Is(parsed.Err, ErrIgnoredLine) {
			result.Skipped = append(result.Skipped, parsed)
		}
	}
	if err := scanner.Err(); err != nil {
		return result, err
	}
	return result, nil
}
