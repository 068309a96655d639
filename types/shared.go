package types

// Entry is a single dictionary record mapping a symbol to its name and
// human-readable description.
type Entry struct {
	Code        string // Only set by the code-first record shape.
	Symbol      string
	Name        string
	Category    string
	Subcategory string // Only set by the code-first record shape.
	Priority    int    // Only set by the symbol-first record shape.
	Description string
}

type Entries []Entry

// Format identifies which pipe-delimited record shape a dictionary uses.
type Format uint8

const (
	FormatAuto        Format = iota
	FormatSymbolFirst        // symbol|name|category|priority|description
	FormatCodeFirst          // unicode_code|symbol|name|category|subcategory|description
)

const (
	SymbolFirstFields = 5
	CodeFirstFields   = 6
	FieldSeparator    = "|"
)
