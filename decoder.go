package moonspeak

import (
	"bufio"
	"io"
	"strings"
)

func (ctx *Context) decodeToken(token string) string {
	if description, ok := ctx.symbolToDescription[token]; ok {
		return description
	}
	return token
}

// Decode expands every symbol in a mixed expression into its description.
// Other tokens are kept as they are, and all tokens are joined by single
// spaces.
func (ctx *Context) Decode(expression string) string {
	if strings.TrimSpace(expression) == "" {
		return ""
	}
	tokens := ctx.Tokenize(expression)
	for idx, token := range tokens {
		tokens[idx] = ctx.decodeToken(token)
	}
	return strings.Join(tokens, " ")
}

// DecodeReader streams an expression from reader and writes the same text
// Decode would return for it to writer. A failed read stops decoding and
// its error is returned; io.EOF is the normal end of input.
func (ctx *Context) DecodeReader(reader io.RuneReader,
	writer io.Writer) error {
	nextToken, stop := ctx.TokenSplitter(reader)
	bufWriter := bufio.NewWriter(writer)
	first := true
	for token := nextToken(); token != nil; token = nextToken() {
		if !first {
			bufWriter.WriteByte(' ')
		}
		first = false
		if _, err := bufWriter.WriteString(ctx.decodeToken(*token)); err != nil {
			stop()
			return err
		}
	}
	if err := stop(); err != nil {
		return err
	}
	return bufWriter.Flush()
}
