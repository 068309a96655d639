//go:build wasip1 || js

package moonspeak

import "errors"

type DocumentAnalysis struct {
	Sentences []Analysis        `json:"sentences"`
	Totals    CompressionTotals `json:"totals"`
}

func (translator *Translator) AnalyzeDocument(text string) (
	*DocumentAnalysis,
	error,
) {
	return nil, errors.New("AnalyzeDocument is not implemented")
}
