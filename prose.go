//go:build !wasip1 && !js

package moonspeak

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// DocumentAnalysis holds per-sentence compression for a document.
type DocumentAnalysis struct {
	Sentences []Analysis        `json:"sentences"`
	Totals    CompressionTotals `json:"totals"`
}

// AnalyzeDocument segments text into sentences and encodes each one,
// reporting the compression of every sentence and of the whole.
func (translator *Translator) AnalyzeDocument(text string) (
	*DocumentAnalysis,
	error,
) {
	doc, err := prose.NewDocument(
		text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTokenization(false),
	)
	if err != nil {
		return nil, err
	}
	sentences := make([]string, 0)
	for _, sentence := range doc.Sentences() {
		if trimmed := strings.TrimSpace(sentence.Text); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	analyses, totals := translator.AnalyzeBatch(sentences)
	return &DocumentAnalysis{Sentences: analyses, Totals: totals}, nil
}
