package moonspeak

import "strings"

// CompressionReport compares the token counts of a text and its encoding.
type CompressionReport struct {
	OriginalTokens   int     `json:"original_tokens" msgpack:"original_tokens"`
	CompressedTokens int     `json:"compressed_tokens" msgpack:"compressed_tokens"`
	RatioPercent     float64 `json:"compression_ratio" msgpack:"compression_ratio"`
	TokensSaved      int     `json:"tokens_saved" msgpack:"tokens_saved"`
}

// TokenCounter counts tokens the way some downstream consumer would. The
// default is WordCounter; pkg/bpecount counts GPT-2 tokens instead.
type TokenCounter interface {
	CountTokens(text string) int
}

type WordCounter struct{}

func (WordCounter) CountTokens(text string) int {
	return CountTokens(text)
}

// CountTokens counts maximal runs of word characters in the lowercased
// text. Symbols and punctuation are not word characters.
func CountTokens(text string) int {
	count := 0
	inWord := false
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			if !inWord {
				count++
			}
			inWord = true
		} else {
			inWord = false
		}
	}
	return count
}

func newCompressionReport(original, compressed int) CompressionReport {
	if original == 0 {
		return CompressionReport{}
	}
	saved := original - compressed
	return CompressionReport{
		OriginalTokens:   original,
		CompressedTokens: compressed,
		RatioPercent:     float64(saved) / float64(original) * 100,
		TokensSaved:      saved,
	}
}

// AnalyzeCompression reports how much compressed saves over original by
// word count. An original with no tokens yields an all-zero report.
func AnalyzeCompression(original, compressed string) CompressionReport {
	return AnalyzeCompressionWith(WordCounter{}, original, compressed)
}

// AnalyzeCompressionWith is AnalyzeCompression with a custom counter.
func AnalyzeCompressionWith(counter TokenCounter, original,
	compressed string) CompressionReport {
	originalTokens := counter.CountTokens(original)
	if originalTokens == 0 {
		return CompressionReport{}
	}
	return newCompressionReport(originalTokens,
		counter.CountTokens(compressed))
}

// CompressionTotals accumulates reports over many texts.
type CompressionTotals struct {
	Items            int `json:"items"`
	OriginalTokens   int `json:"original_tokens"`
	CompressedTokens int `json:"compressed_tokens"`
}

func (totals *CompressionTotals) Add(report CompressionReport) {
	totals.Items++
	totals.OriginalTokens += report.OriginalTokens
	totals.CompressedTokens += report.CompressedTokens
}

func (totals *CompressionTotals) Merge(other CompressionTotals) {
	totals.Items += other.Items
	totals.OriginalTokens += other.OriginalTokens
	totals.CompressedTokens += other.CompressedTokens
}

// Report summarizes the totals as a single report over all items.
func (totals CompressionTotals) Report() CompressionReport {
	return newCompressionReport(totals.OriginalTokens,
		totals.CompressedTokens)
}
