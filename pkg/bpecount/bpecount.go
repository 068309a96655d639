// Package bpecount counts tokens the way a BPE language model would see
// them, so compression can be measured in model tokens rather than words.
package bpecount

import (
	"fmt"
	"strings"

	"github.com/wbrown/gpt_bpe"
)

const DefaultVocabId = "gpt2-tokenizer"

// Counter implements moonspeak.TokenCounter over a gpt_bpe encoder.
type Counter struct {
	VocabId string
	encoder *gpt_bpe.GPTEncoder
}

// New loads the tokenizer for vocabId. An empty id selects GPT-2. Ids
// without the "-tokenizer" suffix are tried with it appended first, which
// resolves the tokenizers embedded in gpt_bpe.
func New(vocabId string) (*Counter, error) {
	if vocabId == "" {
		vocabId = DefaultVocabId
	}
	candidates := []string{vocabId}
	if !strings.HasSuffix(vocabId, "-tokenizer") {
		candidates = append([]string{vocabId + "-tokenizer"}, candidates...)
	}
	var lastErr error
	for _, candidate := range candidates {
		encoder, err := gpt_bpe.NewEncoder(candidate)
		if err == nil {
			return &Counter{VocabId: candidate, encoder: encoder}, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("cannot load tokenizer %s: %w", vocabId, lastErr)
}

func (counter *Counter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(*counter.encoder.Encode(&text))
}
