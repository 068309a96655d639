package resources

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const DefaultMaxWindow = 4

// DictionaryConfig carries the per-dictionary settings that sit next to the
// dictionary file in a bundle as moonspeak.yaml.
type DictionaryConfig struct {
	Format          string              `yaml:"format,omitempty"`
	Synonyms        map[string][]string `yaml:"synonyms,omitempty"`
	StopWords       []string            `yaml:"stop_words,omitempty"`
	WindowStopWords []string            `yaml:"window_stop_words,omitempty"`
	MaxWindow       int                 `yaml:"max_window,omitempty"`
}

// DefaultSynonyms covers both the real estate and logic vocabularies. An
// entry only picks up synonyms when its description is a key here.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"real estate":            {"realty", "property", "real property"},
		"investment property":    {"rental property", "income property"},
		"cash flow":              {"cash income", "net cash"},
		"market analysis":        {"market study", "market research"},
		"property management":    {"asset management", "property admin"},
		"universal quantifier":   {"for all", "for every", "for each"},
		"existential quantifier": {"there exists", "for some"},
		"implication":            {"implies", "if then"},
		"conjunction":            {"and also"},
		"disjunction":            {"or else"},
		"negation":               {"not"},
		"equivalence":            {"if and only if", "iff"},
	}
}

// DefaultStopWords are left untouched by phrase-mode word substitution.
func DefaultStopWords() []string {
	return []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
		"for", "of", "with", "by", "is", "are", "was", "were", "be",
		"been", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "may", "might", "can", "must",
	}
}

// DefaultWindowStopWords are kept literally by window-mode encoding.
func DefaultWindowStopWords() []string {
	return []string{
		"the", "a", "an", "of", "to", "in", "is", "are", "that", "such",
		"then",
	}
}

func DefaultDictionaryConfig() DictionaryConfig {
	return DictionaryConfig{
		Format:          "auto",
		Synonyms:        DefaultSynonyms(),
		StopWords:       DefaultStopWords(),
		WindowStopWords: DefaultWindowStopWords(),
		MaxWindow:       DefaultMaxWindow,
	}
}

// Overlay returns a copy of config with every field set in other replacing
// its counterpart.
func (config DictionaryConfig) Overlay(other DictionaryConfig) DictionaryConfig {
	if other.Format != "" {
		config.Format = other.Format
	}
	if other.Synonyms != nil {
		config.Synonyms = other.Synonyms
	}
	if other.StopWords != nil {
		config.StopWords = other.StopWords
	}
	if other.WindowStopWords != nil {
		config.WindowStopWords = other.WindowStopWords
	}
	if other.MaxWindow > 0 {
		config.MaxWindow = other.MaxWindow
	}
	return config
}

// ParseDictionaryConfig reads a moonspeak.yaml document on top of the
// defaults.
func ParseDictionaryConfig(data []byte) (DictionaryConfig, error) {
	var fileConfig DictionaryConfig
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return DictionaryConfig{}, fmt.Errorf("cannot unmarshal `%s`: %w",
			ConfigFile, err)
	}
	if fileConfig.MaxWindow < 0 {
		return DictionaryConfig{}, fmt.Errorf("`%s`: max_window must be "+
			"positive, got %d", ConfigFile, fileConfig.MaxWindow)
	}
	return DefaultDictionaryConfig().Overlay(fileConfig), nil
}

// Marshal renders the config as YAML.
func (config DictionaryConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(&config)
}
