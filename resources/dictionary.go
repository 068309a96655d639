package resources

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/wbrown/moonspeak/types"
)

var ErrNoEntries = errors.New("dictionary has no valid entries")

// ConfigurationError is returned when a dictionary cannot be used at all:
// it is missing, its config is unreadable, or it has no valid entries.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("moonspeak: dictionary %q: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Dictionary is a parsed dictionary bundle.
type Dictionary struct {
	Id      string
	Format  types.Format
	Entries types.Entries
	Skipped  []ParsedLine
	Warnings []ParsedLine
	Config   DictionaryConfig
}

// LoadDictionary resolves a dictionary id and parses it. Rejected lines are
// kept in Skipped; a dictionary with no valid entries is a
// ConfigurationError.
func LoadDictionary(dictId string) (*Dictionary, error) {
	rsrcs, tempDir, resolveErr := ResolveDictionaryId(dictId)
	if resolveErr != nil {
		return nil, &ConfigurationError{dictId, resolveErr}
	}
	defer rsrcs.Cleanup()
	if tempDir != "" {
		defer os.RemoveAll(tempDir)
	}

	config := DefaultDictionaryConfig()
	if configEntry, ok := (*rsrcs)[ConfigFile]; ok && configEntry.Data != nil {
		parsedConfig, configErr := ParseDictionaryConfig(*configEntry.Data)
		if configErr != nil {
			return nil, &ConfigurationError{dictId, configErr}
		}
		config = parsedConfig
	}
	format, formatErr := types.ParseFormat(config.Format)
	if formatErr != nil {
		return nil, &ConfigurationError{dictId, formatErr}
	}

	dictEntry := (*rsrcs)[DictionaryFile]
	if dictEntry.Data == nil {
		return nil, &ConfigurationError{dictId,
			fmt.Errorf("missing %s", DictionaryFile)}
	}
	parsed, parseErr := ParseDictionary(bytes.NewReader(*dictEntry.Data),
		format)
	if parseErr != nil {
		return nil, &ConfigurationError{dictId, parseErr}
	}
	if len(parsed.Entries) == 0 {
		return nil, &ConfigurationError{dictId, ErrNoEntries}
	}
	return &Dictionary{
		Id:      dictId,
		Format:  parsed.Format,
		Entries: parsed.Entries,
		Skipped:  parsed.Skipped,
		Warnings: parsed.Warnings,
		Config:   config,
	}, nil
}
