package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wbrown/moonspeak/resources"
	"github.com/wbrown/moonspeak/types"
)

func TestExportDictionary_Reformat(t *testing.T) {
	dict, err := resources.LoadDictionary("realestate")
	assert.Nil(t, err)
	dest := filepath.Join(t.TempDir(), "bundle")
	dictPath, err := ExportDictionary(dict, types.FormatSymbolFirst, dest)
	assert.Nil(t, err)
	assert.Equal(t, filepath.Join(dest, resources.DictionaryFile), dictPath)

	contents, err := os.ReadFile(dictPath)
	assert.Nil(t, err)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	assert.Len(t, lines, len(dict.Entries)+1)
	assert.True(t, strings.HasPrefix(lines[0], "# "))
	assert.Len(t, strings.Split(lines[1], types.FieldSeparator),
		types.SymbolFirstFields)

	reloaded, err := resources.LoadDictionary(dest)
	assert.Nil(t, err)
	assert.Equal(t, types.FormatSymbolFirst, reloaded.Format)
	assert.Equal(t, dict.Entries.Symbols(), reloaded.Entries.Symbols())
	for idx := range dict.Entries {
		assert.Equal(t, dict.Entries[idx].Description,
			reloaded.Entries[idx].Description)
		assert.Equal(t, dict.Entries[idx].Name, reloaded.Entries[idx].Name)
	}
	assert.Equal(t, dict.Config.Synonyms, reloaded.Config.Synonyms)
}

func TestExportDictionary_KeepsFormat(t *testing.T) {
	dict, err := resources.LoadDictionary("logic")
	assert.Nil(t, err)
	dest := t.TempDir()
	_, err = ExportDictionary(dict, types.FormatAuto, dest)
	assert.Nil(t, err)
	reloaded, err := resources.LoadDictionary(dest)
	assert.Nil(t, err)
	assert.Equal(t, dict.Format, reloaded.Format)
	assert.Equal(t, dict.Entries, reloaded.Entries)
}
