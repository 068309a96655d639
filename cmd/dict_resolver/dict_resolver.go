package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wbrown/moonspeak/resources"
	"github.com/wbrown/moonspeak/types"
)

// ExportDictionary writes dict as a bundle in destDir, rendering every entry
// in format. FormatAuto keeps the format the dictionary was read in.
func ExportDictionary(dict *resources.Dictionary, format types.Format,
	destDir string) (string, error) {
	if format == types.FormatAuto {
		format = dict.Format
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	dictPath := filepath.Join(destDir, resources.DictionaryFile)
	dictFile, err := os.Create(dictPath)
	if err != nil {
		return "", err
	}
	defer dictFile.Close()
	writer := bufio.NewWriter(dictFile)
	fmt.Fprintf(writer, "# MoonSpeak dictionary %s, %d entries\n",
		filepath.Base(dict.Id), len(dict.Entries))
	for idx := range dict.Entries {
		if _, err := writer.WriteString(
			dict.Entries[idx].Line(format) + "\n"); err != nil {
			return "", err
		}
	}
	if err := writer.Flush(); err != nil {
		return "", err
	}

	config := dict.Config
	config.Format = format.String()
	configBytes, err := config.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(destDir, resources.ConfigFile),
		configBytes, 0644); err != nil {
		return "", err
	}
	return dictPath, nil
}

func main() {
	dictionaryId := flag.String("dictionary", "",
		"dictionary URL, path, or embedded id to fetch")
	destPath := flag.String("dest", "./",
		"where to write the dictionary bundle to")
	formatName := flag.String("format", "auto",
		"format to write entries in [auto, symbol-first, code-first]")
	list := flag.Bool("list", false, "list embedded dictionaries and exit")
	flag.Parse()
	if *list {
		for _, id := range resources.EmbeddedDictionaries() {
			fmt.Println(id)
		}
		return
	}
	if *dictionaryId == "" {
		flag.Usage()
		log.Fatal("Must provide -dictionary")
	}
	format, formatErr := types.ParseFormat(*formatName)
	if formatErr != nil {
		log.Fatal(formatErr)
	}

	dict, dictErr := resources.LoadDictionary(*dictionaryId)
	if dictErr != nil {
		log.Fatalf("Error resolving dictionary: %s", dictErr)
	}
	for _, skipped := range dict.Skipped {
		log.Printf("Skipped line %d: %v", skipped.Number, skipped.Err)
	}
	for _, warned := range dict.Warnings {
		log.Printf("Line %d: %v", warned.Number, warned.Warning)
	}
	dictPath, exportErr := ExportDictionary(dict, format, *destPath)
	if exportErr != nil {
		log.Fatalf("Error writing dictionary: %s", exportErr)
	}
	log.Printf("Wrote %d entries to %s", len(dict.Entries), dictPath)
}
