package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/wbrown/moonspeak"
)

// TranslateLines translates reader line by line into writer. Blank lines are
// passed through. The returned totals cover the encoded lines only.
func TranslateLines(translator *moonspeak.Translator, direction string,
	reader io.Reader, writer io.Writer,
	show bool) (totals moonspeak.CompressionTotals, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	bufWriter := bufio.NewWriter(writer)
	for scanner.Scan() {
		line := scanner.Text()
		output := line
		if strings.TrimSpace(line) != "" {
			switch direction {
			case "encode":
				output = translator.Encode(line)
				totals.Add(translator.Analyze(line, output))
			case "decode":
				output = translator.Decode(line)
			case "auto":
				translation := translator.Translate(line)
				output = translation.Output
				if translation.Report != nil {
					totals.Add(*translation.Report)
				}
			default:
				return totals, fmt.Errorf("invalid direction: %s", direction)
			}
			if show {
				log.Printf("Input: %s", line)
				log.Printf("Output: %s", output)
			}
		}
		if _, err = bufWriter.WriteString(output + "\n"); err != nil {
			return totals, err
		}
	}
	if err = scanner.Err(); err != nil {
		return totals, err
	}
	return totals, bufWriter.Flush()
}

func main() {
	dictionaryId := flag.String("dictionary", "realestate",
		"dictionary to translate with [realestate, logic, path, url]")
	modeName := flag.String("mode", "phrase",
		"encoding mode [phrase, window]")
	direction := flag.String("direction", "encode",
		"translation direction [encode, decode, auto]")
	showLines := flag.Bool("show_lines", false,
		"log lines as they are translated")
	inputFile := flag.String("input", "",
		"input file to translate")
	outputFile := flag.String("output", "translated.txt",
		"output file to write translated text")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		log.Fatal("Must provide -input")
	}
	if *outputFile == "" {
		flag.Usage()
		log.Fatal("Must provide -output")
	}
	if *inputFile == *outputFile {
		log.Fatal("Input and output files must be different")
	}
	if _, err := os.Stat(*inputFile); os.IsNotExist(err) {
		log.Fatal("Input file does not exist")
	}
	mode, modeErr := moonspeak.ParseEncodeMode(*modeName)
	if modeErr != nil {
		log.Fatal(modeErr)
	}

	ctx, ctxErr := moonspeak.NewContextFromDictionary(*dictionaryId)
	if ctxErr != nil {
		log.Fatal(ctxErr)
	}
	translator, translatorErr := moonspeak.NewTranslator(ctx, mode)
	if translatorErr != nil {
		log.Fatal(translatorErr)
	}

	inputFileHandle, err := os.Open(*inputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer inputFileHandle.Close()
	outputFileHandle, err := os.Create(*outputFile)
	if err != nil {
		log.Fatal(err)
	}
	defer outputFileHandle.Close()

	totals, translateErr := TranslateLines(translator, *direction,
		inputFileHandle, outputFileHandle, *showLines)
	if translateErr != nil {
		log.Fatal(translateErr)
	}
	if totals.Items > 0 {
		report := totals.Report()
		log.Printf("Encoded %d lines, %d -> %d tokens (%0.1f%% saved)",
			totals.Items, report.OriginalTokens, report.CompressedTokens,
			report.RatioPercent)
	}
}
