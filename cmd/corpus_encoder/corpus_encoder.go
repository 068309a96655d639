package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/wbrown/moonspeak"
	"github.com/wbrown/moonspeak/pkg/bpecount"
)

const (
	encodedSuffix = ".moonspeak.txt"
	reportFile    = "report.json"
)

// CorpusEncoder encodes text sources line by line into an output
// directory, mirroring the sources' relative paths.
type CorpusEncoder struct {
	Translator *moonspeak.Translator
	OutputDir  string
	Sanitize   bool
}

// FileReport is the compression achieved on a single source.
type FileReport struct {
	Name    string                      `json:"name"`
	Output  string                      `json:"output"`
	Lines   int                         `json:"lines"`
	Bytes   int64                       `json:"bytes"`
	Totals  moonspeak.CompressionTotals `json:"totals"`
	Summary moonspeak.CompressionReport `json:"summary"`
}

// CorpusReport is written next to the encoded files.
type CorpusReport struct {
	Dictionary string                      `json:"dictionary"`
	Mode       string                      `json:"mode"`
	Files      []FileReport                `json:"files"`
	Totals     moonspeak.CompressionTotals `json:"totals"`
	Summary    moonspeak.CompressionReport `json:"summary"`
}

func outputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + encodedSuffix
}

// EncodeSource encodes one source. Blank lines are kept so the output
// lines up with the input.
func (ce *CorpusEncoder) EncodeSource(source TextSource) (*FileReport,
	error) {
	report := &FileReport{
		Name:   source.Name,
		Output: filepath.Join(ce.OutputDir, outputName(source.Name)),
	}
	reader, openErr := source.Open()
	if openErr != nil {
		return nil, openErr
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(report.Output), 0755); err != nil {
		return nil, err
	}
	outFile, createErr := os.Create(report.Output)
	if createErr != nil {
		return nil, createErr
	}
	defer outFile.Close()
	writer := bufio.NewWriter(outFile)

	sanitizer := &LineSanitizer{}
	encodeLine := func(line string) error {
		report.Lines++
		report.Bytes += int64(len(line)) + 1
		if strings.TrimSpace(line) != "" {
			encoded := ce.Translator.Encode(line)
			report.Totals.Add(ce.Translator.Analyze(line, encoded))
			line = encoded
		}
		_, err := writer.WriteString(line + "\n")
		return err
	}
	emit := encodeLine
	if ce.Sanitize {
		emit = func(raw string) error {
			for _, line := range sanitizer.Sanitize(raw) {
				if err := encodeLine(line); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if err := ReadLines(reader, source.IsJSONL(), emit); err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", source.Name, err)
	}
	if err := writer.Flush(); err != nil {
		return nil, err
	}
	report.Summary = report.Totals.Report()
	return report, nil
}

// EncodeSources encodes every source in order, logging progress.
func (ce *CorpusEncoder) EncodeSources(sources []TextSource) (*CorpusReport,
	error) {
	corpus := &CorpusReport{
		Dictionary: ce.Translator.Id,
		Mode:       ce.Translator.Mode().String(),
		Files:      make([]FileReport, 0, len(sources)),
	}
	for _, source := range sources {
		begin := time.Now()
		fileReport, err := ce.EncodeSource(source)
		if err != nil {
			return corpus, err
		}
		log.Printf("Encoded %s: %s in %0.2fs, %s -> %s tokens (%0.1f%%)",
			source.Name, humanize.Bytes(uint64(fileReport.Bytes)),
			time.Since(begin).Seconds(),
			humanize.Comma(int64(fileReport.Totals.OriginalTokens)),
			humanize.Comma(int64(fileReport.Totals.CompressedTokens)),
			fileReport.Summary.RatioPercent)
		corpus.Files = append(corpus.Files, *fileReport)
		corpus.Totals.Merge(fileReport.Totals)
	}
	corpus.Summary = corpus.Totals.Report()
	return corpus, nil
}

func WriteReport(path string, report *CorpusReport) error {
	reportBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, reportBytes, 0644)
}

// NewCounter returns the token counter named by id: "words" for the word
// counter, anything else is a BPE vocabulary id.
func NewCounter(id string) (moonspeak.TokenCounter, error) {
	if id == "" || id == "words" {
		return moonspeak.WordCounter{}, nil
	}
	counter, err := bpecount.New(id)
	if err != nil {
		return nil, err
	}
	return counter, nil
}

func main() {
	dictionaryId := flag.String("dictionary", "realestate",
		"dictionary to encode with [realestate, logic, path, url]")
	modeName := flag.String("mode", "phrase",
		"encoding mode [phrase, window]")
	counterId := flag.String("counter", "words",
		"token counter for reports [words, gpt2, pile, huggingface-id]")
	inputDir := flag.String("input", "",
		"input directory, or s3://bucket/prefix")
	outputDir := flag.String("output", "encoded",
		"output directory for encoded files and report.json")
	sanitizeBool := flag.Bool("sanitize", false,
		"sanitize inputs of whitespace issues")
	reorderPaths := flag.String("reorder", "",
		"reorder local input files [size_ascending, size_descending, "+
			"path_ascending, path_descending, random, none]")
	forceReencode := flag.Bool("reencode", false,
		"force encoding even if the report is newer than the inputs")
	flag.Parse()
	if *inputDir == "" {
		flag.Usage()
		log.Fatal("Must provide -input for directory source")
	}

	mode, modeErr := moonspeak.ParseEncodeMode(*modeName)
	if modeErr != nil {
		log.Fatal(modeErr)
	}
	log.Printf("Dictionary: %s\n", *dictionaryId)
	log.Printf("Encoder input source: %s\n", *inputDir)
	log.Printf("Encoder output: %s\n", *outputDir)
	log.Printf("Encoding mode: %s\n", mode)

	var sources []TextSource
	var sourceErr error
	if bucket, prefix, isS3 := parseS3Uri(*inputDir); isS3 {
		sess, sessErr := session.NewSession()
		if sessErr != nil {
			log.Fatal(sessErr)
		}
		sources, sourceErr = S3Sources(s3.New(sess), bucket, prefix)
	} else {
		reportPath := filepath.Join(*outputDir, reportFile)
		if !*forceReencode {
			if outStat, outErr := os.Stat(reportPath); outErr != nil &&
				!errors.Is(outErr, os.ErrNotExist) {
				log.Fatal(outErr)
			} else if outErr == nil {
				newestPath, newestModTime, newestErr := FindNewestText(
					*inputDir)
				if newestErr != nil {
					log.Fatal(newestErr)
				}
				if newestModTime != nil && newestModTime.Before(
					outStat.ModTime()) {
					log.Printf("Newest source `%s` is older than `%s`, "+
						"not encoding. Use -reencode to force encoding.",
						*newestPath, reportPath)
					os.Exit(0)
				}
			}
		}
		sources, sourceErr = LocalSources(*inputDir, *reorderPaths)
	}
	if sourceErr != nil {
		log.Fatal(sourceErr)
	}

	ctx, ctxErr := moonspeak.NewContextFromDictionary(*dictionaryId)
	if ctxErr != nil {
		log.Fatal(ctxErr)
	}
	translator, translatorErr := moonspeak.NewTranslator(ctx, mode)
	if translatorErr != nil {
		log.Fatal(translatorErr)
	}
	if translator.Counter, ctxErr = NewCounter(*counterId); ctxErr != nil {
		log.Fatal(ctxErr)
	}

	corpusEncoder := &CorpusEncoder{
		Translator: translator,
		OutputDir:  *outputDir,
		Sanitize:   *sanitizeBool,
	}
	begin := time.Now()
	report, encodeErr := corpusEncoder.EncodeSources(sources)
	if encodeErr != nil {
		log.Fatal(encodeErr)
	}
	if err := WriteReport(filepath.Join(*outputDir, reportFile),
		report); err != nil {
		log.Fatal(err)
	}
	duration := time.Since(begin).Seconds()
	log.Printf("%d files, %s -> %s tokens (%0.1f%% saved) in %0.2fs",
		len(report.Files), humanize.Comma(int64(report.Totals.OriginalTokens)),
		humanize.Comma(int64(report.Totals.CompressedTokens)),
		report.Summary.RatioPercent, duration)
}
