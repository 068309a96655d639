package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/peterh/liner"
	"github.com/wbrown/moonspeak"
	"golang.org/x/term"
)

// A REPL for translating between English and MoonSpeak.

const historyFile = ".moonspeak_history"

var sampleTerms = []string{
	"real estate", "investment property", "rental income", "cash flow",
	"market analysis", "property management", "net operating income",
	"comparative market analysis", "real estate investment trust",
	"multiple listing service", "homeowners association",
	"fix and flip", "buy and hold", "due diligence",
	"seller financing", "capitalization rate", "debt to income ratio",
	"property tax", "homeowners insurance", "private mortgage insurance",
}

var sampleTexts = []string{
	"The investment property has excellent rental income potential with " +
		"strong cash flow.",
	"Comparative market analysis shows property values appreciating in " +
		"this neighborhood.",
	"Real estate investment trust offers diversified portfolio with " +
		"steady returns.",
	"Property management company handles tenant screening and rent " +
		"collection.",
	"Net operating income exceeds debt service coverage ratio requirements.",
	"Commercial property zoning allows mixed use development opportunities.",
	"Real estate agent provided multiple listing service data for analysis.",
	"Property appraisal indicates fair market value above asking price.",
	"Homeowners association fees include property management and amenities.",
	"Fix and flip strategy requires renovation budget and market timing.",
}

type replSession struct {
	translator *moonspeak.Translator
	out        io.Writer
}

func (session *replSession) showHelp() {
	fmt.Fprintln(session.out, "=== Help ===")
	fmt.Fprintln(session.out, "• Enter English text to convert to MoonSpeak symbols")
	fmt.Fprintln(session.out, "• Enter MoonSpeak symbols to convert back to English")
	fmt.Fprintln(session.out, "• Type 'mode phrase' or 'mode window' to switch encoders")
	fmt.Fprintln(session.out, "• Type 'analyze <text>' for a per-sentence report")
	fmt.Fprintln(session.out, "• Type 'tokens <expression>' to list its tokens")
	fmt.Fprintln(session.out, "• Type 'demo' for the sample compression report")
	fmt.Fprintln(session.out, "• Type 'stats' for quick statistics")
	fmt.Fprintln(session.out, "• Type 'exit' or 'quit' to end session")
}

func (session *replSession) showStats() {
	stats := session.translator.Stats()
	fmt.Fprintln(session.out, "=== Quick Stats ===")
	fmt.Fprintf(session.out, "• Dictionary: %s\n", session.translator.Id)
	fmt.Fprintf(session.out, "• Encoding mode: %s\n", session.translator.Mode())
	fmt.Fprintf(session.out, "• Loaded symbols: %d\n", stats.Symbols)
	fmt.Fprintf(session.out, "• Description mappings: %d\n",
		stats.Descriptions)
	fmt.Fprintf(session.out, "• Name mappings: %d\n", stats.Names)
	fmt.Fprintf(session.out, "• Cache hits/misses: %d/%d\n",
		session.translator.LruHits.Load(),
		session.translator.LruMisses.Load())
}

func formatReport(report moonspeak.CompressionReport) string {
	return fmt.Sprintf("%.1f%% (%d tokens saved)", report.RatioPercent,
		report.TokensSaved)
}

func (session *replSession) showDemo() {
	analyses, totals := session.translator.AnalyzeBatch(sampleTerms)
	fmt.Fprintln(session.out, "=== Term Compression ===")
	table := tabwriter.NewWriter(session.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "Original Term\tTokens\tCompressed\tTokens\tSavings")
	for _, analysis := range analyses {
		fmt.Fprintf(table, "%s\t%d\t%s\t%d\t%d\n", analysis.Input,
			analysis.Report.OriginalTokens, analysis.Encoded,
			analysis.Report.CompressedTokens, analysis.Report.TokensSaved)
	}
	termReport := totals.Report()
	fmt.Fprintf(table, "TOTAL\t%d\t---\t%d\t%d\n", termReport.OriginalTokens,
		termReport.CompressedTokens, termReport.TokensSaved)
	table.Flush()
	fmt.Fprintf(session.out, "Term compression ratio: %.1f%%\n\n",
		termReport.RatioPercent)

	sentences, sentenceTotals := session.translator.AnalyzeBatch(sampleTexts)
	fmt.Fprintln(session.out, "=== Sentence Compression ===")
	for idx, analysis := range sentences {
		fmt.Fprintf(session.out, "Example %d:\n", idx+1)
		fmt.Fprintf(session.out, "Original (%d tokens): %s\n",
			analysis.Report.OriginalTokens, analysis.Input)
		fmt.Fprintf(session.out, "Compressed (%d tokens): %s\n",
			analysis.Report.CompressedTokens, analysis.Encoded)
		fmt.Fprintf(session.out, "Compression: %s\n\n",
			formatReport(analysis.Report))
	}

	totals.Merge(sentenceTotals)
	fmt.Fprintln(session.out, "=== Overall Statistics ===")
	fmt.Fprintf(session.out, "Overall compression: %s\n",
		formatReport(totals.Report()))
}

func (session *replSession) analyze(text string) {
	analysis, err := session.translator.AnalyzeDocument(text)
	if err != nil {
		fmt.Fprintf(session.out, "❌ Error: %v\n", err)
		return
	}
	for idx, sentence := range analysis.Sentences {
		fmt.Fprintf(session.out, "%d. %s\n   %s\n   %s\n", idx+1,
			sentence.Input, sentence.Encoded, formatReport(sentence.Report))
	}
	fmt.Fprintf(session.out, "Total: %s\n",
		formatReport(analysis.Totals.Report()))
}

// showTokens lists each token of an expression as a symbol, with its name
// and description, or as a literal.
func (session *replSession) showTokens(expression string) {
	tokens := session.translator.Tokenize(expression)
	fmt.Fprintf(session.out, "Tokens (%d):\n", len(tokens))
	table := tabwriter.NewWriter(session.out, 0, 4, 2, ' ', 0)
	for idx, token := range tokens {
		if name, ok := session.translator.Name(token); ok {
			description, _ := session.translator.Description(token)
			fmt.Fprintf(table, "%d\t%s\tsymbol\t%s\t%s\n", idx+1, token,
				name, description)
		} else {
			fmt.Fprintf(table, "%d\t%s\tliteral\t\t\n", idx+1, token)
		}
	}
	table.Flush()
}

// handleLine runs one line of input and reports whether the session should
// end.
func (session *replSession) handleLine(line string) (exit bool) {
	text := strings.TrimSpace(line)
	command := strings.ToLower(text)
	switch {
	case command == "":
		fmt.Fprintln(session.out, "⚠️  Please enter some text.")
	case command == "exit" || command == "quit":
		fmt.Fprintln(session.out, "👋 Goodbye!")
		return true
	case command == "help":
		session.showHelp()
	case command == "stats":
		session.showStats()
	case command == "demo":
		session.showDemo()
	case strings.HasPrefix(command, "mode "):
		mode, err := moonspeak.ParseEncodeMode(
			strings.TrimSpace(text[len("mode "):]))
		if err != nil {
			fmt.Fprintf(session.out, "❌ Error: %v\n", err)
			break
		}
		session.translator.SetMode(mode)
		fmt.Fprintf(session.out, "Encoding mode: %s\n", mode)
	case strings.HasPrefix(command, "tokens "):
		session.showTokens(strings.TrimSpace(text[len("tokens "):]))
	case strings.HasPrefix(command, "analyze "):
		session.analyze(strings.TrimSpace(text[len("analyze "):]))
	default:
		translation := session.translator.Translate(text)
		if translation.Direction == moonspeak.ToText {
			fmt.Fprintf(session.out, "📖 English: %s\n", translation.Output)
		} else {
			fmt.Fprintf(session.out, "🔮 MoonSpeak: %s\n", translation.Output)
			fmt.Fprintf(session.out, "📊 Compression: %s\n",
				formatReport(*translation.Report))
		}
	}
	fmt.Fprintln(session.out)
	return false
}

func (session *replSession) runInteractive() {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(session.out, "🔄 Interactive MoonSpeak Translation")
	fmt.Fprintln(session.out, "Commands: 'exit', 'quit', 'help', 'stats', "+
		"'demo', 'mode', 'analyze', 'tokens'")
	fmt.Fprintln(session.out)
	for {
		line, err := ln.Prompt("📝 Enter text: ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(session.out, "\n👋 Goodbye!")
			return
		} else if err != nil {
			log.Fatal(err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if session.handleLine(line) {
			return
		}
	}
}

// runPiped handles input that is not a terminal, one line at a time.
func (session *replSession) runPiped(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		if session.handleLine(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func main() {
	dictionaryId := flag.String("dictionary", "realestate",
		"dictionary to translate with [realestate, logic, path, url]")
	modeName := flag.String("mode", "phrase",
		"encoding mode [phrase, window]")
	demo := flag.Bool("demo", false,
		"print the sample compression report before starting")
	flag.Parse()

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
	log.Printf("Loaded %d symbols from %s", ctx.Stats().Symbols,
		*dictionaryId)

	session := &replSession{translator: translator, out: os.Stdout}
	if *demo {
		session.showDemo()
		fmt.Fprintln(session.out)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		session.runInteractive()
	} else if err := session.runPiped(os.Stdin); err != nil {
		log.Fatal(err)
	}
}
