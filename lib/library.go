package main

/*
#include <stdlib.h>

typedef struct {
	size_t original_tokens;
	size_t compressed_tokens;
	long tokens_saved;
	double compression_ratio;
} CompressionReport;
*/
import "C"
import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/wbrown/moonspeak"
)

var (
	translators   map[string]*moonspeak.Translator
	translatorsMu sync.Mutex
)

func init() {
	translators = make(map[string]*moonspeak.Translator)
}

func getTranslator(dictId string) (*moonspeak.Translator, error) {
	translatorsMu.Lock()
	defer translatorsMu.Unlock()
	if translator, ok := translators[dictId]; ok {
		return translator, nil
	}
	ctx, err := moonspeak.NewContextFromDictionary(dictId)
	if err != nil {
		return nil, err
	}
	translator, err := moonspeak.NewTranslator(ctx, moonspeak.PhraseMode)
	if err != nil {
		return nil, err
	}
	translators[dictId] = translator
	return translator, nil
}

//export initDictionary
// initDictionary accepts a dictionary id as a C string, and if it does not
// exist in the global translators map, loads that dictionary. It returns
// false if the dictionary cannot be loaded.
func initDictionary(dictId *C.char) bool {
	_, err := getTranslator(C.GoString(dictId))
	return err == nil
}

// mustTranslator is the lookup behind the text exports, which have no error
// channel back to C.
func mustTranslator(dictId *C.char) *moonspeak.Translator {
	translator, err := getTranslator(C.GoString(dictId))
	if err != nil {
		panic(err)
	}
	return translator
}

// create a byte slice over C memory for internal use
func createBuffer(buf unsafe.Pointer, size int) *[]byte {
	res := unsafe.Slice((*byte)(buf), size)
	return &res
}

//export encodeText
// encodeText accepts a dictionary id, a mode name and text as C strings, and
// returns a malloc'ed C string of the encoded text.
func encodeText(dictId *C.char, mode *C.char, str *C.char) *C.char {
	translator := mustTranslator(dictId)
	encodeMode, err := moonspeak.ParseEncodeMode(C.GoString(mode))
	if err != nil {
		panic(err)
	}
	s := C.GoString(str)
	if encodeMode == translator.Mode() {
		return C.CString(translator.Encode(s))
	}
	return C.CString(translator.EncodeMode(s, encodeMode))
}

//export decodeText
// decodeText accepts a dictionary id and a MoonSpeak expression as C
// strings, and returns a malloc'ed C string of the decoded text.
func decodeText(dictId *C.char, str *C.char) *C.char {
	translator := mustTranslator(dictId)
	return C.CString(translator.Decode(C.GoString(str)))
}

//export decodeBuffer
// decodeBuffer decodes sz bytes of UTF-8 at buf without copying them into
// a Go string first.
func decodeBuffer(dictId *C.char, buf *C.char, sz C.size_t) *C.char {
	translator := mustTranslator(dictId)
	goBuf := createBuffer(unsafe.Pointer(buf), int(sz))
	var out strings.Builder
	if err := translator.DecodeReader(bufio.NewReader(bytes.NewReader(*goBuf)),
		&out); err != nil {
		panic(err)
	}
	return C.CString(out.String())
}

//export analyzeCompression
// analyzeCompression counts word tokens in both texts and returns the
// compression report.
func analyzeCompression(original *C.char,
	compressed *C.char) C.CompressionReport {
	report := moonspeak.AnalyzeCompression(C.GoString(original),
		C.GoString(compressed))
	return C.CompressionReport{
		original_tokens:   C.size_t(report.OriginalTokens),
		compressed_tokens: C.size_t(report.CompressedTokens),
		tokens_saved:      C.long(report.TokensSaved),
		compression_ratio: C.double(report.RatioPercent),
	}
}

// The wrappers below simulate C calls from golang, and are here rather than
// in the test package as the test package is incompatible with CGo.

// testBuffer times a decodeBuffer call over buf.
func testBuffer(dictId string, buf []byte) (time.Duration, string) {
	dictIdC := C.CString(dictId)
	defer C.free(unsafe.Pointer(dictIdC))
	corpusBuff := C.CBytes(buf)
	defer C.free(corpusBuff)
	start := time.Now()
	decoded := decodeBuffer(dictIdC, (*C.char)(corpusBuff),
		C.size_t(len(buf)))
	duration := time.Since(start)
	defer C.free(unsafe.Pointer(decoded))
	return duration, C.GoString(decoded)
}

func wrapInitDictionary(dictId string) bool {
	dictIdC := C.CString(dictId)
	defer C.free(unsafe.Pointer(dictIdC))
	return initDictionary(dictIdC)
}

func wrapEncodeText(dictId, mode, text string) string {
	dictIdC, modeC, textC := C.CString(dictId), C.CString(mode),
		C.CString(text)
	defer C.free(unsafe.Pointer(dictIdC))
	defer C.free(unsafe.Pointer(modeC))
	defer C.free(unsafe.Pointer(textC))
	encoded := encodeText(dictIdC, modeC, textC)
	defer C.free(unsafe.Pointer(encoded))
	return C.GoString(encoded)
}

func wrapDecodeText(dictId, text string) string {
	dictIdC, textC := C.CString(dictId), C.CString(text)
	defer C.free(unsafe.Pointer(dictIdC))
	defer C.free(unsafe.Pointer(textC))
	decoded := decodeText(dictIdC, textC)
	defer C.free(unsafe.Pointer(decoded))
	return C.GoString(decoded)
}

func wrapAnalyzeCompression(original,
	compressed string) moonspeak.CompressionReport {
	originalC, compressedC := C.CString(original), C.CString(compressed)
	defer C.free(unsafe.Pointer(originalC))
	defer C.free(unsafe.Pointer(compressedC))
	report := analyzeCompression(originalC, compressedC)
	return moonspeak.CompressionReport{
		OriginalTokens:   int(report.original_tokens),
		CompressedTokens: int(report.compressed_tokens),
		TokensSaved:      int(report.tokens_saved),
		RatioPercent:     float64(report.compression_ratio),
	}
}

func main() {}
