package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/yargevad/filepathx"
)

const maxLineSz = 8 * 1024 * 1024

var textExtensions = []string{".txt", ".jsonl"}

type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
	Dir     bool
}

// TextSource is one input text, local or remote. Name is relative to the
// input root and determines the output path.
type TextSource struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

func (source TextSource) IsJSONL() bool {
	return strings.HasSuffix(source.Name, ".jsonl")
}

func hasTextExtension(name string) bool {
	for _, ext := range textExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// GlobTexts
// Given a directory path, recursively finds all `.txt` and `.jsonl` files,
// returning a slice of PathInfo.
func GlobTexts(dirPath string) (pathInfos []PathInfo, err error) {
	textPaths := make([]string, 0)
	for _, ext := range textExtensions {
		matches, globErr := filepathx.Glob(dirPath + "/**/*" + ext)
		if globErr != nil {
			return nil, globErr
		}
		textPaths = append(textPaths, matches...)
	}
	if len(textPaths) == 0 {
		return nil, fmt.Errorf("%s does not contain any .txt or .jsonl "+
			"files", dirPath)
	}
	pathInfos = make([]PathInfo, len(textPaths))
	for matchIdx, currPath := range textPaths {
		stat, statErr := os.Stat(currPath)
		if statErr != nil {
			return nil, statErr
		}
		pathInfos[matchIdx] = PathInfo{
			Path:    currPath,
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
			Dir:     stat.IsDir(),
		}
	}
	return pathInfos, nil
}

func SortPathInfoBySize(pathInfos []PathInfo, ascending bool) {
	sort.SliceStable(pathInfos, func(i, j int) bool {
		if ascending {
			return pathInfos[i].Size < pathInfos[j].Size
		}
		return pathInfos[i].Size > pathInfos[j].Size
	})
}

func SortPathInfoByPath(pathInfos []PathInfo, ascending bool) {
	sort.SliceStable(pathInfos, func(i, j int) bool {
		if ascending {
			return pathInfos[i].Path < pathInfos[j].Path
		}
		return pathInfos[i].Path > pathInfos[j].Path
	})
}

func ShufflePathInfos(pathInfos []PathInfo) {
	rand.Shuffle(len(pathInfos), func(i, j int) {
		pathInfos[i], pathInfos[j] = pathInfos[j], pathInfos[i]
	})
}

// ReorderPathInfos sorts pathInfos in place by a reorder specification.
func ReorderPathInfos(pathInfos []PathInfo, sortSpec string) error {
	switch sortSpec {
	case "", "none":
		SortPathInfoByPath(pathInfos, true)
	case "size_ascending":
		SortPathInfoBySize(pathInfos, true)
	case "size_descending":
		SortPathInfoBySize(pathInfos, false)
	case "path_ascending":
		SortPathInfoByPath(pathInfos, true)
	case "path_descending":
		SortPathInfoByPath(pathInfos, false)
	case "random":
		ShufflePathInfos(pathInfos)
	default:
		return fmt.Errorf("invalid sort spec: %s", sortSpec)
	}
	return nil
}

// FindNewestPath
// Returns the path and modified time of the most recently modified entry.
func FindNewestPath(paths []PathInfo) (path *string, newest *time.Time) {
	var newestPath string
	var newestTime *time.Time
	for idx := range paths {
		if newestTime == nil || newestTime.Before(paths[idx].ModTime) {
			newestTime = &paths[idx].ModTime
			newestPath = paths[idx].Path
		}
	}
	return &newestPath, newestTime
}

// FindNewestText
// Given a directory, recursively scans and returns the path and modified time
// for the newest text file.
func FindNewestText(dirPath string) (path *string, newest *time.Time,
	err error) {
	matches, err := GlobTexts(dirPath)
	if err != nil {
		return nil, nil, err
	}
	path, newest = FindNewestPath(matches)
	return path, newest, nil
}

// LocalSources lists the text files under dirPath in the requested order.
func LocalSources(dirPath string, sortSpec string) ([]TextSource, error) {
	matches, err := GlobTexts(dirPath)
	if err != nil {
		return nil, err
	}
	if err := ReorderPathInfos(matches, sortSpec); err != nil {
		return nil, err
	}
	sources := make([]TextSource, 0, len(matches))
	for _, match := range matches {
		if match.Dir {
			continue
		}
		name, relErr := filepath.Rel(dirPath, match.Path)
		if relErr != nil {
			name = filepath.Base(match.Path)
		}
		matchPath := match.Path
		sources = append(sources, TextSource{
			Name: name,
			Size: match.Size,
			Open: func() (io.ReadCloser, error) {
				return os.Open(matchPath)
			},
		})
	}
	return sources, nil
}

// S3Client is the subset of the S3 API the encoder needs. *s3.S3 satisfies
// it.
type S3Client interface {
	ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output,
		error)
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

// parseS3Uri splits s3://bucket/prefix into its parts.
func parseS3Uri(uri string) (bucket string, prefix string, ok bool) {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "s3" || parsed.Host == "" {
		return "", "", false
	}
	return parsed.Host, strings.TrimPrefix(parsed.Path, "/"), true
}

// getObjectsS3Recursively pages through every object under prefix and sends
// it to objects.
func getObjectsS3Recursively(svc S3Client, bucket, prefix string,
	objects chan<- *s3.Object) error {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	for {
		output, err := svc.ListObjectsV2(input)
		if err != nil {
			return fmt.Errorf("error listing s3://%s/%s: %w", bucket,
				prefix, err)
		}
		for _, object := range output.Contents {
			objects <- object
		}
		if !aws.BoolValue(output.IsTruncated) ||
			output.NextContinuationToken == nil {
			return nil
		}
		input.ContinuationToken = output.NextContinuationToken
	}
}

// S3Sources lists the text objects under an s3:// prefix, sorted by key.
func S3Sources(svc S3Client, bucket, prefix string) ([]TextSource, error) {
	objects := make(chan *s3.Object, 64)
	listErr := make(chan error, 1)
	go func() {
		listErr <- getObjectsS3Recursively(svc, bucket, prefix, objects)
		close(objects)
	}()

	sources := make([]TextSource, 0)
	for object := range objects {
		key := aws.StringValue(object.Key)
		if !hasTextExtension(key) {
			continue
		}
		sources = append(sources, TextSource{
			Name: strings.TrimPrefix(strings.TrimPrefix(key, prefix), "/"),
			Size: aws.Int64Value(object.Size),
			Open: func() (io.ReadCloser, error) {
				return openObjectS3(svc, bucket, key)
			},
		})
	}
	if err := <-listErr; err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("s3://%s/%s does not contain any .txt or "+
			".jsonl objects", bucket, prefix)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}

func openObjectS3(svc S3Client, bucket, key string) (io.ReadCloser, error) {
	output, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching s3://%s/%s: %w", bucket, key,
			err)
	}
	return output.Body, nil
}

// fetchTextFileS3 reads a whole object into memory.
func fetchTextFileS3(svc S3Client, bucket, key string) (string, error) {
	body, err := openObjectS3(svc, bucket, key)
	if err != nil {
		return "", err
	}
	defer body.Close()
	text, readErr := io.ReadAll(body)
	if readErr != nil {
		return "", readErr
	}
	return string(text), nil
}

type jsonlRecord struct {
	Text string `json:"text"`
}

// ReadLines calls emit for every line of text in reader. JSONL sources
// contribute the lines of each record's `text` field; records that do not
// parse are logged and skipped.
func ReadLines(reader io.Reader, jsonl bool, emit func(string) error) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSz)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if !jsonl {
			if err := emit(line); err != nil {
				return err
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		var record jsonlRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			log.Printf("Skipping JSONL line %d: %v", lineNumber, err)
			continue
		}
		for _, textLine := range strings.Split(record.Text, "\n") {
			if err := emit(textLine); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
