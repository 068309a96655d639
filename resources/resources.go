package resources

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
)

//go:embed data/realestate/moonspeak.dict.txt
//go:embed data/realestate/moonspeak.yaml
//go:embed data/logic/moonspeak.dict.txt
//go:embed data/logic/moonspeak.yaml
var f embed.FS

// GetEmbeddedResource
// Returns a ResourceEntry for the given resource name that is embedded in
// the binary, or nil if there is no such resource.
func GetEmbeddedResource(path string) *ResourceEntry {
	resourceFile, err := f.Open("data/" + path)
	if err != nil {
		return nil
	}
	resourceBytes, err := f.ReadFile("data/" + path)
	if err != nil {
		resourceFile.Close()
		return nil
	}
	return &ResourceEntry{file: resourceFile, Data: &resourceBytes}
}

// EmbeddedDirExists
// Returns true if the given directory is embedded in the binary, otherwise
// false and an error.
func EmbeddedDirExists(path string) (bool, error) {
	if _, err := f.ReadDir("data/" + path); err != nil {
		return false, err
	} else {
		return true, nil
	}
}

// EmbeddedDictionaries lists the ids of the dictionaries compiled into the
// binary.
func EmbeddedDictionaries() []string {
	ids := make([]string, 0)
	dirs, _ := fs.ReadDir(f, "data")
	for _, dir := range dirs {
		if dir.IsDir() {
			ids = append(ids, dir.Name())
		}
	}
	return ids
}

// FetchHTTP
// Fetch a resource from a remote HTTP server.
func FetchHTTP(uri string, rsrc string) (io.ReadCloser, error) {
	resp, remoteErr := http.Get(uri + "/" + rsrc)
	if remoteErr != nil {
		return nil, remoteErr
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// SizeHTTP
// Get the size of a resource from a remote HTTP server.
func SizeHTTP(uri string, rsrc string) (uint, error) {
	resp, remoteErr := http.Head(uri + "/" + rsrc)
	if remoteErr != nil {
		return 0, remoteErr
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.New(fmt.Sprintf("HTTP status code %d",
			resp.StatusCode))
	}
	size, _ := strconv.Atoi(resp.Header.Get("Content-Length"))
	return uint(size), nil
}
