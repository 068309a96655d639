package resources

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

type ResourceFlag uint8

// WriteCounter counts the number of bytes written to it, and every 10 seconds,
// it prints a message reporting the number of bytes written so far.
type WriteCounter struct {
	Total    uint64
	Last     time.Time
	Reported bool
	Path     string
	Size     uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		log.Printf("Downloading %s... %s / %s completed.",
			wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size))
	}
	return n, nil
}

// Enumeration of resource flags that indicate what the resolver should do
// with the resource.
const (
	RESOURCE_REQUIRED ResourceFlag = 1 << iota
	RESOURCE_OPTIONAL
)

const (
	DictionaryFile = "moonspeak.dict.txt"
	ConfigFile     = "moonspeak.yaml"
)

type ResourceEntryDefs map[string]ResourceFlag
type ResourceEntry struct {
	file    io.Closer
	release func() error
	Data    *[]byte
}

type Resources map[string]ResourceEntry

// Cleanup releases any mappings and closes the files backing the resources.
func (rsrcs *Resources) Cleanup() {
	for name, rsrc := range *rsrcs {
		if rsrc.release != nil {
			if err := rsrc.release(); err != nil {
				log.Printf("error releasing %s: %v", name, err)
			}
		}
		if rsrc.file != nil {
			rsrc.file.Close()
		}
	}
}

// GetResourceEntries
// Returns the files that make up a dictionary bundle, and whether they are
// required.
func GetResourceEntries() ResourceEntryDefs {
	return ResourceEntryDefs{
		DictionaryFile: RESOURCE_REQUIRED,
		ConfigFile:     RESOURCE_OPTIONAL,
	}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// Fetch
// Given a base URI and a resource name, determines if the resource is local
// or remote, and returns a ReadCloser for it.
func Fetch(uri string, rsrc string) (io.ReadCloser, error) {
	if isValidUrl(uri) {
		return FetchHTTP(uri, rsrc)
	}
	handle, fileErr := os.Open(path.Join(uri, rsrc))
	if fileErr != nil {
		return nil, fmt.Errorf("error opening %s/%s: %w", uri, rsrc,
			fileErr)
	}
	return handle, nil
}

// Size
// Given a base URI and a resource name, determine the size of the resource.
func Size(uri string, rsrc string) (uint, error) {
	if isValidUrl(uri) {
		return SizeHTTP(uri, rsrc)
	}
	fsz, err := os.Stat(path.Join(uri, rsrc))
	if err != nil {
		return 0, err
	}
	return uint(fsz.Size()), nil
}

// AddEntry
// Add a resource to the Resources map, memory mapping the file.
func (rsrcs *Resources) AddEntry(name string, file *os.File) error {
	fileMmap, release, mmapErr := mapFile(file)
	if mmapErr != nil {
		return fmt.Errorf("error trying to mmap file: %w", mmapErr)
	}
	(*rsrcs)[name] = ResourceEntry{file, release, fileMmap}
	return nil
}

// sortedEntries returns the resource names in a stable order, so resolution
// logs read the same on every run.
func sortedEntries(defs ResourceEntryDefs) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveResources resolves all dictionary resources at a given uri. Local
// directories are mapped in place. Remote resources are downloaded into dir
// unless a file of the correct size is already there.
func ResolveResources(uri string, dir string,
	rsrcLvl ResourceFlag) (*Resources, error) {
	foundResources := make(Resources, 0)
	resources := GetResourceEntries()
	remote := isValidUrl(uri)

	for _, file := range sortedEntries(resources) {
		flag := resources[file]
		if flag > rsrcLvl {
			continue
		}
		log.Printf("Resolving %s/%s... ", uri, file)
		rsrcSize, rsrcSizeErr := Size(uri, file)
		if rsrcSizeErr != nil {
			if flag&RESOURCE_REQUIRED != 0 {
				log.Printf("%s/%s not found, required!", uri, file)
				return &foundResources, fmt.Errorf(
					"cannot retrieve required `%s` from `%s`: %w",
					file, uri, rsrcSizeErr)
			}
			log.Printf("Resolved %s/%s... not there, not required.",
				uri, file)
			continue
		}

		var rsrcFile *os.File
		targetPath := path.Join(dir, file)
		if !remote && dir == uri {
			openFile, openErr := os.Open(targetPath)
			if openErr != nil {
				return &foundResources, openErr
			}
			rsrcFile = openFile
		} else if targetStat, targetStatErr := os.Stat(targetPath); targetStatErr == nil &&
			uint(targetStat.Size()) == rsrcSize {
			log.Printf("Skipping %s/%s... already exists, "+
				"and of the correct size.", uri, file)
			openFile, skipFileErr := os.Open(targetPath)
			if skipFileErr != nil {
				return &foundResources, fmt.Errorf(
					"error opening '%s': %w", file, skipFileErr)
			}
			rsrcFile = openFile
		} else {
			downloaded, downloadErr := download(uri, file, targetPath,
				rsrcSize)
			if downloadErr != nil {
				return &foundResources, downloadErr
			}
			rsrcFile = downloaded
		}
		if mmapErr := foundResources.AddEntry(file, rsrcFile); mmapErr != nil {
			rsrcFile.Close()
			return &foundResources, mmapErr
		}
	}
	return &foundResources, nil
}

func download(uri, file, targetPath string, size uint) (*os.File, error) {
	rsrcReader, rsrcErr := Fetch(uri, file)
	if rsrcErr != nil {
		return nil, fmt.Errorf("cannot retrieve `%s` from `%s`: %w",
			file, uri, rsrcErr)
	}
	defer rsrcReader.Close()
	rsrcFile, rsrcFileErr := os.OpenFile(targetPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if rsrcFileErr != nil {
		return nil, fmt.Errorf("error opening '%s' for write: %w",
			file, rsrcFileErr)
	}
	counter := &WriteCounter{
		Last: time.Now(),
		Path: fmt.Sprintf("%s/%s", uri, file),
		Size: uint64(size),
	}
	bytesDownloaded, ioErr := io.Copy(rsrcFile,
		io.TeeReader(rsrcReader, counter))
	if ioErr != nil {
		rsrcFile.Close()
		return nil, fmt.Errorf("error downloading '%s': %w", file, ioErr)
	}
	log.Printf("Downloaded %s/%s... %s completed.", uri, file,
		humanize.Bytes(uint64(bytesDownloaded)))
	if _, seekErr := rsrcFile.Seek(0, io.SeekStart); seekErr != nil {
		rsrcFile.Close()
		return nil, seekErr
	}
	return rsrcFile, nil
}

// ResolveDictionaryId
// Resolves a dictionary id to its resources, from embedded, local
// filesystem, or remote. A local path may name either a bundle directory or
// a bare dictionary file. Remote bundles are downloaded into a temporary
// directory, which is returned so the caller can remove it once the
// resources are released.
func ResolveDictionaryId(dictId string) (rsrcs *Resources, tempDir string,
	err error) {
	if _, embedErr := EmbeddedDirExists(dictId); embedErr == nil {
		resources := make(Resources, 0)
		for _, file := range sortedEntries(GetResourceEntries()) {
			if entry := GetEmbeddedResource(dictId + "/" + file); entry != nil {
				resources[file] = *entry
			}
		}
		if _, ok := resources[DictionaryFile]; !ok {
			return nil, "", fmt.Errorf("embedded dictionary %s has no %s",
				dictId, DictionaryFile)
		}
		return &resources, "", nil
	}

	if isValidUrl(dictId) {
		dir, dirErr := os.MkdirTemp("", "moonspeak")
		if dirErr != nil {
			return nil, "", dirErr
		}
		resources, rsrcErr := ResolveResources(dictId, dir,
			RESOURCE_OPTIONAL)
		if rsrcErr != nil {
			resources.Cleanup()
			os.RemoveAll(dir)
			return nil, "", rsrcErr
		}
		return resources, dir, nil
	}

	stat, statErr := os.Stat(dictId)
	if statErr != nil {
		return nil, "", fmt.Errorf("dictionary %s not found: %w", dictId,
			statErr)
	}
	if stat.IsDir() {
		resources, rsrcErr := ResolveResources(dictId, dictId,
			RESOURCE_OPTIONAL)
		if rsrcErr != nil {
			resources.Cleanup()
			return nil, "", rsrcErr
		}
		return resources, "", nil
	}

	resources := make(Resources, 0)
	handle, openErr := os.Open(dictId)
	if openErr != nil {
		return nil, "", openErr
	}
	if mmapErr := resources.AddEntry(DictionaryFile, handle); mmapErr != nil {
		handle.Close()
		return nil, "", errors.Join(
			fmt.Errorf("cannot load %s", dictId), mmapErr)
	}
	return &resources, "", nil
}
