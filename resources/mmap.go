//go:build !wasip1 && !js

package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// mapFile maps a dictionary file read-only. The returned release function
// unmaps it; Data must not be used afterwards.
func mapFile(file *os.File) (*[]byte, func() error, error) {
	stat, statErr := file.Stat()
	if statErr != nil {
		return nil, nil, statErr
	}
	// Zero-length mappings are rejected by mmap(2).
	if stat.Size() == 0 {
		empty := make([]byte, 0)
		return &empty, func() error { return nil }, nil
	}
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	if mmapErr != nil {
		return nil, nil, mmapErr
	}
	mmapBytes := []byte(fileMmap)
	return &mmapBytes, fileMmap.Unmap, nil
}
