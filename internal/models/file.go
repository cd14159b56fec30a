package models

import "fmt"

// FileRecord is one catalogued input file
type FileRecord struct {
	Path string `yaml:"path"` // Path as given or joined during the walk, not canonicalized
	Size int64  `yaml:"size"` // Size in bytes
}

// Validate checks the record against a disk capacity.
// A record larger than the capacity can never be packed.
func (f FileRecord) Validate(capacity int64) error {
	if f.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if f.Size < 0 {
		return fmt.Errorf("file %s has negative size %d", f.Path, f.Size)
	}
	if f.Size > capacity {
		return fmt.Errorf("file %s (%d bytes) exceeds disk capacity %d", f.Path, f.Size, capacity)
	}
	return nil
}
