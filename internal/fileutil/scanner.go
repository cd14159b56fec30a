package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Suffix keeps files whose name ends with it (case-insensitive), e.g. ".mp3"
	Suffix string
	// MediaType keeps files whose sniffed media type starts with it, e.g.
	// "audio/" or "video/mp4". Ignored when Suffix is set.
	MediaType string
	// Recursive enables recursive directory scanning
	Recursive bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory scans a directory for regular files matching the provided
// options. Symlinks are not followed. Unreadable entries do not stop the
// scan; they are collected in ScanResult.Errors.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}
	if opts.Suffix == "" && opts.MediaType == "" {
		return nil, fmt.Errorf("a suffix or a media type is required")
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	suffix := strings.ToLower(opts.Suffix)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if suffix != "" {
			if !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
				return nil
			}
		} else {
			mtype, err := mimetype.DetectFile(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("failed to detect media type of %s: %w", path, err))
				return nil
			}
			if !strings.HasPrefix(mtype.String(), opts.MediaType) {
				return nil
			}
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Files = append(result.Files, absPath)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}
