package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/filekit/internal/logger"
	"github.com/harrison/filekit/internal/models"
	"github.com/harrison/filekit/internal/units"
)

// Catalog errors. All of them are fatal for a run.
var (
	ErrAccess     = errors.New("can't access")
	ErrNotRegular = errors.New("not a regular file")
	ErrTooBig     = errors.New("can never fit")
)

// CatalogOptions configures Catalog
type CatalogOptions struct {
	// Recursive descends into every subdirectory. Without it only the
	// entries directly below each root are listed.
	Recursive bool
	// Capacity is the disk size; larger files are rejected
	Capacity int64
	// Logger receives warnings about skipped entries (optional)
	Logger logger.Logger
}

// Catalog walks every path and returns one record per regular file, in
// walk order (paths in argument order, entries in lexical order).
//
// A path naming a file is catalogued itself. Symlinks to files are followed
// and recorded with the target's size. In recursive mode symlinks to
// directories are descended too, and files are recorded under the link's
// path; a directory already walked below the same root (the target of a
// link cycle, or one reached twice) is skipped with a warning. The first inaccessible path,
// non-regular file or file larger than opts.Capacity aborts the walk and no
// records are returned.
func Catalog(paths []string, opts CatalogOptions) ([]models.FileRecord, error) {
	c := &cataloguer{opts: opts, log: opts.Logger}
	if c.log == nil {
		c.log = logger.NewNoOpLogger()
	}

	for _, root := range paths {
		c.visited = make(map[string]bool)
		if err := c.walk(root); err != nil {
			return nil, err
		}
	}
	return c.files, nil
}

type cataloguer struct {
	opts  CatalogOptions
	log   logger.Logger
	files []models.FileRecord
	// real paths of the directories walked so far below the current root
	visited map[string]bool
}

func (c *cataloguer) walk(root string) error {
	walkRoot := root
	if isSymlinkToDir(root) {
		// Walk through the link rather than reporting the link itself
		walkRoot = root + string(filepath.Separator)
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return accessError(root, err)
	}

	return filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return accessError(path, err)
		}

		if d.IsDir() {
			if path != walkRoot && !c.opts.Recursive {
				return filepath.SkipDir
			}
			// WalkDir never crosses links, so the real path is relative to realRoot
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return accessError(path, err)
			}
			realDir := filepath.Join(realRoot, rel)
			if c.visited[realDir] {
				c.log.LogWarn(fmt.Sprintf("Skipping %s: directory already catalogued", path))
				return filepath.SkipDir
			}
			c.visited[realDir] = true
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return accessError(path, err)
		}
		if info.IsDir() {
			if !c.opts.Recursive {
				return nil
			}
			return c.followLink(path)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("'%s': %w", path, ErrNotRegular)
		}
		if info.Size() > c.opts.Capacity {
			return fmt.Errorf("%w '%s' (%s)", ErrTooBig, path, units.FormatSize(info.Size()))
		}

		c.files = append(c.files, models.FileRecord{Path: path, Size: info.Size()})
		return nil
	})
}

// followLink descends into the directory a symlink points to, unless that
// directory was walked before
func (c *cataloguer) followLink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return accessError(path, err)
	}
	if c.visited[target] {
		c.log.LogWarn(fmt.Sprintf("Not following symlink %s: %s already catalogued", path, target))
		return nil
	}
	return c.walk(path)
}

func isSymlinkToDir(path string) bool {
	linfo, err := os.Lstat(path)
	if err != nil || linfo.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir() && !strings.HasSuffix(path, string(filepath.Separator))
}

// accessError reports path once, keeping the underlying cause for errors.Is
func accessError(path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return fmt.Errorf("%w '%s': %w", ErrAccess, path, err)
}
