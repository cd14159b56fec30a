// Package datemove moves files into directories named after their
// modification time, e.g. photo.jpg modified in January 2025 goes to
// 202501/photo.jpg with the default "%Y%m" format.
package datemove

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/itchyny/timefmt-go"
)

// DefaultFormat names date directories by year and month
const DefaultFormat = "%Y%m"

var (
	// ErrBadFormat is returned for a format that renders to nothing usable
	ErrBadFormat = errors.New("bad format")
	// ErrNotRegular is returned for sources that are not regular files
	ErrNotRegular = errors.New("not a regular file")
)

// DirName renders t with a strftime format. A format containing "/" yields
// nested directories.
func DirName(t time.Time, format string) (string, error) {
	name := timefmt.Format(t, format)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
	return name, nil
}

// Move describes one completed rename
type Move struct {
	Source      string
	Destination string
}

// Mover moves files into date directories.
type Mover struct {
	// Format is the strftime format for directory names, DefaultFormat when empty
	Format string
	// FollowSymlinks dates a symlink by its target and moves the link.
	// Without it symlinks are rejected as not regular.
	FollowSymlinks bool
	// Dir is where date directories are created, the working directory when empty
	Dir string
	// Location is the time zone used for dates, time.Local when nil
	Location *time.Location
}

func (m Mover) format() string {
	if m.Format == "" {
		return DefaultFormat
	}
	return m.Format
}

// Move renames src to <Dir>/<date>/<basename of src> and returns the
// destination. Missing date directories are created with mode 0700.
func (m Mover) Move(src string) (string, error) {
	stat := os.Lstat
	if m.FollowSymlinks {
		stat = os.Stat
	}

	info, err := stat(src)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", src, ErrNotRegular)
	}

	loc := m.Location
	if loc == nil {
		loc = time.Local
	}
	name, err := DirName(info.ModTime().In(loc), m.format())
	if err != nil {
		return "", err
	}

	dir := filepath.Join(m.Dir, name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("rename %s to %s: %w", src, dst, err)
	}
	return dst, nil
}

// MoveAll moves every non-directory entry of dir. The directory is listed
// once up front, so the date directories it creates are never revisited.
// It stops at the first failure and returns the moves done so far.
func (m Mover) MoveAll(dir string) ([]Move, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var moves []Move
	for _, entry := range entries {
		src := filepath.Join(dir, entry.Name())

		isDir, err := isDirectory(src)
		if err != nil {
			return moves, err
		}
		if isDir {
			continue
		}

		dst, err := m.Move(src)
		if err != nil {
			return moves, err
		}
		moves = append(moves, Move{Source: src, Destination: dst})
	}
	return moves, nil
}

// isDirectory follows symlinks, so a link to a directory is left alone
func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
