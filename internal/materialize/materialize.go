// Package materialize turns a packing into output: a printed report, a
// disk count, or a link farm with one directory per disk.
package materialize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/filekit/internal/filelock"
	"github.com/harrison/filekit/internal/models"
	"github.com/harrison/filekit/internal/units"
	"gopkg.in/yaml.v3"
)

// MaxDisks is the largest disk id a link farm directory name can hold
const MaxDisks = 9999

// ErrTooManyDisks is returned when a packing needs more than MaxDisks disks
var ErrTooManyDisks = errors.New("too many disks")

// CheckDiskCount fails when n disks cannot all be given a directory name
func CheckDiskCount(n int) error {
	if n > MaxDisks {
		return fmt.Errorf("fitting takes %w (%d), at most %d are supported", ErrTooManyDisks, n, MaxDisks)
	}
	return nil
}

// Report prints every disk with a header and its files:
//
//	----------------------
//	Disk #1, 0% (0B) free:
//	----------------------
//	    60.00K movie.mkv
//
// Output depends only on the disks, so rendering twice gives the same bytes.
func Report(w io.Writer, disks []*models.Disk) error {
	var b strings.Builder
	for _, d := range disks {
		b.Reset()
		writeDisk(&b, d)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func writeDisk(b *strings.Builder, d *models.Disk) {
	header := fmt.Sprintf("Disk #%d, %d%% (%s) free:", d.ID, d.FreePercent(), units.FormatSize(d.Free))
	rule := strings.Repeat("-", len(header))

	b.WriteString(rule + "\n")
	b.WriteString(header + "\n")
	b.WriteString(rule + "\n")
	for _, f := range d.Files {
		fmt.Fprintf(b, "%10s %s\n", units.FormatSize(f.Size), f.Path)
	}
	b.WriteString("\n")
}

type yamlReport struct {
	Disks []*models.Disk `yaml:"disks"`
}

// ReportYAML writes the packing as a YAML document
func ReportYAML(w io.Writer, disks []*models.Disk) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlReport{Disks: disks}); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Count prints how many disks the packing takes
func Count(w io.Writer, disks []*models.Disk) error {
	plural := ""
	if len(disks) > 1 {
		plural = "s"
	}
	if _, err := fmt.Fprintf(w, "%d disk%s.\n", len(disks), plural); err != nil {
		return fmt.Errorf("failed to write count: %w", err)
	}
	return nil
}

// DiskDir returns the link farm directory of disk id below root
func DiskDir(root string, id int) (string, error) {
	if id < 1 || id > MaxDisks {
		return "", fmt.Errorf("disk #%d: %w, directory names hold 4 digits", id, ErrTooManyDisks)
	}
	return filepath.Join(root, fmt.Sprintf("%04d", id)), nil
}

// LockPath returns the lock file Link holds while filling root. It lives
// inside root, next to the NNNN disk directories.
func LockPath(root string) string {
	return filepath.Join(filepath.Clean(root), ".fit.lock")
}

// Link hard-links every file into root/NNNN/<path>, one directory per disk,
// and prints "source -> root/NNNN" for each file. Missing directories are
// created with mode 0700.
//
// root is locked for the duration of the call. There is no rollback: on
// failure the links made so far stay in place.
func Link(w io.Writer, disks []*models.Disk, root string) error {
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0700); err != nil {
		return fmt.Errorf("can't make directory '%s': %w", root, err)
	}

	release, err := filelock.Acquire(LockPath(root))
	if err != nil {
		return fmt.Errorf("can't lock '%s': %w", root, err)
	}
	defer release()

	for _, d := range disks {
		if err := linkDisk(w, d, root); err != nil {
			return err
		}
	}
	return nil
}

func linkDisk(w io.Writer, d *models.Disk, root string) error {
	dir, err := DiskDir(root, d.ID)
	if err != nil {
		return err
	}

	for _, f := range d.Files {
		dest := filepath.Join(dir, linkName(f.Path))
		parent := filepath.Dir(dest)
		if err := os.MkdirAll(parent, 0700); err != nil {
			return fmt.Errorf("can't make directory '%s': %w", parent, err)
		}
		if err := os.Link(f.Path, dest); err != nil {
			return fmt.Errorf("can't link '%s' to '%s': %w", f.Path, dest, err)
		}
		if _, err := fmt.Fprintf(w, "%s -> %s\n", f.Path, dir); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// linkName maps a source path to a path relative to a disk directory.
// Volume names, leading separators and ".." elements are dropped so a link
// can never land outside its disk.
func linkName(path string) string {
	path = filepath.Clean(path)
	path = strings.TrimPrefix(path, filepath.VolumeName(path))

	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	return filepath.Join(parts...)
}
