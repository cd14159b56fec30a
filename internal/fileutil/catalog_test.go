package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/filekit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files with the given sizes below root
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for name, size := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644))
	}
}

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) LogDebug(string)  {}
func (r *recordingLogger) LogInfo(string)   {}
func (r *recordingLogger) LogWarn(m string) { r.warnings = append(r.warnings, m) }
func (r *recordingLogger) LogError(string)  {}

func TestCatalog(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		"a.txt":            3,
		"b.txt":            5,
		"empty":            0,
		"sub/c.txt":        7,
		"sub/deeper/d.txt": 1,
		"zz/e.txt":         2,
	})

	tests := []struct {
		name      string
		recursive bool
		want      []models.FileRecord
	}{
		{
			name: "non-recursive lists one level",
			want: []models.FileRecord{
				{Path: filepath.Join(root, "a.txt"), Size: 3},
				{Path: filepath.Join(root, "b.txt"), Size: 5},
				{Path: filepath.Join(root, "empty"), Size: 0},
			},
		},
		{
			name:      "recursive lists everything in lexical order",
			recursive: true,
			want: []models.FileRecord{
				{Path: filepath.Join(root, "a.txt"), Size: 3},
				{Path: filepath.Join(root, "b.txt"), Size: 5},
				{Path: filepath.Join(root, "empty"), Size: 0},
				{Path: filepath.Join(root, "sub", "c.txt"), Size: 7},
				{Path: filepath.Join(root, "sub", "deeper", "d.txt"), Size: 1},
				{Path: filepath.Join(root, "zz", "e.txt"), Size: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Catalog([]string{root}, CatalogOptions{Recursive: tt.recursive, Capacity: 100})
			require.NoError(t, err)
			assert.Equal(t, tt.want, files)
		})
	}
}

func TestCatalog_FileRootsInArgumentOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"one": 1, "two": 2})

	two := filepath.Join(root, "two")
	one := filepath.Join(root, "one")
	files, err := Catalog([]string{two, one}, CatalogOptions{Capacity: 10})
	require.NoError(t, err)
	assert.Equal(t, []models.FileRecord{{Path: two, Size: 2}, {Path: one, Size: 1}}, files)
}

func TestCatalog_KeepsPathsAsGiven(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"dir/f": 1})
	t.Chdir(root)

	files, err := Catalog([]string{"dir"}, CatalogOptions{Capacity: 10})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join("dir", "f"), files[0].Path)
}

func TestCatalog_TooBig(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"ok": 10, "big": 11})

	files, err := Catalog([]string{root}, CatalogOptions{Capacity: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooBig)
	assert.Contains(t, err.Error(), "big")
	assert.Contains(t, err.Error(), "(11B)")
	assert.Nil(t, files, "no partial catalog on failure")
}

func TestCatalog_TooBigDeepFileIgnoredWhenNotRecursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"ok": 1, "sub/big": 50})

	files, err := Catalog([]string{root}, CatalogOptions{Capacity: 10})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCatalog_MissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := Catalog([]string{missing}, CatalogOptions{Capacity: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccess)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 1, strings.Count(err.Error(), missing), "path is reported once: %v", err)
}

func TestCatalog_Symlinks(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	writeTree(t, target, map[string]int{"real": 4, "dir/inner": 1})

	t.Run("symlink to file is followed", func(t *testing.T) {
		dir := filepath.Join(root, "files")
		require.NoError(t, os.MkdirAll(dir, 0755))
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(filepath.Join(target, "real"), link))

		files, err := Catalog([]string{dir}, CatalogOptions{Capacity: 10})
		require.NoError(t, err)
		assert.Equal(t, []models.FileRecord{{Path: link, Size: 4}}, files)
	})

	t.Run("dangling symlink is an access error", func(t *testing.T) {
		dir := filepath.Join(root, "dangling")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.Symlink(filepath.Join(target, "gone"), filepath.Join(dir, "link")))

		_, err := Catalog([]string{dir}, CatalogOptions{Capacity: 10})
		assert.ErrorIs(t, err, ErrAccess)
	})

	t.Run("symlinked directory below a root is followed when recursive", func(t *testing.T) {
		dir := filepath.Join(root, "dirlink")
		require.NoError(t, os.MkdirAll(dir, 0755))
		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(filepath.Join(target, "dir"), link))

		log := &recordingLogger{}
		files, err := Catalog([]string{dir}, CatalogOptions{Recursive: true, Capacity: 10, Logger: log})
		require.NoError(t, err)
		assert.Equal(t, []models.FileRecord{{Path: filepath.Join(link, "inner"), Size: 1}}, files)
		assert.Empty(t, log.warnings)
	})

	t.Run("symlinked directory is a plain directory when not recursive", func(t *testing.T) {
		dir := filepath.Join(root, "flatlink")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.Symlink(filepath.Join(target, "dir"), filepath.Join(dir, "link")))

		files, err := Catalog([]string{dir}, CatalogOptions{Capacity: 10})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("symlinked root directory is walked", func(t *testing.T) {
		link := filepath.Join(root, "rootlink")
		require.NoError(t, os.Symlink(target, link))

		files, err := Catalog([]string{link}, CatalogOptions{Recursive: true, Capacity: 10})
		require.NoError(t, err)
		assert.Equal(t, []models.FileRecord{
			{Path: filepath.Join(link, "dir", "inner"), Size: 1},
			{Path: filepath.Join(link, "real"), Size: 4},
		}, files)
	})
}

func TestCatalog_SymlinkCycles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"top": 1, "sub/leaf": 2})
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "back")))
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "again")))

	log := &recordingLogger{}
	files, err := Catalog([]string{root}, CatalogOptions{Recursive: true, Capacity: 10, Logger: log})

	require.NoError(t, err)
	// "again" sorts first, so sub is walked through it and skipped afterwards
	assert.Equal(t, []models.FileRecord{
		{Path: filepath.Join(root, "again", "leaf"), Size: 2},
		{Path: filepath.Join(root, "top"), Size: 1},
	}, files)
	assert.Len(t, log.warnings, 2)
}

func TestCatalog_SameDirectoryUnderTwoRoots(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"a": 1})

	files, err := Catalog([]string{root, root}, CatalogOptions{Capacity: 10})

	require.NoError(t, err)
	assert.Len(t, files, 2)
}
