package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/filekit/internal/datemove"
)

var march = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestMvd_MovesDirectoryContents(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"), march)
	touch(t, filepath.Join(dir, "b.jpg"), march.AddDate(0, 1, 0))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	stdout, _, err := execute(t, NewMvdCommand(), "-v", "-f", "%Y-%m", dir)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "2024-03", "a.jpg"))
	assert.FileExists(t, filepath.Join(dir, "2024-04", "b.jpg"))
	assert.DirExists(t, filepath.Join(dir, "sub"))
	assert.Equal(t,
		filepath.Join(dir, "a.jpg")+" -> "+filepath.Join(dir, "2024-03", "a.jpg")+"\n"+
			filepath.Join(dir, "b.jpg")+" -> "+filepath.Join(dir, "2024-04", "b.jpg")+"\n",
		stdout)
}

func TestMvd_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a"), march)
	t.Chdir(dir)

	stdout, _, err := execute(t, NewMvdCommand())

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.FileExists(t, filepath.Join(dir, "202403", "a"))
}

func TestMvd_TooManyArgs(t *testing.T) {
	stdout, _, err := execute(t, NewMvdCommand(), "one", "two")

	require.Error(t, err)
	assert.Contains(t, stdout, "Usage:")
}

func TestMvd_BadFormat(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a"), march)

	_, _, err := execute(t, NewMvdCommand(), "-f", "..", dir)

	assert.ErrorIs(t, err, datemove.ErrBadFormat)
	assert.FileExists(t, filepath.Join(dir, "a"))
}

func TestMvtodate_MovesGivenFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	touch(t, "one", march)
	touch(t, "two", march)
	touch(t, "stay", march)

	stdout, _, err := execute(t, NewMvtodateCommand(), "-v", "one", "two")

	require.NoError(t, err)
	assert.Equal(t, "one -> 202403/one\ntwo -> 202403/two\n", stdout)
	assert.FileExists(t, filepath.Join(dir, "202403", "one"))
	assert.FileExists(t, filepath.Join(dir, "202403", "two"))
	assert.FileExists(t, filepath.Join(dir, "stay"))
}

func TestMvtodate_RefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	touch(t, "target", march)
	require.NoError(t, os.Symlink("target", "link"))

	_, _, err := execute(t, NewMvtodateCommand(), "link")

	assert.ErrorIs(t, err, datemove.ErrNotRegular)
	assert.FileExists(t, filepath.Join(dir, "link"))
}

func TestMvtodate_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	touch(t, "last", march)

	_, _, err := execute(t, NewMvtodateCommand(), "missing", "last")

	require.Error(t, err)
	assert.FileExists(t, filepath.Join(dir, "last"))
}

func TestMvtodate_NoFiles(t *testing.T) {
	stdout, _, err := execute(t, NewMvtodateCommand())

	require.Error(t, err)
	assert.Contains(t, stdout, "Usage:")
}
