// Package filelock provides advisory file locks for coordinating filekit
// runs that write into the same place.
package filelock

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by Acquire when another process holds the lock
var ErrLocked = errors.New("lock is held by another process")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock on the file without blocking.
// Returns true if the lock was acquired, false if the lock is held by another process.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// Acquire takes the lock at path without waiting and returns a release
// function that unlocks it and removes the lock file.
func Acquire(path string) (release func() error, err error) {
	lock := NewFileLock(path)

	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", lock.Path(), ErrLocked)
	}

	return func() error {
		if err := os.Remove(lock.Path()); err != nil && !os.IsNotExist(err) {
			lock.Unlock()
			return fmt.Errorf("failed to remove lock file %s: %w", lock.Path(), err)
		}
		return lock.Unlock()
	}, nil
}
