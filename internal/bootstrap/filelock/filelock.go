// Package filelock provides an advisory mutex backed by a lock file,
// used to serialize bootstrap runs against a shared install prefix.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"
)

// A Mutex guards a resource through a lock file on disk. The zero value
// is not usable; construct with MutexAt.
type Mutex struct {
	path string
}

// MutexAt returns a Mutex that locks through the file at path. The
// file's parent directory is created on Lock if needed.
func MutexAt(path string) *Mutex {
	return &Mutex{path: path}
}

// Lock acquires the mutex, blocking until it is free. It returns an
// unlock function that must be called to release it.
func (m *Mutex) Lock() (unlock func(), err error) {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return nil, fmt.Errorf("lock %s: %w", m.path, err)
	}
	f, err := os.OpenFile(m.path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", m.path, err)
	}
	if err := lock(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", m.path, err)
	}
	return func() {
		unlockFile(f)
		f.Close()
	}, nil
}
