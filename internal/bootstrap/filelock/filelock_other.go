//go:build !unix

package filelock

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

const pollInterval = 50 * time.Millisecond

// Platforms without flock fall back to a create-exclusive sentinel file
// next to the lock file, polling until it can be created. A crashed
// holder leaves the sentinel behind; remove <lock>.excl by hand to
// recover.
func lock(f *os.File) error {
	for {
		excl, err := os.OpenFile(sentinel(f), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666)
		if err == nil {
			return excl.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return err
		}
		time.Sleep(pollInterval)
	}
}

func unlockFile(f *os.File) {
	os.Remove(sentinel(f))
}

func sentinel(f *os.File) string {
	return f.Name() + ".excl"
}
