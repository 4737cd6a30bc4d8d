// Package runlock enforces a single concurrent batch run per machine.
//
// The name allocator's uniqueness guarantee rests on its probe of the
// filesystem; two runs interleaving allocations could hand out the same
// name. A file lock held for the duration of the run closes that window.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrBusy reports that another run already holds the lock.
var ErrBusy = errors.New("another clipbatch run is in progress")

// Lock is a held run lock. Release it when the run ends.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the run lock at path without blocking.
func Acquire(path string) (*Lock, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrBusy, path)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
