package artifactcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the flock target inside a cache directory.
const LockFileName = ".lock"

// ErrBusy is returned when the cache directory lock is held in a conflicting mode.
var ErrBusy = errors.New("cache directory is busy")

// Lock is a held shared or exclusive lock on a cache directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireShared takes a shared lock on dir. Any number of renders may hold it
// at once; it fails with ErrBusy while a prune or clear holds the exclusive lock.
func AcquireShared(dir string) (*Lock, error) {
	return acquire(dir, false)
}

// AcquireExclusive takes an exclusive lock on dir and fails with ErrBusy while
// any render holds a shared lock.
func AcquireExclusive(dir string) (*Lock, error) {
	return acquire(dir, true)
}

func acquire(dir string, exclusive bool) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}
	path := filepath.Join(dir, LockFileName)
	fl := flock.New(path)
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = fl.TryLock()
	} else {
		ok, err = fl.TryRLock()
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusy, dir)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the directory. It is safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
