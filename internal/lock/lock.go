// Package lock provides file-based locking for quadsmith operations.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("lock is held by another process")

// Lock represents a file-based lock on a directory.
type Lock struct {
	path      string
	operation string
	flock     *flock.Flock
}

// New creates a lock for the given operation in dir.
func New(dir, operation string) *Lock {
	path := filepath.Join(dir, ".quadsmith-"+operation+".lock")
	return &Lock{
		path:      path,
		operation: operation,
		flock:     flock.New(path),
	}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire attempts to acquire the lock without blocking.
// Returns an error wrapping ErrLocked if another process holds it.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	ok, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another %s operation is already running: %w", l.operation, ErrLocked)
	}
	return nil
}

// Release releases the lock. Releasing an unheld lock is a no-op.
func (l *Lock) Release() error {
	if !l.flock.Locked() {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

// WithLock executes a function while holding the lock.
// The lock is automatically released when the function returns.
func WithLock(dir, operation string, fn func() error) error {
	lock := New(dir, operation)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	return fn()
}
