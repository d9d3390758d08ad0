package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockRetryDelay = 50 * time.Millisecond

// lockPath names the lock file guarding a notebook. It lives outside the work
// tree so no stray files show up in git status, and is derived from the
// absolute path so concurrent hook processes agree on it.
func lockPath(dir, notebookPath string) (string, error) {
	abs, err := filepath.Abs(notebookPath)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = os.TempDir()
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs)))
	return filepath.Join(dir, "nbhooks-"+id.String()+".lock"), nil
}

// acquire takes an exclusive lock for the read-modify-write cycle on
// notebookPath, waiting at most timeout.
func acquire(ctx context.Context, dir, notebookPath string, timeout time.Duration) (func() error, error) {
	path, err := lockPath(dir, notebookPath)
	if err != nil {
		return nil, fmt.Errorf("lock path: %w", err)
	}
	lock := flock.New(path)

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire lock %s: held by another process", path)
	}
	return lock.Unlock, nil
}
