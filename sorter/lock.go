package sorter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/dendrascience/extsort/util"
)

// lockPath names the lock file for a destination. It lives in dir, not in
// the destination, so the destination tree only ever holds copied files.
func lockPath(dir, dst string) (string, error) {
	abs, err := filepath.Abs(dst)
	if err != nil {
		return "", err
	}
	sum, err := util.GetHash(strings.NewReader(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "extsort-"+sum[:16]+".lock"), nil
}

// acquireLock takes the per-destination lock without blocking.
func acquireLock(dir, dst string) (*flock.Flock, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path, err := lockPath(dir, dst)
	if err != nil {
		return nil, fmt.Errorf("lock path: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dst)
	}
	return fl, nil
}
