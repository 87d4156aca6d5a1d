package sorter

import (
	"fmt"
	"os"

	"github.com/dendrascience/extsort/util"
)

// Copier copies single files into their bucket under Destination.
type Copier struct {
	Destination string

	log      Logger
	copyFile func(src, dst string) (int64, error)
}

// NewCopier returns a Copier writing below dst. A nil log discards output.
func NewCopier(dst string, log Logger) *Copier {
	if log == nil {
		log = nopLogger{}
	}
	return &Copier{
		Destination: dst,
		log:         log,
		copyFile:    util.CopyFile,
	}
}

// Copy places entry at <Destination>/<bucket>/<name>, creating the bucket
// directory when missing and replacing any file already there. Failures are
// logged and returned in the Result, never panicked or propagated.
func (c *Copier) Copy(entry FileEntry) Result {
	dir, target := Target(c.Destination, entry.Name)
	res := Result{
		Source: entry.Path,
		Target: target,
		Bucket: Bucket(entry.Name),
	}

	// MkdirAll treats an existing directory as success, which is what lets
	// many workers race on the same fresh bucket.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		res.Err = fmt.Errorf("create bucket: %w", err)
	} else if n, err := c.copyFile(entry.Path, target); err != nil {
		res.Err = err
	} else {
		res.Bytes = n
	}

	if res.Err != nil {
		c.log.Errorf("Error copying %s: %v", entry.Path, res.Err)
		return res
	}
	c.log.Infof("Copied: %s -> %s", entry.Path, target)
	return res
}
