package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempPrefix starts the name of every temporary file CopyFile creates. A
// copy cut short by a crash can leave one behind next to its target;
// "$dst/*/.extsort-*.tmp" matches all of them.
const TempPrefix = ".extsort-"

// CopyFile copies the regular file at src to dst and carries over the
// permission bits and the access and modification times. The parent of dst
// must exist.
//
// Content goes into a uniquely named temporary file beside dst which is then
// renamed over it, so an existing dst is replaced whole. When several
// goroutines copy to the same dst at once, exactly one of them wins and
// nobody sees interleaved content. It returns the number of bytes copied.
func CopyFile(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%s: %w", src, ErrExpectedFile)
	}
	atime := accessTime(in, info)

	tmp := filepath.Join(filepath.Dir(dst), tempName())
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
		}
	}()

	n, err = io.Copy(out, in)
	if err != nil {
		return n, err
	}
	if err = out.Chmod(info.Mode().Perm()); err != nil {
		return n, err
	}
	if err = out.Close(); err != nil {
		return n, err
	}
	if err = os.Chtimes(tmp, atime, info.ModTime()); err != nil {
		return n, err
	}
	if err = os.Rename(tmp, dst); err != nil {
		return n, err
	}
	return n, nil
}

// tempName builds a hidden, collision-free name whose length does not
// depend on the target, so targets near the name length limit still fit.
func tempName() string {
	return TempPrefix + uuid.NewString() + ".tmp"
}
