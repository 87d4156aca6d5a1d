//go:build linux

package util

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// accessTime reads the last access time of an open file. Falls back to the
// modification time when fstat fails.
func accessTime(f *os.File, info os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return info.ModTime()
	}
	return time.Unix(st.Atim.Unix())
}
