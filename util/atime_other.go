//go:build !linux

package util

import (
	"os"
	"time"
)

func accessTime(_ *os.File, info os.FileInfo) time.Time {
	return info.ModTime()
}
