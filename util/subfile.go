package util

import (
	"errors"
	"io"
	"os"
)

// HasEntries reports whether the directory at path has at least one
// immediate child of any kind. It reads a single entry and never descends.
func HasEntries(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, ErrExpectedDirectory
	}
	d, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer d.Close()

	_, err = d.ReadDir(1)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
