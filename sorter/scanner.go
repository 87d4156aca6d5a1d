package sorter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileEntry is one regular file found by Scan.
type FileEntry struct {
	// Path is the file path, rooted at the scanned directory.
	Path string
	// RelPath is Path relative to the scanned directory.
	RelPath string
	// Name is the base name.
	Name string
}

// Scan walks root recursively and returns every regular file below it,
// sorted by relative path. Symlinks count when they point at a regular
// file; symlinked directories are not followed. Any error while walking
// aborts the scan. Cancelling ctx stops the walk and returns ctx.Err()
// unwrapped.
func Scan(ctx context.Context, root string) ([]FileEntry, error) {
	root = filepath.Clean(root)
	if fi, err := os.Lstat(root); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScan, err)
		}
		root = resolved
	}

	files := make([]FileEntry, 0, 128)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isRegular(path, d) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, FileEntry{
			Path:    path,
			RelPath: rel,
			Name:    d.Name(),
		})
		return nil
	})
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScan, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// isRegular reports whether d is a regular file, following one level of
// symlink. Dangling or unreadable links are not files.
func isRegular(path string, d fs.DirEntry) bool {
	t := d.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
