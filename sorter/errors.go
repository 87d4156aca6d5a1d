package sorter

import "errors"

// Fatal errors returned by Run. Per-file failures are never returned; they
// are carried in Result.Err.
var (
	ErrSourceNotExist = errors.New("source folder does not exist")
	ErrSourceNotDir   = errors.New("source path is not a directory")
	ErrScan           = errors.New("scan source folder")
	ErrDestination    = errors.New("prepare destination folder")
	ErrLocked         = errors.New("another extsort run holds the destination lock")
)
