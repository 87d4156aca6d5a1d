// Package util provides the filesystem primitives extsort is built on.
//
// It holds the pieces that do not know anything about extension buckets:
//
//   - CopyFile: copy content, permission bits and timestamps into place
//     through a same-directory temporary file and a rename
//   - HasEntries: the shallow "does this directory contain anything" check
//   - GetFileHash / GetHash: SHA-256 content hashing used by verify
//   - WriteJSONFile: atomic JSON writes for run reports
//
// A crash in the middle of CopyFile can leave a hidden temporary file named
// TempPrefix + uuid + ".tmp" beside the target. Nothing removes these
// automatically.
//
// All functions are safe to call from many goroutines at once as long as
// they do not target the same destination path; when they do, the last
// rename wins and the destination always holds one complete file.
package util
