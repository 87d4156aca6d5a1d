// Package main provides the extsort command-line interface.
//
// extsort copies every regular file of a source directory tree into a
// destination directory, grouped into one folder per file extension. Files
// without an extension land in the "unknown" folder. Copies run
// concurrently and a failing file is reported without stopping the rest.
//
// The binary supports these commands:
//   - extsort SRC DST: sort SRC into DST
//   - count: show the buckets a sort would produce
//   - verify: compare a sorted destination against its source
//   - seed: generate a random source tree for trying things out
package main
