// Package sorter copies a directory tree into buckets named after file
// extensions.
//
// A run has two phases. Scan walks the source tree and collects every
// regular file. The driver then hands each file to a Copier on a bounded
// pool of goroutines; the Copier derives the bucket from the file name,
// makes sure <dst>/<bucket> exists and copies the file there:
//
//	src/photos/2023/beach.jpg  ->  dst/jpg/beach.jpg
//	src/notes/todo             ->  dst/unknown/todo
//
// Copies are independent. A failing copy is logged and recorded in the
// Report and never stops the others. Two files with the same name and
// extension land on the same target and the last one to finish wins.
package sorter
