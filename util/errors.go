package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected regular file")
	ErrExpectedDirectory = errors.New("expected directory but got file")
)
