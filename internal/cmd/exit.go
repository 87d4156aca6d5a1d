package cmd

import (
	"errors"
	"io"

	"github.com/charmbracelet/fang"
)

// Exit statuses.
const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitPartial = 2
)

// ExitError carries a process exit status out of a command. Logged marks
// errors that already went through the run logger.
type ExitError struct {
	Code   int
	Err    error
	Logged bool
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned from command execution to a process exit
// status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFatal
}

// ErrorHandler renders command errors through Fang, skipping the ones the
// run logger has already reported.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Logged {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
