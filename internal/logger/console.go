// Package logger provides the console logger used by extsort.
//
// Every record is one line on a single stream, prefixed with a timestamp
// and a severity tag:
//
//	[2006-01-02 15:04:05] [INFO] Copied: src/a.txt -> dst/txt/a.txt
//
// The severity tag is colored when the stream is a terminal. Loggers are
// safe for concurrent use; many copy workers share one.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = iota
	levelInfo
	levelWarn
	levelError
)

const timestampLayout = "2006-01-02 15:04:05"

// ConsoleLogger writes leveled, timestamped lines to a writer.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: debug, info, warn, error (case-insensitive); anything else
// falls back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
		now:         time.Now,
	}
}

// isTerminal reports whether w is a terminal file and NO_COLOR handling in
// fatih/color has not disabled colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if ValidLevel(normalized) {
		return normalized
	}
	return "info"
}

func logLevelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Level returns the configured minimum level.
func (cl *ConsoleLogger) Level() string {
	return cl.logLevel
}

// Debugf logs a debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logWithLevel("DEBUG", fmt.Sprintf(format, args...))
}

// Infof logs an info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logWithLevel("INFO", fmt.Sprintf(format, args...))
}

// Warnf logs a warning-level message.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logWithLevel("WARNING", fmt.Sprintf(format, args...))
}

// Errorf logs an error-level message.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logWithLevel("ERROR", fmt.Sprintf(format, args...))
}

func (cl *ConsoleLogger) logWithLevel(tag string, message string) {
	if cl.writer == nil {
		return
	}
	level := strings.ToLower(tag)
	if level == "warning" {
		level = "warn"
	}
	if logLevelToInt(level) < logLevelToInt(cl.logLevel) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format(timestampLayout)
	if cl.colorOutput {
		tag = colorForTag(tag).Sprint(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, tag, message)
}

func colorForTag(tag string) *color.Color {
	var c *color.Color
	switch tag {
	case "DEBUG":
		c = color.New(color.FgCyan)
	case "WARNING":
		c = color.New(color.FgYellow)
	case "ERROR":
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgBlue)
	}
	c.EnableColor()
	return c
}
