// Package ui provides user-facing terminal output for kamctl.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ANSI color codes used when color output is enabled.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
)

// Logger writes leveled, optionally colored messages for interactive use.
// All methods are safe on a nil receiver.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	color   bool
	out     io.Writer
}

// NewLogger creates a logger writing to stdout.
func NewLogger(verbose, color bool) *Logger {
	return NewLoggerWithWriter(verbose, color, os.Stdout)
}

// NewLoggerWithWriter creates a logger writing to the given writer.
func NewLoggerWithWriter(verbose, color bool, out io.Writer) *Logger {
	return &Logger{verbose: verbose, color: color, out: out}
}

// SetVerbose toggles verbose-only output at runtime.
func (l *Logger) SetVerbose(v bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

func (l *Logger) print(code, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.color && code != "" {
		fmt.Fprintf(l.out, "%s%s%s\n", code, msg, colorReset)
		return
	}
	fmt.Fprintln(l.out, msg)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.print(colorBlue, format, args...)
}

// InfoVerbose logs an informational message only when verbose is enabled.
func (l *Logger) InfoVerbose(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	v := l.verbose
	l.mu.Unlock()
	if v {
		l.print(colorBlue, format, args...)
	}
}

// Success logs a success message.
func (l *Logger) Success(format string, args ...interface{}) {
	l.print(colorGreen, format, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.print(colorYellow, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.print(colorRed, format, args...)
}

// Title logs a section heading.
func (l *Logger) Title(format string, args ...interface{}) {
	l.print(colorBold+colorCyan, format, args...)
}

// Dim logs de-emphasized detail text.
func (l *Logger) Dim(format string, args ...interface{}) {
	l.print(colorDim, format, args...)
}
