// Package logger provides leveled console logging for the kokoro CLI.
// Debug and info messages are printed only in verbose mode (--verbose or
// log.verbose); warnings are printed unless quiet mode is set, so decode
// problems in imported cards are always visible.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	quiet   bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetQuiet suppresses warnings. Verbose mode still prints everything.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Reset restores the default state.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose = false
	quiet = false
	output = os.Stderr
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(false, "", "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(false, "", "[INFO] ", format, args...)
}

// Warn prints a warning unless quiet mode is set.
func Warn(format string, args ...any) {
	logf(true, "", "[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Logger prefixes every message with a component name.
type Logger struct {
	prefix string
}

// Named returns a logger whose messages read "[LEVEL] name: message".
func Named(name string) Logger {
	return Logger{prefix: name + ": "}
}

// Debug prints a message if verbose mode is enabled.
func (l Logger) Debug(format string, args ...any) {
	logf(false, l.prefix, "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func (l Logger) Info(format string, args ...any) {
	logf(false, l.prefix, "[INFO] ", format, args...)
}

// Warn prints a warning unless quiet mode is set.
func (l Logger) Warn(format string, args ...any) {
	logf(true, l.prefix, "[WARN] ", format, args...)
}

func logf(warn bool, prefix, level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && (!warn || quiet) {
		return
	}
	fmt.Fprintf(output, level+prefix+format+"\n", args...)
}
