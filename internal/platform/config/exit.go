package config

import (
	"fmt"
	"io"
	"os"
)

// ExitCodeFailure is the only non-zero status cosmogen exits with.
const ExitCodeFailure = 1

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	Fprintf(os.Stderr, format, args...)
	os.Exit(ExitCodeFailure)
}

// Fprintf writes a newline-terminated message to w.
func Fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
