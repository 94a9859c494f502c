// Package ui provides the hub's user-facing terminal output helpers.
// Color is disabled automatically when stdout is not a terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Success prints a green confirmation line.
func Success(format string, args ...any) {
	green.Printf("✓ "+format+"\n", args...)
}

// Error prints a red failure line to stderr.
func Error(format string, args ...any) {
	red.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Warning prints a yellow caution line.
func Warning(format string, args ...any) {
	yellow.Printf("! "+format+"\n", args...)
}

// Step prints a cyan progress line for a long-running action.
func Step(format string, args ...any) {
	cyan.Printf("→ "+format+"\n", args...)
}

// Header prints a bold section title.
func Header(format string, args ...any) {
	bold.Printf(format+"\n", args...)
}

// Plain prints an uncolored line; kept here so command code has a single
// output seam.
func Plain(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
