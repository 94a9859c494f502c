// Package report provides structured persistence and retrieval of
// runtime invocation records. Records are stored as typed structs so
// tooling (CLI, MCP clients) can drill into past runs by ID.
package report

import (
	"fmt"
	"time"

	"github.com/pohlang/plhub/internal/diag"
)

// Kind identifies the type of a recorded run.
type Kind string

const (
	// Run is a single-file runtime invocation.
	Run Kind = "run"
	// Test is a test-suite run.
	Test Kind = "test"
)

// Store persists and retrieves run records.
type Store interface {
	Save(record *Record) error
	Load(runID string) (*Record, error)
}

// Record holds the structured outcome of one run or test-suite run.
type Record struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	File    string    `json:"file,omitempty"` // entry file for Run records
	Started time.Time `json:"started"`

	Success  bool   `json:"success"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`

	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
	Tests       []TestOutcome     `json:"tests,omitempty"`
}

// TestOutcome holds the result of one test file within a suite run.
type TestOutcome struct {
	Name     string        `json:"name"`
	File     string        `json:"file"`
	Passed   bool          `json:"passed"`
	Duration time.Duration `json:"duration"`
	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Expect returns an error if the record's Kind does not match want.
func (r *Record) Expect(want Kind) error {
	if r.Kind != want {
		return fmt.Errorf("run %s is a %s run, not a %s run", r.ID, r.Kind, want)
	}
	return nil
}

// Errors returns the record's error-severity diagnostics.
func (r *Record) Errors() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			out = append(out, d)
		}
	}
	return out
}
