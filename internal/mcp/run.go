package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pohlang/plhub/internal/diag"
	"github.com/pohlang/plhub/internal/report"
)

type runParams struct {
	File string   `json:"file" jsonschema:"path to the .poh source file, relative to the project root"`
	Args []string `json:"args,omitempty" jsonschema:"extra arguments passed to the runtime after the file path"`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	if params.File == "" {
		return errorResult("file is required")
	}
	file := params.File
	if !filepath.IsAbs(file) {
		file = filepath.Join(h.engine.ProjectRoot, file)
	}

	rec, err := h.engine.RunFile(ctx, file, params.Args)
	if err != nil {
		// The run itself cannot fail; this is a persistence problem.
		// The record is still worth returning.
		return textResult(formatRun(rec) + fmt.Sprintf("\n(warning: %v)", err))
	}
	return textResult(formatRun(rec))
}

func formatRun(rec *report.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	fmt.Fprintf(&b, "File: %s\n", rec.File)
	if rec.Success {
		fmt.Fprintf(&b, "Success: true\n")
	} else {
		fmt.Fprintf(&b, "Success: false (exit code %d)\n", rec.ExitCode)
	}
	fmt.Fprintln(&b)

	if rec.Stdout != "" {
		fmt.Fprintln(&b, "Output:")
		writeIndented(&b, rec.Stdout)
	}

	if len(rec.Diagnostics) > 0 {
		fmt.Fprintf(&b, "Diagnostics (%d):\n", len(rec.Diagnostics))
		for _, d := range rec.Diagnostics {
			writeDiagnostic(&b, d)
		}
	} else if !rec.Success && rec.Stderr != "" {
		// No structured diagnostics: show stderr verbatim.
		fmt.Fprintln(&b, "Stderr:")
		writeIndented(&b, rec.Stderr)
	}

	return b.String()
}

func writeDiagnostic(b *strings.Builder, d diag.Diagnostic) {
	switch {
	case d.Column > 0:
		fmt.Fprintf(b, "  %d:%d [%s] %s\n", d.Line, d.Column, d.Severity, d.Message)
	case d.Line > 0:
		fmt.Fprintf(b, "  %d [%s] %s\n", d.Line, d.Severity, d.Message)
	default:
		fmt.Fprintf(b, "  [%s] %s\n", d.Severity, d.Message)
	}
}

func writeIndented(b *strings.Builder, s string) {
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
	fmt.Fprintln(b)
}

type testParams struct {
	Filter string `json:"filter,omitempty" jsonschema:"case-insensitive regexp narrowing the suite by test file path"`
}

func (h *handler) testHandler(ctx context.Context, req *mcp.CallToolRequest, params testParams) (*mcp.CallToolResult, any, error) {
	suite, rec, err := h.engine.RunTests(ctx, params.Filter)
	if err != nil {
		return errorResult(fmt.Sprintf("test run failed: %v", err))
	}

	var b strings.Builder
	if rec != nil {
		fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	}
	b.WriteString(suite.String())
	return textResult(b.String())
}

type runtimeParams struct{}

func (h *handler) runtimeHandler(ctx context.Context, req *mcp.CallToolRequest, _ runtimeParams) (*mcp.CallToolResult, any, error) {
	rep, err := h.engine.Doctor(ctx)

	var b strings.Builder
	if rep.Binary != "" {
		fmt.Fprintf(&b, "Binary: %s\n", rep.Binary)
		if rep.RuntimeVersion != "" {
			fmt.Fprintf(&b, "Version: %s\n", rep.RuntimeVersion)
		}
	} else {
		fmt.Fprintln(&b, "Binary: not found")
		fmt.Fprintf(&b, "Probed %d locations:\n", len(rep.Candidates))
		for _, c := range rep.Candidates {
			fmt.Fprintf(&b, "  %s\n", c)
		}
	}
	if err != nil {
		fmt.Fprintf(&b, "\nProblems:\n%v\n", err)
	}
	return textResult(b.String())
}
