package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pohlang/plhub/internal/report"
)

type inspectParams struct {
	RunID string `json:"run_id" jsonschema:"the run ID from a poh_run or poh_test result"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	switch rec.Kind {
	case report.Test:
		return textResult(formatTestRecord(rec))
	default:
		return textResult(formatRun(rec))
	}
}

func formatTestRecord(rec *report.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s (%s)\n", rec.ID, rec.Kind)
	passed := 0
	for _, t := range rec.Tests {
		if t.Passed {
			passed++
		}
	}
	fmt.Fprintf(&b, "Tests: %d passed, %d failed\n", passed, len(rec.Tests)-passed)
	fmt.Fprintln(&b)

	for _, t := range rec.Tests {
		status := "ok"
		if !t.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %-6s %s (%s)\n", status, t.Name, t.Duration.Round(time.Millisecond))
		if !t.Passed && t.Error != "" {
			for _, line := range strings.Split(strings.TrimRight(t.Error, "\n"), "\n") {
				fmt.Fprintf(&b, "         %s\n", line)
			}
		}
	}

	return b.String()
}
