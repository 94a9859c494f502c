// Package mcp provides the PLHub MCP server, exposing runtime runs,
// test runs, and stored run records to editors and agents.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	plhub "github.com/pohlang/plhub"
	"github.com/pohlang/plhub/internal/hub"
	"github.com/pohlang/plhub/internal/report"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *hub.Engine
	store  report.Store
}

// NewServer creates an MCP server with all PLHub tools registered.
func NewServer(engine *hub.Engine) *mcp.Server {
	h := &handler{engine: engine, store: engine.Store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "plhub", Version: plhub.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "poh_run",
		Description: `Execute a PohLang source file and return its output and diagnostics.

The file path is resolved relative to the project root. Failures (missing
runtime, timeout, non-zero exit) are encoded in the result text, never as
a protocol error.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "poh_test",
		Description: `Run the project's PohLang test suite.

Discovers tests/*.poh files with "test" in the name and runs each one.
An optional filter is a case-insensitive regexp matched against paths.`,
	}, h.testHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "poh_runtime",
		Description: "Report the resolved PohLang runtime binary and its version.",
	}, h.runtimeHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "poh_inspect",
		Description: "Retrieve a stored run record by run_id: full streams, diagnostics, and test outcomes.",
	}, h.inspectHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
