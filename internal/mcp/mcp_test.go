package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pohlang/plhub/internal/config"
	"github.com/pohlang/plhub/internal/hub"
)

// setup builds a project fixture with a fake runtime and connects a
// client over in-memory transports.
func setup(t *testing.T, runtimeScript string) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "pohlang"), []byte("#!/bin/sh\n"+runtimeScript+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	srcDir := filepath.Join(root, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "main.poh"), []byte("Write \"hi\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "plhub.json"), []byte(`{"name":"demo","version":"1.0.0","main":"src/main.poh"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	testsDir := filepath.Join(root, "tests")
	if err := os.MkdirAll(testsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(testsDir, "smoke_test.poh"), []byte("Write \"t\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	engine := hub.New(loaded)
	engine.Invoker.Locator.InstallDir = filepath.Join(root, "no-install")

	server := NewServer(engine)

	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})

	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return res
}

func resultText(r *mcp.CallToolResult) string {
	var parts []string
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestListTools(t *testing.T) {
	cs := setup(t, "exit 0")
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	want := map[string]bool{"poh_run": false, "poh_test": false, "poh_runtime": false, "poh_inspect": false}
	for _, tool := range res.Tools {
		if _, ok := want[tool.Name]; ok {
			want[tool.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestPohRun_Success(t *testing.T) {
	cs := setup(t, `echo "hello from runtime"`)
	res := callTool(t, cs, "poh_run", map[string]any{"file": "src/main.poh"})
	text := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "Success: true") {
		t.Errorf("output = %q, want success", text)
	}
	if !strings.Contains(text, "hello from runtime") {
		t.Errorf("output = %q, want runtime stdout", text)
	}
}

func TestPohRun_Diagnostics(t *testing.T) {
	cs := setup(t, `echo "Line 3: unexpected token" 1>&2; exit 1`)
	res := callTool(t, cs, "poh_run", map[string]any{"file": "src/main.poh"})
	text := resultText(res)
	if !strings.Contains(text, "Success: false (exit code 1)") {
		t.Errorf("output = %q, want failure with exit code", text)
	}
	if !strings.Contains(text, "unexpected token") {
		t.Errorf("output = %q, want diagnostic message", text)
	}
}

func TestPohRun_MissingFileParam(t *testing.T) {
	cs := setup(t, "exit 0")
	res := callTool(t, cs, "poh_run", map[string]any{})
	if !res.IsError {
		t.Fatal("IsError = false, want error for missing file")
	}
}

func TestPohTest(t *testing.T) {
	cs := setup(t, "exit 0")
	res := callTool(t, cs, "poh_test", nil)
	text := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", text)
	}
	if !strings.Contains(text, "Status: PASS") {
		t.Errorf("output = %q, want passing suite", text)
	}
}

func TestPohRuntime(t *testing.T) {
	cs := setup(t, `if [ "$1" = "--version" ]; then echo "pohlang 0.9.2"; fi`)
	res := callTool(t, cs, "poh_runtime", nil)
	text := resultText(res)
	if !strings.Contains(text, "Binary:") {
		t.Errorf("output = %q, want resolved binary", text)
	}
	if !strings.Contains(text, "pohlang 0.9.2") {
		t.Errorf("output = %q, want runtime version", text)
	}
}

func TestPohInspect_RoundTrip(t *testing.T) {
	cs := setup(t, `echo "Line 5: bad" 1>&2; exit 2`)
	runRes := callTool(t, cs, "poh_run", map[string]any{"file": "src/main.poh"})
	text := resultText(runRes)

	// First line is "Run: <id>".
	var runID string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "Run: ") {
			runID = strings.TrimPrefix(line, "Run: ")
			break
		}
	}
	if runID == "" {
		t.Fatalf("no run ID in output: %q", text)
	}

	res := callTool(t, cs, "poh_inspect", map[string]any{"run_id": runID})
	got := resultText(res)
	if res.IsError {
		t.Fatalf("unexpected error: %s", got)
	}
	if !strings.Contains(got, "bad") || !strings.Contains(got, "exit code 2") {
		t.Errorf("inspect output = %q, want stored diagnostics", got)
	}
}

func TestPohInspect_UnknownID(t *testing.T) {
	cs := setup(t, "exit 0")
	res := callTool(t, cs, "poh_inspect", map[string]any{"run_id": "nope"})
	if !res.IsError {
		t.Fatal("IsError = false, want error for unknown run_id")
	}
}
