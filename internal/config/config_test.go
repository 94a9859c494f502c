package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromProjectRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plhub.json"), []byte(`{"name":"demo","version":"1.0.0","main":"src/main.poh"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".plhub"), []byte("version: 1\ntimeout: 45s\nruntime:\n  flag: --execute\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.ProjectRoot != dir {
		t.Errorf("ProjectRoot = %q, want %q", res.ProjectRoot, dir)
	}
	if res.Config.Timeout() != 45*time.Second {
		t.Errorf("Timeout = %s, want 45s", res.Config.Timeout())
	}
	if res.Config.Runtime.Flag != "--execute" {
		t.Errorf("Runtime.Flag = %q, want --execute", res.Config.Runtime.Flag)
	}
	if res.Manifest == nil || res.Manifest.Name != "demo" {
		t.Errorf("Manifest = %+v, want name demo", res.Manifest)
	}
	if res.Manifest.Main != "src/main.poh" {
		t.Errorf("Manifest.Main = %q, want src/main.poh", res.Manifest.Main)
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "plhub.json"), []byte(`{"name":"demo","version":"1.0.0","main":"src/main.poh"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.ProjectRoot != root {
		t.Errorf("ProjectRoot = %q, want %q", res.ProjectRoot, root)
	}
}

func TestLoad_NoManifest(t *testing.T) {
	dir := t.TempDir()

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.ProjectRoot != dir {
		t.Errorf("ProjectRoot = %q, want %q (fallback to workspace)", res.ProjectRoot, dir)
	}
	if res.Manifest != nil {
		t.Errorf("Manifest = %+v, want nil", res.Manifest)
	}
	if res.Config.Timeout() != DefaultTimeout {
		t.Errorf("Timeout = %s, want default %s", res.Config.Timeout(), DefaultTimeout)
	}
}

func TestLoad_MalformedPlhubFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".plhub"), []byte(":\nnot yaml at all ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed .plhub")
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := &Config{}
	if c.Timeout() != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", c.Timeout())
	}
	if c.MaxOutputBytes() != 1<<20 {
		t.Errorf("MaxOutputBytes = %d, want 1 MiB", c.MaxOutputBytes())
	}
	if c.Debounce() != 300*time.Millisecond {
		t.Errorf("Debounce = %s, want 300ms", c.Debounce())
	}
}

func TestConfig_InvalidDurationFallsBack(t *testing.T) {
	c := &Config{RawTimeout: "soon"}
	if c.Timeout() != DefaultTimeout {
		t.Errorf("Timeout = %s, want default for invalid duration", c.Timeout())
	}
}
