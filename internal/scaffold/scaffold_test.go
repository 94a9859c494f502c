package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pohlang/plhub/internal/config"
)

func TestCreate_Layout(t *testing.T) {
	dir := t.TempDir()
	root, err := Create(Options{Name: "demo", Template: "console", Dir: dir})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, rel := range []string{
		"plhub.json",
		"src/main.poh",
		"tests/smoke_test.poh",
		"ui/styles/default.json",
		"ui/widgets/card.json",
		"README.md",
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	m, err := config.LoadManifest(root)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m == nil || m.Name != "demo" || m.Main != "src/main.poh" {
		t.Errorf("manifest = %+v", m)
	}

	body, err := os.ReadFile(filepath.Join(root, "src", "main.poh"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "console application") {
		t.Errorf("main.poh = %q, want console template body", body)
	}
}

func TestCreate_DefaultTemplate(t *testing.T) {
	root, err := Create(Options{Name: "demo", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	body, err := os.ReadFile(filepath.Join(root, "src", "main.poh"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "Hello from PohLang!") {
		t.Errorf("main.poh = %q, want basic template", body)
	}
}

func TestCreate_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "demo"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Create(Options{Name: "demo", Dir: dir}); err == nil {
		t.Fatal("expected error for existing directory")
	}
}

func TestCreate_UnknownTemplate(t *testing.T) {
	_, err := Create(Options{Name: "demo", Template: "mobile", Dir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
	if !strings.Contains(err.Error(), "basic") {
		t.Errorf("error = %q, want available templates listed", err)
	}
}

func TestCreate_BadName(t *testing.T) {
	for _, name := range []string{"", "a/b", `a\b`} {
		if _, err := Create(Options{Name: name, Dir: t.TempDir()}); err == nil {
			t.Errorf("Create(%q) = nil error, want rejection", name)
		}
	}
}
