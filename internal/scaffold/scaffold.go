// Package scaffold creates new PohLang project skeletons: manifest,
// entry file from a named template, starter test, and the ui asset
// directories the style and widget tooling expects.
package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pohlang/plhub/internal/config"
)

// Options controls project creation.
type Options struct {
	Name     string // project and directory name
	Template string // one of Templates(); default "basic"
	Dir      string // parent directory; default current directory
}

// Templates lists the available template names, sorted.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create scaffolds a project and returns its root directory. The target
// directory must not already exist.
func Create(opts Options) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("project name is required")
	}
	if strings.ContainsAny(opts.Name, `/\`) {
		return "", fmt.Errorf("project name %q must not contain path separators", opts.Name)
	}

	tmpl := opts.Template
	if tmpl == "" {
		tmpl = "basic"
	}
	body, ok := templates[tmpl]
	if !ok {
		return "", fmt.Errorf("unknown template %q (available: %s)", tmpl, strings.Join(Templates(), ", "))
	}

	parent := opts.Dir
	if parent == "" {
		parent = "."
	}
	root := filepath.Join(parent, opts.Name)
	if _, err := os.Stat(root); err == nil {
		return "", fmt.Errorf("directory %q already exists", root)
	}

	for _, dir := range []string{
		"src",
		"tests",
		"examples",
		filepath.Join("ui", "styles"),
		filepath.Join("ui", "widgets"),
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	manifest := config.Manifest{
		Name:            opts.Name,
		Version:         "1.0.0",
		Description:     fmt.Sprintf("A PohLang project: %s", opts.Name),
		Main:            "src/main.poh",
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}

	files := map[string]string{
		"plhub.json":             string(data) + "\n",
		"src/main.poh":           body,
		"tests/smoke_test.poh":   starterTest,
		"ui/styles/default.json": defaultTheme,
		"ui/widgets/card.json":   starterWidget,
		"README.md":              readme(opts.Name),
		".gitignore":             ".plhub/\n",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", rel, err)
		}
	}

	return root, nil
}

func readme(name string) string {
	return fmt.Sprintf(`# %s

A PohLang project created with PLHub.

## Running

    plhub run

## Testing

    plhub test
`, name)
}
