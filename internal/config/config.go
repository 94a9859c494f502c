// Package config loads the optional .plhub YAML file and the plhub.json
// project manifest.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for invoker and watch configuration.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxOutput = 1 << 20 // 1 MiB
	DefaultDebounce  = 300 * time.Millisecond
)

// Config holds the parsed .plhub configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int           `yaml:"version"`
	RawTimeout   string        `yaml:"timeout"`    // e.g. "30s", "2m"
	RawMaxOutput int           `yaml:"max_output"` // bytes per stream
	Runtime      RuntimeConfig `yaml:"runtime"`
	Watch        WatchConfig   `yaml:"watch"`
	Test         TestConfig    `yaml:"test"`
}

// RuntimeConfig controls how the PohLang runtime is located and invoked.
type RuntimeConfig struct {
	Binary string   `yaml:"binary"` // base binary name, default "pohlang"
	Flag   string   `yaml:"flag"`   // run flag, default "--run"
	Paths  []string `yaml:"paths"`  // extra directories probed for the binary
}

// WatchConfig controls the hot-reload server.
type WatchConfig struct {
	RawDebounce string `yaml:"debounce"` // e.g. "300ms"
}

// TestConfig controls the test runner.
type TestConfig struct {
	Filter string   `yaml:"filter"` // default regexp filter on test paths
	Args   []string `yaml:"args"`   // extra args appended to each test invocation
}

// Timeout returns the configured runtime timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured per-stream cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// Debounce returns the configured watch debounce or the default.
func (c *Config) Debounce() time.Duration {
	if c.Watch.RawDebounce != "" {
		d, err := time.ParseDuration(c.Watch.RawDebounce)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultDebounce
}

// Manifest is the plhub.json project file.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description,omitempty"`
	Main            string            `json:"main"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"dev_dependencies,omitempty"`
}

// LoadResult holds the parsed config, the manifest if one exists, and
// the discovered project root.
type LoadResult struct {
	Config      *Config
	Manifest    *Manifest // nil when no plhub.json was found
	ProjectRoot string    // directory containing plhub.json; falls back to workspace
}

// Load reads .plhub and plhub.json from the project root. The root is
// discovered by walking upward from workspace looking for plhub.json.
// Both files are optional: a missing .plhub yields a default Config, a
// missing manifest yields a nil Manifest.
func Load(workspace string) (*LoadResult, error) {
	root, err := findProjectRoot(workspace)
	if err != nil {
		root = workspace
	}

	res := &LoadResult{Config: &Config{}, ProjectRoot: root}

	data, err := os.ReadFile(filepath.Join(root, ".plhub"))
	switch {
	case err == nil:
		cfg := &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing .plhub: %w", err)
		}
		res.Config = cfg
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading .plhub: %w", err)
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}
	res.Manifest = manifest

	return res, nil
}

// LoadManifest reads plhub.json from dir. A missing file is not an
// error; it returns (nil, nil).
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, "plhub.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plhub.json: %w", err)
	}
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing plhub.json: %w", err)
	}
	return m, nil
}

// findProjectRoot walks upward from dir looking for a directory
// containing plhub.json.
func findProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "plhub.json")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("plhub.json not found")
		}
		dir = parent
	}
}
