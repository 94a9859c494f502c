package runtime

import (
	"os"
	"path/filepath"
	goruntime "runtime"
)

// DefaultBinary is the base name of the PohLang runtime executable.
const DefaultBinary = "pohlang"

// Locator finds the PohLang runtime binary across a fixed sequence of
// search tiers. Resolution is a plain filesystem probe with no caching;
// callers that invoke frequently should cache the result themselves.
type Locator struct {
	// InstallDir is the PLHub installation root. When empty it defaults
	// to the directory containing the running executable.
	InstallDir string

	// Workspaces are open project roots, probed in order.
	Workspaces []string

	// ExtraDirs are additional directories from configuration, probed
	// after the bundled install tier.
	ExtraDirs []string

	// Binary overrides the base binary name. Defaults to DefaultBinary.
	Binary string
}

// Resolve returns the first existing candidate path. The search order is:
// the bundled install directory, configured extra directories, each
// workspace's bin directory, each workspace's development build output,
// then every PATH entry. A missing tier (no install dir, no workspaces)
// is skipped rather than treated as an error.
func (l *Locator) Resolve() (string, bool) {
	for _, tier := range []func() []string{
		l.bundledCandidates,
		l.extraCandidates,
		l.workspaceBinCandidates,
		l.devBuildCandidates,
		l.pathCandidates,
	} {
		for _, candidate := range tier() {
			if isRegularFile(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// Candidates returns every path Resolve would probe, in probe order.
func (l *Locator) Candidates() []string {
	var all []string
	all = append(all, l.bundledCandidates()...)
	all = append(all, l.extraCandidates()...)
	all = append(all, l.workspaceBinCandidates()...)
	all = append(all, l.devBuildCandidates()...)
	all = append(all, l.pathCandidates()...)
	return all
}

func (l *Locator) bundledCandidates() []string {
	dir := l.InstallDir
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil
		}
		dir = filepath.Dir(exe)
	}
	var out []string
	for _, sub := range []string{filepath.Join("Runtime", "bin"), "bin"} {
		for _, name := range l.binaryNames() {
			out = append(out, filepath.Join(dir, sub, name))
		}
	}
	return out
}

func (l *Locator) extraCandidates() []string {
	var out []string
	for _, dir := range l.ExtraDirs {
		for _, name := range l.binaryNames() {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

func (l *Locator) workspaceBinCandidates() []string {
	var out []string
	for _, root := range l.Workspaces {
		for _, name := range l.binaryNames() {
			out = append(out, filepath.Join(root, "bin", name))
		}
	}
	return out
}

// devBuildCandidates probes the cargo release output of a PohLang
// checkout, both as a sibling subdirectory of the workspace and directly
// under the workspace root.
func (l *Locator) devBuildCandidates() []string {
	var out []string
	for _, root := range l.Workspaces {
		for _, rel := range []string{
			filepath.Join("PohLang", "runtime", "target", "release"),
			filepath.Join("runtime", "target", "release"),
		} {
			for _, name := range l.binaryNames() {
				out = append(out, filepath.Join(root, rel, name))
			}
		}
	}
	return out
}

func (l *Locator) pathCandidates() []string {
	var out []string
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		for _, name := range l.binaryNames() {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

func (l *Locator) binaryNames() []string {
	base := l.Binary
	if base == "" {
		base = DefaultBinary
	}
	if goruntime.GOOS == "windows" {
		return []string{base + ".exe", base}
	}
	return []string{base}
}

// isRegularFile is a pure existence probe: the execute bit is not
// checked, matching the runtime's install contract on Windows where no
// such bit exists.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
