// Package testrun discovers and runs PohLang test files. A test file is
// any .poh under the project's tests directory whose stem contains
// "test"; each one is executed through the runtime invoker and judged by
// its exit code.
package testrun

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pohlang/plhub/internal/report"
	"github.com/pohlang/plhub/internal/runtime"
)

// Invoker executes a single source file. Implemented by runtime.Invoker.
type Invoker interface {
	Run(ctx context.Context, file string, extraArgs ...string) *runtime.Result
}

// Runner discovers and executes a project's test files.
type Runner struct {
	ProjectRoot string
	Invoker     Invoker
	ExtraArgs   []string // appended to every test invocation
}

// Suite holds the outcome of one test run.
type Suite struct {
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
	Results  []report.TestOutcome
}

// Status returns PASS when every test passed.
func (s *Suite) Status() string {
	if s.Failed > 0 {
		return "FAIL"
	}
	return "PASS"
}

func (s *Suite) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Status: %s\n", s.Status())
	fmt.Fprintln(&b)

	if s.Total == 0 {
		fmt.Fprintln(&b, "No test files found. Add .poh files with \"test\" in the name under tests/.")
		return b.String()
	}

	if s.Failed == 0 {
		fmt.Fprintf(&b, "All %d tests passed in %s.\n", s.Total, s.Duration.Round(time.Millisecond))
		return b.String()
	}

	fmt.Fprintf(&b, "Failed %d of %d tests.\n", s.Failed, s.Total)
	fmt.Fprintln(&b)
	for _, r := range s.Results {
		if r.Passed {
			continue
		}
		fmt.Fprintf(&b, "FAIL %s (%s):\n", r.Name, r.File)
		if r.Error != "" {
			for _, line := range strings.Split(strings.TrimRight(r.Error, "\n"), "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	return b.String()
}

// Discover returns the project's test files, sorted. filter is an
// optional case-insensitive regexp matched against each path; a missing
// tests directory yields an empty list, not an error.
func (r *Runner) Discover(filter string) ([]string, error) {
	var re *regexp.Regexp
	if filter != "" {
		var err error
		re, err = regexp.Compile("(?i)" + filter)
		if err != nil {
			return nil, fmt.Errorf("invalid test filter %q: %w", filter, err)
		}
	}

	testDir := filepath.Join(r.ProjectRoot, "tests")
	var files []string
	err := filepath.WalkDir(testDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, including a missing tests dir
		}
		if d.IsDir() || filepath.Ext(path) != ".poh" {
			return nil
		}
		stem := strings.TrimSuffix(d.Name(), ".poh")
		if !strings.Contains(strings.ToLower(stem), "test") {
			return nil
		}
		if re != nil && !re.MatchString(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run executes every discovered test file and collects a suite.
func (r *Runner) Run(ctx context.Context, filter string) (*Suite, error) {
	files, err := r.Discover(filter)
	if err != nil {
		return nil, err
	}

	suite := &Suite{}
	start := time.Now()
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		suite.Results = append(suite.Results, r.runOne(ctx, file))
	}
	suite.Duration = time.Since(start)

	for _, out := range suite.Results {
		suite.Total++
		if out.Passed {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}
	return suite, nil
}

func (r *Runner) runOne(ctx context.Context, file string) report.TestOutcome {
	start := time.Now()
	res := r.Invoker.Run(ctx, file, r.ExtraArgs...)

	rel := file
	if p, err := filepath.Rel(r.ProjectRoot, file); err == nil {
		rel = p
	}

	out := report.TestOutcome{
		Name:     strings.TrimSuffix(filepath.Base(file), ".poh"),
		File:     rel,
		Passed:   res.Success,
		Duration: time.Since(start),
		Output:   res.Stdout,
	}
	if !res.Success {
		out.Error = res.Stderr
	}
	return out
}
