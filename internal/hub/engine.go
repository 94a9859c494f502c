// Package hub wires configuration, the runtime invoker, the diagnostic
// translator, and the record store into the operations the CLI and MCP
// server expose.
package hub

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pohlang/plhub/internal/config"
	"github.com/pohlang/plhub/internal/diag"
	"github.com/pohlang/plhub/internal/report"
	"github.com/pohlang/plhub/internal/runtime"
	"github.com/pohlang/plhub/internal/testrun"
)

// Engine holds shared dependencies for all hub operations.
type Engine struct {
	Config      *config.Config
	Manifest    *config.Manifest // nil outside a project
	Invoker     *runtime.Invoker
	Store       report.Store
	ProjectRoot string
}

// New builds an engine from a loaded configuration. Run records are
// persisted under <root>/.plhub/runs behind a small LRU cache.
func New(loaded *config.LoadResult) *Engine {
	cfg := loaded.Config
	inv := &runtime.Invoker{
		Locator: &runtime.Locator{
			Workspaces: []string{loaded.ProjectRoot},
			ExtraDirs:  cfg.Runtime.Paths,
			Binary:     cfg.Runtime.Binary,
		},
		Timeout:   cfg.Timeout(),
		RunFlag:   cfg.Runtime.Flag,
		MaxOutput: cfg.MaxOutputBytes(),
	}

	disk := report.NewDiskStore(filepath.Join(loaded.ProjectRoot, ".plhub", "runs"))

	return &Engine{
		Config:      cfg,
		Manifest:    loaded.Manifest,
		Invoker:     inv,
		Store:       report.NewLRUStore(5, disk),
		ProjectRoot: loaded.ProjectRoot,
	}
}

// MainFile returns the project's entry file: the manifest's main field,
// or src/main.poh when there is no manifest.
func (e *Engine) MainFile() string {
	main := "src/main.poh"
	if e.Manifest != nil && e.Manifest.Main != "" {
		main = e.Manifest.Main
	}
	if filepath.IsAbs(main) {
		return main
	}
	return filepath.Join(e.ProjectRoot, main)
}

// RunFile invokes the runtime against file, translates its stderr into
// diagnostics, and persists a record of the run. The invocation itself
// never fails; the returned error covers only record persistence.
func (e *Engine) RunFile(ctx context.Context, file string, args []string) (*report.Record, error) {
	res := e.Invoker.Run(ctx, file, args...)

	rec := &report.Record{
		ID:          uuid.New().String(),
		Kind:        report.Run,
		File:        file,
		Started:     time.Now(),
		Success:     res.Success,
		ExitCode:    res.ExitCode,
		Stdout:      res.Stdout,
		Stderr:      res.Stderr,
		Diagnostics: diag.Parse(res.Stderr),
	}

	if err := e.Store.Save(rec); err != nil {
		return rec, fmt.Errorf("saving run record: %w", err)
	}
	return rec, nil
}

// RunTests runs the project's test suite and persists a record of it.
func (e *Engine) RunTests(ctx context.Context, filter string) (*testrun.Suite, *report.Record, error) {
	if filter == "" {
		filter = e.Config.Test.Filter
	}
	r := &testrun.Runner{
		ProjectRoot: e.ProjectRoot,
		Invoker:     e.Invoker,
		ExtraArgs:   e.Config.Test.Args,
	}
	suite, err := r.Run(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	rec := &report.Record{
		ID:       uuid.New().String(),
		Kind:     report.Test,
		Started:  time.Now(),
		Success:  suite.Failed == 0,
		ExitCode: suite.Failed,
		Tests:    suite.Results,
	}
	if err := e.Store.Save(rec); err != nil {
		return suite, rec, fmt.Errorf("saving test record: %w", err)
	}
	return suite, rec, nil
}
