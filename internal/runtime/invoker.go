// Package runtime spawns the external PohLang interpreter binary and
// normalizes its outcome. Every failure mode (missing binary, spawn
// error, timeout, non-zero exit) is encoded in the returned Result;
// Run never reports an error to its caller.
package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Defaults for invoker configuration.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultRunFlag   = "--run"
	DefaultMaxOutput = 1 << 20 // 1 MiB per stream
)

// missingRuntimeMessage is returned verbatim when no binary could be
// resolved, so callers always have something actionable to show.
const missingRuntimeMessage = "PohLang runtime not found. " +
	"Run 'plhub doctor' to see the searched locations, or install the runtime and add it to PATH."

// Invoker executes PohLang source files against the resolved runtime
// binary. The zero value is not usable; Locator must be set.
type Invoker struct {
	Locator   *Locator
	Timeout   time.Duration // per-invocation budget; DefaultTimeout if zero
	RunFlag   string        // flag preceding the file path; DefaultRunFlag if empty
	MaxOutput int           // per-stream capture cap in bytes; DefaultMaxOutput if zero
}

// Run executes file against the runtime and returns a fully populated
// Result. The file need not exist — reporting a missing source file is
// the runtime's job. The child runs in the file's directory with the
// parent's environment, and is force-killed if it outlives the timeout.
// Cancelling ctx also kills the child and yields the timeout outcome.
func (v *Invoker) Run(ctx context.Context, file string, extraArgs ...string) *Result {
	bin, ok := v.Locator.Resolve()
	if !ok {
		return &Result{
			Success:  false,
			Stderr:   missingRuntimeMessage,
			ExitCode: ExitAbnormal,
		}
	}

	timeout := v.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append([]string{v.runFlag(), file}, extraArgs...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = filepath.Dir(file)
	// Without a wait delay, a grandchild inheriting the output pipes can
	// keep Run blocked long after the timeout killed the runtime itself.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	maxOutput := v.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	runErr := cmd.Run()

	switch {
	case runErr == nil:
		return &Result{
			Success:  true,
			Stdout:   trimTrailing(stdout.String()),
			Stderr:   trimTrailing(stderr.String()),
			ExitCode: 0,
		}

	case ctx.Err() != nil:
		// CommandContext killed the child, so no orphan survives the
		// deadline. Stdout keeps whatever arrived before the kill. A
		// cancelled parent context (Ctrl-C) is not a timeout.
		msg := fmt.Sprintf("PohLang runtime timed out after %s", timeout)
		if errors.Is(ctx.Err(), context.Canceled) {
			msg = "PohLang runtime run cancelled"
		}
		return &Result{
			Success:  false,
			Stdout:   trimTrailing(stdout.String()),
			Stderr:   msg,
			ExitCode: ExitAbnormal,
		}

	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				code = ExitAbnormal
			}
			return &Result{
				Success:  false,
				Stdout:   trimTrailing(stdout.String()),
				Stderr:   trimTrailing(stderr.String()),
				ExitCode: code,
			}
		}
		// The process never started (not executable, exec refused, ...).
		return &Result{
			Success:  false,
			Stderr:   fmt.Sprintf("failed to start PohLang runtime %s: %v", bin, runErr),
			ExitCode: ExitAbnormal,
		}
	}
}

func (v *Invoker) runFlag() string {
	if v.RunFlag != "" {
		return v.RunFlag
	}
	return DefaultRunFlag
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// limitWriter writes up to limit bytes to buf, then silently discards the
// rest. Reporting the full length keeps io.Copy from short-write errors.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
