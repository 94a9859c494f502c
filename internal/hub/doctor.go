package hub

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// DoctorReport summarises the health of the current environment: whether
// the runtime can be found, what it reports as its version, and whether
// the project manifest is usable.
type DoctorReport struct {
	Binary         string   // resolved runtime path, empty if not found
	RuntimeVersion string   // output of <binary> --version, if it ran
	Candidates     []string // every probed location, for display when not found
	ManifestOK     bool
}

// versionProbeTimeout bounds the --version subprocess.
const versionProbeTimeout = 5 * time.Second

// Doctor checks the environment and aggregates every independent problem
// rather than stopping at the first one.
func (e *Engine) Doctor(ctx context.Context) (*DoctorReport, error) {
	rep := &DoctorReport{}
	var errs *multierror.Error

	bin, ok := e.Invoker.Locator.Resolve()
	if ok {
		rep.Binary = bin
		rep.RuntimeVersion = probeVersion(ctx, bin)
	} else {
		rep.Candidates = e.Invoker.Locator.Candidates()
		errs = multierror.Append(errs, fmt.Errorf("pohlang runtime not found in %d candidate locations", len(rep.Candidates)))
	}

	if e.Manifest == nil {
		errs = multierror.Append(errs, fmt.Errorf("no plhub.json found; run 'plhub create' to scaffold a project"))
	} else {
		manifestErrs := 0
		if e.Manifest.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("plhub.json: name is empty"))
			manifestErrs++
		}
		if e.Manifest.Main == "" {
			errs = multierror.Append(errs, fmt.Errorf("plhub.json: main is empty"))
			manifestErrs++
		} else if !fileExists(e.MainFile()) {
			errs = multierror.Append(errs, fmt.Errorf("plhub.json: main %q does not exist", e.Manifest.Main))
			manifestErrs++
		}
		rep.ManifestOK = manifestErrs == 0
	}

	return rep, errs.ErrorOrNil()
}

func probeVersion(ctx context.Context, bin string) string {
	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, bin, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func fileExists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}
