package runtime

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// Session is a long-running runtime process, used by the watch server.
// Unlike Run it streams the child's output straight through rather than
// capturing it, and it stays alive until Stop or the program exits.
type Session struct {
	cmd *exec.Cmd

	mu     sync.Mutex
	done   chan struct{}
	waited bool
	err    error
}

// Start launches the runtime against file without a time bound. Output
// goes to stdout/stderr unless redirected.
func (v *Invoker) Start(file string, stdout, stderr io.Writer) (*Session, error) {
	bin, ok := v.Locator.Resolve()
	if !ok {
		return nil, fmt.Errorf("%s", missingRuntimeMessage)
	}

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.Command(bin, v.runFlag(), file)
	cmd.Dir = filepath.Dir(file)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting PohLang runtime %s: %w", bin, err)
	}

	s := &Session{cmd: cmd, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		s.err = err
		s.waited = true
		s.mu.Unlock()
		close(s.done)
	}()
	return s, nil
}

// Done is closed when the child exits, for any reason.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the child's exit error once Done is closed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Stop kills the child if it is still running and waits for it to be
// reaped. Stopping an already-exited session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	running := !s.waited
	s.mu.Unlock()
	if running {
		_ = s.cmd.Process.Kill()
	}
	<-s.done
}
