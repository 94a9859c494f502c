// Package watch implements the hot-reload development server: it keeps
// the project's entry file running and restarts it whenever a .poh
// source changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pohlang/plhub/internal/runtime"
)

// Server restarts a runtime session when project sources change.
type Server struct {
	ProjectRoot string
	Entry       string // entry file to run
	Invoker     *runtime.Invoker
	Debounce    time.Duration // event coalescing window
	Log         *log.Logger   // optional; discards when nil

	reloads int
}

// skipDirs are never watched: build output, vcs metadata, and the hub's
// own state directory.
var skipDirs = map[string]bool{
	".git":   true,
	".plhub": true,
	"target": true,
}

// Run starts the session and blocks until ctx is cancelled. The session
// is restarted after each burst of .poh changes; a session that exits on
// its own (crash or completion) is restarted on the next change rather
// than immediately, so a broken program does not spin.
func (s *Server) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addDirs(watcher); err != nil {
		return err
	}

	session, err := s.Invoker.Start(s.Entry, nil, nil)
	if err != nil {
		return err
	}
	defer func() {
		if session != nil {
			session.Stop()
		}
	}()

	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be added to the watch set even when
			// the created entry itself is not a reload trigger.
			if ev.Op.Has(fsnotify.Create) {
				_ = s.addDirs(watcher)
			}
			if !s.relevant(ev) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(s.debounce())
				fire = pending.C
			} else {
				pending.Reset(s.debounce())
			}

		case <-fire:
			pending = nil
			fire = nil
			s.reloads++
			s.logf("change detected, restarting (%d)", s.reloads)
			if session != nil {
				session.Stop()
			}
			session, err = s.Invoker.Start(s.Entry, nil, nil)
			if err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logf("watch error: %v", err)
		}
	}
}

// Reloads reports how many restarts have happened.
func (s *Server) Reloads() int {
	return s.reloads
}

// relevant reports whether ev should schedule a restart: only .poh
// sources count, so editor swap files and other stray writes leave the
// running program alone.
func (s *Server) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	return filepath.Ext(ev.Name) == ".poh"
}

// addDirs walks the project and watches every directory not in skipDirs.
// Re-adding an already-watched directory is harmless.
func (s *Server) addDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.ProjectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if skipDirs[name] || (strings.HasPrefix(name, ".") && path != s.ProjectRoot) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (s *Server) debounce() time.Duration {
	if s.Debounce > 0 {
		return s.Debounce
	}
	return 300 * time.Millisecond
}

func (s *Server) logf(format string, args ...any) {
	if s.Log != nil {
		s.Log.Printf(format, args...)
	}
}
