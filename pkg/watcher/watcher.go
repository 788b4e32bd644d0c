// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package watcher turns raw filesystem notifications into a debounced stream
// of per-file change events the indexer can react to, collapsing bursts of
// fsnotify events for the same path into a single event.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kraklabs/codegraph/internal/errors"
)

// ChangeKind classifies what happened to a path.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeChanged ChangeKind = "changed"
	ChangeRemoved ChangeKind = "removed"
)

// Event is one debounced, settled filesystem change.
type Event struct {
	Path string
	Kind ChangeKind
}

// Watcher recursively watches a root directory and emits one debounced Event
// per path after fsnotify activity on it has been quiet for Debounce.
type Watcher struct {
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
	shouldWatch func(path string, isDir bool) bool

	mu      sync.Mutex
	pending map[string]*pendingEvent
	timers  map[string]*time.Timer
}

type pendingEvent struct {
	kind ChangeKind
}

// Config configures a Watcher.
type Config struct {
	Root     string
	Debounce time.Duration
	// ShouldWatch, if set, filters which paths are considered at all
	// (directories are always passed with isDir true so the watcher can
	// decide whether to descend).
	ShouldWatch func(path string, isDir bool) bool
}

// New creates a Watcher rooted at cfg.Root. It does not start watching until
// Run is called.
func New(logger *slog.Logger, cfg Config) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.IoError("watcher.init", cfg.Root, err)
	}

	w := &Watcher{
		logger:      logger,
		fsw:         fsw,
		root:        cfg.Root,
		debounce:    cfg.Debounce,
		shouldWatch: cfg.ShouldWatch,
		pending:     make(map[string]*pendingEvent),
		timers:      make(map[string]*time.Timer),
	}

	if err := w.addTree(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers root and every eligible subdirectory with fsnotify.
// fsnotify watches are not recursive, so each directory needs its own Add.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldWatch != nil && !w.shouldWatch(path, true) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("watcher.add_dir.failed", "path", path, "error", err)
		}
		return nil
	})
}

// Run drains fsnotify events until ctx is cancelled, sending settled events
// to out. Run blocks; callers typically invoke it in its own goroutine.
func (w *Watcher) Run(ctx context.Context, out chan<- Event) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleRaw(ctx, ev, out)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher.fsnotify.error", "error", err)
		}
	}
}

func (w *Watcher) handleRaw(ctx context.Context, ev fsnotify.Event, out chan<- Event) {
	if w.shouldWatch != nil {
		info, statErr := os.Stat(ev.Name)
		isDir := statErr == nil && info.IsDir()
		if !w.shouldWatch(ev.Name, isDir) {
			return
		}
		if statErr == nil && isDir && ev.Op&fsnotify.Create != 0 {
			_ = w.fsw.Add(ev.Name)
		}
	}

	var kind ChangeKind
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		kind = ChangeRemoved
	case ev.Op&fsnotify.Create != 0:
		kind = ChangeAdded
	case ev.Op&(fsnotify.Write|fsnotify.Chmod) != 0:
		kind = ChangeChanged
	default:
		return
	}

	w.debounceEvent(ctx, ev.Name, kind, out)
}

// debounceEvent records the latest kind seen for path and (re)starts a timer
// that fires the event once activity on path has been quiet for w.debounce.
// A remove always wins over an earlier add/change within the same window
// since the file no longer exists by the time anything downstream would read
// it; a later add/change after a remove within the window supersedes it.
func (w *Watcher) debounceEvent(ctx context.Context, path string, kind ChangeKind, out chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = &pendingEvent{kind: kind}

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.flush(ctx, path, out)
	})
}

func (w *Watcher) flush(ctx context.Context, path string, out chan<- Event) {
	w.mu.Lock()
	pe, ok := w.pending[path]
	if ok {
		delete(w.pending, path)
		delete(w.timers, path)
	}
	w.mu.Unlock()

	if !ok {
		return
	}

	select {
	case out <- Event{Path: path, Kind: pe.kind}:
	case <-ctx.Done():
	}
}
