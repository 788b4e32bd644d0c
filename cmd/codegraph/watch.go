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

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/index"
	"github.com/kraklabs/codegraph/pkg/watcher"
)

// watchIgnoreDirs mirrors the baseline directories pkg/scanner always skips,
// so the watcher never re-walks into them on a Create event.
var watchIgnoreDirs = map[string]struct{}{
	"node_modules": {}, ".git": {}, ".svn": {}, ".hg": {}, "dist": {}, "build": {}, "out": {},
	".next": {}, ".nuxt": {}, ".output": {}, "coverage": {}, ".nyc_output": {},
	"__pycache__": {}, ".pytest_cache": {}, "venv": {}, ".venv": {}, "env": {}, ".env": {},
	"target": {}, "vendor": {}, ".idea": {}, ".vscode": {},
}

// runWatch executes the 'watch' command: a full index, then a live loop
// applying debounced filesystem events to the in-memory graph via
// AddOrUpdateFile/RemoveFile until interrupted.
func runWatch(args []string) {
	fs, g := newGlobalFlagSet("watch")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph watch [options]\n\nIndexes the workspace, then keeps the graph live as files change.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.InitColors(g.NoColor)
	logger := newLogger(g)

	info, err := bootstrap.OpenWorkspace(configPathOrDefault(g))
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	idx, err := index.New(info.Config, logger)
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stats, err := idx.Index(ctx)
	if err != nil {
		errors.FatalError(err, g.JSON)
	}
	ui.Successf("Indexed %d files: %d nodes, %d edges", stats.Files, stats.Nodes, stats.Edges)

	extSet := make(map[string]struct{}, len(info.Config.Extensions))
	for _, ext := range info.Config.Extensions {
		extSet[ext] = struct{}{}
	}

	w, err := watcher.New(logger, watcher.Config{
		Root:     info.Config.WorkspaceRoot,
		Debounce: time.Duration(info.Config.WatchDebounceMs) * time.Millisecond,
		ShouldWatch: func(path string, isDir bool) bool {
			base := filepath.Base(path)
			if isDir {
				_, ignored := watchIgnoreDirs[base]
				return !ignored
			}
			_, ok := extSet[strings.ToLower(filepath.Ext(path))]
			return ok
		},
	})
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	events := make(chan watcher.Event, 64)
	go func() {
		if err := w.Run(ctx, events); err != nil {
			logger.Warn("watch.run.error", "error", err)
		}
	}()

	ui.Info("Watching for changes. Press Ctrl+C to stop.")
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopped.")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			applyWatchEvent(ctx, idx, info.Config.WorkspaceRoot, ev, logger)
		}
	}
}

func applyWatchEvent(ctx context.Context, idx *index.Indexer, root string, ev watcher.Event, logger interface {
	Info(string, ...any)
	Warn(string, ...any)
}) {
	rel, err := filepath.Rel(root, ev.Path)
	if err != nil {
		return
	}

	switch ev.Kind {
	case watcher.ChangeRemoved:
		idx.RemoveFile(rel)
		logger.Info("watch.file.removed", "path", rel)
	case watcher.ChangeAdded, watcher.ChangeChanged:
		if err := idx.AddOrUpdateFile(ctx, rel); err != nil {
			logger.Warn("watch.file.update_failed", "path", rel, "error", err)
			return
		}
		logger.Info("watch.file.updated", "path", rel)
	}
}
