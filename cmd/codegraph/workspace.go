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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/index"
)

// newLogger builds the logger every subcommand logs through, scaled by
// GlobalFlags.Verbose: 0 is warn-and-above, 1 is info, 2+ is debug.
func newLogger(g *GlobalFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case g.Verbose >= 2:
		level = slog.LevelDebug
	case g.Verbose == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// configPathOrDefault returns the --config flag as given when it is set;
// otherwise it returns bootstrap.DefaultConfigFileName joined onto the
// current directory.
func configPathOrDefault(g *GlobalFlags) string {
	if g.ConfigPath != "" {
		return g.ConfigPath
	}
	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.IoError("cli.workspace.getwd", ".", err), g.JSON)
	}
	return filepath.Join(cwd, bootstrap.DefaultConfigFileName)
}

// openIndexer opens the workspace named by GlobalFlags.ConfigPath (or its
// default), builds a fresh Indexer over it, and runs a full Index so the
// query commands have a live graph to read. The CLI holds no persisted
// graph between invocations, so every read-only query command pays this
// cost up front. Exits the process via errors.FatalError on any failure.
func openIndexer(g *GlobalFlags) *index.Indexer {
	ui.InitColors(g.NoColor)

	info, err := bootstrap.OpenWorkspace(configPathOrDefault(g))
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	idx, err := index.New(info.Config, newLogger(g))
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	if _, err := idx.Index(context.Background()); err != nil {
		errors.FatalError(err, g.JSON)
	}
	return idx
}
