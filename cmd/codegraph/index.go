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
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/index"
)

// runIndex executes the 'index' and 'reindex' commands. reindex additionally
// clears the parse cache before rebuilding.
func runIndex(args []string, reindex bool) {
	name := "index"
	if reindex {
		name = "reindex"
	}
	fs, g := newGlobalFlagSet(name)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph " + name + " [options]\n\nBuilds the code graph from the configured workspace root.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.InitColors(g.NoColor)

	info, err := bootstrap.OpenWorkspace(configPathOrDefault(g))
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	idx, err := index.New(info.Config, newLogger(g))
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

	progress := NewProgressConfig(*g)
	spinner := NewSpinner(progress, phaseDescription("scan"))
	var spinnerDone chan struct{}
	if spinner != nil {
		spinnerDone = make(chan struct{})
		go spin(spinner, spinnerDone)
	}

	var stats index.Stats
	if reindex {
		stats, err = idx.Reindex(ctx)
	} else {
		stats, err = idx.Index(ctx)
	}
	if spinner != nil {
		close(spinnerDone)
		_ = spinner.Finish()
	}
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	if g.JSON {
		if err := output.JSON(stats); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Successf("Indexed %d files: %d nodes, %d edges", stats.Files, stats.Nodes, stats.Edges)
	if stats.FilesSkipped > 0 {
		ui.Warningf("Skipped %d files", stats.FilesSkipped)
	}
	if stats.FilesWithParseErrs > 0 {
		ui.Warningf("%d files had parse errors", stats.FilesWithParseErrs)
	}
}

// spin advances spinner once per tick until done is closed. The tick
// interval matches the spinner's own render throttle, so this never
// oversaturates the terminal.
func spin(spinner *progressbar.ProgressBar, done <-chan struct{}) {
	ticker := time.NewTicker(65 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = spinner.Add(1)
		}
	}
}
