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
	"fmt"
	"os"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
)

// runStats executes the 'stats' command: node/edge/file counts for the
// current workspace's live graph.
func runStats(args []string) {
	fs, g := newGlobalFlagSet("stats")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph stats [options]\n\nPrints node/edge/file counts.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	idx := openIndexer(g)
	stats := idx.Stats()

	if g.JSON {
		if err := output.JSON(stats); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Header("codegraph Stats")
	fmt.Printf("  Files: %s\n", ui.CountText(stats.Files))
	fmt.Printf("  Nodes: %s\n", ui.CountText(stats.Nodes))
	fmt.Printf("  Edges: %s\n", ui.CountText(stats.Edges))
}
