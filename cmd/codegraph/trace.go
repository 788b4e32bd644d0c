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
	"fmt"
	"os"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/graph"
)

// runTrace executes the 'trace' command: a bounded breadth-first traversal
// from one node id, forward (callees) by default or backward (callers) with
// --backward.
func runTrace(args []string) {
	fs, g := newGlobalFlagSet("trace")
	backward := fs.Bool("backward", false, "traverse incoming edges instead of outgoing")
	maxDepth := fs.Int("max-depth", 0, "maximum traversal depth (0 = use trace_default_depth)")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph trace [options] <node-id>\n\nTraces reachable nodes from <node-id>.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	direction := graph.DirectionForward
	if *backward {
		direction = graph.DirectionBackward
	}

	idx := openIndexer(g)
	hits, err := idx.Trace(context.Background(), graph.NodeID(fs.Arg(0)), direction, *maxDepth, nil)
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	if g.JSON {
		if err := output.JSON(hits); err != nil {
			errors.FatalError(err, true)
		}
		return
	}
	if len(hits) == 0 {
		ui.Info("No reachable nodes.")
		return
	}
	for _, h := range hits {
		fmt.Printf("%d\t%s\t%s\t%s:%d\n", h.Depth, h.Node.Kind, h.Node.QualifiedName, h.Node.File, h.Node.StartLine)
	}
}
