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
	"strings"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/graph"
)

// runPaths executes the 'paths' command: every simple call path from one
// node id to another, up to max_paths_returned results.
func runPaths(args []string) {
	fs, g := newGlobalFlagSet("paths")
	maxDepth := fs.Int("max-depth", 0, "maximum path length in edges (0 = use max_paths_returned)")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph paths [options] <from-node-id> <to-node-id>\n\n" +
			"Enumerates simple call paths between two nodes.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}

	idx := openIndexer(g)
	paths, err := idx.FindPaths(context.Background(), graph.NodeID(fs.Arg(0)), graph.NodeID(fs.Arg(1)), *maxDepth)
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	if g.JSON {
		if err := output.JSON(paths); err != nil {
			errors.FatalError(err, true)
		}
		return
	}
	if len(paths) == 0 {
		ui.Info("No paths found.")
		return
	}
	for _, p := range paths {
		names := make([]string, len(p.Nodes))
		for i, n := range p.Nodes {
			names[i] = n.QualifiedName
		}
		fmt.Printf("(%d) %s\n", p.Len(), strings.Join(names, " -> "))
	}
}
