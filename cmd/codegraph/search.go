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
	"regexp"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// runSearch executes the 'search' command: FindSymbols over the live graph
// by a name regex, optionally restricted to a set of symbol kinds.
func runSearch(args []string) {
	fs, g := newGlobalFlagSet("search")
	kinds := fs.StringSlice("kind", nil, "restrict to these symbol kinds (repeatable), e.g. function,method")
	limit := fs.Int("limit", 0, "cap the number of results (0 = 100)")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph search [options] <pattern>\n\nSearches symbol names by regular expression.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	pattern, err := regexp.Compile(fs.Arg(0))
	if err != nil {
		errors.FatalError(errors.InvariantErrorf("cli.search.pattern", "invalid regular expression: %v", err), g.JSON)
	}

	var kindFilter []syntax.Kind
	for _, k := range *kinds {
		kindFilter = append(kindFilter, syntax.Kind(k))
	}

	idx := openIndexer(g)

	effectiveLimit := *limit
	if effectiveLimit == 0 {
		effectiveLimit = 100
	}
	nodes := idx.FindSymbols(pattern, kindFilter, effectiveLimit)
	printNodes(g, nodes)
}

// printNodes renders a node list as either a JSON array or a plain table,
// shared by every read-only query command.
func printNodes(g *GlobalFlags, nodes []*graph.Node) {
	if g.JSON {
		if err := output.JSON(nodes); err != nil {
			errors.FatalError(err, true)
		}
		return
	}
	if len(nodes) == 0 {
		ui.Info("No matches.")
		return
	}
	for _, n := range nodes {
		fmt.Printf("%s\t%s\t%s:%d\n", n.Kind, n.QualifiedName, n.File, n.StartLine)
	}
}
