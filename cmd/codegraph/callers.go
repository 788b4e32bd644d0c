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
	"os"

	"github.com/kraklabs/codegraph/pkg/index"
)

// runCallers executes the 'callers' command: direct callers of a symbol,
// matched by node id or short name.
func runCallers(args []string) {
	g, idx, target := parseSymbolArg("callers", args)
	printNodes(g, idx.GetCallers(target))
}

// runCallees executes the 'callees' command: direct callees of a symbol,
// matched by node id or short name.
func runCallees(args []string) {
	g, idx, target := parseSymbolArg("callees", args)
	printNodes(g, idx.GetCallees(target))
}

// parseSymbolArg parses the flags shared by callers/callees, opens the
// workspace, and returns the single positional symbol argument.
func parseSymbolArg(name string, args []string) (*GlobalFlags, *index.Indexer, string) {
	fs, g := newGlobalFlagSet(name)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph " + name + " [options] <symbol>\n\n" +
			"Looks up <symbol> by node id or short name.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	return g, openIndexer(g), fs.Arg(0)
}
