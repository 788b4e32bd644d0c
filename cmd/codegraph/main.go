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

// Package main implements the codegraph CLI: a single binary that indexes a
// workspace into an in-memory code graph and answers search/traversal
// queries against it.
//
// Usage:
//
//	codegraph init                  Write .codegraph.yaml for the current directory
//	codegraph index                 Build the graph from scratch
//	codegraph reindex               Rebuild, discarding the parse cache
//	codegraph watch                 Index, then keep the graph live as files change
//	codegraph search <pattern>      Search symbol names by regex
//	codegraph callers <symbol>      List direct callers of a symbol
//	codegraph callees <symbol>      List direct callees of a symbol
//	codegraph trace <node-id>       Bounded traversal from a node
//	codegraph paths <from> <to>     Enumerate simple call paths between two nodes
//	codegraph deadcode              List callable symbols unreachable from any export
//	codegraph stats                 Print node/edge/file counts
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// GlobalFlags holds the flags shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string
	JSON       bool
	Quiet      bool
	NoColor    bool
	Verbose    int
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	cmdArgs := os.Args[2:]

	switch command {
	case "init":
		runInit(cmdArgs)
	case "index":
		runIndex(cmdArgs, false)
	case "reindex":
		runIndex(cmdArgs, true)
	case "watch":
		runWatch(cmdArgs)
	case "search":
		runSearch(cmdArgs)
	case "callers":
		runCallers(cmdArgs)
	case "callees":
		runCallees(cmdArgs)
	case "trace":
		runTrace(cmdArgs)
	case "paths":
		runPaths(cmdArgs)
	case "deadcode":
		runDeadCode(cmdArgs)
	case "stats":
		runStats(cmdArgs)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "codegraph: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `codegraph - multi-language code graph CLI

Usage:
  codegraph <command> [options]

Commands:
  init        Write .codegraph.yaml for the current directory
  index       Build the graph from scratch
  reindex     Rebuild, discarding the parse cache
  watch       Index, then keep the graph live as files change
  search      Search symbol names by regex
  callers     List direct callers of a symbol
  callees     List direct callees of a symbol
  trace       Bounded traversal from a node
  paths       Enumerate simple call paths between two nodes
  deadcode    List callable symbols unreachable from any export
  stats       Print node/edge/file counts

Run 'codegraph <command> --help' for command-specific options.
`)
}

// newGlobalFlagSet registers the flags shared by every subcommand other than
// init (which has no existing workspace to locate) onto fs.
func newGlobalFlagSet(name string) (*pflag.FlagSet, *GlobalFlags) {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	g := &GlobalFlags{}
	fs.StringVar(&g.ConfigPath, "config", "", "path to .codegraph.yaml (default: ./.codegraph.yaml)")
	fs.BoolVar(&g.JSON, "json", false, "output as JSON")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVar(&g.NoColor, "no-color", false, "disable colored output")
	fs.CountVarP(&g.Verbose, "verbose", "v", "increase logging verbosity (repeatable)")
	return fs, g
}
