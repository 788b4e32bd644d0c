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
	"regexp"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
)

// runDeadCode executes the 'deadcode' command: every callable symbol
// unreachable from any exported entry point, optionally scoped to files
// matching --file.
func runDeadCode(args []string) {
	fs, g := newGlobalFlagSet("deadcode")
	filePattern := fs.String("file", "", "restrict to files matching this regular expression")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph deadcode [options]\n\n" +
			"Lists callable symbols unreachable from any exported entry point.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var pattern *regexp.Regexp
	if *filePattern != "" {
		re, err := regexp.Compile(*filePattern)
		if err != nil {
			errors.FatalError(errors.InvariantErrorf("cli.deadcode.pattern", "invalid regular expression: %v", err), g.JSON)
		}
		pattern = re
	}

	idx := openIndexer(g)
	dead, err := idx.FindDeadCode(context.Background(), pattern)
	if err != nil {
		errors.FatalError(err, g.JSON)
	}

	if g.JSON {
		if err := output.JSON(dead); err != nil {
			errors.FatalError(err, true)
		}
		return
	}
	if len(dead) == 0 {
		ui.Success("No dead code found.")
		return
	}
	for _, d := range dead {
		fmt.Printf("%s\t%s:%d\t%s\n", d.Node.QualifiedName, d.Node.File, d.Node.StartLine, d.Reason)
	}
}
