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

	"github.com/spf13/pflag"

	"github.com/kraklabs/codegraph/internal/bootstrap"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/internal/output"
	"github.com/kraklabs/codegraph/internal/ui"
)

// runInit executes the 'init' command, writing .codegraph.yaml for the
// current directory (or --path) with documented defaults. Idempotent: an
// existing config file is loaded and reported rather than overwritten.
func runInit(args []string) {
	fs := pflag.NewFlagSet("init", pflag.ExitOnError)
	path := fs.String("path", "", "workspace root to initialize (default: current directory)")
	configPath := fs.String("config", "", "config file path (default: <path>/.codegraph.yaml)")
	jsonOutput := fs.Bool("json", false, "output as JSON")
	noColor := fs.Bool("no-color", false, "disable colored output")
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: codegraph init [options]\n\nWrites .codegraph.yaml with documented defaults.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.InitColors(*noColor)

	root := *path
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			errors.FatalError(errors.IoError("cli.init.getwd", ".", err), *jsonOutput)
		}
		root = cwd
	}

	info, err := bootstrap.InitWorkspace(root, *configPath, newLogger(&GlobalFlags{Verbose: 0}))
	if err != nil {
		errors.FatalError(err, *jsonOutput)
	}

	if *jsonOutput {
		if err := output.JSON(map[string]any{
			"config_path":    info.ConfigPath,
			"workspace_root": info.Config.WorkspaceRoot,
		}); err != nil {
			errors.FatalError(err, true)
		}
		return
	}

	ui.Successf("Wrote %s", info.ConfigPath)
	ui.Info("Run 'codegraph index' to build the graph.")
}
