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

// Package config holds the options that govern a workspace index: what to
// scan, how edges resolve, and how queries and the watcher behave. Every
// field has a documented default, loadable from YAML via Load or built
// in-process via Default.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// Config is the full set of options accepted by the indexer.
type Config struct {
	WorkspaceRoot string `yaml:"workspace_root"`

	Extensions           []string `yaml:"extensions"`
	AlwaysIgnoreDirs     []string `yaml:"always_ignore_dirs"`
	AlwaysIgnorePatterns []string `yaml:"always_ignore_patterns"`
	UseGitignore         bool     `yaml:"use_gitignore"`

	MaxPathsReturned                int     `yaml:"max_paths_returned"`
	TraceDefaultDepth               int     `yaml:"trace_default_depth"`
	EdgeResolverAmbiguityConfidence float64 `yaml:"edge_resolver_ambiguity_confidence"`

	CacheEnabled    bool `yaml:"cache_enabled"`
	WatchDebounceMs int  `yaml:"watch_debounce_ms"`
	ParserWorkers   int  `yaml:"parser_workers"`
}

// Default returns a Config with every option at its documented default,
// except WorkspaceRoot, which the caller must set.
func Default() Config {
	extSet := syntax.AllExtensions()
	exts := make([]string, 0, len(extSet))
	for ext := range extSet {
		exts = append(exts, ext)
	}

	return Config{
		Extensions:                      exts,
		AlwaysIgnoreDirs:                nil, // scanner.defaultIgnoreDirs already covers the baseline list
		AlwaysIgnorePatterns:            nil,
		UseGitignore:                    true,
		MaxPathsReturned:                100,
		TraceDefaultDepth:               5,
		EdgeResolverAmbiguityConfidence: 0.7,
		CacheEnabled:                    true,
		WatchDebounceMs:                 100,
		ParserWorkers:                   1,
	}
}

// Load reads a YAML config file at path, applying Default for any field the
// file omits by unmarshaling onto a pre-populated Config.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.IoError("config.load", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.ParseErrorKind("config.load.parse", path, err)
	}

	return cfg, nil
}

// Validate checks the soft invariants on a Config: numeric options must be
// positive where the spec requires it, and WorkspaceRoot must be an
// absolute, existing directory. Mirrors the env-overridable soft-limit
// pattern used elsewhere in this codebase, adapted to fail closed on a
// Config rather than silently clamp.
func (c Config) Validate() error {
	if c.WorkspaceRoot == "" {
		return errors.InvariantError("config.validate", "workspace_root is required")
	}
	if !filepath.IsAbs(c.WorkspaceRoot) {
		return errors.InvariantErrorf("config.validate", "workspace_root must be an absolute path, got %q", c.WorkspaceRoot)
	}
	info, err := os.Stat(c.WorkspaceRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.InvariantErrorf("config.validate", "workspace_root does not exist: %q", c.WorkspaceRoot)
		}
		return errors.IoError("config.validate.stat", c.WorkspaceRoot, err)
	}
	if !info.IsDir() {
		return errors.InvariantErrorf("config.validate", "workspace_root is not a directory: %q", c.WorkspaceRoot)
	}
	if c.MaxPathsReturned <= 0 {
		return errors.InvariantErrorf("config.validate", "max_paths_returned must be positive, got %d", c.MaxPathsReturned)
	}
	if c.TraceDefaultDepth <= 0 {
		return errors.InvariantErrorf("config.validate", "trace_default_depth must be positive, got %d", c.TraceDefaultDepth)
	}
	if c.EdgeResolverAmbiguityConfidence <= 0 || c.EdgeResolverAmbiguityConfidence > 1 {
		return errors.InvariantErrorf("config.validate", "edge_resolver_ambiguity_confidence must be in (0, 1], got %v", c.EdgeResolverAmbiguityConfidence)
	}
	if c.WatchDebounceMs < 0 {
		return errors.InvariantErrorf("config.validate", "watch_debounce_ms must be non-negative, got %d", c.WatchDebounceMs)
	}
	if c.ParserWorkers <= 0 {
		return errors.InvariantErrorf("config.validate", "parser_workers must be positive, got %d", c.ParserWorkers)
	}
	return nil
}
