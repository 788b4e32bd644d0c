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

// Package scanner walks a workspace directory and enumerates the files that
// should be indexed, applying the always-ignore rules and a small subset of
// gitignore semantics.
package scanner

import (
	"bufio"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kraklabs/codegraph/internal/errors"
)

// defaultIgnoreDirs is always skipped regardless of configuration.
var defaultIgnoreDirs = []string{
	"node_modules", ".git", ".svn", ".hg", "dist", "build", "out",
	".next", ".nuxt", ".output", "coverage", ".nyc_output",
	"__pycache__", ".pytest_cache", "venv", ".venv", "env", ".env",
	"target", "vendor", ".idea", ".vscode",
}

// alwaysIgnoreNameFragments marks a file unconditionally skipped if its base
// name contains one of these segments, regardless of extension.
var alwaysIgnoreNameFragments = []string{".test.", ".spec.", "__tests__", "__mocks__"}

// alwaysIgnoreSuffixes covers minified bundles and declaration-only files.
var alwaysIgnoreSuffixes = []string{".min.js", ".min.mjs", ".min.cjs", ".d.ts", ".d.mts", ".d.cts"}

// Config controls one Scan call.
type Config struct {
	Extensions         map[string]struct{}
	AlwaysIgnoreDirs   []string
	AlwaysIgnorePatterns []string
	UseGitignore       bool
}

// Scanner enumerates files under a workspace root.
type Scanner struct {
	logger *slog.Logger
}

// New creates a Scanner.
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// Scan walks root depth-first and returns workspace-relative paths for every
// file whose extension is in cfg.Extensions and that isn't skipped by an
// ignore rule.
func (s *Scanner) Scan(root string, cfg Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.IoError("scanner.stat", root, err)
	}
	if !info.IsDir() {
		return nil, errors.IoErrorf("scanner.root_not_dir", "workspace root is not a directory: %s", root)
	}

	ignoreDirs := make(map[string]struct{}, len(defaultIgnoreDirs)+len(cfg.AlwaysIgnoreDirs))
	for _, d := range defaultIgnoreDirs {
		ignoreDirs[d] = struct{}{}
	}
	for _, d := range cfg.AlwaysIgnoreDirs {
		ignoreDirs[d] = struct{}{}
	}

	patterns := make([]*regexp.Regexp, 0, len(cfg.AlwaysIgnorePatterns))
	for _, p := range cfg.AlwaysIgnorePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.InvariantErrorf("scanner.bad_pattern", "invalid always_ignore_patterns entry %q: %v", p, err)
		}
		patterns = append(patterns, re)
	}

	if cfg.UseGitignore {
		gitignorePatterns, err := loadGitignore(root)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, gitignorePatterns...)
	}

	var out []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("scanner.walk.error", "path", path, "err", err)
			return nil
		}
		if path == root {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(root, resolved) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if _, skip := ignoreDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if matchesAny(relPath+"/", patterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if shouldSkipFile(relPath, patterns) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(relPath))
		if _, ok := cfg.Extensions[ext]; !ok {
			return nil
		}

		out = append(out, relPath)
		return nil
	})
	if walkErr != nil {
		return nil, errors.IoError("scanner.walk", root, walkErr)
	}

	s.logger.Info("scanner.scan.complete", "root", root, "files", len(out))
	return out, nil
}

func shouldSkipFile(relPath string, patterns []*regexp.Regexp) bool {
	base := filepath.Base(relPath)
	for _, frag := range alwaysIgnoreNameFragments {
		if strings.Contains(base, frag) {
			return true
		}
	}
	for _, suffix := range alwaysIgnoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return matchesAny(relPath, patterns)
}

func matchesAny(path string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func isWithinRoot(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// loadGitignore reads a .gitignore at root, translating each non-negated,
// non-comment, non-blank line to a regex per spec: `**` -> `.*`, `*` ->
// `[^/]*`, `?` -> `.`, and a trailing `/` anchors the pattern to directories
// (matched as a path-segment prefix).
func loadGitignore(root string) ([]*regexp.Regexp, error) {
	path := filepath.Join(root, ".gitignore")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.IoError("scanner.gitignore.open", path, err)
	}
	defer f.Close()

	var out []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "!") {
			continue // negated patterns are ignored for simplicity
		}
		re, err := gitignoreLineToRegexp(line)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IoError("scanner.gitignore.read", path, err)
	}
	return out, nil
}

func gitignoreLineToRegexp(line string) (*regexp.Regexp, error) {
	dirOnly := strings.HasSuffix(line, "/")
	line = strings.TrimSuffix(line, "/")
	line = strings.TrimPrefix(line, "/")

	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(line); i++ {
		switch {
		case strings.HasPrefix(line[i:], "**"):
			b.WriteString(".*")
			i++
		case line[i] == '*':
			b.WriteString("[^/]*")
		case line[i] == '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(line[i])))
		}
	}
	if dirOnly {
		b.WriteString("(/.*)?$")
	} else {
		b.WriteString("$")
	}
	return regexp.Compile(b.String())
}
