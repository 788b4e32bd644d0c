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

package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/codegraph/internal/contract"
	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/pkg/config"
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/query"
	"github.com/kraklabs/codegraph/pkg/scanner"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// Indexer wires the scanner, parser, symbol cache, and graph store into the
// workspace-level operations: build, rebuild, and react to single-file
// changes, plus the read-only query surface backed by pkg/query.
type Indexer struct {
	cfg    config.Config
	logger *slog.Logger

	scanner *scanner.Scanner
	parser  syntax.Parser
	cache   *syntax.Cache
	store   *graph.Store
	engine  *query.Engine

	scanCfg scanner.Config
}

// New builds an Indexer from cfg. cfg must pass Validate.
func New(cfg config.Config, logger *slog.Logger) (*Indexer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extSet := make(map[string]struct{}, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extSet[ext] = struct{}{}
	}

	store := graph.New()

	idx := &Indexer{
		cfg:     cfg,
		logger:  logger,
		scanner: scanner.New(logger),
		parser:  syntax.NewTreeSitterParser(logger),
		cache:   syntax.NewCache(),
		store:   store,
		engine:  query.New(store),
		scanCfg: scanner.Config{
			Extensions:           extSet,
			AlwaysIgnoreDirs:     cfg.AlwaysIgnoreDirs,
			AlwaysIgnorePatterns: cfg.AlwaysIgnorePatterns,
			UseGitignore:         cfg.UseGitignore,
		},
	}
	return idx, nil
}

// Index performs a full build of cfg.WorkspaceRoot, discarding any prior
// state. Per the default "discard partial" policy for initial builds, a
// cancelled build leaves the store exactly as it was before Index started.
func (idx *Indexer) Index(ctx context.Context) (Stats, error) {
	fresh := graph.New()
	stats, err := idx.build(ctx, fresh)
	if err != nil {
		return Stats{}, err
	}
	idx.store = fresh
	idx.engine = query.New(fresh)
	return stats, nil
}

// Reindex is Index's alias for an explicit rebuild of an already-indexed
// workspace: same discard-on-cancel, replace-on-success semantics.
func (idx *Indexer) Reindex(ctx context.Context) (Stats, error) {
	idx.cache.Clear()
	return idx.Index(ctx)
}

// build scans, parses (with bounded worker parallelism), and assembles
// nodes/edges into target, resolving once at the end. It never mutates
// idx.store directly so a cancelled build can be discarded by the caller.
func (idx *Indexer) build(ctx context.Context, target *graph.Store) (Stats, error) {
	files, err := idx.scanner.Scan(idx.cfg.WorkspaceRoot, idx.scanCfg)
	if err != nil {
		return Stats{}, err
	}

	type parsed struct {
		path  string
		nodes []*graph.Node
		edges []*graph.Edge
		err   error
	}

	results := make([]parsed, len(files))

	g, gctx := errgroup.WithContext(ctx)
	workers := idx.cfg.ParserWorkers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	var skippedMu sync.Mutex
	skipped := 0
	parseErrs := 0

	for i, relPath := range files {
		i, relPath := i, relPath
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			absPath := filepath.Join(idx.cfg.WorkspaceRoot, relPath)
			content, statErr := os.ReadFile(absPath)
			if statErr != nil {
				results[i] = parsed{path: relPath, err: errors.IoError("index.build.read_file", absPath, statErr)}
				return nil
			}

			if check := contract.ValidateFileSize(content); !check.OK {
				idx.logger.Warn("index.build.file_too_large", "path", relPath, "bytes", len(content))
				results[i] = parsed{path: relPath, err: errors.InvariantErrorf("index.build.file_too_large", "%s: %s", relPath, check.Message)}
				return nil
			}

			info, statErr := os.Stat(absPath)
			var mtime int64
			if statErr == nil {
				mtime = info.ModTime().UnixNano()
			}

			var result *syntax.ParseResult
			if idx.cfg.CacheEnabled {
				if cached, ok := idx.cache.Get(relPath, mtime); ok {
					result = cached
				}
			}
			if result == nil {
				parsedResult, parseErr := idx.parser.ParseFile(relPath, content)
				if parseErr != nil {
					results[i] = parsed{path: relPath, err: parseErr}
					return nil
				}
				result = parsedResult
				if idx.cfg.CacheEnabled {
					idx.cache.Set(relPath, mtime, result)
				}
			}

			nodes, edges := buildGraph(relPath, result)
			results[i] = parsed{path: relPath, nodes: nodes, edges: edges}
			if result.ParseErrors {
				skippedMu.Lock()
				parseErrs++
				skippedMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, errors.CancelledErrorKind("index.build.cancelled")
	}

	for _, r := range results {
		if r.err != nil {
			skippedMu.Lock()
			skipped++
			skippedMu.Unlock()
			idx.logger.Warn("index.build.file_skipped", "path", r.path, "error", r.err)
			continue
		}
		target.Add(r.nodes, r.edges)
	}

	target.ResolveAll(idx.cfg.EdgeResolverAmbiguityConfidence)

	idx.logger.Info("index.build.complete", "files", len(files), "skipped", skipped, "parse_errors", parseErrs)
	return statsFromGraph(target.Stats(), skipped, parseErrs), nil
}

// AddOrUpdateFile re-parses a single file and applies it to the live store
// as one atomic remove+add+resolve step, scoped to that file's edges.
func (idx *Indexer) AddOrUpdateFile(ctx context.Context, relPath string) error {
	if err := ctx.Err(); err != nil {
		return errors.CancelledErrorKind("index.add_or_update_file.cancelled")
	}

	absPath := filepath.Join(idx.cfg.WorkspaceRoot, relPath)
	content, err := os.ReadFile(absPath)
	if err != nil {
		return errors.IoError("index.add_or_update_file.read", absPath, err)
	}
	if check := contract.ValidateFileSize(content); !check.OK {
		return errors.InvariantErrorf("index.add_or_update_file.file_too_large", "%s: %s", relPath, check.Message)
	}

	info, statErr := os.Stat(absPath)
	var mtime int64
	if statErr == nil {
		mtime = info.ModTime().UnixNano()
	}

	result, err := idx.parser.ParseFile(relPath, content)
	if err != nil {
		return err
	}
	if idx.cfg.CacheEnabled {
		idx.cache.Set(relPath, mtime, result)
	} else {
		idx.cache.Invalidate(relPath)
	}

	nodes, edges := buildGraph(relPath, result)
	idx.store.UpdateFile(relPath, nodes, edges, idx.cfg.EdgeResolverAmbiguityConfidence)
	return nil
}

// RemoveFile drops a file and all its nodes/edges from the live store; any
// edge that had resolved into the removed nodes reverts to unresolved.
func (idx *Indexer) RemoveFile(relPath string) {
	idx.cache.Invalidate(relPath)
	idx.store.RemoveFile(relPath)
}

// Stats reports the live store's current counts.
func (idx *Indexer) Stats() graph.Stats {
	return idx.store.Stats()
}

// FindSymbols, GetNode, GetCallers, GetCallees, Trace, FindPaths, and
// FindDeadCode delegate to the query engine bound to the live store.

func (idx *Indexer) FindSymbols(pattern *regexp.Regexp, kinds []syntax.Kind, limit int) []*graph.Node {
	return idx.engine.FindSymbols(query.SearchArgs{Pattern: pattern, Kinds: kinds, Limit: limit})
}

func (idx *Indexer) GetNode(id graph.NodeID) (*graph.Node, bool) {
	return idx.store.GetNode(id)
}

func (idx *Indexer) GetCallers(target string) []*graph.Node {
	return idx.engine.GetCallers(target)
}

func (idx *Indexer) GetCallees(source string) []*graph.Node {
	return idx.engine.GetCallees(source)
}

func (idx *Indexer) Trace(ctx context.Context, startID graph.NodeID, direction graph.Direction, maxDepth int, edgeKinds []graph.EdgeKind) ([]query.TraceHit, error) {
	if maxDepth <= 0 {
		maxDepth = idx.cfg.TraceDefaultDepth
	}
	return idx.engine.Trace(ctx, query.TraceArgs{StartID: startID, Direction: direction, MaxDepth: maxDepth, EdgeKinds: edgeKinds})
}

func (idx *Indexer) FindPaths(ctx context.Context, fromID, toID graph.NodeID, maxDepth int) ([]query.Path, error) {
	if maxDepth <= 0 {
		maxDepth = idx.cfg.MaxPathsReturned
	}
	return idx.engine.FindPaths(ctx, fromID, toID, maxDepth)
}

func (idx *Indexer) FindDeadCode(ctx context.Context, filePattern *regexp.Regexp) ([]query.DeadSymbol, error) {
	return idx.engine.FindDeadCode(ctx, filePattern)
}
