// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kraklabs/codegraph/pkg/config"
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/index"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// SetupTestWorkspace writes files (keyed by path relative to the workspace
// root, valued by content) under a temporary directory and returns a ready
// Indexer pointed at it, plus the Config used to build it. The directory is
// removed automatically when the test finishes.
func SetupTestWorkspace(t *testing.T, files map[string]string) (*index.Indexer, config.Config) {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("setup test workspace: mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("setup test workspace: write %s: %v", full, err)
		}
	}

	cfg := config.Default()
	cfg.WorkspaceRoot = root
	if err := cfg.Validate(); err != nil {
		t.Fatalf("setup test workspace: invalid config: %v", err)
	}

	idx, err := index.New(cfg, nil)
	if err != nil {
		t.Fatalf("setup test workspace: new indexer: %v", err)
	}
	return idx, cfg
}

// NewTestNode builds a *graph.Node for tests that exercise pkg/graph or
// pkg/query directly, without going through a real parse. qualifiedName
// doubles as the node's short Name unless it contains a ".", in which case
// the short name is the segment after the last dot.
func NewTestNode(file, qualifiedName string, kind syntax.Kind, exported bool) *graph.Node {
	name := qualifiedName
	for i := len(qualifiedName) - 1; i >= 0; i-- {
		if qualifiedName[i] == '.' {
			name = qualifiedName[i+1:]
			break
		}
	}
	return &graph.Node{
		ID:            graph.NewNodeID(file, qualifiedName),
		Name:          name,
		QualifiedName: qualifiedName,
		Kind:          kind,
		File:          file,
		IsExported:    exported,
	}
}

// NewTestCallEdge builds a resolved "calls" edge between two node ids, for
// tests assembling a graph.Store by hand.
func NewTestCallEdge(from, to graph.NodeID) *graph.Edge {
	return &graph.Edge{
		From:       from,
		To:         to,
		ToRaw:      string(to),
		Resolved:   true,
		Kind:       graph.EdgeCalls,
		Confidence: 1.0,
	}
}

// BuildTestStore adds nodes and edges to a fresh graph.Store and resolves
// them at the default ambiguity confidence, returning the ready store.
func BuildTestStore(nodes []*graph.Node, edges []*graph.Edge) *graph.Store {
	store := graph.New()
	store.Add(nodes, edges)
	store.ResolveAll(config.Default().EdgeResolverAmbiguityConfidence)
	return store
}
