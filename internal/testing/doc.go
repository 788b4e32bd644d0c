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

// Package testing provides test helpers shared across the codegraph
// packages: building a temporary on-disk workspace and indexing it end to
// end, or assembling a graph.Store directly from hand-built nodes and edges
// when a test wants to skip parsing entirely.
//
// # Indexing a temporary workspace
//
//	idx, cfg := testing.SetupTestWorkspace(t, map[string]string{
//	    "main.go": "package main\n\nfunc main() {}\n",
//	})
//	stats, err := idx.Index(context.Background())
//
// # Building a store by hand
//
//	caller := testing.NewTestNode("a.go", "caller", syntax.KindFunction, true)
//	callee := testing.NewTestNode("a.go", "callee", syntax.KindFunction, false)
//	store := testing.BuildTestStore(
//	    []*graph.Node{caller, callee},
//	    []*graph.Edge{testing.NewTestCallEdge(caller.ID, callee.ID)},
//	)
package testing
