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

// Package query implements the read-only search, traversal, and
// reachability operations over a graph.Store: symbol search, callers,
// callees, bounded trace, path finding, and dead-code detection. No
// operation in this package mutates the store it is given.
package query

import "github.com/kraklabs/codegraph/pkg/graph"

// Engine answers queries against a fixed graph.Store.
type Engine struct {
	store *graph.Store
}

// New builds an Engine over store.
func New(store *graph.Store) *Engine {
	return &Engine{store: store}
}

// TraceHit is one node reached during a trace, paired with the depth at
// which it was first visited.
type TraceHit struct {
	Node  *graph.Node
	Depth int
}

// Path is one simple path of edges from a from_id to a to_id.
type Path struct {
	Nodes []*graph.Node
	Edges []*graph.Edge
}

// Len reports the path's length in edges, not nodes.
func (p Path) Len() int {
	return len(p.Edges)
}

// DeadSymbol is a callable node that is unreachable from any exported entry
// point.
type DeadSymbol struct {
	Node   *graph.Node
	Reason string
}
