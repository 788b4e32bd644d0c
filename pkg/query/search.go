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

package query

import (
	"regexp"

	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// SearchArgs holds parameters for FindSymbols.
type SearchArgs struct {
	Pattern *regexp.Regexp
	Kinds   []syntax.Kind
	Limit   int
}

// FindSymbols scans the node table for names matching args.Pattern, in
// insertion order, honoring args.Kinds and args.Limit.
func (e *Engine) FindSymbols(args SearchArgs) []*graph.Node {
	return e.store.FindSymbols(args.Pattern, args.Kinds, args.Limit)
}

// nodesMatching returns every live node whose id equals target verbatim, or
// whose short Name equals target.
func (e *Engine) nodesMatching(target string) []*graph.Node {
	seen := make(map[graph.NodeID]struct{})
	var out []*graph.Node

	if n, ok := e.store.GetNode(graph.NodeID(target)); ok {
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	for _, n := range e.store.AllNodes() {
		if n.Name != target {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}
