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

import "github.com/kraklabs/codegraph/pkg/graph"

var callEdgeKinds = []graph.EdgeKind{graph.EdgeCalls}

// GetCallers returns the set of nodes with an outgoing calls edge into any
// node whose id or short name equals target. Unknown target yields an empty,
// non-error result.
func (e *Engine) GetCallers(target string) []*graph.Node {
	seen := make(map[graph.NodeID]struct{})
	var out []*graph.Node

	for _, v := range e.nodesMatching(target) {
		for _, edge := range e.store.GetNeighbors(v.ID, graph.DirectionBackward, callEdgeKinds) {
			u, ok := e.store.GetNode(edge.From)
			if !ok {
				continue
			}
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}

// GetCallees returns the set of nodes reached by a calls edge outgoing from
// any node whose id or short name equals source.
func (e *Engine) GetCallees(source string) []*graph.Node {
	seen := make(map[graph.NodeID]struct{})
	var out []*graph.Node

	for _, u := range e.nodesMatching(source) {
		for _, edge := range e.store.GetNeighbors(u.ID, graph.DirectionForward, callEdgeKinds) {
			if !edge.Resolved {
				continue
			}
			v, ok := e.store.GetNode(edge.To)
			if !ok {
				continue
			}
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
