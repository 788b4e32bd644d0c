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
	"context"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/pkg/graph"
)

// maxPathsReturned is the hard cap on the number of paths FindPaths reports.
const maxPathsReturned = 100

// pathState is one partial path still being extended: the node it currently
// sits at, the set of nodes already on the path (to keep paths simple), and
// the path itself as alternating nodes/edges.
type pathState struct {
	current graph.NodeID
	visited map[graph.NodeID]struct{}
	nodes   []*graph.Node
	edges   []*graph.Edge
}

// FindPaths enumerates simple paths from fromID to toID of length <=
// maxDepth, following calls edges, via BFS over path states rather than over
// plain nodes: the state is (current node, visited set, path so far), and a
// path is recorded (not extended) the moment it reaches toID. Capped at
// maxPathsReturned; results are sorted by length ascending, ties preserving
// discovery order (the natural order BFS already produces). from == to
// yields a single zero-length path.
func (e *Engine) FindPaths(ctx context.Context, fromID, toID graph.NodeID, maxDepth int) ([]Path, error) {
	fromNode, ok := e.store.GetNode(fromID)
	if !ok {
		return nil, nil
	}
	if _, ok := e.store.GetNode(toID); !ok {
		return nil, nil
	}

	if fromID == toID {
		return []Path{{Nodes: []*graph.Node{fromNode}}}, nil
	}
	if maxDepth <= 0 {
		return nil, nil
	}

	start := pathState{
		current: fromID,
		visited: map[graph.NodeID]struct{}{fromID: {}},
		nodes:   []*graph.Node{fromNode},
	}
	queue := []pathState{start}

	var found []Path
	explored := 0

	for len(queue) > 0 && len(found) < maxPathsReturned {
		explored++
		if explored%100 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.CancelledErrorKind("query.find_paths.cancelled")
			}
		}

		cur := queue[0]
		queue = queue[1:]

		if len(cur.edges) >= maxDepth {
			continue
		}

		for _, edge := range e.store.GetNeighbors(cur.current, graph.DirectionForward, callEdgeKinds) {
			if !edge.Resolved {
				continue
			}
			if _, seen := cur.visited[edge.To]; seen {
				continue
			}
			next, ok := e.store.GetNode(edge.To)
			if !ok {
				continue
			}

			nextVisited := make(map[graph.NodeID]struct{}, len(cur.visited)+1)
			for id := range cur.visited {
				nextVisited[id] = struct{}{}
			}
			nextVisited[edge.To] = struct{}{}

			nextNodes := make([]*graph.Node, len(cur.nodes), len(cur.nodes)+1)
			copy(nextNodes, cur.nodes)
			nextNodes = append(nextNodes, next)

			nextEdges := make([]*graph.Edge, len(cur.edges), len(cur.edges)+1)
			copy(nextEdges, cur.edges)
			nextEdges = append(nextEdges, edge)

			next_ := pathState{current: edge.To, visited: nextVisited, nodes: nextNodes, edges: nextEdges}

			if edge.To == toID {
				found = append(found, Path{Nodes: nextNodes, Edges: nextEdges})
				if len(found) >= maxPathsReturned {
					break
				}
				continue
			}

			queue = append(queue, next_)
		}
	}

	return found, nil
}
