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

// TraceArgs holds parameters for a bounded traversal from a single node.
type TraceArgs struct {
	StartID   graph.NodeID
	Direction graph.Direction
	MaxDepth  int
	EdgeKinds []graph.EdgeKind // nil means all kinds
}

// Trace runs a bounded breadth-first traversal from args.StartID, following
// outgoing adjacency for DirectionForward and incoming for DirectionBackward.
// Each reachable node is emitted once, at the minimum depth it was first
// visited at (1 <= depth <= MaxDepth); the starting node itself is never
// included. An unknown start id yields an empty result, not an error.
func (e *Engine) Trace(ctx context.Context, args TraceArgs) ([]TraceHit, error) {
	if _, ok := e.store.GetNode(args.StartID); !ok {
		return nil, nil
	}
	if args.MaxDepth <= 0 {
		return nil, nil
	}

	visited := map[graph.NodeID]struct{}{args.StartID: {}}
	type frontierEntry struct {
		id    graph.NodeID
		depth int
	}
	queue := []frontierEntry{{id: args.StartID, depth: 0}}
	var hits []TraceHit

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, errors.CancelledErrorKind("query.trace.cancelled")
		}

		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= args.MaxDepth {
			continue
		}

		for _, edge := range e.store.GetNeighbors(cur.id, args.Direction, args.EdgeKinds) {
			next := edge.To
			if args.Direction == graph.DirectionBackward {
				next = edge.From
			}
			if next == "" {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			n, ok := e.store.GetNode(next)
			if !ok {
				continue
			}
			visited[next] = struct{}{}
			depth := cur.depth + 1
			hits = append(hits, TraceHit{Node: n, Depth: depth})
			queue = append(queue, frontierEntry{id: next, depth: depth})
		}
	}

	return hits, nil
}
