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
	"regexp"

	"github.com/kraklabs/codegraph/internal/errors"
	"github.com/kraklabs/codegraph/pkg/graph"
)

const unreachableFromExports = "unreachable from exports"

// FindDeadCode identifies callable nodes (function, method, or constructor)
// that no exported symbol's call graph can reach. Entry points are every
// exported callable node, regardless of its own out-degree; a forward trace
// with unbounded depth runs from each, and their reachable sets (plus the
// entry points themselves) are unioned. Anything callable outside that union
// is dead. filePattern, if non-nil, restricts the output, not the
// reachability computation itself.
func (e *Engine) FindDeadCode(ctx context.Context, filePattern *regexp.Regexp) ([]DeadSymbol, error) {
	all := e.store.AllNodes()

	entries := make(map[graph.NodeID]struct{})
	for _, n := range all {
		if !n.IsExported || !n.Callable() {
			continue
		}
		entries[n.ID] = struct{}{}
	}

	reachable := make(map[graph.NodeID]struct{}, len(entries))
	for id := range entries {
		reachable[id] = struct{}{}
	}

	explored := 0
	for id := range entries {
		if err := e.unboundedForwardTrace(ctx, id, reachable, &explored); err != nil {
			return nil, err
		}
	}

	var dead []DeadSymbol
	for _, n := range all {
		if !n.Callable() {
			continue
		}
		if _, ok := reachable[n.ID]; ok {
			continue
		}
		if filePattern != nil && !filePattern.MatchString(n.File) {
			continue
		}
		dead = append(dead, DeadSymbol{Node: n, Reason: unreachableFromExports})
	}
	return dead, nil
}

// unboundedForwardTrace walks outgoing calls adjacency from start with no
// depth limit, adding every node it reaches to reachable.
func (e *Engine) unboundedForwardTrace(ctx context.Context, start graph.NodeID, reachable map[graph.NodeID]struct{}, explored *int) error {
	queue := []graph.NodeID{start}
	for len(queue) > 0 {
		*explored++
		if *explored%500 == 0 {
			if err := ctx.Err(); err != nil {
				return errors.CancelledErrorKind("query.find_dead_code.cancelled")
			}
		}

		cur := queue[0]
		queue = queue[1:]

		for _, edge := range e.store.GetNeighbors(cur, graph.DirectionForward, callEdgeKinds) {
			if !edge.Resolved {
				continue
			}
			if _, seen := reachable[edge.To]; seen {
				continue
			}
			if _, ok := e.store.GetNode(edge.To); !ok {
				continue
			}
			reachable[edge.To] = struct{}{}
			queue = append(queue, edge.To)
		}
	}
	return nil
}
