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

package graph

import (
	"regexp"
	"sync"

	"github.com/kraklabs/codegraph/pkg/syntax"
)

// Store is the authoritative in-memory database: a node table, outgoing and
// incoming adjacency lists, a file index, and the set of edges still
// awaiting resolution. All mutating operations take a single exclusive
// write lock; reads take a shared lock, per the single-writer/multi-reader
// model.
type Store struct {
	mu sync.RWMutex

	nodes       map[NodeID]*Node
	insertOrder []NodeID
	outgoing    map[NodeID][]*Edge
	incoming    map[NodeID][]*Edge
	fileIndex   map[string]map[NodeID]struct{}
	unresolved  []*Edge
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		nodes:     make(map[NodeID]*Node),
		outgoing:  make(map[NodeID][]*Edge),
		incoming:  make(map[NodeID][]*Edge),
		fileIndex: make(map[string]map[NodeID]struct{}),
	}
}

// Add inserts all nodes and appends all edges to the outgoing adjacency
// list (and, for already-resolved edges, the incoming list too), updating
// the file index. Edges whose To is not yet known are queued for the
// resolver.
func (s *Store) Add(nodes []*Node, edges []*Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(nodes, edges)
}

// addLocked is Add's body without the lock; callers must hold s.mu for
// writing. Split out so UpdateFile can run remove+add+resolve as one
// critical section.
func (s *Store) addLocked(nodes []*Node, edges []*Edge) {
	for _, n := range nodes {
		if _, exists := s.nodes[n.ID]; !exists {
			s.insertOrder = append(s.insertOrder, n.ID)
		}
		s.nodes[n.ID] = n
		if s.fileIndex[n.File] == nil {
			s.fileIndex[n.File] = make(map[NodeID]struct{})
		}
		s.fileIndex[n.File][n.ID] = struct{}{}
	}

	for _, e := range edges {
		s.outgoing[e.From] = append(s.outgoing[e.From], e)
		if e.Resolved {
			s.incoming[e.To] = append(s.incoming[e.To], e)
		} else {
			s.unresolved = append(s.unresolved, e)
		}
	}
}

// RemoveFile deletes every node declared in path, their outgoing adjacency,
// and prunes them from other nodes' incoming lists. Edges that pointed into
// the removed set from elsewhere revert to unresolved (keyed on their
// original raw name) rather than being dropped, so a later re-add of a
// same-named symbol can re-resolve them.
func (s *Store) RemoveFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFileLocked(path)
}

// removeFileLocked is RemoveFile's body without the lock; callers must hold
// s.mu for writing.
func (s *Store) removeFileLocked(path string) {
	ids := s.fileIndex[path]
	if len(ids) == 0 {
		return
	}

	for id := range ids {
		for _, e := range s.incoming[id] {
			e.Resolved = false
			e.To = ""
			s.unresolved = append(s.unresolved, e)
		}
		delete(s.incoming, id)

		for _, e := range s.outgoing[id] {
			if e.Resolved {
				s.incoming[e.To] = removeEdge(s.incoming[e.To], e)
			}
		}
		delete(s.outgoing, id)

		s.unresolved = removeEdgesFrom(s.unresolved, id)
		delete(s.nodes, id)
	}

	delete(s.fileIndex, path)
}

func removeEdge(edges []*Edge, target *Edge) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}

func removeEdgesFrom(edges []*Edge, id NodeID) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.From != id {
			out = append(out, e)
		}
	}
	return out
}

// Clear resets the store to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[NodeID]*Node)
	s.insertOrder = nil
	s.outgoing = make(map[NodeID][]*Edge)
	s.incoming = make(map[NodeID][]*Edge)
	s.fileIndex = make(map[string]map[NodeID]struct{})
	s.unresolved = nil
}

// Stats reports node, outgoing-edge, and file counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := 0
	for _, list := range s.outgoing {
		edges += len(list)
	}
	return Stats{Nodes: len(s.nodes), Edges: edges, Files: len(s.fileIndex)}
}

// GetNode looks up a node by id.
func (s *Store) GetNode(id NodeID) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok
}

// GetNeighbors returns the edges adjacent to id in the given direction,
// optionally filtered to a set of edge kinds (nil/empty means all kinds).
func (s *Store) GetNeighbors(id NodeID, direction Direction, kinds []EdgeKind) []*Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*Edge
	if direction == DirectionBackward {
		list = s.incoming[id]
	} else {
		list = s.outgoing[id]
	}

	if len(kinds) == 0 {
		out := make([]*Edge, len(list))
		copy(out, list)
		return out
	}

	allowed := make(map[EdgeKind]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}
	var out []*Edge
	for _, e := range list {
		if _, ok := allowed[e.Kind]; ok {
			out = append(out, e)
		}
	}
	return out
}

// FindSymbols scans the node table in insertion order, keeping nodes whose
// kind is in kinds (if non-empty) and whose short name or qualified name
// matches pattern, stopping at limit (0 means unlimited).
func (s *Store) FindSymbols(pattern *regexp.Regexp, kinds []syntax.Kind, limit int) []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allowed map[syntax.Kind]struct{}
	if len(kinds) > 0 {
		allowed = make(map[syntax.Kind]struct{}, len(kinds))
		for _, k := range kinds {
			allowed[k] = struct{}{}
		}
	}

	var out []*Node
	for _, id := range s.insertOrder {
		n, ok := s.nodes[id]
		if !ok {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[n.Kind]; !ok {
				continue
			}
		}
		if pattern != nil && !pattern.MatchString(n.Name) && !pattern.MatchString(n.QualifiedName) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// AllNodes returns every live node in insertion order. Used by the query
// engine's dead-code analysis, which must scan the whole table.
func (s *Store) AllNodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Node, 0, len(s.nodes))
	for _, id := range s.insertOrder {
		if n, ok := s.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
