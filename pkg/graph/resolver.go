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

// ResolveAll runs the resolver over every edge still awaiting resolution:
// build a qualified-name index and a short-name index over all current
// nodes, then for each unresolved edge prefer the qualified-name match
// (confidence unchanged); else a unique short-name match (confidence
// unchanged); else the first-encountered short-name match among several,
// with confidence multiplied by ambiguityConfidence; else leave it
// unresolved. Returns the number of edges newly resolved.
func (s *Store) ResolveAll(ambiguityConfidence float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(s.unresolved, ambiguityConfidence)
}

// ResolveScoped resolves only the subset of unresolved edges relevant to a
// single changed file: edges originating from nodes in that file, plus any
// other unresolved edge whose raw callee name matches a node declared in
// that file (covers both a newly introduced definition and one just
// removed, the latter via the edge reverted to unresolved by RemoveFile).
func (s *Store) ResolveScoped(file string, ambiguityConfidence float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(s.scopedUnresolvedLocked(file), ambiguityConfidence)
}

// scopedUnresolvedLocked computes the edge scope for ResolveScoped; callers
// must hold s.mu.
func (s *Store) scopedUnresolvedLocked(file string) []*Edge {
	fileNodeNames := make(map[string]struct{})
	for id := range s.fileIndex[file] {
		if n := s.nodes[id]; n != nil {
			fileNodeNames[n.Name] = struct{}{}
			fileNodeNames[n.QualifiedName] = struct{}{}
		}
	}

	var scope []*Edge
	for _, e := range s.unresolved {
		if n := s.nodes[e.From]; n != nil && n.File == file {
			scope = append(scope, e)
			continue
		}
		if _, ok := fileNodeNames[e.ToRaw]; ok {
			scope = append(scope, e)
		}
	}
	return scope
}

// UpdateFile runs the file-change sequence remove_file -> add(nodes) ->
// add(edges) -> resolve(scoped to file) as a single critical section, so a
// concurrent query observes either the pre-update or the post-update graph,
// never a partial state in between.
func (s *Store) UpdateFile(file string, nodes []*Node, edges []*Edge, ambiguityConfidence float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeFileLocked(file)
	s.addLocked(nodes, edges)
	return s.resolveLocked(s.scopedUnresolvedLocked(file), ambiguityConfidence)
}

// resolveLocked must be called with s.mu held for writing.
func (s *Store) resolveLocked(scope []*Edge, ambiguityConfidence float64) int {
	if len(scope) == 0 {
		return 0
	}

	byQualified := make(map[string][]NodeID)
	byName := make(map[string][]NodeID)
	for id, n := range s.nodes {
		byQualified[n.QualifiedName] = append(byQualified[n.QualifiedName], id)
		byName[n.Name] = append(byName[n.Name], id)
	}

	resolved := make(map[*Edge]struct{})
	for _, e := range scope {
		if e.Resolved {
			continue
		}
		if ids := byQualified[e.ToRaw]; len(ids) > 0 {
			e.To = ids[0]
			e.Resolved = true
			resolved[e] = struct{}{}
			continue
		}
		if ids := byName[e.ToRaw]; len(ids) == 1 {
			e.To = ids[0]
			e.Resolved = true
			resolved[e] = struct{}{}
		} else if len(ids) > 1 {
			e.To = ids[0]
			e.Resolved = true
			e.Confidence *= ambiguityConfidence
			resolved[e] = struct{}{}
		}
	}

	if len(resolved) == 0 {
		return 0
	}

	for e := range resolved {
		s.incoming[e.To] = append(s.incoming[e.To], e)
	}

	remaining := s.unresolved[:0]
	for _, e := range s.unresolved {
		if _, done := resolved[e]; !done {
			remaining = append(remaining, e)
		}
	}
	s.unresolved = remaining

	return len(resolved)
}
