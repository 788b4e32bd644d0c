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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/codegraph/pkg/syntax"
)

func node(file, name string, kind syntax.Kind) *Node {
	return &Node{
		ID:            NewNodeID(file, name),
		Name:          name,
		QualifiedName: name,
		Kind:          kind,
		File:          file,
		IsExported:    true,
	}
}

func TestStore_AddAndStats(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	b := node("a.go", "Bar", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Bar", Kind: EdgeCalls, Confidence: 1.0}

	s.Add([]*Node{a, b}, []*Edge{edge})

	stats := s.Stats()
	assert.Equal(t, 2, stats.Nodes)
	assert.Equal(t, 1, stats.Edges)
	assert.Equal(t, 1, stats.Files)
}

func TestStore_ResolveAll_UniqueShortName(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	b := node("a.go", "Bar", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Bar", Kind: EdgeCalls, Confidence: 1.0}
	s.Add([]*Node{a, b}, []*Edge{edge})

	resolved := s.ResolveAll(0.7)
	require.Equal(t, 1, resolved)
	assert.True(t, edge.Resolved)
	assert.Equal(t, b.ID, edge.To)
	assert.Equal(t, 1.0, edge.Confidence)
}

func TestStore_ResolveAll_AmbiguousShortName(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	b1 := node("a.go", "Helper", syntax.KindFunction)
	b2 := node("b.go", "Helper", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Helper", Kind: EdgeCalls, Confidence: 1.0}
	s.Add([]*Node{a, b1, b2}, []*Edge{edge})

	resolved := s.ResolveAll(0.7)
	require.Equal(t, 1, resolved)
	assert.True(t, edge.Resolved)
	assert.InDelta(t, 0.7, edge.Confidence, 1e-9)
}

func TestStore_ResolveAll_QualifiedNamePreferred(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	method := &Node{ID: NewNodeID("b.go", "Svc.Run"), Name: "Run", QualifiedName: "Svc.Run", Kind: syntax.KindMethod, File: "b.go"}
	decoy := node("c.go", "Run", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Svc.Run", Kind: EdgeCalls, Confidence: 1.0}
	s.Add([]*Node{a, method, decoy}, []*Edge{edge})

	resolved := s.ResolveAll(0.7)
	require.Equal(t, 1, resolved)
	assert.Equal(t, method.ID, edge.To)
	assert.Equal(t, 1.0, edge.Confidence)
}

func TestStore_ResolveAll_Unresolvable(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Nonexistent", Kind: EdgeCalls, Confidence: 1.0}
	s.Add([]*Node{a}, []*Edge{edge})

	resolved := s.ResolveAll(0.7)
	assert.Equal(t, 0, resolved)
	assert.False(t, edge.Resolved)
}

func TestStore_RemoveFile(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	b := node("b.go", "Bar", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Bar", Kind: EdgeCalls, Confidence: 1.0}
	s.Add([]*Node{a, b}, []*Edge{edge})
	s.ResolveAll(0.7)
	require.True(t, edge.Resolved)

	s.RemoveFile("a.go")

	_, ok := s.GetNode(a.ID)
	assert.False(t, ok)
	neighbors := s.GetNeighbors(b.ID, DirectionBackward, nil)
	assert.Empty(t, neighbors)

	stats := s.Stats()
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, 0, stats.Edges)
}

func TestStore_RemoveFile_RevertsIncomingToUnresolved(t *testing.T) {
	s := New()
	a := node("a.go", "Foo", syntax.KindFunction)
	b := node("b.go", "Bar", syntax.KindFunction)
	edge := &Edge{From: a.ID, ToRaw: "Bar", Kind: EdgeCalls, Confidence: 1.0}
	s.Add([]*Node{a, b}, []*Edge{edge})
	s.ResolveAll(0.7)

	s.RemoveFile("b.go")

	assert.False(t, edge.Resolved)
	assert.Equal(t, NodeID(""), edge.To)

	c := node("c.go", "Bar", syntax.KindFunction)
	s.Add([]*Node{c}, nil)
	resolved := s.ResolveAll(0.7)
	assert.Equal(t, 1, resolved)
	assert.Equal(t, c.ID, edge.To)
}

func TestStore_FindSymbols(t *testing.T) {
	s := New()
	svc := node("a.go", "UserService", syntax.KindClass)
	iface := node("a.go", "User", syntax.KindInterface)
	s.Add([]*Node{svc, iface}, nil)

	results := s.FindSymbols(regexp.MustCompile("^User$"), []syntax.Kind{syntax.KindInterface}, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "User", results[0].Name)
	assert.Equal(t, syntax.KindInterface, results[0].Kind)
}

func TestStore_UpdateFile_ReplacesAndResolves(t *testing.T) {
	s := New()
	caller := node("caller.go", "Main", syntax.KindFunction)
	edgeIn := &Edge{From: caller.ID, ToRaw: "Handle", Kind: EdgeCalls, Confidence: 1.0}
	oldHandle := node("a.go", "Handle", syntax.KindFunction)
	s.Add([]*Node{caller, oldHandle}, []*Edge{edgeIn})
	s.ResolveAll(0.7)
	require.True(t, edgeIn.Resolved)

	newHandle := node("a.go", "Handle", syntax.KindFunction)
	resolved := s.UpdateFile("a.go", []*Node{newHandle}, nil, 0.7)

	assert.Equal(t, 1, resolved)
	assert.True(t, edgeIn.Resolved)
	assert.Equal(t, newHandle.ID, edgeIn.To)

	_, stillThere := s.GetNode(newHandle.ID)
	assert.True(t, stillThere)
}
