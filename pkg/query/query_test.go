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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// buildFixture wires up the small call chain used across these tests:
//
//	handler -> service -> repository -> driver
//	handler -> util (exported, called by handler, calls nothing: an entry point in its own right)
//	orphan   (unexported, never called, never calls: not an entry point, unreachable: dead)
func buildFixture(t *testing.T) (*graph.Store, map[string]graph.NodeID) {
	t.Helper()
	store := graph.New()

	mk := func(file, name string, kind syntax.Kind, exported bool) *graph.Node {
		return &graph.Node{
			ID:            graph.NewNodeID(file, name),
			Name:          name,
			QualifiedName: name,
			Kind:          kind,
			File:          file,
			IsExported:    exported,
		}
	}

	handler := mk("handlers/user.go", "HandleRegister", syntax.KindFunction, true)
	service := mk("service/user.go", "RegisterUser", syntax.KindFunction, false)
	repo := mk("repo/user.go", "Save", syntax.KindMethod, false)
	driver := mk("repo/driver.go", "Exec", syntax.KindFunction, false)
	util := mk("util/util.go", "Util", syntax.KindFunction, true)
	orphan := mk("util/orphan.go", "orphan", syntax.KindFunction, false)

	nodes := []*graph.Node{handler, service, repo, driver, util, orphan}

	edges := []*graph.Edge{
		{From: handler.ID, ToRaw: "RegisterUser", Kind: graph.EdgeCalls, Confidence: 1.0},
		{From: service.ID, ToRaw: "Save", Kind: graph.EdgeCalls, Confidence: 1.0},
		{From: repo.ID, ToRaw: "Exec", Kind: graph.EdgeCalls, Confidence: 1.0},
		{From: handler.ID, ToRaw: "Util", Kind: graph.EdgeCalls, Confidence: 1.0},
	}

	store.Add(nodes, edges)
	store.ResolveAll(0.7)

	ids := map[string]graph.NodeID{
		"handler": handler.ID,
		"service": service.ID,
		"repo":    repo.ID,
		"driver":  driver.ID,
		"util":    util.ID,
		"orphan":  orphan.ID,
	}
	return store, ids
}

func TestEngine_GetCallersAndCallees(t *testing.T) {
	store, ids := buildFixture(t)
	e := New(store)

	callers := e.GetCallers("RegisterUser")
	require.Len(t, callers, 1)
	assert.Equal(t, ids["handler"], callers[0].ID)

	callees := e.GetCallees("HandleRegister")
	names := []string{}
	for _, n := range callees {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"RegisterUser", "Util"}, names)
}

func TestEngine_GetCallers_UnknownTarget(t *testing.T) {
	store, _ := buildFixture(t)
	e := New(store)
	assert.Empty(t, e.GetCallers("DoesNotExist"))
}

func TestEngine_Trace_Forward(t *testing.T) {
	store, ids := buildFixture(t)
	e := New(store)

	hits, err := e.Trace(context.Background(), TraceArgs{
		StartID:   ids["handler"],
		Direction: graph.DirectionForward,
		MaxDepth:  10,
		EdgeKinds: callEdgeKinds,
	})
	require.NoError(t, err)

	byName := map[string]int{}
	for _, h := range hits {
		byName[h.Node.Name] = h.Depth
	}
	assert.Equal(t, 1, byName["RegisterUser"])
	assert.Equal(t, 1, byName["Util"])
	assert.Equal(t, 2, byName["Save"])
	assert.Equal(t, 3, byName["Exec"])
}

func TestEngine_Trace_UnknownStart(t *testing.T) {
	store, _ := buildFixture(t)
	e := New(store)
	hits, err := e.Trace(context.Background(), TraceArgs{StartID: "nope", MaxDepth: 5})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestEngine_FindPaths(t *testing.T) {
	store, ids := buildFixture(t)
	e := New(store)

	paths, err := e.FindPaths(context.Background(), ids["handler"], ids["driver"], 10)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 3, paths[0].Len())
}

func TestEngine_FindPaths_ZeroLength(t *testing.T) {
	store, ids := buildFixture(t)
	e := New(store)

	paths, err := e.FindPaths(context.Background(), ids["handler"], ids["handler"], 10)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, 0, paths[0].Len())
}

func TestEngine_FindPaths_DepthExceeded(t *testing.T) {
	store, ids := buildFixture(t)
	e := New(store)

	paths, err := e.FindPaths(context.Background(), ids["handler"], ids["driver"], 1)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestEngine_FindDeadCode(t *testing.T) {
	store, _ := buildFixture(t)
	e := New(store)

	dead, err := e.FindDeadCode(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, d := range dead {
		names = append(names, d.Node.Name)
		assert.Equal(t, unreachableFromExports, d.Reason)
	}
	assert.Contains(t, names, "orphan")
	assert.NotContains(t, names, "RegisterUser")
	assert.NotContains(t, names, "Util")
}

func TestEngine_FindDeadCode_FilePattern(t *testing.T) {
	store, _ := buildFixture(t)
	e := New(store)

	dead, err := e.FindDeadCode(context.Background(), regexp.MustCompile(`^util/`))
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, "orphan", dead[0].Node.Name)
}

func TestEngine_FindSymbols(t *testing.T) {
	store, _ := buildFixture(t)
	e := New(store)

	results := e.FindSymbols(SearchArgs{Pattern: regexp.MustCompile("^Handle")})
	require.Len(t, results, 1)
	assert.Equal(t, "HandleRegister", results[0].Name)
}
