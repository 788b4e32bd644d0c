// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

func TestSetupTestWorkspace_IndexesWrittenFiles(t *testing.T) {
	idx, _ := SetupTestWorkspace(t, map[string]string{
		"main.go": "package main\n\nfunc main() {}\n",
	})

	stats, err := idx.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.Zero(t, stats.FilesSkipped)
}

func TestSetupTestWorkspace_IsolatedAcrossCalls(t *testing.T) {
	idxA, cfgA := SetupTestWorkspace(t, map[string]string{"a.go": "package a\n"})
	idxB, cfgB := SetupTestWorkspace(t, map[string]string{"b.go": "package b\n"})

	assert.NotEqual(t, cfgA.WorkspaceRoot, cfgB.WorkspaceRoot)

	statsA, err := idxA.Index(context.Background())
	require.NoError(t, err)
	statsB, err := idxB.Index(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, statsA.Files)
	assert.Equal(t, 1, statsB.Files)
}

func TestNewTestNode_DerivesShortNameFromQualifiedName(t *testing.T) {
	n := NewTestNode("svc.go", "UserService.getUser", syntax.KindMethod, false)
	assert.Equal(t, "getUser", n.Name)
	assert.Equal(t, graph.NewNodeID("svc.go", "UserService.getUser"), n.ID)

	top := NewTestNode("svc.go", "run", syntax.KindFunction, true)
	assert.Equal(t, "run", top.Name)
	assert.True(t, top.IsExported)
}

func TestBuildTestStore_ResolvesCallEdges(t *testing.T) {
	caller := NewTestNode("a.go", "caller", syntax.KindFunction, true)
	callee := NewTestNode("a.go", "callee", syntax.KindFunction, false)

	store := BuildTestStore(
		[]*graph.Node{caller, callee},
		[]*graph.Edge{NewTestCallEdge(caller.ID, callee.ID)},
	)

	neighbors := store.GetNeighbors(caller.ID, graph.DirectionForward, []graph.EdgeKind{graph.EdgeCalls})
	require.Len(t, neighbors, 1)
	assert.True(t, neighbors[0].Resolved)
	assert.Equal(t, callee.ID, neighbors[0].To)
}
