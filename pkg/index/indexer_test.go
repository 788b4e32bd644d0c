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

package index

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/codegraph/pkg/config"
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("testdata", "fixture"))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.WorkspaceRoot = root
	require.NoError(t, cfg.Validate())
	return cfg
}

func nodeNames(nodes []*graph.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}

func TestIndexer_Index_BuildsGraphFromFixture(t *testing.T) {
	idx, err := New(fixtureConfig(t), nil)
	require.NoError(t, err)

	stats, err := idx.Index(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Files)
	assert.Zero(t, stats.FilesSkipped)
	assert.Zero(t, stats.FilesWithParseErrs)
	assert.Greater(t, stats.Nodes, 0)
	assert.Greater(t, stats.Edges, 0)
}

func TestIndexer_FindSymbols_MatchesClassByName(t *testing.T) {
	idx, err := New(fixtureConfig(t), nil)
	require.NoError(t, err)
	_, err = idx.Index(context.Background())
	require.NoError(t, err)

	found := idx.FindSymbols(regexp.MustCompile("^UserService$"), []syntax.Kind{syntax.KindClass}, 10)
	require.Len(t, found, 1)
	assert.Equal(t, "UserService", found[0].Name)
	assert.True(t, found[0].IsExported)
}

func TestIndexer_GetCallees_ValidateCreateUserInput(t *testing.T) {
	idx, err := New(fixtureConfig(t), nil)
	require.NoError(t, err)
	_, err = idx.Index(context.Background())
	require.NoError(t, err)

	callees := idx.GetCallees("ValidateCreateUserInput")
	assert.ElementsMatch(t, []string{"ValidateName", "ValidateEmail"}, nodeNames(callees))
}

func TestIndexer_GetCallers_FindById(t *testing.T) {
	idx, err := New(fixtureConfig(t), nil)
	require.NoError(t, err)
	_, err = idx.Index(context.Background())
	require.NoError(t, err)

	callers := idx.GetCallers("FindById")
	assert.ElementsMatch(t, []string{"GetUser"}, nodeNames(callers))
}

func TestIndexer_FindPaths_RegistrationToValidateEmail(t *testing.T) {
	idx, err := New(fixtureConfig(t), nil)
	require.NoError(t, err)
	_, err = idx.Index(context.Background())
	require.NoError(t, err)

	start := idx.FindSymbols(regexp.MustCompile("^ProcessUserRegistration$"), nil, 1)
	require.Len(t, start, 1)
	end := idx.FindSymbols(regexp.MustCompile("^ValidateEmail$"), nil, 1)
	require.Len(t, end, 1)

	paths, err := idx.FindPaths(context.Background(), start[0].ID, end[0].ID, 5)
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.LessOrEqual(t, paths[0].Len(), 5)
}

func TestIndexer_FindDeadCode_FindsUnreferencedMethods(t *testing.T) {
	idx, err := New(fixtureConfig(t), nil)
	require.NoError(t, err)
	_, err = idx.Index(context.Background())
	require.NoError(t, err)

	dead, err := idx.FindDeadCode(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, len(dead))
	for i, d := range dead {
		names[i] = d.Node.Name
		assert.Equal(t, "unreachable from exports", d.Reason)
	}
	assert.ElementsMatch(t, []string{"FindByEmail", "Delete", "DeleteUser"}, names)
}

func TestIndexer_AddOrUpdateFile_RevertsUnresolvedEdgeOnRemoval(t *testing.T) {
	cfg := fixtureConfig(t)
	idx, err := New(cfg, nil)
	require.NoError(t, err)
	_, err = idx.Index(context.Background())
	require.NoError(t, err)

	before := idx.GetCallees("ValidateCreateUserInput")
	require.Len(t, before, 2)

	src := filepath.Join(cfg.WorkspaceRoot, "user.go")
	original, err := os.ReadFile(src)
	require.NoError(t, err)

	trimmed := regexp.MustCompile(`(?s)func ValidateName\(name string\) bool \{.*?\n\}\n\n`).ReplaceAll(original, nil)
	require.NotEqual(t, original, trimmed)
	require.NoError(t, os.WriteFile(src, trimmed, 0o644))
	t.Cleanup(func() { _ = os.WriteFile(src, original, 0o644) })

	require.NoError(t, idx.AddOrUpdateFile(context.Background(), "user.go"))

	after := idx.GetCallees("ValidateCreateUserInput")
	assert.ElementsMatch(t, []string{"ValidateEmail"}, nodeNames(after))
}
