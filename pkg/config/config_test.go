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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.UseGitignore)
	assert.Equal(t, 100, cfg.MaxPathsReturned)
	assert.Equal(t, 5, cfg.TraceDefaultDepth)
	assert.InDelta(t, 0.7, cfg.EdgeResolverAmbiguityConfidence, 1e-9)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 100, cfg.WatchDebounceMs)
	assert.Equal(t, 1, cfg.ParserWorkers)
	assert.Contains(t, cfg.Extensions, ".go")
	assert.Contains(t, cfg.Extensions, ".py")
}

func TestDefault_RequiresWorkspaceRoot(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.WorkspaceRoot = t.TempDir()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsRelativeWorkspaceRoot(t *testing.T) {
	cfg := Default()
	cfg.WorkspaceRoot = "relative/path"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsMissingWorkspaceRoot(t *testing.T) {
	cfg := Default()
	cfg.WorkspaceRoot = filepath.Join(t.TempDir(), "does-not-exist")
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsWorkspaceRootThatIsAFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	cfg := Default()
	cfg.WorkspaceRoot = path
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveFields(t *testing.T) {
	base := Default()
	base.WorkspaceRoot = t.TempDir()

	bad := base
	bad.MaxPathsReturned = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.EdgeResolverAmbiguityConfidence = 1.5
	assert.Error(t, bad.Validate())

	bad = base
	bad.ParserWorkers = -1
	assert.Error(t, bad.Validate())
}

func TestLoad_AppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace_root: "+dir+"\nparser_workers: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.WorkspaceRoot)
	assert.Equal(t, 4, cfg.ParserWorkers)
	assert.Equal(t, 100, cfg.MaxPathsReturned) // untouched by the file, stays at default
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
