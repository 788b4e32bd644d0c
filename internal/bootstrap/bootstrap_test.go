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

package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWorkspace_WritesDefaultConfigFile(t *testing.T) {
	root := t.TempDir()

	info, err := InitWorkspace(root, "", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultConfigFileName), info.ConfigPath)
	assert.Equal(t, root, info.Config.WorkspaceRoot)
	assert.FileExists(t, info.ConfigPath)
}

func TestInitWorkspace_IsIdempotent(t *testing.T) {
	root := t.TempDir()

	first, err := InitWorkspace(root, "", nil)
	require.NoError(t, err)

	second, err := InitWorkspace(root, "", nil)
	require.NoError(t, err)
	assert.Equal(t, first.Config, second.Config)
}

func TestInitWorkspace_RequiresRoot(t *testing.T) {
	_, err := InitWorkspace("", "", nil)
	assert.Error(t, err)
}

func TestOpenWorkspace_LoadsWrittenConfig(t *testing.T) {
	root := t.TempDir()
	written, err := InitWorkspace(root, "", nil)
	require.NoError(t, err)

	opened, err := OpenWorkspace(written.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, written.Config.WorkspaceRoot, opened.Config.WorkspaceRoot)
	assert.Equal(t, written.Config.MaxPathsReturned, opened.Config.MaxPathsReturned)
}

func TestOpenWorkspace_MissingFileErrors(t *testing.T) {
	_, err := OpenWorkspace(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
