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

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPathOrDefault_UsesExplicitFlag(t *testing.T) {
	g := &GlobalFlags{ConfigPath: "/tmp/explicit.yaml"}
	assert.Equal(t, "/tmp/explicit.yaml", configPathOrDefault(g))
}

func TestConfigPathOrDefault_FallsBackToCwd(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	g := &GlobalFlags{}
	got := configPathOrDefault(g)
	assert.Equal(t, filepath.Join(cwd, ".codegraph.yaml"), got)
}

func TestNewLogger_ScalesWithVerbosity(t *testing.T) {
	cases := []struct {
		verbose int
		level   slog.Level
	}{
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{5, slog.LevelDebug},
	}
	for _, tc := range cases {
		logger := newLogger(&GlobalFlags{Verbose: tc.verbose})
		assert.True(t, logger.Enabled(nil, tc.level))
	}
}
