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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/codegraph/pkg/config"
)

// DefaultConfigFileName is the config file InitWorkspace writes and
// OpenWorkspace looks for when no explicit path is given.
const DefaultConfigFileName = ".codegraph.yaml"

// WorkspaceInfo describes a workspace after InitWorkspace or OpenWorkspace.
type WorkspaceInfo struct {
	ConfigPath string
	Config     config.Config
}

// InitWorkspace writes a config file with documented defaults (except
// WorkspaceRoot, which is always root) to configPath, or root's
// DefaultConfigFileName if configPath is empty. It is idempotent: if the
// file already exists, it is loaded and validated rather than overwritten.
func InitWorkspace(root, configPath string, logger *slog.Logger) (*WorkspaceInfo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if root == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(absRoot, DefaultConfigFileName)
	}

	if _, err := os.Stat(configPath); err == nil {
		logger.Info("bootstrap.workspace.init.exists", "config_path", configPath)
		return OpenWorkspace(configPath)
	}

	cfg := config.Default()
	cfg.WorkspaceRoot = absRoot
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("default config invalid: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write config: %w", err)
	}

	logger.Info("bootstrap.workspace.init.created", "config_path", configPath, "root", absRoot)
	return OpenWorkspace(configPath)
}

// OpenWorkspace loads and validates the config file at configPath.
func OpenWorkspace(configPath string) (*WorkspaceInfo, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &WorkspaceInfo{ConfigPath: configPath, Config: cfg}, nil
}
