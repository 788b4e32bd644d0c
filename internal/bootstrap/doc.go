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

// Package bootstrap handles first-run workspace setup: writing a config
// file with documented defaults next to a new workspace, and loading an
// existing one back.
//
// # Initialization Workflow
//
//	info, err := bootstrap.InitWorkspace("/path/to/repo", "", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Config written to: %s\n", info.ConfigPath)
//
//	// Later, open the workspace for indexing
//	info, err = bootstrap.OpenWorkspace(info.ConfigPath)
//
// # Idempotency
//
// InitWorkspace is idempotent: if the config file already exists, it is
// loaded and validated rather than overwritten.
package bootstrap
