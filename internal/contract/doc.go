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

// Package contract provides validation constants shared by the indexer.
//
// # File Size Limits
//
// The indexer enforces a soft limit on individual source files to keep one
// oversized file (a vendored bundle, a generated blob) from dominating a
// build's parse time or memory:
//
//	// Default limit is 64 MiB
//	limit := contract.SoftLimitBytes()
//
//	// Check a file's content before parsing it
//	result := contract.ValidateFileSize(content)
//	if !result.OK {
//	    log.Printf("skipping file: %s", result.Message)
//	}
//
// # Configuration via Environment
//
// The soft limit can be adjusted via the CODEGRAPH_SOFT_LIMIT_BYTES
// environment variable:
//
//	export CODEGRAPH_SOFT_LIMIT_BYTES=33554432  # 32 MiB
//
// If the environment variable is not set or invalid, the default limit
// of 64 MiB (DefaultSoftLimitBytes) is used.
package contract
