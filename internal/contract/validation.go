// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"os"
	"strconv"
)

// DefaultSoftLimitBytes is the baseline soft limit on a single source file's
// size before the indexer skips parsing it outright.
const DefaultSoftLimitBytes = 64 << 20 // 64 MiB

// SoftLimitBytes returns the effective soft limit for one source file's
// size. Controlled via env CODEGRAPH_SOFT_LIMIT_BYTES; falls back to
// DefaultSoftLimitBytes.
func SoftLimitBytes() int {
	if v := os.Getenv("CODEGRAPH_SOFT_LIMIT_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultSoftLimitBytes
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateFileSize checks content against the soft limit, so a single
// oversized file (a vendored bundle, a generated blob) can't blow up parse
// time or memory for an entire index run.
func ValidateFileSize(content []byte) *ValidationResult {
	if len(content) > SoftLimitBytes() {
		return &ValidationResult{
			OK:      false,
			Message: "file exceeds soft size limit",
		}
	}
	return &ValidationResult{OK: true}
}
