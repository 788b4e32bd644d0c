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

// Package index wires the scanner, parser, symbol cache, graph store, and
// query engine into the operations a caller drives a workspace index
// through: index, reindex, add_or_update_file, remove_file, and the
// read-only query surface.
package index

import "github.com/kraklabs/codegraph/pkg/graph"

// Stats summarizes the outcome of a build or rebuild.
type Stats struct {
	Nodes              int
	Edges              int
	Files              int
	FilesSkipped       int
	FilesWithParseErrs int
}

func statsFromGraph(g graph.Stats, skipped, parseErrs int) Stats {
	return Stats{
		Nodes:              g.Nodes,
		Edges:              g.Edges,
		Files:              g.Files,
		FilesSkipped:       skipped,
		FilesWithParseErrs: parseErrs,
	}
}
