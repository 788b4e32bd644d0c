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
	"github.com/kraklabs/codegraph/pkg/graph"
	"github.com/kraklabs/codegraph/pkg/syntax"
)

// buildGraph flattens one file's ParseResult into the nodes and edges the
// graph store understands. A synthetic file-kind node roots the per-file
// contains forest and is the source of that file's imports edges; every
// other node comes directly from the symbol tree.
func buildGraph(path string, result *syntax.ParseResult) ([]*graph.Node, []*graph.Edge) {
	var nodes []*graph.Node
	var edges []*graph.Edge
	byQualName := make(map[string]*graph.Node)

	fileNode := &graph.Node{
		ID:            graph.NewNodeID(path, ""),
		Name:          path,
		QualifiedName: "",
		Kind:          syntax.KindFile,
		File:          path,
	}
	nodes = append(nodes, fileNode)
	byQualName[""] = fileNode

	var walk func(sym *syntax.Symbol, ancestors []string, parent *graph.Node)
	walk = func(sym *syntax.Symbol, ancestors []string, parent *graph.Node) {
		chain := append(append([]string{}, ancestors...), sym.Name)
		qualName := syntax.QualifiedName(chain)

		n := &graph.Node{
			ID:            graph.NewNodeID(path, qualName),
			Name:          sym.Name,
			QualifiedName: qualName,
			Kind:          sym.Kind,
			File:          path,
			StartLine:     sym.Span.Start.Line,
		}
		nodes = append(nodes, n)
		byQualName[qualName] = n

		edges = append(edges, &graph.Edge{
			From:       parent.ID,
			To:         n.ID,
			ToRaw:      qualName,
			Resolved:   true,
			Kind:       graph.EdgeContains,
			Line:       sym.Span.Start.Line,
			Confidence: 1.0,
		})

		for _, child := range sym.Children {
			walk(child, chain, n)
		}
	}

	if result.Tree != nil {
		for _, root := range result.Tree.Roots {
			walk(root, nil, fileNode)
		}
	}

	for _, call := range result.Calls {
		from := fileNode
		if call.EnclosingQualName != "" {
			if n, ok := byQualName[call.EnclosingQualName]; ok {
				from = n
			}
		}
		edges = append(edges, &graph.Edge{
			From:       from.ID,
			ToRaw:      call.Callee,
			Resolved:   false,
			Kind:       graph.EdgeCalls,
			Line:       call.Line,
			Confidence: 1.0,
		})
	}

	for _, imp := range result.Imports {
		edges = append(edges, &graph.Edge{
			From:       fileNode.ID,
			ToRaw:      imp.Source,
			Resolved:   false,
			Kind:       graph.EdgeImports,
			Line:       imp.Line,
			Confidence: 1.0,
		})
	}

	markExported(nodes, result.Exports)

	return nodes, edges
}

// markExported sets IsExported on every node whose short name is the local
// name of a non-reexport export binding (reexports of a Source do not name
// an in-file Symbol per the parser contract).
func markExported(nodes []*graph.Node, exports []syntax.ExportInfo) {
	exportedNames := make(map[string]struct{})
	for _, exp := range exports {
		if exp.Source != "" {
			continue
		}
		for _, b := range exp.Bindings {
			if b.Local != "" {
				exportedNames[b.Local] = struct{}{}
			}
		}
	}
	if len(exportedNames) == 0 {
		return
	}
	for _, n := range nodes {
		if _, ok := exportedNames[n.Name]; ok {
			n.IsExported = true
		}
	}
}
