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

package syntax

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func (p *TreeSitterParser) parsePython(path string, content []byte) (*ParseResult, error) {
	tree, hadErrors, err := p.parseWithRecovery(context.Background(), p.pyParser, content, path, LangPython)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()

	var roots []*Symbol
	var imports []ImportInfo
	var calls []CallSite

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_statement", "import_from_statement":
			imports = append(imports, pyImportInfo(child, content)...)
		case "function_definition":
			sym := p.pyFunctionSymbol(child, content, "", path, &calls)
			roots = append(roots, sym)
		case "class_definition":
			sym := p.pyClassSymbol(child, content, path, &calls)
			roots = append(roots, sym)
		case "expression_statement":
			// Module-level assignments are not modeled as symbols; spec.md
			// §4.2 scopes extraction to declarations, not arbitrary bindings.
		}
	}

	exports := pyExports(roots)

	return &ParseResult{
		Tree:        SymbolTree{Language: LangPython, Roots: roots},
		Imports:     imports,
		Exports:     exports,
		Calls:       calls,
		ParseErrors: hadErrors,
	}, nil
}

func (p *TreeSitterParser) pyFunctionSymbol(node *sitter.Node, content []byte, owner, path string, calls *[]CallSite) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = text(content, nameNode)
	}
	kind := KindFunction
	if owner != "" {
		kind = KindMethod
		if name == "__init__" {
			kind = KindConstructor
		}
	}
	body := node.ChildByFieldName("body")
	sym := &Symbol{
		Name:          name,
		Kind:          kind,
		Span:          nodeSpan(node),
		Documentation: pyDocstring(body, content),
	}
	if body != nil {
		s := nodeSpan(body)
		sym.BodySpan = &s
		enclosing := name
		if owner != "" {
			enclosing = QualifiedName([]string{owner, name})
		}
		walkPyCallsInSpan(body, content, path, enclosing, calls)
	}
	return sym
}

func (p *TreeSitterParser) pyClassSymbol(node *sitter.Node, content []byte, path string, calls *[]CallSite) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = text(content, nameNode)
	}
	body := node.ChildByFieldName("body")
	var children []*Symbol
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			member := body.Child(i)
			switch member.Type() {
			case "function_definition":
				children = append(children, p.pyFunctionSymbol(member, content, name, path, calls))
			case "expression_statement":
				if sym := pyClassFieldSymbol(member, content); sym != nil {
					children = append(children, sym)
				}
			}
		}
	}
	return &Symbol{
		Name:          name,
		Kind:          KindClass,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: pyDocstring(body, content),
	}
}

// pyClassFieldSymbol recognizes `name: Type` or `name = value` class-body
// statements as field declarations (dataclass-style attributes).
func pyClassFieldSymbol(node *sitter.Node, content []byte) *Symbol {
	if node.ChildCount() == 0 {
		return nil
	}
	inner := node.Child(0)
	switch inner.Type() {
	case "assignment":
		left := inner.ChildByFieldName("left")
		if left == nil || left.Type() != "identifier" {
			return nil
		}
		return &Symbol{Name: text(content, left), Kind: KindField, Span: nodeSpan(node)}
	}
	return nil
}

// pyDocstring reports the first statement of a body as a docstring if it is
// a bare string literal expression, matching Python convention.
func pyDocstring(body *sitter.Node, content []byte) string {
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	strNode := first.Child(0)
	if strNode.Type() != "string" {
		return ""
	}
	return stripCommentMarkers(trimPyStringPrefix(text(content, strNode)))
}

func trimPyStringPrefix(raw string) string {
	s := strings.TrimLeft(raw, "rRbBuUfF")
	return s
}

func pyExports(roots []*Symbol) []ExportInfo {
	var bindings []ExportBinding
	for _, sym := range roots {
		if strings.HasPrefix(sym.Name, "_") {
			continue
		}
		kind := sym.Kind
		bindings = append(bindings, ExportBinding{Exported: sym.Name, Local: sym.Name, Kind: &kind})
	}
	if len(bindings) == 0 {
		return nil
	}
	return []ExportInfo{{Kind: ExportDeclaration, Bindings: bindings}}
}

func pyImportInfo(node *sitter.Node, content []byte) []ImportInfo {
	sp := node.StartPoint()
	line := int(sp.Row) + 1
	raw := text(content, node)

	if node.Type() == "import_statement" {
		var out []ImportInfo
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "dotted_name":
				name := text(content, child)
				out = append(out, ImportInfo{
					Source:   name,
					Kind:     ImportNamespace,
					Bindings: []ImportBinding{{Local: lastDotSegment(name)}},
					Line:     line,
					Raw:      raw,
				})
			case "aliased_import":
				nameNode := child.ChildByFieldName("name")
				aliasNode := child.ChildByFieldName("alias")
				if nameNode == nil {
					continue
				}
				source := text(content, nameNode)
				local := lastDotSegment(source)
				if aliasNode != nil {
					local = text(content, aliasNode)
				}
				out = append(out, ImportInfo{
					Source:   source,
					Kind:     ImportNamespace,
					Bindings: []ImportBinding{{Local: local, Original: source}},
					Line:     line,
					Raw:      raw,
				})
			}
		}
		return out
	}

	// import_from_statement: `from pkg.mod import a, b as c` / `from . import x`
	moduleNode := node.ChildByFieldName("module_name")
	source := ""
	if moduleNode != nil {
		source = text(content, moduleNode)
	}
	var bindings []ImportBinding
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			if moduleNode != nil && child == moduleNode {
				continue
			}
			name := text(content, child)
			bindings = append(bindings, ImportBinding{Local: name, Original: name})
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			original := text(content, nameNode)
			local := original
			if aliasNode != nil {
				local = text(content, aliasNode)
			}
			bindings = append(bindings, ImportBinding{Local: local, Original: original})
		case "wildcard_import":
			bindings = append(bindings, ImportBinding{Local: "*", Original: "*"})
		}
	}
	return []ImportInfo{{
		Source:   source,
		Kind:     ImportNamed,
		Bindings: bindings,
		Line:     line,
		Raw:      raw,
	}}
}

func lastDotSegment(s string) string {
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func walkPyCallsInSpan(node *sitter.Node, content []byte, path, enclosing string, out *[]CallSite) {
	if node == nil {
		return
	}
	if node.Type() == "call" {
		fnNode := node.ChildByFieldName("function")
		if name := pyCalleeName(fnNode, content); name != "" {
			sp := node.StartPoint()
			*out = append(*out, CallSite{
				Callee:            name,
				File:              path,
				Line:              int(sp.Row) + 1,
				Column:            int(sp.Column) + 1,
				EnclosingQualName: enclosing,
				Context:           callContextLine(content, node),
			})
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkPyCallsInSpan(node.Child(i), content, path, enclosing, out)
	}
}

func pyCalleeName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return text(content, node)
	case "attribute":
		attr := node.ChildByFieldName("attribute")
		if attr != nil {
			return text(content, attr)
		}
	}
	return ""
}
