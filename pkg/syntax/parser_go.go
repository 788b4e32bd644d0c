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

func (p *TreeSitterParser) parseGo(path string, content []byte) (*ParseResult, error) {
	tree, hadErrors, err := p.parseWithRecovery(context.Background(), p.goParser, content, path, LangGo)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()

	var roots []*Symbol
	var calls []CallSite
	var imports []ImportInfo

	type pendingMethod struct {
		sym      *Symbol
		node     *sitter.Node
		recvType string
	}
	var pendingMethods []pendingMethod

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_declaration":
			imports = append(imports, goImportSpecs(child, content)...)
		case "function_declaration":
			if sym := p.goFunctionSymbol(child, content); sym != nil {
				roots = append(roots, sym)
				calls = append(calls, p.goCallsInBody(child, content, path, sym.Name)...)
			}
		case "method_declaration":
			sym, recvType := p.goMethodSymbol(child, content)
			if sym != nil {
				pendingMethods = append(pendingMethods, pendingMethod{sym: sym, node: child, recvType: recvType})
			}
		case "type_declaration":
			roots = append(roots, p.goTypeSymbols(child, content)...)
		case "const_declaration":
			roots = append(roots, goValueSymbols(child, content, KindConstant)...)
		case "var_declaration":
			roots = append(roots, goValueSymbols(child, content, KindVariable)...)
		}
	}

	// Go methods are declared as standalone top-level forms, not nested
	// inside their receiver type's declaration; attach each to the matching
	// in-file type symbol (mirroring how parser_rust.go folds impl blocks
	// onto their target type) so its qualified name and export status follow
	// the receiver the same way a class method would in other languages.
	for _, pm := range pendingMethods {
		enclosing := pm.recvType + "." + pm.sym.Name
		owner := findRootSymbolByName(roots, pm.recvType)
		if owner != nil {
			owner.Children = append(owner.Children, pm.sym)
		} else {
			pm.sym.Name = enclosing
			roots = append(roots, pm.sym)
		}
		calls = append(calls, p.goCallsInBody(pm.node, content, path, enclosing)...)
	}

	exports := goExports(roots)

	return &ParseResult{
		Tree:        SymbolTree{Language: LangGo, Roots: roots},
		Imports:     imports,
		Exports:     exports,
		Calls:       calls,
		ParseErrors: hadErrors,
	}, nil
}

func (p *TreeSitterParser) goFunctionSymbol(node *sitter.Node, content []byte) *Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := text(content, nameNode)
	body := node.ChildByFieldName("body")
	sym := &Symbol{
		Name:          name,
		Kind:          KindFunction,
		Span:          nodeSpan(node),
		Documentation: docComment(content, node, isGoDocComment),
	}
	if body != nil {
		s := nodeSpan(body)
		sym.BodySpan = &s
	}
	return sym
}

// goMethodSymbol returns the method's Symbol, named with its short
// (unqualified) name, and the receiver's base type name so the caller can
// attach it under that type's Symbol.
func (p *TreeSitterParser) goMethodSymbol(node *sitter.Node, content []byte) (*Symbol, string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, ""
	}
	name := text(content, nameNode)
	receiver := node.ChildByFieldName("receiver")
	recvType := ""
	if receiver != nil {
		recvType = goReceiverTypeName(receiver, content)
	}
	body := node.ChildByFieldName("body")
	sym := &Symbol{
		Name:          name,
		Kind:          KindMethod,
		Span:          nodeSpan(node),
		Documentation: docComment(content, node, isGoDocComment),
	}
	if body != nil {
		s := nodeSpan(body)
		sym.BodySpan = &s
	}
	return sym, recvType
}

// findRootSymbolByName looks up a top-level type symbol by its short name.
func findRootSymbolByName(roots []*Symbol, name string) *Symbol {
	if name == "" {
		return nil
	}
	for _, s := range roots {
		if s.Name == name && (s.Kind == KindClass || s.Kind == KindInterface) {
			return s
		}
	}
	return nil
}

// goReceiverTypeName extracts "T" from receivers like "(t T)" or "(t *T)".
func goReceiverTypeName(receiver *sitter.Node, content []byte) string {
	for i := 0; i < int(receiver.ChildCount()); i++ {
		child := receiver.Child(i)
		if child.Type() == "parameter_declaration" {
			typeNode := child.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			return goBaseTypeName(typeNode, content)
		}
	}
	return ""
}

func goBaseTypeName(node *sitter.Node, content []byte) string {
	switch node.Type() {
	case "pointer_type":
		inner := node.Child(int(node.ChildCount()) - 1)
		return goBaseTypeName(inner, content)
	case "generic_type":
		typeNode := node.ChildByFieldName("type")
		if typeNode != nil {
			return goBaseTypeName(typeNode, content)
		}
	}
	return text(content, node)
}

// goTypeSymbols expands `type ( ... )` blocks and single `type Name struct{...}`.
func (p *TreeSitterParser) goTypeSymbols(node *sitter.Node, content []byte) []*Symbol {
	var out []*Symbol
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_spec":
			if sym := p.goTypeSpecSymbol(child, content, node); sym != nil {
				out = append(out, sym)
			}
		case "type_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() == "type_spec" {
					if sym := p.goTypeSpecSymbol(spec, content, node); sym != nil {
						out = append(out, sym)
					}
				}
			}
		}
	}
	return out
}

func (p *TreeSitterParser) goTypeSpecSymbol(node *sitter.Node, content []byte, declNode *sitter.Node) *Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := text(content, nameNode)
	typeNode := node.ChildByFieldName("type")

	kind := KindTypeAlias
	var children []*Symbol
	if typeNode != nil {
		switch typeNode.Type() {
		case "struct_type":
			kind = KindClass
			children = goStructFields(typeNode, content)
		case "interface_type":
			kind = KindInterface
			children = goInterfaceMembers(typeNode, content)
		}
	}

	return &Symbol{
		Name:          name,
		Kind:          kind,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: docComment(content, declNode, isGoDocComment),
	}
}

func goStructFields(structType *sitter.Node, content []byte) []*Symbol {
	fieldList := structType.ChildByFieldName("body")
	if fieldList == nil {
		return nil
	}
	var fields []*Symbol
	for i := 0; i < int(fieldList.ChildCount()); i++ {
		child := fieldList.Child(i)
		if child.Type() != "field_declaration" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			// Embedded field: the type itself is the name.
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				fields = append(fields, &Symbol{
					Name: goBaseTypeName(typeNode, content),
					Kind: KindField,
					Span: nodeSpan(child),
				})
			}
			continue
		}
		fields = append(fields, &Symbol{
			Name: text(content, nameNode),
			Kind: KindField,
			Span: nodeSpan(child),
		})
	}
	return fields
}

func goInterfaceMembers(ifaceType *sitter.Node, content []byte) []*Symbol {
	var members []*Symbol
	for i := 0; i < int(ifaceType.ChildCount()); i++ {
		child := ifaceType.Child(i)
		if child.Type() != "method_elem" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		members = append(members, &Symbol{
			Name: text(content, nameNode),
			Kind: KindMethod,
			Span: nodeSpan(child),
		})
	}
	return members
}

func goValueSymbols(node *sitter.Node, content []byte, kind Kind) []*Symbol {
	var out []*Symbol
	var specs []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "const_spec", "var_spec":
			specs = append(specs, child)
		case "const_spec_list", "var_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() == "const_spec" || spec.Type() == "var_spec" {
					specs = append(specs, spec)
				}
			}
		}
	}
	for _, spec := range specs {
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		for _, n := range splitGoIdentifierList(nameNode, content) {
			out = append(out, &Symbol{Name: n, Kind: kind, Span: nodeSpan(spec)})
		}
	}
	return out
}

// splitGoIdentifierList handles `a, b = 1, 2` style name lists; tree-sitter-go
// represents multi-name specs with the name field pointing at the first
// identifier and siblings for the rest, so we walk the spec's children.
func splitGoIdentifierList(nameNode *sitter.Node, content []byte) []string {
	parent := nameNode.Parent()
	if parent == nil {
		return []string{text(content, nameNode)}
	}
	var names []string
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child.Type() == "identifier" {
			names = append(names, text(content, child))
		}
	}
	if len(names) == 0 {
		return []string{text(content, nameNode)}
	}
	return names
}

func goExports(roots []*Symbol) []ExportInfo {
	var bindings []ExportBinding
	for _, sym := range roots {
		if sym.Kind == KindMethod {
			continue // methods are exported via their receiver type, not independently
		}
		name := sym.Name
		if name == "" || !isExportedGoName(name) {
			continue
		}
		kind := sym.Kind
		bindings = append(bindings, ExportBinding{Exported: name, Local: name, Kind: &kind})
	}
	if len(bindings) == 0 {
		return nil
	}
	return []ExportInfo{{Kind: ExportDeclaration, Bindings: bindings}}
}

func isExportedGoName(name string) bool {
	r := []rune(name)
	return len(r) > 0 && strings.ToUpper(string(r[0])) == string(r[0]) && strings.ToLower(string(r[0])) != string(r[0])
}

func isGoDocComment(raw string) bool {
	return strings.HasPrefix(raw, "//")
}

// goCallsInBody scans only the function/method's body span for call
// expressions, recording the callee name as written (not resolved).
func (p *TreeSitterParser) goCallsInBody(declNode *sitter.Node, content []byte, path, enclosing string) []CallSite {
	body := declNode.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var calls []CallSite
	walkGoCalls(body, content, path, enclosing, &calls)
	return calls
}

func walkGoCalls(node *sitter.Node, content []byte, path, enclosing string, out *[]CallSite) {
	if node == nil {
		return
	}
	if node.Type() == "call_expression" {
		fnNode := node.ChildByFieldName("function")
		if name := goCalleeName(fnNode, content); name != "" {
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
		walkGoCalls(node.Child(i), content, path, enclosing, out)
	}
}

func goCalleeName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return text(content, node)
	case "selector_expression":
		field := node.ChildByFieldName("field")
		if field != nil {
			return text(content, field)
		}
	case "index_expression":
		if operand := node.ChildByFieldName("operand"); operand != nil {
			return goCalleeName(operand, content)
		}
	}
	return ""
}

func callContextLine(content []byte, node *sitter.Node) string {
	start := node.StartByte()
	lineStart := start
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := start
	for int(lineEnd) < len(content) && content[lineEnd] != '\n' {
		lineEnd++
	}
	return strings.TrimSpace(string(content[lineStart:lineEnd]))
}

func goImportSpecs(node *sitter.Node, content []byte) []ImportInfo {
	var specs []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import_spec":
			specs = append(specs, child)
		case "import_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() == "import_spec" {
					specs = append(specs, spec)
				}
			}
		}
	}
	var out []ImportInfo
	for _, spec := range specs {
		pathNode := spec.ChildByFieldName("path")
		if pathNode == nil {
			continue
		}
		importPath := strings.Trim(text(content, pathNode), `"`)
		alias := ""
		if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
			alias = text(content, nameNode)
		}
		kind := ImportNamed
		local := alias
		if local == "" {
			local = lastPathSegment(importPath)
		}
		if alias == "_" {
			kind = ImportSideEffect
		}
		sp := spec.StartPoint()
		out = append(out, ImportInfo{
			Source:   importPath,
			Kind:     kind,
			Bindings: []ImportBinding{{Local: local, Original: importPath}},
			Line:     int(sp.Row) + 1,
			Raw:      text(content, spec),
		})
	}
	return out
}

func lastPathSegment(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
