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

// parseTSOrJS handles both TypeScript and plain JavaScript; the grammars
// share almost every construct, and isTS only gates TS-only node types
// (interface_declaration, type_alias_declaration, method_signature).
func (p *TreeSitterParser) parseTSOrJS(path string, content []byte, isTS bool) (*ParseResult, error) {
	parser := p.jsParser
	lang := LangJavaScript
	if isTS {
		parser = p.tsParser
		lang = LangTypeScript
	}

	tree, hadErrors, err := p.parseWithRecovery(context.Background(), parser, content, path, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()

	var roots []*Symbol
	var imports []ImportInfo
	var exports []ExportInfo
	var calls []CallSite
	anon := 0

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_statement":
			if imp := jsImportInfo(child, content); imp != nil {
				imports = append(imports, *imp)
			}
		case "export_statement":
			sym, exp := p.jsExportStatement(child, content, isTS, &anon, path, &calls)
			if sym != nil {
				roots = append(roots, sym)
			}
			if exp != nil {
				exports = append(exports, *exp)
			}
		default:
			if sym := p.jsTopLevelSymbol(child, content, isTS, &anon, path, &calls); sym != nil {
				roots = append(roots, sym)
			}
		}
	}

	return &ParseResult{
		Tree:        SymbolTree{Language: lang, Roots: roots},
		Imports:     imports,
		Exports:     exports,
		Calls:       calls,
		ParseErrors: hadErrors,
	}, nil
}

// jsTopLevelSymbol maps one top-level declaration node to a Symbol, or nil
// if the node isn't a declaration (e.g. an expression statement). Call sites
// found in any function/method body encountered along the way are appended
// to calls, scoped to the enclosing symbol's qualified name.
func (p *TreeSitterParser) jsTopLevelSymbol(node *sitter.Node, content []byte, isTS bool, anon *int, path string, calls *[]CallSite) *Symbol {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		return p.jsFunctionSymbol(node, content, path, calls)
	case "class_declaration":
		return p.jsClassSymbol(node, content, isTS, path, calls)
	case "interface_declaration":
		if isTS {
			return p.tsInterfaceSymbol(node, content)
		}
	case "type_alias_declaration":
		if isTS {
			return p.tsTypeAliasSymbol(node, content)
		}
	case "lexical_declaration", "variable_declaration":
		return p.jsVariableSymbol(node, content, path, calls)
	}
	return nil
}

func (p *TreeSitterParser) jsFunctionSymbol(node *sitter.Node, content []byte, path string, calls *[]CallSite) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := "default"
	if nameNode != nil {
		name = text(content, nameNode)
	}
	body := node.ChildByFieldName("body")
	sym := &Symbol{
		Name:          name,
		Kind:          KindFunction,
		Span:          nodeSpan(node),
		Documentation: docComment(content, node, isJSDocComment),
	}
	if body != nil {
		s := nodeSpan(body)
		sym.BodySpan = &s
		walkJSCallsInSpan(body, content, path, name, calls)
	}
	return sym
}

// jsVariableSymbol handles `const foo = () => {}` / `let bar = function(){}`.
// Declarators are scanned in order and the first one that binds a
// function/arrow expression becomes the Symbol; later declarators are not
// examined. A statement with no such declarator produces no Symbol.
func (p *TreeSitterParser) jsVariableSymbol(node *sitter.Node, content []byte, path string, calls *[]CallSite) *Symbol {
	for i := 0; i < int(node.ChildCount()); i++ {
		decl := node.Child(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}
		switch valueNode.Type() {
		case "arrow_function", "function_expression", "function":
			name := text(content, nameNode)
			body := valueNode.ChildByFieldName("body")
			sym := &Symbol{
				Name:          name,
				Kind:          KindFunction,
				Span:          nodeSpan(node),
				Documentation: docComment(content, node, isJSDocComment),
			}
			if body != nil {
				s := nodeSpan(body)
				sym.BodySpan = &s
				walkJSCallsInSpan(body, content, path, name, calls)
			}
			return sym
		}
	}
	return nil
}

func (p *TreeSitterParser) jsClassSymbol(node *sitter.Node, content []byte, isTS bool, path string, calls *[]CallSite) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := "default"
	if nameNode != nil {
		name = text(content, nameNode)
	}
	body := node.ChildByFieldName("body")
	var children []*Symbol
	if body != nil {
		children = p.jsClassMembers(body, content, isTS, name, path, calls)
	}
	return &Symbol{
		Name:          name,
		Kind:          KindClass,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: docComment(content, node, isJSDocComment),
	}
}

func (p *TreeSitterParser) jsClassMembers(body *sitter.Node, content []byte, isTS bool, className, path string, calls *[]CallSite) []*Symbol {
	var out []*Symbol
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Type() {
		case "method_definition":
			nameNode := member.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := text(content, nameNode)
			kind := KindMethod
			if name == "constructor" {
				kind = KindConstructor
			}
			methodBody := member.ChildByFieldName("body")
			sym := &Symbol{Name: name, Kind: kind, Span: nodeSpan(member), Documentation: docComment(content, member, isJSDocComment)}
			if methodBody != nil {
				s := nodeSpan(methodBody)
				sym.BodySpan = &s
				walkJSCallsInSpan(methodBody, content, path, QualifiedName([]string{className, name}), calls)
			}
			out = append(out, sym)
		case "public_field_definition", "field_definition":
			nameNode := member.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			out = append(out, &Symbol{Name: text(content, nameNode), Kind: KindField, Span: nodeSpan(member)})
		case "method_signature":
			if isTS {
				if sym := p.tsInterfaceMemberSymbol(member, content); sym != nil {
					out = append(out, sym)
				}
			}
		}
	}
	return out
}

func (p *TreeSitterParser) tsInterfaceSymbol(node *sitter.Node, content []byte) *Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	body := node.ChildByFieldName("body")
	var children []*Symbol
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			member := body.Child(i)
			if sym := p.tsInterfaceMemberSymbol(member, content); sym != nil {
				children = append(children, sym)
			}
		}
	}
	return &Symbol{
		Name:          text(content, nameNode),
		Kind:          KindInterface,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: docComment(content, node, isJSDocComment),
	}
}

func (p *TreeSitterParser) tsInterfaceMemberSymbol(node *sitter.Node, content []byte) *Symbol {
	switch node.Type() {
	case "method_signature":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil
		}
		return &Symbol{Name: text(content, nameNode), Kind: KindMethod, Span: nodeSpan(node)}
	case "property_signature":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil
		}
		return &Symbol{Name: text(content, nameNode), Kind: KindProperty, Span: nodeSpan(node)}
	}
	return nil
}

func (p *TreeSitterParser) tsTypeAliasSymbol(node *sitter.Node, content []byte) *Symbol {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	return &Symbol{
		Name:          text(content, nameNode),
		Kind:          KindTypeAlias,
		Span:          nodeSpan(node),
		Documentation: docComment(content, node, isJSDocComment),
	}
}

// jsExportStatement handles `export function f(){}`, `export default ...`,
// `export class C{}`, `export { a, b }`, and `export * from "./x"`.
func (p *TreeSitterParser) jsExportStatement(node *sitter.Node, content []byte, isTS bool, anon *int, path string, calls *[]CallSite) (*Symbol, *ExportInfo) {
	isDefault := false
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "default" {
			isDefault = true
		}
	}

	if decl := node.ChildByFieldName("declaration"); decl != nil {
		sym := p.jsTopLevelSymbol(decl, content, isTS, anon, path, calls)
		if sym == nil {
			return nil, nil
		}
		if isDefault {
			sym.Name = "default"
		}
		kind := sym.Kind
		exportKind := ExportDeclaration
		if isDefault {
			exportKind = ExportDefault
		}
		sp := node.StartPoint()
		return sym, &ExportInfo{
			Kind:     exportKind,
			Bindings: []ExportBinding{{Exported: sym.Name, Local: sym.Name, Kind: &kind}},
			Line:     int(sp.Row) + 1,
			Raw:      text(content, node),
		}
	}

	// `export { a, b as c }` or `export * from "./x"` or `export * as ns from "./x"`.
	sourceNode := node.ChildByFieldName("source")
	source := ""
	if sourceNode != nil {
		source = strings.Trim(text(content, sourceNode), `"'`)
	}

	var bindings []ExportBinding
	exportKind := ExportNamed
	if sourceNode != nil {
		exportKind = ExportReexport
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "export_clause" {
			for j := 0; j < int(child.ChildCount()); j++ {
				spec := child.Child(j)
				if spec.Type() != "export_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				aliasNode := spec.ChildByFieldName("alias")
				if nameNode == nil {
					continue
				}
				local := text(content, nameNode)
				exported := local
				if aliasNode != nil {
					exported = text(content, aliasNode)
				}
				bindings = append(bindings, ExportBinding{Exported: exported, Local: local})
			}
		}
		if child.Type() == "namespace_export" {
			exportKind = ExportNamespace
		}
	}

	sp := node.StartPoint()
	return nil, &ExportInfo{
		Kind:     exportKind,
		Bindings: bindings,
		Source:   source,
		Line:     int(sp.Row) + 1,
		Raw:      text(content, node),
	}
}

func jsImportInfo(node *sitter.Node, content []byte) *ImportInfo {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return nil
	}
	source := strings.Trim(text(content, sourceNode), `"'`)

	var bindings []ImportBinding
	kind := ImportSideEffect

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "import_clause":
			for j := 0; j < int(child.ChildCount()); j++ {
				piece := child.Child(j)
				switch piece.Type() {
				case "identifier":
					kind = ImportDefault
					bindings = append(bindings, ImportBinding{Local: text(content, piece), Original: "default"})
				case "namespace_import":
					kind = ImportNamespace
					if nameNode := lastIdentifierChild(piece, content); nameNode != "" {
						bindings = append(bindings, ImportBinding{Local: nameNode})
					}
				case "named_imports":
					kind = ImportNamed
					for k := 0; k < int(piece.ChildCount()); k++ {
						spec := piece.Child(k)
						if spec.Type() != "import_specifier" {
							continue
						}
						nameNode := spec.ChildByFieldName("name")
						aliasNode := spec.ChildByFieldName("alias")
						if nameNode == nil {
							continue
						}
						original := text(content, nameNode)
						local := original
						if aliasNode != nil {
							local = text(content, aliasNode)
						}
						bindings = append(bindings, ImportBinding{Local: local, Original: original})
					}
				}
			}
		}
	}

	sp := node.StartPoint()
	return &ImportInfo{
		Source:   source,
		Kind:     kind,
		Bindings: bindings,
		Line:     int(sp.Row) + 1,
		Raw:      text(content, node),
	}
}

func lastIdentifierChild(node *sitter.Node, content []byte) string {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		child := node.Child(i)
		if child.Type() == "identifier" {
			return text(content, child)
		}
	}
	return ""
}

func isJSDocComment(raw string) bool {
	return strings.HasPrefix(raw, "/**")
}

func walkJSCallsInSpan(node *sitter.Node, content []byte, path, enclosing string, out *[]CallSite) {
	if node == nil {
		return
	}
	if node.Type() == "call_expression" {
		fnNode := node.ChildByFieldName("function")
		if name := jsCalleeName(fnNode, content); name != "" {
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
		walkJSCallsInSpan(node.Child(i), content, path, enclosing, out)
	}
}

func jsCalleeName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return text(content, node)
	case "member_expression":
		prop := node.ChildByFieldName("property")
		if prop != nil {
			return text(content, prop)
		}
	}
	return ""
}
