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

func (p *TreeSitterParser) parseRust(path string, content []byte) (*ParseResult, error) {
	tree, hadErrors, err := p.parseWithRecovery(context.Background(), p.rustParser, content, path, LangRust)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()

	var roots []*Symbol
	var imports []ImportInfo
	var exports []ExportInfo
	var calls []CallSite

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		p.rustItemSymbol(child, content, "", path, &roots, &imports, &exports, &calls)
	}

	return &ParseResult{
		Tree:        SymbolTree{Language: LangRust, Roots: roots},
		Imports:     imports,
		Exports:     exports,
		Calls:       calls,
		ParseErrors: hadErrors,
	}, nil
}

// rustItemSymbol dispatches one top-level (or impl/trait-nested) item.
// owner carries the enclosing qualified-name prefix, empty at module scope.
func (p *TreeSitterParser) rustItemSymbol(node *sitter.Node, content []byte, owner, path string, roots *[]*Symbol, imports *[]ImportInfo, exports *[]ExportInfo, calls *[]CallSite) {
	isPub := rustHasVisibility(node)

	switch node.Type() {
	case "use_declaration":
		*imports = append(*imports, rustUseImports(node, content)...)
	case "function_item":
		sym := p.rustFunctionSymbol(node, content, owner, path, calls)
		*roots = append(*roots, sym)
		if isPub {
			kind := sym.Kind
			*exports = append(*exports, ExportInfo{Kind: ExportDeclaration, Bindings: []ExportBinding{{Exported: sym.Name, Local: sym.Name, Kind: &kind}}})
		}
	case "struct_item":
		sym := rustStructSymbol(node, content)
		*roots = append(*roots, sym)
		if isPub {
			kind := sym.Kind
			*exports = append(*exports, ExportInfo{Kind: ExportDeclaration, Bindings: []ExportBinding{{Exported: sym.Name, Local: sym.Name, Kind: &kind}}})
		}
	case "enum_item":
		sym := rustEnumSymbol(node, content)
		*roots = append(*roots, sym)
		if isPub {
			kind := sym.Kind
			*exports = append(*exports, ExportInfo{Kind: ExportDeclaration, Bindings: []ExportBinding{{Exported: sym.Name, Local: sym.Name, Kind: &kind}}})
		}
	case "trait_item":
		sym := p.rustTraitSymbol(node, content, path, calls)
		*roots = append(*roots, sym)
		if isPub {
			kind := sym.Kind
			*exports = append(*exports, ExportInfo{Kind: ExportDeclaration, Bindings: []ExportBinding{{Exported: sym.Name, Local: sym.Name, Kind: &kind}}})
		}
	case "impl_item":
		// impl blocks contribute their methods as children of the type they
		// implement, matched by name against already-collected struct/enum
		// symbols; impl_item itself produces no Symbol of its own.
		p.rustImplMethods(node, content, path, roots, calls)
	case "mod_item":
		body := node.ChildByFieldName("body")
		nameNode := node.ChildByFieldName("name")
		name := ""
		if nameNode != nil {
			name = text(content, nameNode)
		}
		if body != nil {
			for i := 0; i < int(body.ChildCount()); i++ {
				p.rustItemSymbol(body.Child(i), content, name, path, roots, imports, exports, calls)
			}
		}
	}
}

func (p *TreeSitterParser) rustFunctionSymbol(node *sitter.Node, content []byte, owner, path string, calls *[]CallSite) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = text(content, nameNode)
	}
	body := node.ChildByFieldName("body")
	sym := &Symbol{
		Name:          name,
		Kind:          KindFunction,
		Span:          nodeSpan(node),
		Documentation: docComment(content, node, isRustDocComment),
	}
	if body != nil {
		s := nodeSpan(body)
		sym.BodySpan = &s
		enclosing := name
		if owner != "" {
			enclosing = QualifiedName([]string{owner, name})
		}
		walkRustCallsInSpan(body, content, path, enclosing, calls)
	}
	return sym
}

func rustStructSymbol(node *sitter.Node, content []byte) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = text(content, nameNode)
	}
	body := node.ChildByFieldName("body")
	var children []*Symbol
	if body != nil && body.Type() == "field_declaration_list" {
		for i := 0; i < int(body.ChildCount()); i++ {
			field := body.Child(i)
			if field.Type() != "field_declaration" {
				continue
			}
			fn := field.ChildByFieldName("name")
			if fn == nil {
				continue
			}
			children = append(children, &Symbol{Name: text(content, fn), Kind: KindField, Span: nodeSpan(field)})
		}
	}
	return &Symbol{
		Name:          name,
		Kind:          KindClass,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: docComment(content, node, isRustDocComment),
	}
}

func rustEnumSymbol(node *sitter.Node, content []byte) *Symbol {
	nameNode := node.ChildByFieldName("name")
	name := ""
	if nameNode != nil {
		name = text(content, nameNode)
	}
	body := node.ChildByFieldName("body")
	var children []*Symbol
	if body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			variant := body.Child(i)
			if variant.Type() != "enum_variant" {
				continue
			}
			vn := variant.ChildByFieldName("name")
			if vn == nil {
				continue
			}
			children = append(children, &Symbol{Name: text(content, vn), Kind: KindEnumMember, Span: nodeSpan(variant)})
		}
	}
	return &Symbol{
		Name:          name,
		Kind:          KindEnum,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: docComment(content, node, isRustDocComment),
	}
}

func (p *TreeSitterParser) rustTraitSymbol(node *sitter.Node, content []byte, path string, calls *[]CallSite) *Symbol {
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
			if member.Type() != "function_item" && member.Type() != "function_signature_item" {
				continue
			}
			mn := member.ChildByFieldName("name")
			if mn == nil {
				continue
			}
			sym := &Symbol{Name: text(content, mn), Kind: KindMethod, Span: nodeSpan(member)}
			if member.Type() == "function_item" {
				if b := member.ChildByFieldName("body"); b != nil {
					s := nodeSpan(b)
					sym.BodySpan = &s
					walkRustCallsInSpan(b, content, path, QualifiedName([]string{name, sym.Name}), calls)
				}
			}
			children = append(children, sym)
		}
	}
	return &Symbol{
		Name:          name,
		Kind:          KindInterface,
		Span:          nodeSpan(node),
		Children:      children,
		Documentation: docComment(content, node, isRustDocComment),
	}
}

// rustImplMethods attaches `impl Type { fn ... }` methods onto the Symbol
// previously collected for Type, matched by name; `impl Trait for Type`
// attaches the same way, since spec.md's Symbol model has no separate
// impl-block concept.
func (p *TreeSitterParser) rustImplMethods(node *sitter.Node, content []byte, path string, roots *[]*Symbol, calls *[]CallSite) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	typeName := rustBaseTypeName(typeNode, content)

	var target *Symbol
	for _, sym := range *roots {
		if sym.Name == typeName && (sym.Kind == KindClass || sym.Kind == KindEnum) {
			target = sym
			break
		}
	}
	if target == nil {
		return
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		if member.Type() != "function_item" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := text(content, nameNode)
		kind := KindMethod
		if name == "new" {
			kind = KindConstructor
		}
		methodBody := member.ChildByFieldName("body")
		sym := &Symbol{Name: name, Kind: kind, Span: nodeSpan(member), Documentation: docComment(content, member, isRustDocComment)}
		if methodBody != nil {
			s := nodeSpan(methodBody)
			sym.BodySpan = &s
			walkRustCallsInSpan(methodBody, content, path, QualifiedName([]string{typeName, name}), calls)
		}
		target.Children = append(target.Children, sym)
	}
}

func rustBaseTypeName(node *sitter.Node, content []byte) string {
	switch node.Type() {
	case "generic_type":
		if t := node.ChildByFieldName("type"); t != nil {
			return rustBaseTypeName(t, content)
		}
	case "type_identifier":
		return text(content, node)
	}
	return text(content, node)
}

func rustHasVisibility(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "visibility_modifier" {
			return true
		}
	}
	return false
}

func isRustDocComment(raw string) bool {
	return strings.HasPrefix(raw, "///") || strings.HasPrefix(raw, "//!") || strings.HasPrefix(raw, "/**")
}

func rustUseImports(node *sitter.Node, content []byte) []ImportInfo {
	sp := node.StartPoint()
	line := int(sp.Row) + 1
	raw := text(content, node)

	var tree *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(i).Type() {
		case "scoped_identifier", "scoped_use_list", "use_wildcard", "identifier", "use_as_clause", "use_list":
			tree = node.Child(i)
		}
	}
	if tree == nil {
		return nil
	}

	var bindings []ImportBinding
	collectRustUseBindings(tree, content, "", &bindings)

	return []ImportInfo{{
		Source:   "",
		Kind:     ImportNamed,
		Bindings: bindings,
		Line:     line,
		Raw:      raw,
	}}
}

func collectRustUseBindings(node *sitter.Node, content []byte, prefix string, out *[]ImportBinding) {
	switch node.Type() {
	case "scoped_identifier":
		pathNode := node.ChildByFieldName("path")
		nameNode := node.ChildByFieldName("name")
		newPrefix := prefix
		if pathNode != nil {
			newPrefix = joinRustPath(prefix, text(content, pathNode))
		}
		if nameNode != nil {
			collectRustUseBindings(nameNode, content, newPrefix, out)
		}
	case "identifier":
		name := text(content, node)
		*out = append(*out, ImportBinding{Local: name, Original: joinRustPath(prefix, name)})
	case "use_as_clause":
		pathNode := node.ChildByFieldName("path")
		aliasNode := node.ChildByFieldName("alias")
		if pathNode == nil || aliasNode == nil {
			return
		}
		original := joinRustPath(prefix, text(content, pathNode))
		*out = append(*out, ImportBinding{Local: text(content, aliasNode), Original: original})
	case "use_list":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() == "," || child.Type() == "{" || child.Type() == "}" {
				continue
			}
			collectRustUseBindings(child, content, prefix, out)
		}
	case "use_wildcard":
		*out = append(*out, ImportBinding{Local: "*", Original: joinRustPath(prefix, "*")})
	case "scoped_use_list":
		pathNode := node.ChildByFieldName("path")
		listNode := node.ChildByFieldName("list")
		newPrefix := prefix
		if pathNode != nil {
			newPrefix = joinRustPath(prefix, text(content, pathNode))
		}
		if listNode != nil {
			collectRustUseBindings(listNode, content, newPrefix, out)
		}
	}
}

func joinRustPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "::" + seg
}

func walkRustCallsInSpan(node *sitter.Node, content []byte, path, enclosing string, out *[]CallSite) {
	if node == nil {
		return
	}
	if node.Type() == "call_expression" {
		fnNode := node.ChildByFieldName("function")
		if name := rustCalleeName(fnNode, content); name != "" {
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
		walkRustCallsInSpan(node.Child(i), content, path, enclosing, out)
	}
}

func rustCalleeName(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return text(content, node)
	case "field_expression":
		field := node.ChildByFieldName("field")
		if field != nil {
			return text(content, field)
		}
	case "scoped_identifier":
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil {
			return text(content, nameNode)
		}
	}
	return ""
}
