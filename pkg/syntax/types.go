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

// Package syntax extracts symbol trees, imports, exports, and call sites
// from source files across several languages, using Tree-sitter grammars.
//
// Only declarations at module, class, interface, namespace, or enum scope
// (and their members) become Symbols; local variables never do. Call
// extraction only scans the body span of callable symbols and records each
// callee name as written, not its resolved target.
package syntax

// Location is a 1-indexed line/column position plus a 0-indexed byte offset.
type Location struct {
	Line   int
	Column int
	Offset int
}

// Span is an ordered [Start, End] range; Start is always <= End.
type Span struct {
	Start Location
	End   Location
}

// Contains reports whether s fully contains other.
func (s Span) Contains(other Span) bool {
	return !other.Start.less(s.Start) && !s.End.less(other.End)
}

func (l Location) less(o Location) bool {
	return l.Offset < o.Offset
}

// Kind is the closed set of symbol kinds the parser can produce.
type Kind string

const (
	KindFile        Kind = "file"
	KindClass       Kind = "class"
	KindInterface   Kind = "interface"
	KindFunction    Kind = "function"
	KindMethod      Kind = "method"
	KindProperty    Kind = "property"
	KindVariable    Kind = "variable"
	KindConstant    Kind = "constant"
	KindEnum        Kind = "enum"
	KindEnumMember  Kind = "enum_member"
	KindTypeAlias   Kind = "type_alias"
	KindNamespace   Kind = "namespace"
	KindModule      Kind = "module"
	KindConstructor Kind = "constructor"
	KindField       Kind = "field"
	KindParameter   Kind = "parameter"
	KindImport      Kind = "import"
)

// Callable reports whether a symbol of this kind can originate `calls` edges.
func (k Kind) Callable() bool {
	return k == KindFunction || k == KindMethod || k == KindConstructor
}

// Symbol is a declaration recognized at module/class/interface/namespace/enum
// scope, or a member of one. A child's Span is always contained in its
// parent's Span, and sibling Spans are disjoint.
type Symbol struct {
	Name          string
	Kind          Kind
	Span          Span
	BodySpan      *Span
	Children      []*Symbol
	Documentation string
	Metadata      map[string]string
}

// SymbolTree is the ordered forest of Symbols declared in one file.
type SymbolTree struct {
	Language string
	Roots    []*Symbol
}

// ImportKind is the closed set of import binding styles.
type ImportKind string

const (
	ImportDefault    ImportKind = "default"
	ImportNamed      ImportKind = "named"
	ImportNamespace  ImportKind = "namespace"
	ImportSideEffect ImportKind = "side_effect"
	ImportType       ImportKind = "type"
	ImportRequire    ImportKind = "require"
)

// ImportBinding is one name introduced by an import statement.
type ImportBinding struct {
	Local      string
	Original   string
	TypeOnly   bool
}

// ImportInfo describes one import statement.
type ImportInfo struct {
	Source   string
	Kind     ImportKind
	Bindings []ImportBinding
	Line     int
	Dynamic  bool
	Raw      string
}

// ExportKind is the closed set of export styles.
type ExportKind string

const (
	ExportDefault     ExportKind = "default"
	ExportNamed       ExportKind = "named"
	ExportDeclaration ExportKind = "declaration"
	ExportReexport    ExportKind = "reexport"
	ExportNamespace   ExportKind = "namespace"
)

// ExportBinding is one name an export statement makes visible.
type ExportBinding struct {
	Exported string
	Local    string
	TypeOnly bool
	Kind     *Kind
}

// ExportInfo describes one export statement. Re-exports with a Source do not
// produce new local Symbols.
type ExportInfo struct {
	Kind     ExportKind
	Bindings []ExportBinding
	Source   string
	Line     int
	Raw      string
}

// CallSite is one call expression recorded inside a callable symbol's body.
type CallSite struct {
	Callee            string
	File              string
	Line              int
	Column            int
	EnclosingQualName string
	Context           string
}

// ParseResult bundles everything the parser extracts from one file.
type ParseResult struct {
	Tree    SymbolTree
	Imports []ImportInfo
	Exports []ExportInfo
	Calls   []CallSite
	// ParseErrors is true when the parser recovered from syntax errors to
	// produce (possibly empty) output, per the ParseError taxonomy.
	ParseErrors bool
}

// QualifiedName joins ancestor Symbol names (inclusive) from module root with ".".
func QualifiedName(chain []string) string {
	out := ""
	for i, name := range chain {
		if i > 0 {
			out += "."
		}
		out += name
	}
	return out
}
