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
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser parses one file's bytes into a ParseResult. Implementations must
// succeed (with a possibly empty tree) even on malformed source, recovering
// to the nearest well-formed subtree, per spec.md §4.2.
type Parser interface {
	ParseFile(path string, content []byte) (*ParseResult, error)
}

// TreeSitterParser is the Parser implementation backing all five supported
// languages. Each language gets its own *sitter.Parser instance (the teacher's
// pkg/ingestion.TreeSitterParser pattern of one parser field per language,
// e.g. goParser/tsParser).
type TreeSitterParser struct {
	logger *slog.Logger

	goParser   *sitter.Parser
	jsParser   *sitter.Parser
	tsParser   *sitter.Parser
	pyParser   *sitter.Parser
	rustParser *sitter.Parser

	metrics *parserMetrics
}

// NewTreeSitterParser builds a parser with one sitter.Parser per language.
func NewTreeSitterParser(logger *slog.Logger) *TreeSitterParser {
	if logger == nil {
		logger = slog.Default()
	}

	goP := sitter.NewParser()
	goP.SetLanguage(golang.GetLanguage())

	jsP := sitter.NewParser()
	jsP.SetLanguage(javascript.GetLanguage())

	tsP := sitter.NewParser()
	tsP.SetLanguage(typescript.GetLanguage())

	pyP := sitter.NewParser()
	pyP.SetLanguage(python.GetLanguage())

	rsP := sitter.NewParser()
	rsP.SetLanguage(rust.GetLanguage())

	return &TreeSitterParser{
		logger:     logger,
		goParser:   goP,
		jsParser:   jsP,
		tsParser:   tsP,
		pyParser:   pyP,
		rustParser: rsP,
		metrics:    newParserMetrics(),
	}
}

// ParseFile dispatches to the language-specific extractor selected by the
// file's extension. Unsupported extensions return an empty, language-less
// result rather than an error.
func (p *TreeSitterParser) ParseFile(path string, content []byte) (*ParseResult, error) {
	ext := extOf(path)
	lang := DetectLanguage(ext)

	timer := p.metrics.startParse()
	defer timer.observe(lang)

	switch lang {
	case LangGo:
		return p.parseGo(path, content)
	case LangTypeScript:
		return p.parseTSOrJS(path, content, true)
	case LangJavaScript:
		return p.parseTSOrJS(path, content, false)
	case LangPython:
		return p.parsePython(path, content)
	case LangRust:
		return p.parseRust(path, content)
	default:
		return &ParseResult{}, nil
	}
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}

// parseWithRecovery runs a tree-sitter parse and logs (without failing) when
// the tree contains syntax errors; tree-sitter is itself error-tolerant and
// keeps producing the nearest well-formed subtree.
func (p *TreeSitterParser) parseWithRecovery(ctx context.Context, parser *sitter.Parser, content []byte, path, lang string) (*sitter.Tree, bool, error) {
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, false, fmt.Errorf("tree-sitter parse %s: %w", lang, err)
	}
	hadErrors := false
	if tree.RootNode().HasError() {
		hadErrors = true
		p.metrics.recordParseError(lang)
		p.logger.Warn("parser.treesitter.syntax_errors", "lang", lang, "path", path, "error_nodes", countErrors(tree.RootNode()))
	}
	return tree, hadErrors, nil
}

// nodeSpan converts a tree-sitter node's byte/point range into a Span.
func nodeSpan(node *sitter.Node) Span {
	sp := node.StartPoint()
	ep := node.EndPoint()
	return Span{
		Start: Location{Line: int(sp.Row) + 1, Column: int(sp.Column) + 1, Offset: int(node.StartByte())},
		End:   Location{Line: int(ep.Row) + 1, Column: int(ep.Column) + 1, Offset: int(node.EndByte())},
	}
}

func text(content []byte, node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}

// docComment looks at the node's previous sibling; if it is a comment that
// isDocBlock accepts (e.g. leading "/**" for JS/TS, "///", "//!" or "/**"
// for Rust, "//" for Go), its stripped text becomes the symbol's
// documentation. Only that single preceding comment node is used: of several
// consecutive "//" lines, only the last one is taken. Python docstrings are
// handled separately by pyDocstring.
func docComment(content []byte, node *sitter.Node, isDocBlock func(string) bool) string {
	prev := node.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	raw := text(content, prev)
	if isDocBlock != nil && !isDocBlock(raw) {
		return ""
	}
	return stripCommentMarkers(raw)
}

func stripCommentMarkers(raw string) string {
	out := raw
	trim := func(prefix string) bool {
		if len(out) >= len(prefix) && out[:len(prefix)] == prefix {
			out = out[len(prefix):]
			return true
		}
		return false
	}
	switch {
	case trim("/**"):
		if len(out) >= 2 && out[len(out)-2:] == "*/" {
			out = out[:len(out)-2]
		}
	case trim("/*"):
		if len(out) >= 2 && out[len(out)-2:] == "*/" {
			out = out[:len(out)-2]
		}
	case trim("///"):
	case trim("//!"):
	case trim("//"):
	case trim(`"""`):
		if len(out) >= 3 && out[len(out)-3:] == `"""` {
			out = out[:len(out)-3]
		}
	}
	return trimSpaceLines(out)
}

func trimSpaceLines(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func countErrors(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	count := 0
	if node.IsError() || node.IsMissing() {
		count++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		count += countErrors(node.Child(i))
	}
	return count
}
