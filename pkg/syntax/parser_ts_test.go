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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tsFixture = `import { Logger } from "./logger";

export interface Repository {
	findById(id: string): string;
}

export class UserService {
	constructor(private repo: Repository) {}

	getUser(id: string): string {
		return this.repo.findById(id);
	}
}

function helper() {
	return 1;
}
`

func parseTSFixture(t *testing.T) *ParseResult {
	t.Helper()
	p := NewTreeSitterParser(nil)
	result, err := p.ParseFile("service.ts", []byte(tsFixture))
	require.NoError(t, err)
	require.False(t, result.ParseErrors)
	return result
}

func TestParseTS_ClassMethodsNestUnderClass(t *testing.T) {
	result := parseTSFixture(t)

	svc := findRoot(t, result.Tree.Roots, "UserService")
	assert.Equal(t, KindClass, svc.Kind)

	var names []string
	for _, m := range svc.Children {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "constructor")
	assert.Contains(t, names, "getUser")
}

func TestParseTS_InterfaceMembers(t *testing.T) {
	result := parseTSFixture(t)

	repo := findRoot(t, result.Tree.Roots, "Repository")
	assert.Equal(t, KindInterface, repo.Kind)
	require.Len(t, repo.Children, 1)
	assert.Equal(t, "findById", repo.Children[0].Name)
	assert.Equal(t, KindMethod, repo.Children[0].Kind)
}

func TestParseTS_Imports(t *testing.T) {
	result := parseTSFixture(t)
	require.Len(t, result.Imports, 1)
	assert.Equal(t, "./logger", result.Imports[0].Source)
	assert.Equal(t, ImportNamed, result.Imports[0].Kind)
	require.Len(t, result.Imports[0].Bindings, 1)
	assert.Equal(t, "Logger", result.Imports[0].Bindings[0].Local)
}

func TestParseTS_Exports(t *testing.T) {
	result := parseTSFixture(t)

	var names []string
	for _, exp := range result.Exports {
		for _, b := range exp.Bindings {
			names = append(names, b.Local)
		}
	}
	assert.Contains(t, names, "Repository")
	assert.Contains(t, names, "UserService")
	assert.NotContains(t, names, "helper")
}

func TestParseTS_CallWithinMethodBody(t *testing.T) {
	result := parseTSFixture(t)

	var found bool
	for _, c := range result.Calls {
		if c.Callee == "findById" && c.EnclosingQualName == "UserService.getUser" {
			found = true
		}
	}
	assert.True(t, found, "expected a findById call enclosed in UserService.getUser")
}

func TestParseJS_PlainJavaScriptParsesWithoutInterfaces(t *testing.T) {
	p := NewTreeSitterParser(nil)
	result, err := p.ParseFile("plain.js", []byte(`
function add(a, b) {
	return a + b;
}
module.exports = { add };
`))
	require.NoError(t, err)
	require.False(t, result.ParseErrors)

	add := findRoot(t, result.Tree.Roots, "add")
	assert.Equal(t, KindFunction, add.Kind)
}
