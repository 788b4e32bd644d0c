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

const pyFixture = `import os
from .repo import UserRepository

class UserService:
	"""Handles user lookups."""

	def __init__(self, repo):
		self.repo = repo

	def get_user(self, user_id):
		return self.repo.find_by_id(user_id)

def _internal_helper():
	return os.getcwd()
`

func parsePyFixture(t *testing.T) *ParseResult {
	t.Helper()
	p := NewTreeSitterParser(nil)
	result, err := p.ParseFile("service.py", []byte(pyFixture))
	require.NoError(t, err)
	require.False(t, result.ParseErrors)
	return result
}

func TestParsePython_ClassMethodsNestAsMethodOrConstructor(t *testing.T) {
	result := parsePyFixture(t)

	svc := findRoot(t, result.Tree.Roots, "UserService")
	assert.Equal(t, KindClass, svc.Kind)
	assert.Equal(t, "Handles user lookups.", svc.Documentation)
	require.Len(t, svc.Children, 2)

	var init, getUser *Symbol
	for _, m := range svc.Children {
		switch m.Name {
		case "__init__":
			init = m
		case "get_user":
			getUser = m
		}
	}
	require.NotNil(t, init)
	require.NotNil(t, getUser)
	assert.Equal(t, KindConstructor, init.Kind)
	assert.Equal(t, KindMethod, getUser.Kind)
}

func TestParsePython_CallEnclosingQualName(t *testing.T) {
	result := parsePyFixture(t)

	var found bool
	for _, c := range result.Calls {
		if c.Callee == "find_by_id" && c.EnclosingQualName == "UserService.get_user" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParsePython_Imports(t *testing.T) {
	result := parsePyFixture(t)
	require.Len(t, result.Imports, 2)

	var sawFromImport bool
	for _, imp := range result.Imports {
		if imp.Source == ".repo" {
			sawFromImport = true
			require.Len(t, imp.Bindings, 1)
			assert.Equal(t, "UserRepository", imp.Bindings[0].Local)
		}
	}
	assert.True(t, sawFromImport)
}

func TestParsePython_UnderscorePrefixedNamesNotExported(t *testing.T) {
	result := parsePyFixture(t)

	var names []string
	for _, exp := range result.Exports {
		for _, b := range exp.Bindings {
			names = append(names, b.Local)
		}
	}
	assert.Contains(t, names, "UserService")
	assert.NotContains(t, names, "_internal_helper")
}
