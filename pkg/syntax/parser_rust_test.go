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

const rustFixture = `use std::collections::HashMap;

pub struct Counter {
	value: i64,
}

impl Counter {
	pub fn new() -> Self {
		Counter { value: 0 }
	}

	pub fn increment(&mut self) -> i64 {
		self.bump()
	}

	fn bump(&mut self) -> i64 {
		self.value += 1;
		self.value
	}
}

pub trait Resettable {
	fn reset(&mut self);
}

fn helper() -> i64 {
	42
}
`

func parseRustFixture(t *testing.T) *ParseResult {
	t.Helper()
	p := NewTreeSitterParser(nil)
	result, err := p.ParseFile("counter.rs", []byte(rustFixture))
	require.NoError(t, err)
	require.False(t, result.ParseErrors)
	return result
}

func TestParseRust_ImplMethodsAttachToStruct(t *testing.T) {
	result := parseRustFixture(t)

	counter := findRoot(t, result.Tree.Roots, "Counter")
	assert.Equal(t, KindClass, counter.Kind)

	var names []string
	var newKind Kind
	for _, m := range counter.Children {
		names = append(names, m.Name)
		if m.Name == "new" {
			newKind = m.Kind
		}
	}
	assert.ElementsMatch(t, []string{"new", "increment", "bump"}, names)
	assert.Equal(t, KindConstructor, newKind)
}

func TestParseRust_TraitMembers(t *testing.T) {
	result := parseRustFixture(t)

	trait := findRoot(t, result.Tree.Roots, "Resettable")
	assert.Equal(t, KindInterface, trait.Kind)
	require.Len(t, trait.Children, 1)
	assert.Equal(t, "reset", trait.Children[0].Name)
}

func TestParseRust_CallsInsideImplMethod(t *testing.T) {
	result := parseRustFixture(t)

	var found bool
	for _, c := range result.Calls {
		if c.Callee == "bump" && c.EnclosingQualName == "Counter.increment" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseRust_PubItemsAreExported(t *testing.T) {
	result := parseRustFixture(t)

	var names []string
	for _, exp := range result.Exports {
		for _, b := range exp.Bindings {
			names = append(names, b.Local)
		}
	}
	assert.Contains(t, names, "Counter")
	assert.Contains(t, names, "Resettable")
	assert.NotContains(t, names, "helper")
}

func TestParseRust_UseImports(t *testing.T) {
	result := parseRustFixture(t)
	require.Len(t, result.Imports, 1)
	require.Len(t, result.Imports[0].Bindings, 1)
	assert.Equal(t, "HashMap", result.Imports[0].Bindings[0].Local)
}
