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
)

func TestCache_SetThenGet_SameMtimeHits(t *testing.T) {
	c := NewCache()
	result := &ParseResult{Tree: SymbolTree{Language: LangGo}}

	c.Set("a.go", 100, result)

	got, ok := c.Get("a.go", 100)
	require := assert.New(t)
	require.True(ok)
	require.Same(result, got)

	hits, misses := c.Stats()
	require.Equal(int64(1), hits)
	require.Equal(int64(0), misses)
}

func TestCache_Get_DifferentMtimeMisses(t *testing.T) {
	c := NewCache()
	c.Set("a.go", 100, &ParseResult{})

	_, ok := c.Get("a.go", 200)
	assert.False(t, ok)

	_, misses := c.Stats()
	assert.Equal(t, int64(1), misses)
}

func TestCache_Get_UnknownPathMisses(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("missing.go", 1)
	assert.False(t, ok)
}

func TestCache_Invalidate_DropsEntry(t *testing.T) {
	c := NewCache()
	c.Set("a.go", 100, &ParseResult{})
	c.Invalidate("a.go")

	_, ok := c.Get("a.go", 100)
	assert.False(t, ok)
}

func TestCache_Clear_DropsEverything(t *testing.T) {
	c := NewCache()
	c.Set("a.go", 100, &ParseResult{})
	c.Set("b.go", 200, &ParseResult{})
	c.Clear()

	_, okA := c.Get("a.go", 100)
	_, okB := c.Get("b.go", 200)
	assert.False(t, okA)
	assert.False(t, okB)
}

func TestCache_Set_OverwritesPreviousEntry(t *testing.T) {
	c := NewCache()
	first := &ParseResult{Tree: SymbolTree{Language: LangGo}}
	second := &ParseResult{Tree: SymbolTree{Language: LangPython}}

	c.Set("a.go", 100, first)
	c.Set("a.go", 200, second)

	_, ok := c.Get("a.go", 100)
	assert.False(t, ok, "old mtime entry should no longer be reachable")

	got, ok := c.Get("a.go", 200)
	assert.True(t, ok)
	assert.Same(t, second, got)
}
