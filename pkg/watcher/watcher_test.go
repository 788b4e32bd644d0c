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

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_EmitsAddedEvent(t *testing.T) {
	root := t.TempDir()

	w, err := New(nil, Config{Root: root, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, events)
	}()

	target := filepath.Join(root, "new_file.go")
	require.NoError(t, os.WriteFile(target, []byte("package foo\n"), 0o644))

	select {
	case ev := <-events:
		require.Equal(t, target, ev.Path)
		require.Contains(t, []ChangeKind{ChangeAdded, ChangeChanged}, ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}

	cancel()
	<-done
}

func TestWatcher_DebouncesBurstsIntoOneEvent(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "burst.go")
	require.NoError(t, os.WriteFile(target, []byte("package foo\n"), 0o644))

	w, err := New(nil, Config{Root: root, Debounce: 150 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, events)
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte("package foo\n\n// edit\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	count := 0
	timeout := time.After(1 * time.Second)
drain:
	for {
		select {
		case <-events:
			count++
		case <-timeout:
			break drain
		}
	}

	require.Equal(t, 1, count)

	cancel()
	<-done
}

func TestWatcher_ShouldWatchFiltersPaths(t *testing.T) {
	root := t.TempDir()
	ignored := filepath.Join(root, "node_modules")
	require.NoError(t, os.Mkdir(ignored, 0o755))

	w, err := New(nil, Config{
		Root:     root,
		Debounce: 20 * time.Millisecond,
		ShouldWatch: func(path string, isDir bool) bool {
			return filepath.Base(path) != "node_modules"
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, events)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(ignored, "pkg.json"), []byte("{}"), 0o644))

	select {
	case ev := <-events:
		t.Fatalf("expected no event for ignored directory, got %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	<-done
}
