// Copyright 2025 Patrick J. Scruggs
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

package rtlog

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// TestWriterCallback verifies rendering, the verbatim path for
// pre-rendered text, and line framing.
func TestWriterCallback(t *testing.T) {
	t.Run("FormatsWithArgs", func(t *testing.T) {
		var buf bytes.Buffer
		cb := WriterCallback(&buf)
		cb("x=%d", 5)
		if got := buf.String(); got != "x=5\n" {
			t.Errorf("wrote %q, want %q", got, "x=5\n")
		}
	})

	t.Run("VerbatimWithoutArgs", func(t *testing.T) {
		// Drain-goroutine forwarding: rendered text arrives as the
		// template. A literal percent must survive.
		var buf bytes.Buffer
		cb := WriterCallback(&buf)
		cb("cpu at 85% of budget")
		if got := buf.String(); got != "cpu at 85% of budget\n" {
			t.Errorf("wrote %q, want the text verbatim", got)
		}
	})

	t.Run("BoundsOverlongLines", func(t *testing.T) {
		var buf bytes.Buffer
		cb := WriterCallback(&buf)
		cb(strings.Repeat("y", 2*MessageMaxSize))
		if got := len(buf.String()); got != MessageMaxSize {
			// MessageMaxSize-1 bytes of text plus the newline.
			t.Errorf("wrote %d bytes, want %d", got, MessageMaxSize)
		}
	})
}

// TestWriterCallbackConcurrent exercises the interleaving guard: lines from
// concurrent callers must come out whole.
func TestWriterCallbackConcurrent(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})
	cb := WriterCallback(w)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 50 {
				cb("g=%d i=%d", g, i)
			}
		}(g)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 8*50 {
		t.Fatalf("got %d lines, want %d", len(lines), 8*50)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "g=") || !strings.Contains(line, " i=") {
			t.Errorf("interleaved or corrupt line %q", line)
		}
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestCallbackCellNeverNil(t *testing.T) {
	var cell callbackCell

	// Unset cell: load must return a callable no-op, get must report nil.
	if cell.get() != nil {
		t.Error("unset cell should report no configured callback")
	}
	cell.load()("should be swallowed %d", 1)

	// Configure, then disable: same properties hold throughout.
	called := false
	cell.store(func(string, ...any) { called = true })
	if !cell.configured() {
		t.Error("cell should report configured after store")
	}
	cell.load()("ping")
	if !called {
		t.Error("stored callback was not invoked")
	}

	cell.store(nil)
	if cell.configured() {
		t.Error("cell should report unconfigured after storing nil")
	}
	if cell.get() != nil {
		t.Error("get should report nil after disable")
	}
	cell.load()("still swallowed")
}
