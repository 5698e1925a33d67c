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
	"io"
	"sync"
	"sync/atomic"
)

// Callback is the sink contract: a printf-family function receiving a
// template and its arguments. The drain goroutine forwards already-rendered
// lines as the template with no arguments, so implementations must emit the
// template verbatim when args is empty.
//
// A Callback must be safe to call from the drain goroutine and, on the
// synchronous path, from arbitrary caller goroutines. It may block and
// perform I/O; that is the whole point of deferring to it.
type Callback func(format string, args ...any)

// noopSink is the inert callback. The cell below resolves to it both before
// any configuration and after logging has been disabled.
var noopSink Callback = func(string, ...any) {}

// callbackCell is an atomic reference cell for the process-wide callback.
// It never resolves to nil: disabling logging swaps in noopSink instead of
// clearing the cell, so an emission path racing with a disable can always
// call whatever it loaded. Exposing "nothing configured" as nil is left to
// GetCallback, which compares against the sentinel.
type callbackCell struct {
	fn atomic.Pointer[Callback]
}

// load returns the current callback, never nil.
func (c *callbackCell) load() Callback {
	p := c.fn.Load()
	if p == nil {
		return noopSink
	}
	return *p
}

// store publishes fn. A nil fn installs the no-op sentinel.
func (c *callbackCell) store(fn Callback) {
	if fn == nil {
		c.fn.Store(&noopSink)
		return
	}
	c.fn.Store(&fn)
}

// configured reports whether the cell holds something other than the no-op
// sentinel.
func (c *callbackCell) configured() bool {
	p := c.fn.Load()
	return p != nil && p != &noopSink
}

// get returns the configured callback, or nil when the cell holds the
// sentinel (or was never set).
func (c *callbackCell) get() Callback {
	p := c.fn.Load()
	if p == nil || p == &noopSink {
		return nil
	}
	return *p
}

// WriterCallback adapts w into a Callback that renders each line, bounded
// by MessageMaxSize, and writes it to w followed by a newline. Writes are
// serialized with a mutex so the synchronous path and the drain goroutine
// do not interleave partial lines. Write errors are discarded; a logging
// sink has nobody to report them to.
func WriterCallback(w io.Writer) Callback {
	var mu sync.Mutex
	return func(format string, args ...any) {
		var scratch [MessageMaxSize]byte
		var line []byte
		if len(args) == 0 {
			// Pre-rendered text from the drain goroutine; emit verbatim.
			line = append(scratch[:0], format...)
			if len(line) > MessageMaxSize-1 {
				line = line[:MessageMaxSize-1]
			}
		} else {
			line = appendFormat(scratch[:0], format, args...)
		}
		line = append(line, '\n')

		mu.Lock()
		defer mu.Unlock()
		_, _ = w.Write(line)
	}
}
