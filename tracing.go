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
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this module to TracerProvider implementations.
const tracerName = "github.com/pjscruggs/rtlog"

// drainThreadName is the name the drain goroutine registers under.
const drainThreadName = "rtlog_drain"

// ThreadHook receives lifecycle notifications for the drain goroutine: the
// Go analogue of registering a worker thread with a process-wide tracing
// or profiling registry. Register is called on the drain goroutine right
// after it starts, Unregister right before it exits, always in pairs.
type ThreadHook interface {
	Register(name string)
	Unregister()
}

type noopThreadHook struct{}

func (noopThreadHook) Register(string) {}
func (noopThreadHook) Unregister()     {}

// threadHook holds the installed hook. atomic.Value keeps SetThreadHook
// safe against a concurrently starting drain goroutine.
var threadHook atomic.Value // of ThreadHook

// SetThreadHook installs hook for subsequent drain sessions; the current
// session, if any, keeps the hook it started with. A nil hook restores the
// no-op default.
func SetThreadHook(hook ThreadHook) {
	if hook == nil {
		hook = noopThreadHook{}
	}
	threadHook.Store(hook)
}

// loadThreadHook returns the installed hook, never nil.
func loadThreadHook() ThreadHook {
	if h, ok := threadHook.Load().(ThreadHook); ok {
		return h
	}
	return noopThreadHook{}
}

// SpanThreadHook is a ThreadHook that records the drain goroutine's
// lifetime as an OpenTelemetry span, so the logging worker appears in the
// same timeline as the host's audio-engine spans.
type SpanThreadHook struct {
	tracer trace.Tracer

	mu   sync.Mutex
	span trace.Span
}

// NewSpanThreadHook returns a hook tracing through tp. A nil tp uses the
// globally registered provider.
func NewSpanThreadHook(tp trace.TracerProvider) *SpanThreadHook {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &SpanThreadHook{tracer: tp.Tracer(tracerName)}
}

// Register opens a span named after the drain goroutine. A second Register
// without an intervening Unregister ends the previous span first, so a
// misbehaving caller leaks nothing.
func (h *SpanThreadHook) Register(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.span != nil {
		h.span.End()
	}
	_, h.span = h.tracer.Start(context.Background(), name)
}

// Unregister ends the current span, if any.
func (h *SpanThreadHook) Unregister() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.span != nil {
		h.span.End()
		h.span = nil
	}
}
