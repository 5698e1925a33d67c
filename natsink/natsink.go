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

// Package natsink publishes rendered log lines to a NATS subject, giving
// the logging core an IPC sink: a monitoring process subscribes to the
// subject instead of sharing a console or file with the audio engine.
//
// The callback returned by New runs on the drain goroutine (or, for the
// synchronous path, on the calling goroutine) and may block inside the
// NATS client; it must therefore never be installed as a sink that
// real-time code calls directly. That is already the package contract:
// real-time code reaches a sink only through the asynchronous queue.
package natsink

import (
	"fmt"
	"sync/atomic"

	"github.com/nats-io/nats.go"

	"github.com/pjscruggs/rtlog"
)

// Publisher is the slice of *nats.Conn the sink needs. It is an interface
// so tests can capture published lines without a running server.
type Publisher interface {
	Publish(subj string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// Sink renders log lines and publishes them to a fixed subject.
type Sink struct {
	pub     Publisher
	subject string
	dropped atomic.Uint64
}

// New returns a Sink publishing to subject via pub.
func New(pub Publisher, subject string) *Sink {
	return &Sink{pub: pub, subject: subject}
}

// Callback returns the rtlog.Callback for this sink, suitable for passing
// to rtlog.Set.
func (s *Sink) Callback() rtlog.Callback {
	return s.emit
}

// Dropped reports how many lines failed to publish. Publish errors are
// otherwise discarded: the sink runs on the drain goroutine and has nobody
// to report to.
func (s *Sink) Dropped() uint64 {
	return s.dropped.Load()
}

// emit renders one line, bounded the same way as the core's own sinks, and
// publishes it. Pre-rendered text from the drain goroutine arrives as the
// template with no arguments and is forwarded verbatim.
func (s *Sink) emit(format string, args ...any) {
	var scratch [rtlog.MessageMaxSize]byte
	var line []byte
	if len(args) == 0 {
		line = append(scratch[:0], format...)
	} else {
		line = fmt.Appendf(scratch[:0], format, args...)
	}
	if len(line) > rtlog.MessageMaxSize-1 {
		line = line[:rtlog.MessageMaxSize-1]
	}

	if err := s.pub.Publish(s.subject, line); err != nil {
		s.dropped.Add(1)
	}
}
