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

// Package rtlog is a real-time-safe logging core for low-latency audio
// pipelines. Its defining constraint is that a producer may be an active
// audio-rendering goroutine, which must never block or perform I/O when
// emitting a log line; doing so risks audible glitches or missed deadlines.
//
// The package therefore splits logging into two paths:
//
//   - [Logf] and the leveled wrappers ([Errorf], [Infof], [Debugf]) render
//     into a fixed-size buffer and invoke the configured [Callback]
//     synchronously. The callback may block, so this path is only for
//     control-plane callers.
//   - [Asyncf] (and [AsyncInfof], [AsyncDebugf]) render into a fixed-size
//     buffer, hand the result to a bounded lock-free queue, and return
//     immediately. A dedicated drain goroutine later forwards each queued
//     message to the callback, which is where any blocking I/O happens.
//
// When the queue is full the newest message is dropped silently: losing a
// log line is acceptable, stalling audio is not. There are no retries
// anywhere in the facility.
//
// # Configuration
//
// [Set] is the single configuration entry point. It publishes the
// process-wide severity threshold and callback, and starts or stops the
// asynchronous facility as a side effect:
//
//	rtlog.Set(rtlog.LevelInfo, rtlog.WriterCallback(os.Stderr))
//	defer rtlog.Set(rtlog.LevelDisabled, nil)
//
// Disabling logging swaps the callback to an internal no-op rather than to
// nil, so emission paths racing with a disable never dereference an absent
// callback. [GetCallback] reports nil in that state so callers can still
// distinguish "nothing configured" from "configured to a real sink".
//
// The drain loop's queue depth and polling cadence can be overlaid through
// the RTLOG_QUEUE_DEPTH, RTLOG_BATCH_INTERVAL, and RTLOG_DEQUEUE_WAIT
// environment variables; see config.go for parsing rules.
//
// # Observability
//
// Delivery and drop counts are kept in plain atomics (readable via
// [Stats]) and can be mirrored into a Prometheus registry with
// [RegisterMetrics]. [SetThreadHook] lets hosts register the drain
// goroutine with a process-wide tracing facility; [SpanThreadHook] does so
// through OpenTelemetry.
//
// # Subpackages
//
//   - [github.com/pjscruggs/rtlog/natsink] publishes rendered log lines to
//     a NATS subject, for hosts that ship logs to a sidecar over IPC
//     instead of writing them in-process.
package rtlog
