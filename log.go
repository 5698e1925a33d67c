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
	"path/filepath"
	"runtime"
	"sync/atomic"
)

// Process-wide configuration. Level and callback are each independently
// atomic; no compound lock protects their joint consistency, so a reader
// may observe a level/callback pair that was never published together.
// That is acceptable: each field's individual read is always valid.
var (
	logLevel    atomic.Int32
	logCallback callbackCell
)

// Logf renders format with args into a fixed-size buffer and invokes the
// configured callback with the call site baked into a three-part template,
// matching "file:line:message". The call executes synchronously and blocks
// for as long as the callback does, so it must not be used from a
// real-time goroutine.
//
// Logf applies no severity filtering: the branch on level belongs at the
// call site (see Errorf and friends), where it can skip the formatting
// cost entirely.
func Logf(file string, line int, format string, args ...any) {
	var scratch [MessageMaxSize]byte
	msg := appendFormat(scratch[:0], format, args...)
	logCallback.load()("%s:%d:%s", file, line, msg)
}

// Asyncf renders format with args into a fixed-size buffer and hands the
// result to the asynchronous logger. It neither blocks nor performs I/O,
// and is the entry point intended for real-time producers. No file/line
// decoration is added here; the hot path stays minimal, and callers who
// want a call-site marker bake it into the template.
//
// Like Logf, Asyncf does not consult the configured level.
func Asyncf(format string, args ...any) {
	var scratch [MessageMaxSize]byte
	msg := appendFormat(scratch[:0], format, args...)
	Async().pushBytes(msg)
}

// logNoFormat forwards already-rendered text to the callback with no
// further formatting pass. The drain goroutine uses it for every dequeued
// message; the text travels as the template with an empty argument list.
func logNoFormat(text string) {
	logCallback.load()(text)
}

// Errorf logs through the synchronous path at error severity.
func Errorf(format string, args ...any) {
	logfAt(LevelError, format, args...)
}

// Warnf logs through the synchronous path at warning severity.
func Warnf(format string, args ...any) {
	logfAt(LevelWarn, format, args...)
}

// Infof logs through the synchronous path at info severity.
func Infof(format string, args ...any) {
	logfAt(LevelInfo, format, args...)
}

// Debugf logs through the synchronous path at debug severity.
func Debugf(format string, args ...any) {
	logfAt(LevelDebug, format, args...)
}

// logfAt is the shared leveled wrapper: the threshold check runs before
// any formatting, so a filtered call costs one atomic load and a compare.
func logfAt(severity Level, format string, args ...any) {
	if !GetLevel().Enabled(severity) {
		return
	}
	file, line := caller(3)
	Logf(file, line, format, args...)
}

// AsyncInfof logs through the asynchronous path at info severity.
func AsyncInfof(format string, args ...any) {
	asyncfAt(LevelInfo, format, args...)
}

// AsyncDebugf logs through the asynchronous path at debug severity.
func AsyncDebugf(format string, args ...any) {
	asyncfAt(LevelDebug, format, args...)
}

func asyncfAt(severity Level, format string, args ...any) {
	if !GetLevel().Enabled(severity) {
		return
	}
	Asyncf(format, args...)
}

// caller resolves the file base name and line of the frame skip levels up.
func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}

// Set publishes the process-wide level and callback, starting or stopping
// the asynchronous facility as a side effect. It recognizes two shapes:
//
//   - callback non-nil and level not LevelDisabled: the async logger is
//     started (or left running) before the callback becomes observable, so
//     producers cannot see a live callback while nothing exists to drain
//     the queue. A short window the other way around is tolerated; the
//     queue buffers.
//   - callback nil or level LevelDisabled: the async logger is stopped,
//     blocking until the drain goroutine has joined, then the no-op
//     callback is published and any residual queued entries are purged.
//
// The two conditions are logical complements, so every call takes exactly
// one of the branches.
//
// Once a callback has been published, the cell is never reset to nil, only
// to the internal no-op: an emission path racing with a disable therefore
// never dereferences an absent callback.
//
// Set must not be called concurrently with itself or with the async
// logger's control operations.
func Set(level Level, callback Callback) {
	logLevel.Store(int32(level))
	if callback != nil && level != LevelDisabled {
		Async().Start()
		logCallback.store(callback)
	} else {
		// Stop returns once the drain goroutine has joined.
		Async().Stop()
		logCallback.store(nil)
		Async().PurgeQueue()
	}
}

// GetLevel returns the current severity threshold. Pure read, no side
// effects.
func GetLevel() Level {
	return Level(logLevel.Load())
}

// GetCallback returns the currently configured callback, or nil when the
// cell holds the internal no-op. Callers can thereby distinguish "nothing
// configured" from "configured to a real sink" without the emission paths
// ever observing an unsafe nil.
func GetCallback() Callback {
	return logCallback.get()
}

// ResetAsyncThreads informs the asynchronous queue that producer goroutine
// identity may change before the next session, for hosts that rebuild
// their real-time threads between streams. It is a no-op while no callback
// is configured.
func ResetAsyncThreads() {
	if !logCallback.configured() {
		return
	}
	Async().ResetProducerThread()
}
