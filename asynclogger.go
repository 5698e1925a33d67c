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
	"sync"
	"sync/atomic"
	"time"

	"github.com/pjscruggs/rtlog/internal/queue"
)

// AsyncLogger moves log delivery off real-time goroutines. Producers hand
// fixed-size messages to a bounded lock-free queue through Push; a single
// drain goroutine forwards queued messages to the configured callback,
// which is where any blocking I/O happens.
//
// The lifecycle is Stopped → Running → Stopped and re-entrant: the queue
// and drain goroutine exist only between Start and Stop. Control
// operations (Start, Stop, ResetProducerThread, PurgeQueue) must not be
// invoked concurrently with themselves or each other; Set provides that
// serialization for the common case.
type AsyncLogger struct {
	// msgQueue is non-nil only while running. It is an atomic pointer so a
	// Push racing with teardown reads either a live queue or nil, never a
	// torn value; messages pushed after shutdown has been signaled may be
	// silently lost, which the contract permits.
	msgQueue atomic.Pointer[queue.Ring[Message]]

	// shutdown is read by the drain goroutine and written by Stop.
	shutdown atomic.Bool

	// done is closed by the drain goroutine on exit; nil while stopped.
	// It doubles as the "drain goroutine exists" flag, the equivalent of
	// holding a joinable thread handle.
	done chan struct{}
}

var (
	asyncOnce sync.Once
	asyncInst *AsyncLogger
)

// Async returns the process-wide asynchronous logger. The same instance is
// returned for the lifetime of the process.
func Async() *AsyncLogger {
	asyncOnce.Do(func() { asyncInst = &AsyncLogger{} })
	return asyncInst
}

// Start allocates the queue and spawns the drain goroutine. Calling Start
// while already running is a no-op, so a reconfiguring Set can leave a
// live session undisturbed. Start must not race with Stop or with itself.
func (l *AsyncLogger) Start() {
	if l.done != nil {
		return
	}

	cfg := loadRuntimeConfig()
	q := queue.New[Message](cfg.queueDepth)
	l.msgQueue.Store(q)
	l.shutdown.Store(false)

	done := make(chan struct{})
	l.done = done
	go l.drain(q, cfg, done)
}

// drain is the consumer loop. Each pass forwards everything currently
// queued, one message per dequeue attempt, then sleeps one batch interval;
// the cadence bounds worst-case delivery latency to roughly one interval
// plus the callback's own cost.
func (l *AsyncLogger) drain(q *queue.Ring[Message], cfg runtimeConfig, done chan struct{}) {
	defer close(done)

	hook := loadThreadHook()
	hook.Register(drainThreadName)
	defer hook.Unregister()

	stats.drainRunning.Store(1)
	defer stats.drainRunning.Store(0)

	for !l.shutdown.Load() {
		for {
			msg, ok := q.Dequeue(cfg.dequeueWait)
			if !ok {
				break
			}
			logNoFormat(msg.Text())
			stats.delivered.Add(1)
		}
		time.Sleep(cfg.batchInterval)
	}
}

// Push wraps text into a Message and offers it to the queue. It never
// blocks and performs no I/O, making it the only operation safe to call
// from a real-time producer. When the queue is full, or the facility is
// stopped, the message is dropped silently; the drop is counted but never
// surfaced, because retrying or blocking on an audio goroutine is the one
// thing this package exists to prevent.
func (l *AsyncLogger) Push(text string) {
	q := l.msgQueue.Load()
	if q == nil {
		stats.dropped.Add(1)
		return
	}
	stats.pushed.Add(1)
	if !q.Enqueue(NewMessage(text)) {
		stats.dropped.Add(1)
	}
}

// pushBytes is Push for an already-rendered byte slice, keeping the
// formatting entry points free of a string conversion.
func (l *AsyncLogger) pushBytes(text []byte) {
	q := l.msgQueue.Load()
	if q == nil {
		stats.dropped.Add(1)
		return
	}
	stats.pushed.Add(1)
	if !q.Enqueue(newMessageBytes(text)) {
		stats.dropped.Add(1)
	}
}

// ResetProducerThread tells the queue that the identity of producer and
// consumer goroutines may change before the next session, so affinity
// bookkeeping does not misfire. It must only be called while the drain
// goroutine is stopped.
func (l *AsyncLogger) ResetProducerThread() {
	if q := l.msgQueue.Load(); q != nil {
		q.ResetThreadIDs()
	}
}

// Stop is an idempotent no-op while stopped. Otherwise it signals
// shutdown, joins the drain goroutine (blocking the caller until the loop
// observes the flag and exits; acceptable because Stop is only invoked
// from a non-real-time control path), resets the queue's goroutine
// bookkeeping, purges whatever is still queued so no stale message leaks
// into a later session, and releases the queue.
func (l *AsyncLogger) Stop() {
	if l.done == nil {
		return
	}

	l.shutdown.Store(true)
	<-l.done
	l.done = nil

	if q := l.msgQueue.Load(); q != nil {
		q.ResetThreadIDs()
		l.PurgeQueue()
		l.msgQueue.Store(nil)
	}
}

// PurgeQueue drains and discards every queued message without forwarding
// it. Calling it while the drain goroutine runs would put two consumers on
// a single-consumer queue, so it panics in that case rather than corrupt
// the queue.
func (l *AsyncLogger) PurgeQueue() {
	if l.done != nil {
		panic("rtlog: PurgeQueue called while the drain goroutine is running")
	}
	q := l.msgQueue.Load()
	if q == nil {
		return
	}
	q.Drain()
	for {
		if _, ok := q.Dequeue(0); !ok {
			return
		}
	}
}
