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

// Package queue adapts a bounded lock-free multi-producer single-consumer
// queue to the needs of the asynchronous logger: exact logical capacity,
// a best-effort dequeue with a short wait, and consumer goroutine-affinity
// bookkeeping that can be reset between drain sessions.
package queue

import (
	"runtime"
	"sync/atomic"
	"time"

	"code.hybscloud.com/lfq"
	"github.com/petermattis/goid"
)

// Ring is a bounded MPSC queue. Producers may call Enqueue concurrently;
// exactly one goroutine at a time may call Dequeue.
//
// The underlying lfq queue rounds its physical capacity up to a power of
// two, so Ring layers a logical occupancy gate on top: the configured depth
// is enforced exactly, which keeps "at most depth messages survive an
// overflow burst" a hard contract rather than an approximation.
type Ring[T any] struct {
	q     lfq.Queue[T]
	depth int64

	// occupied tracks logical queue occupancy. Producers reserve a slot
	// before enqueueing and release it on failure; the consumer releases
	// it after a successful dequeue.
	occupied atomic.Int64

	// consumer is the goroutine id bound to the dequeue side, zero while
	// unbound. The first Dequeue after construction or ResetThreadIDs
	// binds it; later calls from a different goroutine are counted as
	// violations instead of silently corrupting the single-consumer
	// contract.
	consumer   atomic.Int64
	violations atomic.Uint64
}

// New returns a Ring with the given logical depth. Depth values below one
// are clamped to one.
func New[T any](depth int) *Ring[T] {
	if depth < 1 {
		depth = 1
	}
	capacity := depth
	if capacity < 2 {
		// lfq requires a physical capacity of at least two.
		capacity = 2
	}
	return &Ring[T]{
		q:     lfq.NewMPSC[T](capacity),
		depth: int64(depth),
	}
}

// Enqueue offers v without blocking. It reports false when the logical
// depth has been reached or the underlying queue refuses the value; the
// caller is expected to drop v in that case.
func (r *Ring[T]) Enqueue(v T) bool {
	if r.occupied.Add(1) > r.depth {
		r.occupied.Add(-1)
		return false
	}
	if err := r.q.Enqueue(&v); err != nil {
		r.occupied.Add(-1)
		return false
	}
	return true
}

// Dequeue removes at most one entry, polling for up to wait before giving
// up. A zero wait makes a single non-blocking attempt. Only the bound
// consumer goroutine may call Dequeue; see ResetThreadIDs.
func (r *Ring[T]) Dequeue(wait time.Duration) (T, bool) {
	r.checkConsumer()

	deadline := time.Now().Add(wait)
	for {
		v, err := r.q.Dequeue()
		if err == nil {
			// Copy out before releasing the logical slot; the slot's
			// physical storage may be reused as soon as a producer sees
			// the decrement.
			out := v
			r.occupied.Add(-1)
			return out, true
		}
		var zero T
		if !lfq.IsWouldBlock(err) {
			return zero, false
		}
		if wait <= 0 || !time.Now().Before(deadline) {
			return zero, false
		}
		runtime.Gosched()
	}
}

// ResetThreadIDs clears the consumer-affinity binding so the next Dequeue
// may come from a different goroutine. It must only be called while the
// consumer is stopped.
func (r *Ring[T]) ResetThreadIDs() {
	r.consumer.Store(0)
}

// Drain switches the underlying queue into drain mode, allowing a
// post-shutdown purge to empty it even though no producer activity will
// follow. The caller must ensure no further Enqueue calls will be made.
func (r *Ring[T]) Drain() {
	if d, ok := r.q.(lfq.Drainer); ok {
		d.Drain()
	}
}

// Violations reports how many Dequeue calls arrived from a goroutine other
// than the bound consumer. A non-zero value indicates a caller bug: either
// two drain loops ran at once or ResetThreadIDs was skipped between
// sessions.
func (r *Ring[T]) Violations() uint64 {
	return r.violations.Load()
}

// checkConsumer binds the calling goroutine on first use and counts calls
// from any other goroutine afterwards.
func (r *Ring[T]) checkConsumer() {
	gid := goid.Get()
	if r.consumer.CompareAndSwap(0, gid) {
		return
	}
	if r.consumer.Load() != gid {
		r.violations.Add(1)
	}
}
