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
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// stats are the always-on hot-path counters. They are plain atomics so the
// facility stays useful (and cheap) with no metrics registry configured;
// RegisterMetrics mirrors them into Prometheus collectors on demand.
var stats struct {
	pushed       atomic.Uint64
	dropped      atomic.Uint64
	delivered    atomic.Uint64
	drainRunning atomic.Int64
}

// Stats returns the number of messages offered to the asynchronous path,
// the number dropped (queue full, oversize, or facility stopped), and the
// number delivered to the callback by the drain goroutine. Counters are
// monotonic for the life of the process.
func Stats() (pushed, dropped, delivered uint64) {
	return stats.pushed.Load(), stats.dropped.Load(), stats.delivered.Load()
}

// RegisterMetrics registers rtlog's collectors with reg. The collectors
// read the internal atomic counters at gather time, so registration adds
// no cost to the push or drain paths.
func RegisterMetrics(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "rtlog_messages_pushed_total",
			Help: "Messages offered to the asynchronous logging queue.",
		}, func() float64 { return float64(stats.pushed.Load()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "rtlog_messages_dropped_total",
			Help: "Messages dropped because the queue was full or the facility was stopped.",
		}, func() float64 { return float64(stats.dropped.Load()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "rtlog_messages_delivered_total",
			Help: "Messages forwarded to the configured callback by the drain goroutine.",
		}, func() float64 { return float64(stats.delivered.Load()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "rtlog_drain_running",
			Help: "Whether the drain goroutine is currently running (0 or 1).",
		}, func() float64 { return float64(stats.drainRunning.Load()) }),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register rtlog collector: %w", err)
		}
	}
	return nil
}
