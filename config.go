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
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// defaultBatchInterval is how long the drain goroutine sleeps between
	// polling passes. It amortizes wake-ups instead of busy-spinning, and
	// bounds worst-case delivery latency to roughly one interval plus
	// whatever the callback itself takes.
	defaultBatchInterval = 10 * time.Millisecond

	// defaultDequeueWait is the short wait of a single dequeue attempt
	// inside a polling pass.
	defaultDequeueWait = time.Millisecond

	envQueueDepth    = "RTLOG_QUEUE_DEPTH"
	envBatchInterval = "RTLOG_BATCH_INTERVAL"
	envDequeueWait   = "RTLOG_DEQUEUE_WAIT"
)

// runtimeConfig carries the drain-loop knobs resolved once per Start.
type runtimeConfig struct {
	queueDepth    int
	batchInterval time.Duration
	dequeueWait   time.Duration
}

// loadRuntimeConfig resolves the built-in defaults and then overlays
// environment variables. Values that fail to parse are ignored, and the
// results are clamped to usable minima; a logging facility should never
// refuse to start over a malformed tuning knob.
func loadRuntimeConfig() runtimeConfig {
	cfg := runtimeConfig{
		queueDepth:    QueueDepth,
		batchInterval: defaultBatchInterval,
		dequeueWait:   defaultDequeueWait,
	}

	if raw := strings.TrimSpace(os.Getenv(envQueueDepth)); raw != "" {
		if depth, err := strconv.Atoi(raw); err == nil && depth > 0 {
			cfg.queueDepth = depth
		}
	}

	if raw := strings.TrimSpace(os.Getenv(envBatchInterval)); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.batchInterval = d
		}
	}

	if raw := strings.TrimSpace(os.Getenv(envDequeueWait)); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
			cfg.dequeueWait = d
		}
	}

	return cfg
}
