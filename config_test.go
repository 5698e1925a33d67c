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
	"testing"
	"time"
)

// TestLoadRuntimeConfig_Defaults verifies the built-in knobs with no
// environment overlay.
func TestLoadRuntimeConfig_Defaults(t *testing.T) {
	t.Setenv(envQueueDepth, "")
	t.Setenv(envBatchInterval, "")
	t.Setenv(envDequeueWait, "")

	cfg := loadRuntimeConfig()
	if cfg.queueDepth != QueueDepth {
		t.Errorf("queueDepth = %d, want %d", cfg.queueDepth, QueueDepth)
	}
	if cfg.batchInterval != defaultBatchInterval {
		t.Errorf("batchInterval = %v, want %v", cfg.batchInterval, defaultBatchInterval)
	}
	if cfg.dequeueWait != defaultDequeueWait {
		t.Errorf("dequeueWait = %v, want %v", cfg.dequeueWait, defaultDequeueWait)
	}
}

// TestLoadRuntimeConfig_EnvOverlay verifies parsing, clamping, and the
// ignore-invalid policy of the environment overlay.
func TestLoadRuntimeConfig_EnvOverlay(t *testing.T) {
	testCases := []struct {
		name      string
		depth     string
		batch     string
		wait      string
		wantDepth int
		wantBatch time.Duration
		wantWait  time.Duration
	}{
		{
			name:      "AllValid",
			depth:     "128",
			batch:     "2ms",
			wait:      "500us",
			wantDepth: 128,
			wantBatch: 2 * time.Millisecond,
			wantWait:  500 * time.Microsecond,
		},
		{
			name:      "InvalidValuesIgnored",
			depth:     "not-a-number",
			batch:     "soon",
			wait:      "later",
			wantDepth: QueueDepth,
			wantBatch: defaultBatchInterval,
			wantWait:  defaultDequeueWait,
		},
		{
			name:      "NonPositiveIgnored",
			depth:     "0",
			batch:     "-1ms",
			wait:      "-1ms",
			wantDepth: QueueDepth,
			wantBatch: defaultBatchInterval,
			wantWait:  defaultDequeueWait,
		},
		{
			name:      "WhitespaceTolerated",
			depth:     "  64  ",
			batch:     " 5ms ",
			wait:      " 0s ",
			wantDepth: 64,
			wantBatch: 5 * time.Millisecond,
			wantWait:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(envQueueDepth, tc.depth)
			t.Setenv(envBatchInterval, tc.batch)
			t.Setenv(envDequeueWait, tc.wait)

			cfg := loadRuntimeConfig()
			if cfg.queueDepth != tc.wantDepth {
				t.Errorf("queueDepth = %d, want %d", cfg.queueDepth, tc.wantDepth)
			}
			if cfg.batchInterval != tc.wantBatch {
				t.Errorf("batchInterval = %v, want %v", cfg.batchInterval, tc.wantBatch)
			}
			if cfg.dequeueWait != tc.wantWait {
				t.Errorf("dequeueWait = %v, want %v", cfg.dequeueWait, tc.wantWait)
			}
		})
	}
}
