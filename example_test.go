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

package rtlog_test

import (
	"os"

	"github.com/pjscruggs/rtlog"
)

// Example configures a console sink and logs through the synchronous path.
func Example() {
	rtlog.Set(rtlog.LevelInfo, rtlog.WriterCallback(os.Stdout))
	defer rtlog.Set(rtlog.LevelDisabled, nil)

	rtlog.Logf("engine.go", 17, "stream opened rate=%d", 48000)
	// Output: engine.go:17:stream opened rate=48000
}

// ExampleAsyncf shows the pattern for real-time callers: the audio
// callback formats and pushes, and a background goroutine performs the
// actual write later.
func ExampleAsyncf() {
	rtlog.Set(rtlog.LevelVerbose, rtlog.WriterCallback(os.Stderr))
	defer rtlog.Set(rtlog.LevelDisabled, nil)

	// Inside the audio callback: never blocks, drops on overflow.
	rtlog.Asyncf("underrun frames=%d position=%d", 512, 96000)
}
