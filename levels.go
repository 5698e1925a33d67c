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

import "fmt"

// Level is the ordered severity threshold applied by the leveled entry
// points. Larger values are more verbose; LevelDisabled suppresses all
// output and, through Set, tears down the asynchronous facility.
type Level int32

const (
	// LevelDisabled suppresses all logging.
	LevelDisabled Level = iota

	// LevelError admits only errors.
	LevelError

	// LevelWarn admits warnings and errors.
	LevelWarn

	// LevelInfo admits routine operational messages. This is the level
	// most hosts configure in production.
	LevelInfo

	// LevelDebug admits diagnostic detail.
	LevelDebug

	// LevelVerbose admits everything, including per-callback chatter from
	// the audio rendering path.
	LevelVerbose
)

// String returns the canonical upper-case name of the level. Values outside
// the defined range render as "LEVEL(n)" rather than panicking, since a
// Level may arrive from an environment variable or a remote control surface.
func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "DISABLED"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelVerbose:
		return "VERBOSE"
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

// Enabled reports whether a message at severity s passes the threshold l.
// LevelDisabled admits nothing, including itself.
func (l Level) Enabled(s Level) bool {
	return l != LevelDisabled && s != LevelDisabled && s <= l
}
