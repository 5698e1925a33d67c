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

const (
	// MessageMaxSize is the capacity of a Message's inline storage, and
	// therefore the maximum size of a log message after formatting. One
	// byte is reserved, so the longest storable text is MessageMaxSize-1
	// bytes; anything longer is rejected outright.
	MessageMaxSize = 256

	// QueueDepth is the default number of messages that can be queued for
	// asynchronous delivery before new messages are dropped. It can be
	// overridden per session through RTLOG_QUEUE_DEPTH.
	QueueDepth = 40
)

// Message wraps an inline fixed-capacity buffer holding one rendered log
// line. It is pure data: constructed on the caller's stack, copied by value
// into and out of the queue, and owning no heap state. Nothing in it may
// block or perform a system call.
type Message struct {
	storage [MessageMaxSize]byte
	length  int
}

// NewMessage copies at most MessageMaxSize-1 bytes of text into a Message.
// Text of MessageMaxSize bytes or more yields an empty message: oversize
// input is a malformed-caller guard, and dropping the line whole is
// preferred over truncating it into a corrupt one.
func NewMessage(text string) Message {
	var m Message
	if len(text) > MessageMaxSize-1 {
		return m
	}
	m.length = copy(m.storage[:], text)
	return m
}

// newMessageBytes is NewMessage for an already-rendered byte slice, used by
// the formatting entry points to avoid a string conversion on the push
// path.
func newMessageBytes(text []byte) Message {
	var m Message
	if len(text) > MessageMaxSize-1 {
		return m
	}
	m.length = copy(m.storage[:], text)
	return m
}

// Text returns the stored text. It has no side effects.
func (m *Message) Text() string {
	return string(m.storage[:m.length])
}

// appendFormat renders format with args into buf, which callers provide as
// an empty slice over a fixed-size array, and returns the result truncated
// to MessageMaxSize-1 bytes. This mirrors vsnprintf semantics: output never
// exceeds the message capacity, and an overlong rendering is cut rather
// than grown. Renderings that fit reuse buf's backing array.
func appendFormat(buf []byte, format string, args ...any) []byte {
	out := fmt.Appendf(buf, format, args...)
	if len(out) > MessageMaxSize-1 {
		out = out[:MessageMaxSize-1]
	}
	return out
}
