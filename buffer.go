// Copyright 2026 Mark Veitch
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

package boxlog

import "strings"

// lineBuffer collects the lines of one render pass. Each pass owns its buffer
// exclusively from creation to flush, so no synchronization is needed; the
// sink receives the whole block in a single call, which is what keeps
// concurrent calls from interleaving their output.
type lineBuffer struct {
	lines   []string
	flushed bool
}

func newLineBuffer() *lineBuffer {
	return &lineBuffer{lines: make([]string, 0, 32)}
}

func (b *lineBuffer) add(line string) {
	b.lines = append(b.lines, line)
}

// flush joins the buffered lines and hands them to sink as one unit. A buffer
// flushes at most once; empty buffers produce no sink call.
func (b *lineBuffer) flush(sink func(string)) {
	if b.flushed || len(b.lines) == 0 || sink == nil {
		return
	}
	b.flushed = true
	sink(strings.Join(b.lines, "\n"))
}
