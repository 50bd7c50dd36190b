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

import (
	"io"
	"os"
	"sync"
)

// SwitchableWriter is an io.Writer whose destination can be swapped
// atomically. The default sink writes through one so that output can be
// redirected (say, from stdout to a file during tests or after a reopen)
// without rebuilding the Logger.
//
// It also implements io.Closer: Close closes the current destination if it
// is an io.Closer and directs further writes to io.Discard.
type SwitchableWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSwitchableWriter wraps initial as the first destination. A nil initial
// writer means io.Discard.
func NewSwitchableWriter(initial io.Writer) *SwitchableWriter {
	if initial == nil {
		initial = io.Discard
	}
	return &SwitchableWriter{w: initial}
}

// Write forwards to the current destination. Safe for concurrent use.
func (sw *SwitchableWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.w == nil {
		return 0, os.ErrClosed
	}
	return sw.w.Write(p)
}

// SetWriter atomically replaces the destination. The previous writer is not
// closed; its lifecycle belongs to the caller. A nil writer means io.Discard.
func (sw *SwitchableWriter) SetWriter(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	sw.mu.Lock()
	sw.w = w
	sw.mu.Unlock()
}

// Close closes the current destination when it implements io.Closer and
// points further writes at io.Discard.
func (sw *SwitchableWriter) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	var err error
	if c, ok := sw.w.(io.Closer); ok && sw.w != os.Stdout && sw.w != os.Stderr {
		err = c.Close()
	}
	sw.w = io.Discard
	return err
}
