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
	"fmt"
	"io"
	"os"
)

// Logger renders capture events into boxed text blocks. Construction fixes
// the configuration; after New returns, a Logger is safe for use from any
// number of goroutines because each log call owns its buffer from first line
// to flush and touches no shared mutable state.
type Logger struct {
	opts *options
	out  *SwitchableWriter
}

// New builds a Logger from defaults, BOXLOG_* environment variables, and the
// given functional options, in that order of precedence. Without WithSink or
// WithWriter, blocks go to stdout.
func New(opts ...Option) *Logger {
	o := applyOptions(opts)
	l := &Logger{opts: o}
	if o.sink == nil {
		w := o.writer
		if w == nil {
			w = os.Stdout
		}
		l.out = NewSwitchableWriter(w)
		o.sink = func(block string) {
			fmt.Fprintln(l.out, block)
		}
	}
	return l
}

// SetOutput atomically redirects the default sink to w. It has no effect
// when the Logger was built with WithSink.
func (l *Logger) SetOutput(w io.Writer) {
	if l.out != nil {
		l.out.SetWriter(w)
	}
}

// LogRequest renders the outbound leg of a call. The event passes through
// unmodified; rendering is purely observational.
func (l *Logger) LogRequest(ev *RequestEvent) {
	if ev == nil {
		return
	}
	l.render(ev, func(r *renderer) { r.renderRequest(ev) })
}

// LogResponse renders a completed inbound response.
func (l *Logger) LogResponse(ev *ResponseEvent) {
	if ev == nil {
		return
	}
	l.render(ev, func(r *renderer) { r.renderResponse(ev) })
}

// LogError renders a failed inbound leg. Suppressed entirely when error
// rendering is disabled.
func (l *Logger) LogError(ev *ErrorEvent) {
	if ev == nil || !l.opts.errors {
		return
	}
	l.render(ev, func(r *renderer) { r.renderError(ev) })
}

// render runs one pass: gate, buffer, layout, single flush. A panic anywhere
// in layout is swallowed so a logging hook can never fail the HTTP call it
// observes; the worst outcome is a missing block.
func (l *Logger) render(ev Event, fn func(*renderer)) {
	if !l.opts.enabled {
		return
	}
	if !l.opts.accepts(ev) {
		return
	}
	defer func() {
		_ = recover()
	}()
	buf := newLineBuffer()
	fn(&renderer{cfg: l.opts, buf: buf})
	buf.flush(l.opts.sink)
}
