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
	"strconv"
	"strings"
)

// DefaultMaxWidth is the line-width budget used when none is configured.
const DefaultMaxWidth = 90

// Option mutates the logger configuration during New.
type Option func(*options)

// options is the immutable per-logger configuration. It is populated from
// defaults, then the environment, then functional options, and never changes
// after New returns, which is what makes concurrent render passes safe
// without locking.
type options struct {
	maxWidth        int
	compact         bool
	request         bool
	requestHeaders  bool
	requestBody     bool
	responseHeaders bool
	responseBody    bool
	errors          bool
	enabled         bool
	filter          Filter
	sink            func(string)
	writer          io.Writer
}

// defaultOptions returns the configuration used before environment variables
// and functional options are applied: every section on, compact mode on,
// width 90, output to stdout.
func defaultOptions() options {
	return options{
		maxWidth:        DefaultMaxWidth,
		compact:         true,
		request:         true,
		requestHeaders:  true,
		requestBody:     true,
		responseHeaders: true,
		responseBody:    true,
		errors:          true,
		enabled:         true,
	}
}

// loadOptionsFromEnv builds options from the current process environment.
// Invalid values are ignored so functional options can supply overrides
// without additional error handling.
func loadOptionsFromEnv() options {
	opts := defaultOptions()

	if raw, ok := os.LookupEnv("BOXLOG_MAX_WIDTH"); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
			opts.maxWidth = v
		}
	}
	loadBool := func(key string, dst *bool) {
		if raw, ok := os.LookupEnv(key); ok {
			if v, err := parseBool(raw); err == nil {
				*dst = v
			}
		}
	}
	loadBool("BOXLOG_COMPACT", &opts.compact)
	loadBool("BOXLOG_REQUEST", &opts.request)
	loadBool("BOXLOG_REQUEST_HEADERS", &opts.requestHeaders)
	loadBool("BOXLOG_REQUEST_BODY", &opts.requestBody)
	loadBool("BOXLOG_RESPONSE_HEADERS", &opts.responseHeaders)
	loadBool("BOXLOG_RESPONSE_BODY", &opts.responseBody)
	loadBool("BOXLOG_ERRORS", &opts.errors)
	loadBool("BOXLOG_ENABLED", &opts.enabled)

	return opts
}

// parseBool accepts the usual strconv forms plus on/off and yes/no, matching
// what operators tend to put in environment variables.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	default:
		return strconv.ParseBool(strings.TrimSpace(raw))
	}
}

func applyOptions(opts []Option) *options {
	o := loadOptionsFromEnv()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.maxWidth <= 0 {
		o.maxWidth = DefaultMaxWidth
	}
	return &o
}

// WithMaxWidth sets the line-width budget for wrapping, flattening, and rule
// lines. Values below 1 fall back to DefaultMaxWidth.
func WithMaxWidth(width int) Option {
	return func(o *options) { o.maxWidth = width }
}

// WithCompact toggles flatten-if-small rendering of nested maps and lists.
func WithCompact(compact bool) Option {
	return func(o *options) { o.compact = compact }
}

// WithRequestLine toggles the boxed request banner section.
func WithRequestLine(enabled bool) Option {
	return func(o *options) { o.request = enabled }
}

// WithRequestHeaders toggles the request header, query parameter, and extras
// tables.
func WithRequestHeaders(enabled bool) Option {
	return func(o *options) { o.requestHeaders = enabled }
}

// WithRequestBody toggles the request body block. Bodies only render for
// methods that semantically carry one; GET and HEAD never log a body.
func WithRequestBody(enabled bool) Option {
	return func(o *options) { o.requestBody = enabled }
}

// WithResponseHeaders toggles the response header table.
func WithResponseHeaders(enabled bool) Option {
	return func(o *options) { o.responseHeaders = enabled }
}

// WithResponseBody toggles the response body block.
func WithResponseBody(enabled bool) Option {
	return func(o *options) { o.responseBody = enabled }
}

// WithErrors toggles rendering of error events.
func WithErrors(enabled bool) Option {
	return func(o *options) { o.errors = enabled }
}

// WithEnabled switches the whole logger on or off. A disabled logger
// allocates nothing and never invokes the sink.
func WithEnabled(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// WithFilter installs a predicate consulted once per event before any
// rendering work. See Filter for the fail-open contract.
func WithFilter(f Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithSink replaces the output function. The sink receives each finished
// block as a single multi-line string and must be safe to call from
// concurrent render passes.
func WithSink(sink func(string)) Option {
	return func(o *options) { o.sink = sink }
}

// WithWriter directs the default sink at w instead of stdout. Ignored when
// WithSink is also given.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}
