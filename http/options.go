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

package http

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// DefaultBodyLimit is the largest body, in bytes, rendered into a log block.
// Larger bodies are replaced by a size note.
const DefaultBodyLimit int64 = 10000

// SkipFunc decides whether a request bypasses logging entirely. Returning
// true means the wrapped transport runs with no events emitted.
type SkipFunc func(*http.Request) bool

// Option mutates the transport configuration.
type Option func(*options)

type options struct {
	skip               SkipFunc
	skipPathSubstrings []string
	bodyLimit          int64
	errorOnStatus      bool
	injectTraceparent  bool
	enableOTel         bool
}

// defaultTransportOptions returns the configuration used before environment
// variables and functional options are applied.
func defaultTransportOptions() options {
	return options{
		bodyLimit:         DefaultBodyLimit,
		errorOnStatus:     true,
		injectTraceparent: true,
	}
}

// loadTransportOptionsFromEnv builds options from the current process
// environment. Invalid values are ignored so functional options can supply
// overrides without additional error handling.
func loadTransportOptionsFromEnv() options {
	opts := defaultTransportOptions()

	if raw, ok := os.LookupEnv("BOXLOG_HTTP_SKIP_PATH_SUBSTRINGS"); ok {
		opts.skipPathSubstrings = splitAndClean(raw)
	}
	if raw, ok := os.LookupEnv("BOXLOG_HTTP_BODY_LIMIT"); ok {
		if v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && v > 0 {
			opts.bodyLimit = v
		}
	}
	if raw, ok := os.LookupEnv("BOXLOG_HTTP_ERROR_ON_STATUS"); ok {
		if v, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			opts.errorOnStatus = v
		}
	}
	if raw, ok := os.LookupEnv("BOXLOG_HTTP_INJECT_TRACEPARENT"); ok {
		if v, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			opts.injectTraceparent = v
		}
	}

	return opts
}

func applyOptions(opts []Option) *options {
	o := loadTransportOptionsFromEnv()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.bodyLimit <= 0 {
		o.bodyLimit = DefaultBodyLimit
	}
	return &o
}

// splitAndClean splits a comma-separated list and drops empty segments.
func splitAndClean(raw string) []string {
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cleaned = append(cleaned, p)
	}
	return cleaned
}

// WithSkip sets a predicate to bypass logging for specific requests
// (health checks, third-party hosts, and the like).
func WithSkip(f SkipFunc) Option {
	return func(o *options) { o.skip = f }
}

// WithSkipPathSubstrings bypasses logging for any request whose URL path
// contains one of the given substrings.
func WithSkipPathSubstrings(substrings ...string) Option {
	cleaned := make([]string, 0, len(substrings))
	for _, s := range substrings {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return func(o *options) { o.skipPathSubstrings = cleaned }
}

// WithBodyLimit caps how many body bytes are rendered. Bodies above the
// limit are elided with a size note; the call itself still sees the full
// body. Values below 1 fall back to DefaultBodyLimit.
func WithBodyLimit(limit int64) Option {
	return func(o *options) { o.bodyLimit = limit }
}

// WithErrorOnStatus controls whether 4xx/5xx responses log as Bad Response
// error events (default) or as ordinary response events.
func WithErrorOnStatus(enabled bool) Option {
	return func(o *options) { o.errorOnStatus = enabled }
}

// WithTraceparentInjection enables/disables W3C traceparent injection on
// outbound requests (default: enabled, only when a valid span context is
// present and the header is not already set).
func WithTraceparentInjection(enabled bool) Option {
	return func(o *options) { o.injectTraceparent = enabled }
}

// WithOTelTransport wraps the base transport with otelhttp so each logged
// call is also covered by a client span.
func WithOTelTransport(enabled bool) Option {
	return func(o *options) { o.enableOTel = enabled }
}
