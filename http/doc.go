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

// Package http provides net/http integration for boxlog.
//
// The package offers:
//
//  1. [NewTransport]: an [http.RoundTripper] that derives boxlog capture
//     events from outbound calls — the request as it leaves, the response or
//     the classified error as it returns — and hands them to a
//     [boxlog.Logger]. The wrapped transport always runs exactly once and
//     receives the original request unmodified; logging is observational.
//
//  2. Trace correlation: when the request context carries a valid
//     OpenTelemetry span context, the trace and span IDs appear in the
//     request's Extras table, and the W3C traceparent header can be injected
//     via the global propagator for downstream correlation.
//
//  3. Optional otelhttp wrapping ([WithOTelTransport]) so spans cover the
//     same calls that get logged.
//
// # Basic Usage
//
//	logger := boxlog.New()
//
//	client := &http.Client{
//	    Transport: boxloghttp.NewTransport(nil, logger),
//	}
//
//	resp, err := client.Get("https://api.example.com/users?active=true")
//
// Request and response bodies are snapshotted and restored, so handlers and
// callers read them exactly as if the transport were not there. Bodies above
// the configured limit are elided with a size note instead of being rendered.
package http
