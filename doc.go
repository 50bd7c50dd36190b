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

// Package boxlog renders HTTP request, response, and error data as
// bounded-width, indented, boxed text blocks for human-readable logs.
//
// The package offers:
//
//  1. [Value]: a closed tagged union (null, bool, number, text, bytes,
//     ordered list, ordered map) over everything boxlog knows how to render,
//     built from wire content via [FromJSON] or [FromAny].
//
//  2. [Logger]: three entry points — [Logger.LogRequest],
//     [Logger.LogResponse], [Logger.LogError] — each of which gates the
//     event through the configured filter, lays it out into a private line
//     buffer, and hands the finished block to the sink in a single call.
//     Blocks from concurrent calls never interleave.
//
//  3. A recursive block renderer with flatten-if-small compaction: nested
//     maps and lists collapse onto one line when they contain no further
//     nesting and fit the width budget; long text wraps into fixed-width
//     slices; byte payloads render as chunked decimal lines instead of one
//     line per byte.
//
// Configuration comes from defaults, BOXLOG_* environment variables, and
// functional options, in that order. For net/http integration see the
// boxlog/http subpackage, which derives events from a RoundTripper.
//
// # Basic Usage
//
//	logger := boxlog.New(
//	    boxlog.WithMaxWidth(90),
//	    boxlog.WithCompact(true),
//	)
//
//	body, _ := boxlog.FromJSON([]byte(`{"id": 1, "tags": ["a", "b"]}`))
//	logger.LogResponse(&boxlog.ResponseEvent{
//	    Method:        "GET",
//	    URI:           "https://api.example.com/users/1",
//	    StatusCode:    200,
//	    StatusMessage: "OK",
//	    Body:          &body,
//	    ElapsedMillis: 42,
//	})
//
// Rendering never panics out of a log call: formatting faults degrade to
// less-structured output (or, at worst, a missing block) so the surrounding
// HTTP call is never disturbed.
package boxlog
