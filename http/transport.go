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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	stdhttp "net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mveitch/boxlog"
)

// NewTransport wraps base (or http.DefaultTransport if nil) so every call it
// carries is rendered by logger: the outbound request when it leaves, the
// response or classified error when it returns. The wrapped transport is the
// continuation of each hook: it always runs exactly once and receives the
// original request unmodified.
func NewTransport(base stdhttp.RoundTripper, logger *boxlog.Logger, opts ...Option) stdhttp.RoundTripper {
	cfg := applyOptions(opts)
	if base == nil {
		base = stdhttp.DefaultTransport
	}
	if cfg.enableOTel {
		base = otelhttp.NewTransport(base)
	}
	return &transport{base: base, logger: logger, cfg: cfg}
}

type transport struct {
	base   stdhttp.RoundTripper
	logger *boxlog.Logger
	cfg    *options
}

// RoundTrip implements http.RoundTripper. Timing starts when the request is
// captured, so elapsed time on the inbound leg covers the full round trip of
// this call and no other.
func (t *transport) RoundTrip(req *stdhttp.Request) (*stdhttp.Response, error) {
	if t.logger == nil || t.skips(req) {
		return t.base.RoundTrip(req)
	}

	start := time.Now()
	t.injectTrace(req)
	t.logger.LogRequest(t.captureRequest(req, start))

	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		t.logger.LogError(classifyError(err, req.URL.String(), elapsed))
		return resp, err
	}
	if t.cfg.errorOnStatus && resp.StatusCode >= stdhttp.StatusBadRequest {
		t.logger.LogError(t.captureBadResponse(req, resp, elapsed))
	} else {
		t.logger.LogResponse(t.captureResponse(req, resp, elapsed))
	}
	return resp, nil
}

func (t *transport) skips(req *stdhttp.Request) bool {
	if t.cfg.skip != nil && t.cfg.skip(req) {
		return true
	}
	for _, sub := range t.cfg.skipPathSubstrings {
		if strings.Contains(req.URL.Path, sub) {
			return true
		}
	}
	return false
}

// injectTrace injects the W3C traceparent header from the request context via
// the global propagator. Existing headers are left untouched.
func (t *transport) injectTrace(req *stdhttp.Request) {
	if !t.cfg.injectTraceparent {
		return
	}
	sc := trace.SpanContextFromContext(req.Context())
	if sc.IsValid() && req.Header.Get("traceparent") == "" {
		otel.GetTextMapPropagator().Inject(req.Context(), propagation.HeaderCarrier(req.Header))
	}
}

// captureRequest snapshots the outbound request into a RequestEvent. The
// request body is read and replaced with an equivalent reader so the wrapped
// transport sends exactly what the caller attached.
func (t *transport) captureRequest(req *stdhttp.Request, start time.Time) *boxlog.RequestEvent {
	ev := &boxlog.RequestEvent{
		Method:       req.Method,
		URI:          req.URL.String(),
		QueryParams:  queryEntries(req),
		Headers:      headerEntries(req.Header),
		Extras:       traceEntries(req.Context()),
		SentAtMillis: start.UnixMilli(),
	}
	if req.Body != nil && req.Body != stdhttp.NoBody {
		data, restored, err := snapshotBody(req.Body)
		if err == nil {
			req.Body = restored
			ev.Body = t.decodeBody(data, req.Header.Get("Content-Type"))
		}
	}
	return ev
}

// captureResponse snapshots a completed response into a ResponseEvent,
// restoring the body for the caller.
func (t *transport) captureResponse(req *stdhttp.Request, resp *stdhttp.Response, elapsed int64) *boxlog.ResponseEvent {
	return &boxlog.ResponseEvent{
		Method:        req.Method,
		URI:           req.URL.String(),
		StatusCode:    resp.StatusCode,
		StatusMessage: stdhttp.StatusText(resp.StatusCode),
		Headers:       headerEntries(resp.Header),
		Body:          t.snapshotResponseBody(resp),
		ElapsedMillis: elapsed,
	}
}

// captureBadResponse reproduces a 4xx/5xx response as a Bad Response error
// event carrying the full response body.
func (t *transport) captureBadResponse(req *stdhttp.Request, resp *stdhttp.Response, elapsed int64) *boxlog.ErrorEvent {
	return &boxlog.ErrorEvent{
		Kind:          boxlog.ErrBadResponse,
		Message:       resp.Status,
		URI:           req.URL.String(),
		StatusCode:    resp.StatusCode,
		StatusMessage: stdhttp.StatusText(resp.StatusCode),
		Body:          t.snapshotResponseBody(resp),
		ElapsedMillis: elapsed,
	}
}

func (t *transport) snapshotResponseBody(resp *stdhttp.Response) *boxlog.Value {
	if resp.Body == nil || resp.Body == stdhttp.NoBody {
		return nil
	}
	data, restored, err := snapshotBody(resp.Body)
	if err != nil {
		return nil
	}
	resp.Body = restored
	return t.decodeBody(data, resp.Header.Get("Content-Type"))
}

// snapshotBody drains rc and returns both the bytes and an equivalent
// ReadCloser to hand back to the pipeline.
func snapshotBody(rc io.ReadCloser) ([]byte, io.ReadCloser, error) {
	data, err := io.ReadAll(rc)
	closeErr := rc.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, rc, fmt.Errorf("snapshot body: %w", err)
	}
	return data, io.NopCloser(bytes.NewReader(data)), nil
}

// decodeBody turns captured body bytes into a renderable Value: JSON decodes
// with key order preserved, other text renders verbatim, and anything
// non-textual degrades to a chunked byte rendering. Oversized bodies become
// a size note so one large payload cannot flood the log.
func (t *transport) decodeBody(data []byte, contentType string) *boxlog.Value {
	if len(data) == 0 {
		return nil
	}
	if int64(len(data)) > t.cfg.bodyLimit {
		v := boxlog.Text(fmt.Sprintf("<%d bytes, exceeds %d byte log limit>", len(data), t.cfg.bodyLimit))
		return &v
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if strings.Contains(mediaType, "json") {
		if v, err := boxlog.FromJSON(data); err == nil {
			return &v
		}
	}
	if utf8.Valid(data) {
		v := boxlog.Text(string(data))
		return &v
	}
	v := boxlog.Bytes(data)
	return &v
}

// classifyError maps a transport failure onto the error taxonomy. Context
// errors win over net.Error timeouts so a cancelled call is never reported
// as a timeout.
func classifyError(err error, uri string, elapsed int64) *boxlog.ErrorEvent {
	kind := boxlog.ErrUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = boxlog.ErrTimeout
	case errors.Is(err, context.Canceled):
		kind = boxlog.ErrCancelled
	default:
		var netErr net.Error
		var opErr *net.OpError
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = boxlog.ErrTimeout
		} else if errors.As(err, &opErr) {
			kind = boxlog.ErrConnection
		}
	}
	return &boxlog.ErrorEvent{
		Kind:          kind,
		Message:       err.Error(),
		URI:           uri,
		ElapsedMillis: elapsed,
	}
}

// queryEntries flattens the request's query parameters into ordered entries.
// url.Values is a map, so keys are sorted for deterministic output; repeated
// parameters become lists.
func queryEntries(req *stdhttp.Request) []boxlog.Entry {
	values := req.URL.Query()
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]boxlog.Entry, 0, len(keys))
	for _, k := range keys {
		vs := values[k]
		if len(vs) == 1 {
			entries = append(entries, boxlog.Entry{Key: k, Val: boxlog.Text(vs[0])})
			continue
		}
		items := make([]boxlog.Value, len(vs))
		for i, v := range vs {
			items[i] = boxlog.Text(v)
		}
		entries = append(entries, boxlog.Entry{Key: k, Val: boxlog.List(items...)})
	}
	return entries
}

// headerEntries flattens an http.Header into ordered entries, joining
// repeated values on one line.
func headerEntries(h stdhttp.Header) []boxlog.Entry {
	if len(h) == 0 {
		return nil
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]boxlog.Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, boxlog.Entry{Key: k, Val: boxlog.Text(strings.Join(h[k], ", "))})
	}
	return entries
}

// traceEntries surfaces the OpenTelemetry trace identity, when present, in
// the request's Extras table for log/trace correlation.
func traceEntries(ctx context.Context) []boxlog.Entry {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []boxlog.Entry{
		{Key: "Trace Id", Val: boxlog.Text(sc.TraceID().String())},
		{Key: "Span Id", Val: boxlog.Text(sc.SpanID().String())},
	}
}
