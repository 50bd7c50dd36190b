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
	"strings"
)

// Event is one captured lifecycle moment of an HTTP call: the outbound
// request, the inbound response, or the inbound failure. Events are built
// fresh per call, rendered synchronously, and discarded after their block is
// flushed.
type Event interface {
	event()
}

// RequestEvent captures the outbound leg of a call.
type RequestEvent struct {
	Method       string
	URI          string
	QueryParams  []Entry
	Headers      []Entry
	Extras       []Entry
	Body         *Value // nil when the request carries no body
	SentAtMillis int64
}

func (*RequestEvent) event() {}

// ResponseEvent captures a completed inbound response.
type ResponseEvent struct {
	Method        string
	URI           string
	StatusCode    int
	StatusMessage string
	Headers       []Entry
	Body          *Value
	ElapsedMillis int64
}

func (*ResponseEvent) event() {}

// ErrorKind classifies why a call failed.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrTimeout
	ErrCancelled
	ErrBadResponse
	ErrConnection
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTimeout:
		return "Timeout"
	case ErrCancelled:
		return "Cancelled"
	case ErrBadResponse:
		return "Bad Response"
	case ErrConnection:
		return "Connection"
	default:
		return "Unknown"
	}
}

// ErrorEvent captures a failed inbound leg. BadResponse events carry the full
// response reproduction (status, message, body); other kinds carry only a
// message.
type ErrorEvent struct {
	Kind          ErrorKind
	Message       string
	URI           string
	StatusCode    int
	StatusMessage string
	Body          *Value
	ElapsedMillis int64
}

func (*ErrorEvent) event() {}

// clampElapsed treats missing or negative timing as zero rather than failing;
// a lost timestamp correlation is not worth dropping the log line over.
func clampElapsed(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms
}

// methodHasBody reports whether a request body is semantically expected for
// the method. Retrieval methods never log a body even when one is attached.
func methodHasBody(method string) bool {
	switch strings.ToUpper(method) {
	case "GET", "HEAD":
		return false
	default:
		return true
	}
}

// renderRequest emits the sections of an outbound request in fixed order:
// banner, headers, query parameters, extras, body.
func (r *renderer) renderRequest(ev *RequestEvent) {
	if r.cfg.request {
		r.boxed("Request "+glyphMargin+" "+ev.Method, ev.URI)
	}
	if r.cfg.requestHeaders {
		r.table(ev.Headers, "Headers")
		r.table(ev.QueryParams, "Query Parameters")
		r.table(ev.Extras, "Extras")
	}
	if r.cfg.requestBody && ev.Body != nil && methodHasBody(ev.Method) {
		r.bodyBox(*ev.Body)
	}
}

// renderResponse emits the response banner (method, status, elapsed time),
// then the header table and body block as configured.
func (r *renderer) renderResponse(ev *ResponseEvent) {
	r.boxed(fmt.Sprintf("Response %s %s %s Status: %d %s %s Time: %d ms",
		glyphMargin, ev.Method, glyphMargin,
		ev.StatusCode, ev.StatusMessage, glyphMargin, clampElapsed(ev.ElapsedMillis)), ev.URI)
	if r.cfg.responseHeaders {
		r.table(ev.Headers, "Headers")
	}
	if r.cfg.responseBody && ev.Body != nil {
		r.bodyBox(*ev.Body)
	}
}

// renderError emits either a full response reproduction (BadResponse) or a
// simple message banner for every other kind.
func (r *renderer) renderError(ev *ErrorEvent) {
	if ev.Kind == ErrBadResponse {
		header := fmt.Sprintf("Error %s Status: %d %s %s Time: %d ms",
			glyphMargin, ev.StatusCode, ev.StatusMessage, glyphMargin, clampElapsed(ev.ElapsedMillis))
		r.boxed(header, ev.URI)
		if ev.Body != nil {
			r.buf.add(glyphTopCorner + " " + ev.Kind.String())
			r.renderValue(*ev.Body, initialTab, false, true)
			r.rule(glyphBottomCorner)
		}
		return
	}
	r.boxed("Error "+glyphMargin+" "+ev.Kind.String(), ev.Message)
}

// bodyBox frames a body value between rule lines with a blank margin line on
// each side.
func (r *renderer) bodyBox(v Value) {
	r.buf.add(glyphTopCorner + " Body")
	r.buf.add(glyphMargin)
	r.renderValue(v, initialTab, false, true)
	r.buf.add(glyphMargin)
	r.rule(glyphBottomCorner)
}
