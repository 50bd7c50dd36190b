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
	"strings"
	"sync"
	"testing"
)

// memSink collects flushed blocks for assertions. Safe for concurrent use.
type memSink struct {
	mu     sync.Mutex
	blocks []string
}

func (m *memSink) sink(block string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks = append(m.blocks, block)
}

func (m *memSink) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.blocks...)
}

func TestRequestScenarioGET(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	body := Map(Entry{Key: "ignored", Val: Int(1)})
	logger.LogRequest(&RequestEvent{
		Method: "GET",
		URI:    "https://example.com/users?active=true",
		QueryParams: []Entry{
			{Key: "active", Val: Text("true")},
		},
		Headers: []Entry{
			{Key: "Authorization", Val: Text("Bearer x")},
		},
		Body: &body, // attached but semantically unexpected on GET
	})

	blocks := sink.all()
	if len(blocks) != 1 {
		t.Fatalf("sink received %d blocks, want 1", len(blocks))
	}
	block := blocks[0]

	for _, want := range []string{
		glyphTopCorner + glyphHeaderJoin + " Request " + glyphMargin + " GET",
		glyphMargin + "  https://example.com/users?active=true",
		glyphTopCorner + " Headers ",
		glyphKey + " Authorization: Bearer x",
		glyphTopCorner + " Query Parameters ",
		glyphKey + " active: true",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
	if strings.Contains(block, glyphTopCorner+" Body") {
		t.Errorf("GET request must not render a body section:\n%s", block)
	}
}

func TestRequestBodyRenderedForPOST(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	body := Map(Entry{Key: "name", Val: Text("Ada")})
	logger.LogRequest(&RequestEvent{
		Method: "POST",
		URI:    "https://example.com/users",
		Body:   &body,
	})

	blocks := sink.all()
	if len(blocks) != 1 {
		t.Fatalf("sink received %d blocks, want 1", len(blocks))
	}
	if !strings.Contains(blocks[0], glyphTopCorner+" Body") {
		t.Fatalf("POST request should render a body section:\n%s", blocks[0])
	}
	if !strings.Contains(blocks[0], `"name": "Ada"`) {
		t.Fatalf("body content missing:\n%s", blocks[0])
	}
}

func TestRequestSectionOrder(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	body := Map(Entry{Key: "a", Val: Int(1)})
	logger.LogRequest(&RequestEvent{
		Method:      "POST",
		URI:         "https://example.com/x",
		QueryParams: []Entry{{Key: "q", Val: Text("1")}},
		Headers:     []Entry{{Key: "H", Val: Text("v")}},
		Extras:      []Entry{{Key: "Trace Id", Val: Text("abc")}},
		Body:        &body,
	})

	block := sink.all()[0]
	positions := []int{
		strings.Index(block, glyphTopCorner+glyphHeaderJoin+" Request "),
		strings.Index(block, glyphTopCorner+" Headers "),
		strings.Index(block, glyphTopCorner+" Query Parameters "),
		strings.Index(block, glyphTopCorner+" Extras "),
		strings.Index(block, glyphTopCorner+" Body"),
	}
	for i, pos := range positions {
		if pos < 0 {
			t.Fatalf("section %d missing from block:\n%s", i, block)
		}
		if i > 0 && pos <= positions[i-1] {
			t.Fatalf("section %d out of order (positions %v):\n%s", i, positions, block)
		}
	}
}

func TestResponseBannerStatusAndTime(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	body, err := FromJSON([]byte(`{"ok": true}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	logger.LogResponse(&ResponseEvent{
		Method:        "GET",
		URI:           "https://example.com/ping",
		StatusCode:    200,
		StatusMessage: "OK",
		Headers:       []Entry{{Key: "Content-Type", Val: Text("application/json")}},
		Body:          &body,
		ElapsedMillis: 42,
	})

	blocks := sink.all()
	if len(blocks) != 1 {
		t.Fatalf("sink received %d blocks, want 1", len(blocks))
	}
	block := blocks[0]
	for _, want := range []string{
		glyphTopCorner + glyphHeaderJoin + " Response ",
		"Status: 200 OK",
		"Time: 42 ms",
		`"ok": true`,
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
}

func TestResponseElapsedClampedToZero(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	logger.LogResponse(&ResponseEvent{
		Method:        "GET",
		URI:           "https://example.com/",
		StatusCode:    204,
		StatusMessage: "No Content",
		ElapsedMillis: -5,
	})

	if got := sink.all()[0]; !strings.Contains(got, "Time: 0 ms") {
		t.Fatalf("negative elapsed should clamp to 0:\n%s", got)
	}
}

func TestErrorBadResponseReproducesResponse(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	body, err := FromJSON([]byte(`{"error": "not found"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	logger.LogError(&ErrorEvent{
		Kind:          ErrBadResponse,
		Message:       "404 Not Found",
		URI:           "https://example.com/missing",
		StatusCode:    404,
		StatusMessage: "Not Found",
		Body:          &body,
		ElapsedMillis: 120,
	})

	blocks := sink.all()
	if len(blocks) != 1 {
		t.Fatalf("sink received %d blocks, want 1", len(blocks))
	}
	block := blocks[0]
	for _, want := range []string{
		"Status: 404",
		"Time: 120 ms",
		glyphTopCorner + " Bad Response",
		`"error": "not found"`,
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
	lines := strings.Split(block, "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, glyphBottomCorner) {
		t.Errorf("block must end with a closing rule, got %q", last)
	}
}

func TestErrorSimpleBanner(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	logger.LogError(&ErrorEvent{
		Kind:    ErrTimeout,
		Message: "context deadline exceeded",
		URI:     "https://example.com/slow",
	})

	block := sink.all()[0]
	if !strings.Contains(block, "Error "+glyphMargin+" Timeout") {
		t.Fatalf("banner missing kind:\n%s", block)
	}
	if !strings.Contains(block, "context deadline exceeded") {
		t.Fatalf("banner missing message:\n%s", block)
	}
	if strings.Contains(block, glyphTopCorner+" Body") {
		t.Fatalf("simple errors carry no body section:\n%s", block)
	}
}

func TestErrorKindStrings(t *testing.T) {
	cases := map[ErrorKind]string{
		ErrUnknown:     "Unknown",
		ErrTimeout:     "Timeout",
		ErrCancelled:   "Cancelled",
		ErrBadResponse: "Bad Response",
		ErrConnection:  "Connection",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestMethodHasBody(t *testing.T) {
	for _, method := range []string{"GET", "get", "HEAD"} {
		if methodHasBody(method) {
			t.Errorf("methodHasBody(%q) = true, want false", method)
		}
	}
	for _, method := range []string{"POST", "PUT", "PATCH", "DELETE"} {
		if !methodHasBody(method) {
			t.Errorf("methodHasBody(%q) = false, want true", method)
		}
	}
}
