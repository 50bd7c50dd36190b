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
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestDisabledLoggerEmitsNothing(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink), WithEnabled(false))

	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/"})
	logger.LogResponse(&ResponseEvent{Method: "GET", URI: "https://example.com/", StatusCode: 200})
	logger.LogError(&ErrorEvent{Kind: ErrTimeout, Message: "slow"})

	if got := len(sink.all()); got != 0 {
		t.Fatalf("disabled logger invoked sink %d times, want 0", got)
	}
}

func TestFilterRejectsEvent(t *testing.T) {
	sink := &memSink{}
	logger := New(
		WithSink(sink.sink),
		WithFilter(func(ev Event) bool {
			req, ok := ev.(*RequestEvent)
			return !ok || !strings.Contains(req.URI, "/healthz")
		}),
	)

	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/healthz"})
	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/users"})

	blocks := sink.all()
	if len(blocks) != 1 {
		t.Fatalf("sink received %d blocks, want 1", len(blocks))
	}
	if !strings.Contains(blocks[0], "/users") {
		t.Fatalf("wrong event passed the filter:\n%s", blocks[0])
	}
}

func TestFilterPanicFailsOpen(t *testing.T) {
	sink := &memSink{}
	logger := New(
		WithSink(sink.sink),
		WithFilter(func(Event) bool { panic("broken predicate") }),
	)

	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/"})

	if got := len(sink.all()); got != 1 {
		t.Fatalf("panicking filter suppressed the event; sink calls = %d, want 1", got)
	}
}

func TestErrorsDisabledSuppressesErrorEvents(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink), WithErrors(false))

	logger.LogError(&ErrorEvent{Kind: ErrConnection, Message: "refused"})

	if got := len(sink.all()); got != 0 {
		t.Fatalf("sink received %d blocks, want 0", got)
	}
}

func TestNilEventsIgnored(t *testing.T) {
	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	logger.LogRequest(nil)
	logger.LogResponse(nil)
	logger.LogError(nil)

	if got := len(sink.all()); got != 0 {
		t.Fatalf("sink received %d blocks for nil events, want 0", got)
	}
}

func TestSinkInvokedOncePerEvent(t *testing.T) {
	var calls int
	logger := New(WithSink(func(string) { calls++ }))

	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/a"})
	logger.LogResponse(&ResponseEvent{Method: "GET", URI: "https://example.com/a", StatusCode: 200})

	if calls != 2 {
		t.Fatalf("sink invoked %d times, want 2", calls)
	}
}

func TestConcurrentBlocksDoNotInterleave(t *testing.T) {
	const workers = 32

	sink := &memSink{}
	logger := New(WithSink(sink.sink))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.LogRequest(&RequestEvent{
				Method: "GET",
				URI:    fmt.Sprintf("https://example.com/call/%d", n),
			})
		}(i)
	}
	wg.Wait()

	blocks := sink.all()
	if len(blocks) != workers {
		t.Fatalf("sink received %d blocks, want %d", len(blocks), workers)
	}
	for _, block := range blocks {
		if got := strings.Count(block, glyphTopCorner+glyphHeaderJoin+" Request "); got != 1 {
			t.Fatalf("block contains %d request banners, want exactly 1:\n%s", got, block)
		}
		if !strings.HasPrefix(block, "\n"+glyphTopCorner+glyphHeaderJoin) {
			t.Fatalf("block does not start at a banner boundary:\n%s", block)
		}
	}
}

func TestSetOutputRedirectsDefaultSink(t *testing.T) {
	var first, second bytes.Buffer
	logger := New(WithWriter(&first))

	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/one"})
	logger.SetOutput(&second)
	logger.LogRequest(&RequestEvent{Method: "GET", URI: "https://example.com/two"})

	if !strings.Contains(first.String(), "/one") || strings.Contains(first.String(), "/two") {
		t.Fatalf("first writer got wrong output:\n%s", first.String())
	}
	if !strings.Contains(second.String(), "/two") || strings.Contains(second.String(), "/one") {
		t.Fatalf("second writer got wrong output:\n%s", second.String())
	}
}
