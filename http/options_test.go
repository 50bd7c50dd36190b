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
	"slices"
	"testing"
)

func TestLoadTransportOptionsFromEnv(t *testing.T) {
	t.Setenv("BOXLOG_HTTP_SKIP_PATH_SUBSTRINGS", "healthz, metrics , ")
	t.Setenv("BOXLOG_HTTP_BODY_LIMIT", "256")
	t.Setenv("BOXLOG_HTTP_ERROR_ON_STATUS", "false")
	t.Setenv("BOXLOG_HTTP_INJECT_TRACEPARENT", "false")

	opts := loadTransportOptionsFromEnv()

	if got, want := opts.skipPathSubstrings, []string{"healthz", "metrics"}; !slices.Equal(got, want) {
		t.Fatalf("skipPathSubstrings = %v, want %v", got, want)
	}
	if got, want := opts.bodyLimit, int64(256); got != want {
		t.Fatalf("bodyLimit = %d, want %d", got, want)
	}
	if opts.errorOnStatus {
		t.Fatal("errorOnStatus = true, want false")
	}
	if opts.injectTraceparent {
		t.Fatal("injectTraceparent = true, want false")
	}
}

func TestLoadTransportOptionsFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("BOXLOG_HTTP_BODY_LIMIT", "-10")
	t.Setenv("BOXLOG_HTTP_ERROR_ON_STATUS", "perhaps")

	opts := loadTransportOptionsFromEnv()
	defaults := defaultTransportOptions()

	if got, want := opts.bodyLimit, defaults.bodyLimit; got != want {
		t.Fatalf("bodyLimit = %d, want default %d", got, want)
	}
	if got, want := opts.errorOnStatus, defaults.errorOnStatus; got != want {
		t.Fatalf("errorOnStatus = %v, want default %v", got, want)
	}
}

func TestWithSkipPathSubstringsCleansInput(t *testing.T) {
	o := defaultTransportOptions()
	WithSkipPathSubstrings(" healthz ", "", "metrics")(&o)

	if got, want := o.skipPathSubstrings, []string{"healthz", "metrics"}; !slices.Equal(got, want) {
		t.Fatalf("skipPathSubstrings = %v, want %v", got, want)
	}
}

func TestApplyOptionsFixesInvalidBodyLimit(t *testing.T) {
	o := applyOptions([]Option{WithBodyLimit(0)})
	if got := o.bodyLimit; got != DefaultBodyLimit {
		t.Fatalf("bodyLimit = %d, want %d", got, DefaultBodyLimit)
	}
}
