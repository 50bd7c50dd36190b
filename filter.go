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

// Filter decides whether an event should be rendered at all. It runs once
// per event, before any buffer is allocated; returning false suppresses the
// event entirely.
type Filter func(ev Event) bool

// accepts evaluates the configured filter for an event. A nil filter accepts
// everything. A panicking filter counts as accept: losing a log line to a
// broken predicate is worse than rendering an unwanted one.
func (o *options) accepts(ev Event) (ok bool) {
	if o.filter == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = true
		}
	}()
	return o.filter(ev)
}
