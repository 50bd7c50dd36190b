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

// table renders a flat key/value collection (headers, query parameters,
// extras) as a boxed table. An empty collection produces no lines at all
// rather than an empty box.
func (r *renderer) table(entries []Entry, header string) {
	if len(entries) == 0 {
		return
	}
	r.buf.add(glyphTopCorner + " " + header + " ")
	for _, e := range entries {
		r.kv(e.Key, e.Val)
	}
	r.rule(glyphBottomCorner)
}

// kv renders one table row. If the prefixed "key: value" form fits the
// configured width it becomes a single line; otherwise the prefix stands
// alone and the value wraps through the generic block path.
func (r *renderer) kv(key string, v Value) {
	pre := glyphKey + " " + key + ": "
	msg := collapseNewlines(v.plain())
	if len([]rune(pre))+len([]rune(msg)) > r.cfg.maxWidth {
		r.buf.add(pre)
		r.blockText(msg)
		return
	}
	r.buf.add(pre + msg)
}
