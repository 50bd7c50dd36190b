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
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindBytes
	KindList
	KindMap
)

// Value is the closed set of shapes boxlog knows how to render: null,
// booleans, numbers, text, raw byte sequences, ordered lists, and ordered
// maps. Map entries keep their insertion order, which is also their render
// order. A Value graph is always finite and acyclic because it is built from
// decoded wire content.
//
// The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	number  string
	text    string
	raw     []byte
	items   []Value
	entries []Entry
}

// Entry is one ordered key/value pair of a Map value.
type Entry struct {
	Key string
	Val Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a numeric Value from its canonical text form, e.g. "1" or
// "2.5". The text form is rendered verbatim.
func Number(canonical string) Value { return Value{kind: KindNumber, number: canonical} }

// Int returns a numeric Value for an integer.
func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

// Float returns a numeric Value for a float, using the shortest text form
// that round-trips.
func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'f', -1, 64)) }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bytes returns a byte-sequence Value. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// List returns an ordered list Value.
func List(items ...Value) Value { return Value{kind: KindList, items: items} }

// Map returns an ordered map Value. Keys are expected to be unique; the
// renderer emits entries in the order given here.
func Map(entries ...Entry) Value { return Value{kind: KindMap, entries: entries} }

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// Entries returns the ordered entries of a Map value, or nil for any other
// kind.
func (v Value) Entries() []Entry { return v.entries }

// Items returns the elements of a List value, or nil for any other kind.
func (v Value) Items() []Value { return v.items }

// Raw returns the byte payload of a Bytes value, or nil for any other kind.
func (v Value) Raw() []byte { return v.raw }

// IsContainer reports whether the value is a Map or a List.
func (v Value) IsContainer() bool { return v.kind == KindMap || v.kind == KindList }

// plain is the single-line text form used both for flattened (inline)
// rendering and for the width measurement behind the flattening heuristics.
// Text renders unquoted here; quoting is a map-entry concern handled by the
// block renderer.
func (v Value) plain() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNumber:
		return v.number
	case KindText:
		return v.text
	case KindBytes:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, b := range v.raw {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(int(b)))
		}
		sb.WriteByte(']')
		return sb.String()
	case KindList:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.plain()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = e.Key + ": " + e.Val.plain()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// FromJSON decodes a JSON document into a Value, preserving object key order
// and the exact text form of numbers. It returns an error for malformed or
// trailing input; callers that must never fail fall back to Text rendering.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Null(), fmt.Errorf("decode json value: %w", err)
	}
	if dec.More() {
		return Null(), fmt.Errorf("decode json value: trailing data")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return Text(t), nil
	case json.Delim:
		switch t {
		case '{':
			var entries []Entry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				entries = append(entries, Entry{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return Null(), err
			}
			return Map(entries...), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return Null(), err
			}
			return List(items...), nil
		}
	}
	return Null(), fmt.Errorf("unexpected token %v", tok)
}

// FromAny converts an arbitrary decoded host value into a Value. Go maps have
// no insertion order, so map keys are sorted for deterministic output; use
// FromJSON when wire order matters. Unrecognized types degrade to their
// fmt.Sprint text form rather than failing.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return Text(t)
	case []byte:
		return Bytes(t)
	case json.Number:
		return Number(t.String())
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Number(strconv.FormatUint(uint64(t), 10))
	case uint64:
		return Number(strconv.FormatUint(t, 10))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return List(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Val: FromAny(t[k])}
		}
		return Map(entries...)
	default:
		return Text(fmt.Sprint(t))
	}
}
