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
	"regexp"
	"strconv"
	"strings"
)

// Box-drawing glyphs used for section framing. The margin glyph opens every
// content line; rule lines run the full configured width.
const (
	glyphTopCorner    = "╔"
	glyphBottomCorner = "╚"
	glyphEndCorner    = "╝"
	glyphMargin       = "║"
	glyphKey          = "╟"
	glyphRule         = "═"
	glyphHeaderJoin   = "╣"
)

const (
	// tabStep is one level of indentation inside a rendered body.
	tabStep = "    "
	// initialTab is the indent level of a top-level body.
	initialTab = 1
	// byteChunkSize is how many decimal byte values share one line when a
	// Bytes value is rendered.
	byteChunkSize = 20
	// flattenListMax is the largest list length still eligible for inline
	// rendering under compact mode.
	flattenListMax = 10
)

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// collapseNewlines folds embedded line breaks into single spaces so width
// measurement and slicing operate on one logical line.
func collapseNewlines(s string) string {
	return newlineRun.ReplaceAllString(s, " ")
}

// canFlattenMap reports whether a Map value may render inline under compact
// mode: none of its immediate values is a container and its one-line text
// form fits under maxWidth. Pure function of shape and width.
func canFlattenMap(v Value, maxWidth int) bool {
	if v.kind != KindMap {
		return false
	}
	for _, e := range v.entries {
		if e.Val.IsContainer() {
			return false
		}
	}
	return len([]rune(v.plain())) < maxWidth
}

// canFlattenList reports whether a List value may render inline under compact
// mode: fewer than flattenListMax elements and a one-line text form under
// maxWidth. Empty lists are trivially flattenable.
func canFlattenList(v Value, maxWidth int) bool {
	if v.kind != KindList {
		return false
	}
	return len(v.items) < flattenListMax && len([]rune(v.plain())) < maxWidth
}

// renderer drives one render pass. It owns its line buffer exclusively and
// reads configuration without mutating it.
type renderer struct {
	cfg *options
	buf *lineBuffer
}

func (r *renderer) indent(tabs int) string {
	return strings.Repeat(tabStep, tabs)
}

// rule emits a horizontal rule of the configured width, prefixed with the
// given corner glyph.
func (r *renderer) rule(corner string) {
	r.buf.add(corner + strings.Repeat(glyphRule, r.cfg.maxWidth) + glyphEndCorner)
}

// boxed emits a banner: a corner-joined header line and a single text line
// between rules. Every banner (request, response, error) opens this way;
// section headers inside a block use the bare top corner instead.
func (r *renderer) boxed(header, text string) {
	r.buf.add("")
	r.buf.add(glyphTopCorner + glyphHeaderJoin + " " + header)
	r.buf.add(glyphMargin + "  " + text)
	r.rule(glyphBottomCorner)
}

// blockText renders already-collapsed text as fixed-width slices, one margin
// line per slice.
func (r *renderer) blockText(msg string) {
	runes := []rune(msg)
	width := r.cfg.maxWidth
	if width <= 0 || len(runes) == 0 {
		r.buf.add(glyphMargin + " " + msg)
		return
	}
	for i := 0; i < len(runes); i += width {
		end := min(i+width, len(runes))
		r.buf.add(glyphMargin + " " + string(runes[i:end]))
	}
}

// renderValue lays out one top-level value (or list item) at the given indent
// level. Maps and lists expand recursively; byte sequences render chunked;
// everything else degrades to wrapped text.
func (r *renderer) renderValue(v Value, tabs int, isListItem, isLast bool) {
	switch v.kind {
	case KindMap:
		r.prettyMap(v.entries, tabs, isListItem, isListItem && !isLast)
	case KindList:
		r.buf.add(glyphMargin + r.indent(tabs) + " [")
		r.prettyList(v.items, tabs)
		r.buf.add(glyphMargin + r.indent(tabs) + " ]")
	case KindBytes:
		r.buf.add(glyphMargin + r.indent(tabs) + " [")
		r.byteChunks(v.raw, tabs+1)
		r.buf.add(glyphMargin + r.indent(tabs) + " ]")
	default:
		r.blockText(collapseNewlines(v.plain()))
	}
}

// prettyMap renders ordered map entries at the given indent level. The
// opening brace is emitted only at the root of a body or when the map is
// itself a list item; trailingComma controls the comma after the closing
// brace so list items and nested entries stay consistent with the
// last-entry-has-no-comma rule.
func (r *renderer) prettyMap(entries []Entry, tabs int, isListItem, trailingComma bool) {
	isRoot := tabs == initialTab
	outerIndent := r.indent(tabs)
	tabs++
	if isRoot || isListItem {
		r.buf.add(glyphMargin + outerIndent + "{")
	}
	for i, e := range entries {
		last := i == len(entries)-1
		key := `"` + e.Key + `"`
		v := e.Val
		switch v.kind {
		case KindMap:
			if r.cfg.compact && canFlattenMap(v, r.cfg.maxWidth) {
				r.buf.add(glyphMargin + r.indent(tabs) + " " + key + ": " + v.plain() + commaUnless(last))
			} else {
				r.buf.add(glyphMargin + r.indent(tabs) + " " + key + ": {")
				r.prettyMap(v.entries, tabs, false, !last)
			}
		case KindList:
			if r.cfg.compact && canFlattenList(v, r.cfg.maxWidth) {
				r.buf.add(glyphMargin + r.indent(tabs) + " " + key + ": " + v.plain() + commaUnless(last))
			} else {
				r.buf.add(glyphMargin + r.indent(tabs) + " " + key + ": [")
				r.prettyList(v.items, tabs)
				r.buf.add(glyphMargin + r.indent(tabs) + " ]" + commaUnless(last))
			}
		case KindBytes:
			r.buf.add(glyphMargin + r.indent(tabs) + " " + key + ": [")
			r.byteChunks(v.raw, tabs+1)
			r.buf.add(glyphMargin + r.indent(tabs) + " ]" + commaUnless(last))
		default:
			r.mapScalar(key, v, tabs, last)
		}
	}
	closing := glyphMargin + outerIndent + "}"
	if trailingComma {
		closing += ","
	}
	r.buf.add(closing)
}

// mapScalar renders one scalar map entry, quoting text values and wrapping
// anything that overflows the remaining width into fixed-size continuation
// slices. Only the first slice carries the key label.
func (r *renderer) mapScalar(key string, v Value, tabs int, last bool) {
	msg := collapseNewlines(v.plain())
	if v.kind == KindText {
		msg = `"` + msg + `"`
	}
	ind := r.indent(tabs)
	runes := []rune(msg)
	lineWidth := r.cfg.maxWidth - len(ind)
	if len(runes)+len(ind) > r.cfg.maxWidth && lineWidth > 0 {
		n := (len(runes) + lineWidth - 1) / lineWidth
		for i := 0; i < n; i++ {
			label := ""
			if i == 0 {
				label = key + ":"
			}
			end := min((i+1)*lineWidth, len(runes))
			slice := string(runes[i*lineWidth : end])
			if i == n-1 {
				slice += commaUnless(last)
			}
			r.buf.add(glyphMargin + ind + " " + label + " " + slice)
		}
		return
	}
	r.buf.add(glyphMargin + ind + " " + key + ": " + msg + commaUnless(last))
}

// prettyList renders list elements at the given indent level. Map elements
// flatten or recurse with list-item brace handling; all other elements render
// as single unquoted lines.
func (r *renderer) prettyList(items []Value, tabs int) {
	for i, el := range items {
		last := i == len(items)-1
		if el.kind == KindMap {
			if r.cfg.compact && canFlattenMap(el, r.cfg.maxWidth) {
				r.buf.add(glyphMargin + r.indent(tabs) + "  " + el.plain() + commaUnless(last))
			} else {
				r.prettyMap(el.entries, tabs+1, true, !last)
			}
			continue
		}
		r.buf.add(glyphMargin + r.indent(tabs+2) + " " + collapseNewlines(el.plain()) + commaUnless(last))
	}
}

// byteChunks renders a byte sequence as comma-joined decimal values,
// byteChunkSize per line.
func (r *renderer) byteChunks(raw []byte, tabs int) {
	for i := 0; i < len(raw); i += byteChunkSize {
		end := min(i+byteChunkSize, len(raw))
		parts := make([]string, 0, end-i)
		for _, b := range raw[i:end] {
			parts = append(parts, strconv.Itoa(int(b)))
		}
		r.buf.add(glyphMargin + r.indent(tabs) + " " + strings.Join(parts, ", "))
	}
}

func commaUnless(last bool) string {
	if last {
		return ""
	}
	return ","
}
