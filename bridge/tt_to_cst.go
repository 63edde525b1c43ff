// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bridge

import (
	"fmt"
	"strings"

	"github.com/dirbaio/syntaxbridge/diag"
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

// pendingError is a replay-time error record, kept as a raw byte offset
// until the final text is known and a [diag.Span] can be built for it.
type pendingError struct {
	offset  uint32
	message string
}

// sink replays an [external.EventParser]'s events against an
// [external.CSTBuilder], reconstructing source text and a fresh [token.Map]
// as it goes (spec.md §4.5's "TT→CST sink").
//
// full accumulates the entire reconstructed text; tok accumulates just the
// text of the token currently being assembled, and is flushed to the
// builder (and reset) each time a TokenEvent completes.
type sink[P any] struct {
	units []unit
	idx   int

	full    strings.Builder
	tok     strings.Builder
	textPos uint32

	openDelims map[token.ID]uint32
	alloc      *token.Allocator
	whitespace external.SyntaxKind

	builder external.CSTBuilder[P]
	errors  []pendingError
}

// write appends text to both the token-in-progress and full-text buffers,
// advancing textPos.
func (sk *sink[P]) write(text string) (start uint32) {
	start = sk.textPos
	sk.tok.WriteString(text)
	sk.full.WriteString(text)
	sk.textPos += uint32(len(text))
	return start
}

// commitUnit appends u's text to the staging buffers and records its id(s)
// into the allocator.
func (sk *sink[P]) commitUnit(u unit) {
	switch {
	case isEnterUnit(u):
		p := u.pieces[0]
		start := sk.write(p.text)
		if p.id != token.Nil {
			sk.openDelims[p.id] = start
		}

	case isExitUnit(u):
		p := u.pieces[0]
		start := sk.write(p.text)
		end := sk.textPos
		if p.id != token.Nil {
			if openPos, ok := sk.openDelims[p.id]; ok {
				delete(sk.openDelims, p.id)
				slot := sk.alloc.ReuseDelim(p.id, token.Range{Start: openPos, End: openPos + 1})
				closeRange := token.Range{Start: start, End: end}
				sk.alloc.CloseDelim(slot, &closeRange)
			}
		}

	default:
		for _, p := range u.pieces {
			start := sk.write(p.text)
			if p.id != token.Nil {
				sk.alloc.Reuse(p.id, token.Range{Start: start, End: sk.textPos})
			}
		}
	}
}

// isEnterUnit and isExitUnit distinguish the two bracket-half units a
// visible [tt.Subtree] produces in [linearize] from an ordinary leaf unit.
// Both report a delimKind and exactly one piece; they're told apart by
// whether the unit's text is the opening or the closing bracket character.
func isEnterUnit(u unit) bool {
	return u.delimKind != tt.Invisible && len(u.pieces) == 1 && u.text == u.delimKind.Open()
}

func isExitUnit(u unit) bool {
	return u.delimKind != tt.Invisible && len(u.pieces) == 1 && u.text == u.delimKind.Close()
}

// token replays a single TokenEvent: it consumes n units from the input,
// concatenating their text into one token, then applies the
// whitespace-reinsertion rule (spec.md §4.5's "an Alone punct immediately
// followed by another punct gets a single space reinserted between them,
// since the grammar can't otherwise tell the two apart from a joint pair").
func (sk *sink[P]) token(kind external.SyntaxKind, n int) {
	consumed := 0
	var last unit
	for consumed < n && sk.idx < len(sk.units) {
		last = sk.units[sk.idx]
		sk.commitUnit(last)
		sk.idx++
		consumed++
	}
	sk.builder.Token(kind, sk.tok.String())
	sk.tok.Reset()

	if consumed == 0 {
		return
	}
	if last.isPunctLeaf && last.spacing == tt.Alone && last.punctChar != ';' {
		if sk.idx < len(sk.units) && sk.units[sk.idx].isPunctLeaf {
			sk.full.WriteByte(' ')
			sk.textPos++
			sk.builder.Token(sk.whitespace, " ")
		}
	}
}

// TTToCST is the public `tt_to_cst` operation (spec.md §4.5, §6): replay a
// token tree through an external grammar parser and CST builder, producing
// a caller-defined Parse result alongside a fresh [token.Map] that records
// where every surviving id landed in the reconstructed text.
//
// whitespaceKind is the [external.SyntaxKind] the target grammar uses for a
// single reinserted space; the bridge has no opinion on what that value is,
// since [external.SyntaxKind] is entirely caller-defined.
func TTToCST[P any](
	parser external.EventParser,
	builder external.CSTBuilder[P],
	entry external.EntryPoint,
	root *tt.Subtree,
	whitespaceKind external.SyntaxKind,
	path string,
) (P, *token.Map, *diag.Report) {
	units := linearize(root)
	events := parser.Parse(entry, unitInput{units: units})

	sk := &sink[P]{
		units:      units,
		openDelims: make(map[token.ID]uint32),
		alloc:      token.NewAllocator(0),
		whitespace: whitespaceKind,
		builder:    builder,
	}

	for _, ev := range events {
		switch e := ev.(type) {
		case external.TokenEvent:
			sk.token(e.Kind, e.N)
		case external.EnterEvent:
			sk.builder.StartNode(e.Kind)
		case external.ExitEvent:
			sk.builder.FinishNode()
		case external.ErrorEvent:
			at := token.Range{Start: sk.textPos, End: sk.textPos}
			sk.builder.Error(e.Message, at)
			sk.errors = append(sk.errors, pendingError{offset: sk.textPos, message: e.Message})
		default:
			panic(fmt.Sprintf("bridge: unrecognized parse event %T", ev))
		}
	}

	result := sk.builder.Finish()
	m := sk.alloc.Finish()

	report := &diag.Report{}
	if len(sk.errors) > 0 {
		file := diag.NewIndexedFile(diag.File{Path: path, Text: sk.full.String()})
		for _, e := range sk.errors {
			report.Errorf("%s", e.message).Snippet(diag.Span{
				IndexedFile: file,
				Start:       int(e.offset),
				End:         int(e.offset),
			}, "")
		}
	}

	return result, m, report
}
