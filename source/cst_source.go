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

package source

import (
	"fmt"

	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

// CSTSource adapts a pre-order [external.Cursor] walk into a [Source],
// with two behaviors a flat lexer view doesn't need (spec.md §4.2):
//
//   - Replace/append maps: callers can splice [SyntheticToken]s into the
//     stream keyed by node identity, either wholesale replacing a node's
//     subtree or appending just after it.
//   - Punctuation splitting: a multi-character punctuation token (e.g.
//     "::") is delivered to the converter one ASCII byte at a time.
//
// Node must be comparable because it is used as the key of the replace and
// append maps.
type CSTSource[Node comparable] struct {
	cur   external.Cursor[Node]
	alloc *token.Allocator

	replace map[Node][]SyntheticToken
	append  map[Node][]SyntheticToken

	// pending holds tokens already materialized but not yet handed out by
	// Bump/Peek: the un-delivered remainder of a split punct, or an
	// injected synthetic run.
	pending []Token

	// lookahead caches the result of a Peek so that repeated calls are
	// free of side effects, per spec.md §4.2's "peek is idempotent until
	// the next bump". Nil means "nothing cached"; exhausted distinguishes
	// that from "cached, and it's end of input".
	lookahead *Token
	exhausted bool
}

// NewCSTSource builds a CSTSource over cur. replace and append are
// consumed destructively: entries are deleted as they are delivered, so
// that by the time the walk ends, both maps being empty can be checked
// with [CSTSource.Finish].
func NewCSTSource[Node comparable](
	cur external.Cursor[Node],
	alloc *token.Allocator,
	replace, appendMap map[Node][]SyntheticToken,
) *CSTSource[Node] {
	if replace == nil {
		replace = map[Node][]SyntheticToken{}
	}
	if appendMap == nil {
		appendMap = map[Node][]SyntheticToken{}
	}
	return &CSTSource[Node]{cur: cur, alloc: alloc, replace: replace, append: appendMap}
}

// Allocator implements [Source].
func (s *CSTSource[Node]) Allocator() *token.Allocator { return s.alloc }

// ConvertDocComment implements [Source].
func (s *CSTSource[Node]) ConvertDocComment(t Token) ([]tt.TokenTree, bool) {
	return DesugarDocComment(t.Text)
}

// Finish asserts that every replace/append entry was consumed exactly
// once, per spec.md §7's "non-empty residue is a programming error".
func (s *CSTSource[Node]) Finish() {
	if len(s.replace) != 0 || len(s.append) != 0 {
		panic(fmt.Sprintf(
			"source: %d replace and %d append entries were never delivered",
			len(s.replace), len(s.append)))
	}
}

// Bump implements [Source].
func (s *CSTSource[Node]) Bump() (Token, bool) {
	if s.lookahead != nil {
		t := *s.lookahead
		s.lookahead = nil
		return t, true
	}
	if len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		return t, true
	}
	if s.exhausted {
		return Token{}, false
	}
	return s.pull()
}

// Peek implements [Source].
func (s *CSTSource[Node]) Peek() (Token, bool) {
	if s.lookahead != nil {
		return *s.lookahead, true
	}
	if len(s.pending) > 0 {
		return s.pending[0], true
	}
	if s.exhausted {
		return Token{}, false
	}
	t, ok := s.pull()
	if !ok {
		return Token{}, false
	}
	s.lookahead = &t
	return t, true
}

// pull advances the underlying walk until it can materialize exactly one
// token (real, split, or synthetic), queuing any extra pieces into
// pending.
func (s *CSTSource[Node]) pull() (Token, bool) {
	for {
		ev, ok := s.cur.Next()
		if !ok {
			s.exhausted = true
			return Token{}, false
		}
		switch e := ev.(type) {
		case external.WalkEnter[Node]:
			repl, found := s.replace[e.Node]
			if !found {
				continue
			}
			delete(s.replace, e.Node)
			s.cur.SkipSubtree()
			if t, ok := s.enqueueSynthetic(repl); ok {
				return t, true
			}
			continue

		case external.WalkLeave[Node]:
			app, found := s.append[e.Node]
			if !found {
				continue
			}
			delete(s.append, e.Node)
			if t, ok := s.enqueueSynthetic(app); ok {
				return t, true
			}
			continue

		case external.WalkToken[Node]:
			if e.Class == external.ClassPunct && len(e.Text) > 1 {
				if t, ok := s.enqueueSplitPunct(e); ok {
					return t, true
				}
				continue
			}
			return Token{Class: e.Class, Kind: e.Kind, Text: e.Text, Range: e.Range}, true

		default:
			panic(fmt.Sprintf("source: unrecognized walk event %T", ev))
		}
	}
}

func (s *CSTSource[Node]) enqueueSynthetic(toks []SyntheticToken) (Token, bool) {
	for _, st := range toks {
		s.pending = append(s.pending, Token{
			Class:  st.Class,
			Kind:   st.Kind,
			Text:   st.Text,
			Range:  st.Range,
			Origin: originPtr(st.Origin),
		})
	}
	if len(s.pending) == 0 {
		return Token{}, false
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t, true
}

func originPtr(o token.Origin) *token.Origin { return &o }

// enqueueSplitPunct splits a multi-character punctuation token into one
// Token per byte, per spec.md §4.2's "punctuation is delivered character
// by character". Every byte of a punctuation token must be a single ASCII
// character: a multi-byte rune here means the caller's lexer handed the
// converter a non-ASCII "punct", which is a contract violation (spec.md
// §7), not a runtime condition to recover from.
func (s *CSTSource[Node]) enqueueSplitPunct(e external.WalkToken[Node]) (Token, bool) {
	text := e.Text
	start := e.Range.Start
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 0x80 {
			panic(fmt.Sprintf("source: non-ASCII punctuation byte in %q at offset %d", text, start))
		}
		s.pending = append(s.pending, Token{
			Class: external.ClassPunct,
			Kind:  e.Kind,
			Text:  string(c),
			Range: token.Range{Start: start + uint32(i), End: start + uint32(i) + 1},
		})
	}
	if len(s.pending) == 0 {
		return Token{}, false
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t, true
}
