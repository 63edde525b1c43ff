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

// Package source implements the token source adapters the CST→TT
// converter pulls from: a raw-lexer view and a CST-walker view behind one
// shared interface (spec.md §4.2).
package source

import (
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

// Token is one lexeme as reported by a [Source], tagged with whether it
// was injected rather than read from the underlying lexer/CST.
type Token struct {
	Class  external.Class
	Kind   external.SyntaxKind
	Text   string
	Range  token.Range
	Origin *token.Origin // non-nil for a synthesized token
}

// SyntheticToken is one entry of a caller-supplied replace/append map
// (spec.md §4.2): a token that did not come from the walk at all. Range is
// caller-chosen — typically borrowed from whatever source token motivated
// the injection — and Origin lets a caller trace the leaf back to whatever
// produced it (e.g. a macro rewrite).
type SyntheticToken struct {
	Class  external.Class
	Kind   external.SyntaxKind
	Text   string
	Range  token.Range
	Origin token.Origin
}

// Source is the unified pull interface the converter consumes, regardless
// of whether tokens come from a flat lexer view or a CST walk.
type Source interface {
	// Bump consumes and returns the next token, or reports false at end
	// of input.
	Bump() (Token, bool)
	// Peek reports the next token without consuming it. Peek has no side
	// effects and is idempotent until the next Bump.
	Peek() (Token, bool)
	// ConvertDocComment reports the desugared attribute token tree for a
	// COMMENT-class token, if it is a doc comment; ok is false for a
	// non-doc comment (which the converter then drops).
	ConvertDocComment(tok Token) (trees []tt.TokenTree, ok bool)
	// Allocator returns the id allocator this source mints ids from.
	Allocator() *token.Allocator
}

// RawSource adapts a flat [external.LexedStream] into a [Source]. It never
// produces synthetic tokens and performs no punctuation splitting: the
// underlying lexer is assumed to already yield one rune per punctuation
// leaf, as a raw tokenizer does.
type RawSource struct {
	lexed     external.LexedStream
	alloc     *token.Allocator
	base      uint32 // absolute offset of lexed[0] in the caller's coordinate space
	pos       int
}

// NewRawSource builds a RawSource over a pre-lexed string, whose first
// token begins at absolute byte offset base.
func NewRawSource(lexed external.LexedStream, alloc *token.Allocator, base uint32) *RawSource {
	return &RawSource{lexed: lexed, alloc: alloc, base: base}
}

func (s *RawSource) tokenAt(i int) Token {
	r := s.lexed.TextRange(i)
	return Token{
		Class: s.lexed.Class(i),
		Kind:  s.lexed.Kind(i),
		Text:  s.lexed.Text(i),
		Range: token.Range{Start: s.base + r.Start, End: s.base + r.End},
	}
}

// Bump implements [Source].
func (s *RawSource) Bump() (Token, bool) {
	if s.pos >= s.lexed.Len() {
		return Token{}, false
	}
	t := s.tokenAt(s.pos)
	s.pos++
	return t, true
}

// Peek implements [Source].
func (s *RawSource) Peek() (Token, bool) {
	if s.pos >= s.lexed.Len() {
		return Token{}, false
	}
	return s.tokenAt(s.pos), true
}

// ConvertDocComment implements [Source].
func (s *RawSource) ConvertDocComment(t Token) ([]tt.TokenTree, bool) {
	return DesugarDocComment(t.Text)
}

// Allocator implements [Source].
func (s *RawSource) Allocator() *token.Allocator { return s.alloc }
