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

package reflang

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/token"
)

// lexToken is one lexeme produced by [Lexer.Lex].
type lexToken struct {
	class external.Class
	kind  external.SyntaxKind
	text  string
	rng   token.Range
}

// Lexer tokenizes reflang source text. It always produces single-byte
// punctuation tokens — never `::` or `->` as one lexeme — so that the CST
// conversion is free to classify Joint/Alone spacing itself, per spec.md
// §4.3's punct-splitting rule.
type Lexer struct{}

// Lex implements [external.Lexer].
func (Lexer) Lex(src string) external.LexedStream {
	l := &lexer{src: src}
	for !l.atEnd() {
		l.next()
	}
	return &LexedStream{toks: l.toks, errs: l.errs}
}

type lexer struct {
	src  string
	pos  uint32
	toks []lexToken
	errs []external.LexError
}

func (l *lexer) atEnd() bool { return int(l.pos) >= len(l.src) }

func (l *lexer) peekRune() (rune, int) {
	if l.atEnd() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *lexer) emit(class external.Class, kind external.SyntaxKind, start uint32) {
	l.toks = append(l.toks, lexToken{
		class: class,
		kind:  kind,
		text:  l.src[start:l.pos],
		rng:   token.Range{Start: start, End: l.pos},
	})
}

func (l *lexer) next() {
	start := l.pos
	r, size := l.peekRune()

	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		for {
			r, size := l.peekRune()
			if size == 0 || !(r == ' ' || r == '\t' || r == '\n' || r == '\r') {
				break
			}
			l.pos += uint32(size)
		}
		l.emit(external.ClassWhitespace, KindWhitespace, start)

	case r == '/' && strings.HasPrefix(l.src[l.pos:], "//"):
		l.lexLineComment(start)

	case r == '/' && strings.HasPrefix(l.src[l.pos:], "/*"):
		l.lexBlockComment(start)

	case r == '\'':
		l.lexLifetime(start)

	case r == '"':
		l.lexString(start)

	case unicode.IsDigit(r):
		for {
			r, size := l.peekRune()
			if size == 0 || !unicode.IsDigit(r) {
				break
			}
			l.pos += uint32(size)
		}
		l.emit(external.ClassIntLiteral, KindIntLiteral, start)

	case isIdentStart(r):
		for {
			r, size := l.peekRune()
			if size == 0 || !isIdentContinue(r) {
				break
			}
			l.pos += uint32(size)
		}
		text := l.src[start:l.pos]
		switch {
		case text == "_":
			l.emit(external.ClassUnderscore, KindUnderscore, start)
		default:
			if kind, ok := keywords[text]; ok {
				l.emit(external.ClassKeyword, kind, start)
			} else {
				l.emit(external.ClassIdent, KindIdent, start)
			}
		}

	default:
		l.lexPunct(start, r, size)
	}
}

func (l *lexer) lexLineComment(start uint32) {
	for {
		r, size := l.peekRune()
		if size == 0 || r == '\n' {
			break
		}
		l.pos += uint32(size)
	}
	l.emit(external.ClassComment, KindLineComment, start)
}

func (l *lexer) lexBlockComment(start uint32) {
	l.pos += 2 // "/*"
	depth := 1
	for depth > 0 && !l.atEnd() {
		if strings.HasPrefix(l.src[l.pos:], "/*") {
			l.pos += 2
			depth++
			continue
		}
		if strings.HasPrefix(l.src[l.pos:], "*/") {
			l.pos += 2
			depth--
			continue
		}
		_, size := l.peekRune()
		l.pos += uint32(size)
	}
	l.emit(external.ClassComment, KindBlockComment, start)
}

// lexLifetime consumes a leading `'` followed by an identifier, per spec.md
// §4.3's lifetime-ident class. reflang has no character-literal syntax, so
// `'` is unambiguous.
func (l *lexer) lexLifetime(start uint32) {
	l.pos++ // the apostrophe
	for {
		r, size := l.peekRune()
		if size == 0 || !isIdentContinue(r) {
			break
		}
		l.pos += uint32(size)
	}
	l.emit(external.ClassLifetimeIdent, KindLifetimeIdent, start)
}

func (l *lexer) lexString(start uint32) {
	l.pos++ // opening quote
	for !l.atEnd() {
		r, size := l.peekRune()
		if r == '\\' {
			l.pos += uint32(size)
			if !l.atEnd() {
				_, escSize := l.peekRune()
				l.pos += uint32(escSize)
			}
			continue
		}
		l.pos += uint32(size)
		if r == '"' {
			break
		}
	}
	l.emit(external.ClassStringLiteral, KindStringLiteral, start)
}

func (l *lexer) lexPunct(start uint32, r rune, size int) {
	kind, ok := punctKinds[r]
	if !ok {
		l.pos += uint32(size)
		l.errs = append(l.errs, external.LexError{
			Message: "unrecognized character",
			Offset:  start,
		})
		l.emit(external.ClassOther, KindUnknown, start)
		return
	}
	l.pos += uint32(size)
	l.emit(external.ClassPunct, kind, start)
}

var punctKinds = map[rune]external.SyntaxKind{
	'(': KindLParen, ')': KindRParen,
	'{': KindLBrace, '}': KindRBrace,
	'[': KindLBracket, ']': KindRBracket,
	'+': KindPlus, '-': KindMinus, '*': KindStar, '/': KindSlash,
	'=': KindEq, ':': KindColon, '.': KindDot,
	',': KindComma, ';': KindSemi,
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// LexedStream is the result of one [Lexer.Lex] call.
type LexedStream struct {
	toks []lexToken
	errs []external.LexError
}

func (s *LexedStream) Len() int                     { return len(s.toks) }
func (s *LexedStream) Class(i int) external.Class    { return s.toks[i].class }
func (s *LexedStream) Kind(i int) external.SyntaxKind { return s.toks[i].kind }
func (s *LexedStream) Text(i int) string             { return s.toks[i].text }
func (s *LexedStream) TextRange(i int) token.Range   { return s.toks[i].rng }
func (s *LexedStream) Errors() []external.LexError   { return s.errs }
