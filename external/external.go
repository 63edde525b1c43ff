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

// Package external declares the four services the bridge collaborates with
// but does not implement itself: a raw lexer, an event-driven grammar
// parser, a CST builder, and a CST walker (spec.md §6).
//
// None of these are part of the bridge's own scope — they are the
// surrounding compiler's job — but the bridge is written entirely against
// these interfaces so any language front-end can plug in by implementing
// them. Package reflang is a minimal concrete implementation used only by
// this module's own tests.
package external

import "github.com/dirbaio/syntaxbridge/token"

// SyntaxKind is an opaque grammar symbol: a parser's node kind or a
// lexer's token kind. The bridge never interprets these values itself; it
// only threads them through between the lexer/parser/builder/walker.
type SyntaxKind uint16

// Class is the coarse lexical category the bridge needs to know about in
// order to convert a token, independent of the language-specific
// [SyntaxKind] that names it precisely.
type Class int8

const (
	ClassOther Class = iota
	ClassIdent
	ClassKeyword
	ClassUnderscore
	ClassLifetimeIdent
	ClassIntLiteral
	ClassFloatLiteral
	ClassStringLiteral
	ClassCharLiteral
	ClassByteLiteral
	ClassByteStringLiteral
	ClassPunct
	ClassComment
	ClassWhitespace
	ClassEOF
)

// IsLiteral reports whether c is one of the literal classes.
func (c Class) IsLiteral() bool {
	switch c {
	case ClassIntLiteral, ClassFloatLiteral, ClassStringLiteral,
		ClassCharLiteral, ClassByteLiteral, ClassByteStringLiteral:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether c is whitespace or a comment. Doc comments share
// [ClassComment], so IsTrivia reports true for them as well.
func (c Class) IsTrivia() bool {
	return c == ClassWhitespace || c == ClassComment
}

// Token is one lexeme as reported by a [Lexer].
type Token struct {
	Class Class
	Kind  SyntaxKind
	Range token.Range
	Text  string
}

// Lexer tokenizes a complete source string up front.
type Lexer interface {
	// Lex splits src into a flat token stream.
	Lex(src string) LexedStream
}

// LexedStream is the result of a single [Lexer.Lex] call — a random-access,
// immutable view of the tokens found.
type LexedStream interface {
	Len() int
	Class(i int) Class
	Kind(i int) SyntaxKind
	Text(i int) string
	TextRange(i int) token.Range
	// Errors returns lexical errors found, each paired with the byte
	// offset it was detected at.
	Errors() []LexError
}

// LexError is a single lexical error report.
type LexError struct {
	Message string
	Offset  uint32
}

// EntryPoint names the grammar production an [EventParser] should start
// from.
type EntryPoint int8

const (
	EntryItem EntryPoint = iota
	EntryExpr
	EntryPattern
	EntryType
	EntryStatements
	EntryAttrValue
)

// String implements [fmt.Stringer].
func (e EntryPoint) String() string {
	switch e {
	case EntryItem:
		return "item"
	case EntryExpr:
		return "expr"
	case EntryPattern:
		return "pattern"
	case EntryType:
		return "type"
	case EntryStatements:
		return "statements"
	case EntryAttrValue:
		return "attr-value"
	default:
		return "entry-point(?)"
	}
}

// ParserInput is the token stream fed to an [EventParser]: a linearized,
// random-access view of the leaves the sink is replaying, each with its
// coarse [Class] and literal text.
//
// IsJoint mirrors a [tt.Punct]'s Joint spacing: it reports whether token i
// is immediately glued to token i+1 with no possible whitespace between
// them, which is how a parser tells a `::` path separator apart from two
// unrelated `:` tokens once the original source's whitespace is gone. It is
// only meaningful when Class(i) is ClassPunct; implementations should
// report false otherwise.
type ParserInput interface {
	Len() int
	Class(i int) Class
	Text(i int) string
	IsJoint(i int) bool
}

// Event is one step of a parse, as produced by an [EventParser]. It is a
// closed sum type with exactly the four variants below.
type Event interface{ isEvent() }

// Token reports that the parser consumed n raw input tokens as a single
// token of the given kind.
type TokenEvent struct {
	Kind SyntaxKind
	N    int
}

// Enter starts a new CST node of the given kind.
type EnterEvent struct{ Kind SyntaxKind }

// Exit closes the most recently entered node.
type ExitEvent struct{}

// Error reports a parse error at the current input position; it does not
// stop parsing.
type ErrorEvent struct{ Message string }

func (TokenEvent) isEvent() {}
func (EnterEvent) isEvent() {}
func (ExitEvent) isEvent()  {}
func (ErrorEvent) isEvent() {}

// EventParser drives a grammar, consuming a [ParserInput] and producing a
// flat stream of [Event]s describing the tree it built.
type EventParser interface {
	Parse(entry EntryPoint, input ParserInput) []Event
}

// CSTBuilder assembles a CST from a stream of start/finish/token/error
// calls that mirror an [EventParser]'s [Event]s, finally producing a
// caller-defined Parse result of type P.
type CSTBuilder[P any] interface {
	StartNode(kind SyntaxKind)
	FinishNode()
	Token(kind SyntaxKind, text string)
	Error(msg string, at token.Range)
	Finish() P
}

// WalkEvent is one step of a pre-order walk over a CST, as produced by a
// [Walker]. Node identifies the entered or exited node with a type the
// caller chooses (comparable, since it is used as a map key by the token
// source adapter — spec.md §4.2).
type WalkEvent[Node comparable] interface{ isWalkEvent() }

// WalkEnter reports descending into a node.
type WalkEnter[Node comparable] struct {
	Node Node
	Kind SyntaxKind
}

// WalkLeave reports ascending out of a node previously entered.
type WalkLeave[Node comparable] struct{ Node Node }

// WalkToken reports a leaf token encountered between WalkEnter/WalkLeave
// events.
type WalkToken[Node comparable] struct {
	Class Class
	Kind  SyntaxKind
	Range token.Range
	Text  string
}

func (WalkEnter[Node]) isWalkEvent() {}
func (WalkLeave[Node]) isWalkEvent() {}
func (WalkToken[Node]) isWalkEvent() {}

// Cursor is a resumable pre-order walk produced by a [Walker]. Calling
// Next after SkipSubtree resumes just past the node that was open when
// SkipSubtree was called.
type Cursor[Node comparable] interface {
	// Next advances to and returns the next event, or reports false at
	// end of input.
	Next() (WalkEvent[Node], bool)
	// SkipSubtree discards the remainder of the most recently entered
	// node (i.e. suppresses its WalkToken/WalkEnter/WalkLeave events)
	// without advancing past its sibling.
	SkipSubtree()
}

// Walker produces pre-order [Cursor]s over a CST, per spec.md §6's "CST
// walker: pre-order events over a subtree range with a skip_subtree()
// affordance".
type Walker[Node comparable] interface {
	Walk(root Node, within token.Range) Cursor[Node]
}
