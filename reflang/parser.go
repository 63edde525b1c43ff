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

import "github.com/dirbaio/syntaxbridge/external"

// Parser implements [external.EventParser] for reflang's toy expression
// grammar:
//
//	expr       := additive
//	additive   := multiplicative (('+' | '-') multiplicative)*
//	multiplicative := unary (('*' | '/') unary)*
//	unary      := '-' unary | primary
//	primary    := path | INT | STRING | '(' expr ')'
//	path       := IDENT ('::' IDENT)*  ('(' args ')')?
//	args       := (expr (',' expr)*)?
//
// Other entry points ([external.EntryItem], [external.EntryPattern],
// [external.EntryType], [external.EntryStatements]) are not part of the
// grammar reflang actually parses; Parse falls back to wrapping the whole
// remaining input as one flat node, so the bridge's round-trip properties
// (which don't depend on grammar semantics) can still be exercised with
// them as pure pass-through.
type Parser struct{}

func (Parser) Parse(entry external.EntryPoint, input external.ParserInput) []external.Event {
	p := &exprParser{input: input}
	switch entry {
	case external.EntryExpr:
		events, n, ok := p.expr()
		if !ok {
			events = append(events, external.ErrorEvent{Message: "expected an expression"})
		}
		_ = n
		return events
	default:
		return p.passthrough(entry)
	}
}

// passthrough wraps every remaining input unit as a single flat node,
// without attempting to parse structure — a stand-in for the entry points
// reflang's toy grammar doesn't implement.
func (p *exprParser) passthrough(entry external.EntryPoint) []external.Event {
	events := []external.Event{external.EnterEvent{Kind: entryNodeKind(entry)}}
	for i := 0; i < p.input.Len(); i++ {
		events = append(events, external.TokenEvent{Kind: p.kindAt(i), N: 1})
	}
	events = append(events, external.ExitEvent{})
	return events
}

func entryNodeKind(entry external.EntryPoint) external.SyntaxKind {
	switch entry {
	case external.EntryItem:
		return KindNodeSourceFile
	default:
		return KindNodeError
	}
}

type exprParser struct {
	input external.ParserInput
	pos   int
}

func (p *exprParser) atEnd() bool { return p.pos >= p.input.Len() }

func (p *exprParser) classAt(off int) (external.Class, bool) {
	i := p.pos + off
	if i < 0 || i >= p.input.Len() {
		return external.ClassEOF, false
	}
	return p.input.Class(i), true
}

func (p *exprParser) textAt(off int) string {
	i := p.pos + off
	if i < 0 || i >= p.input.Len() {
		return ""
	}
	return p.input.Text(i)
}

// kindAt guesses a [external.SyntaxKind] for the unit at i purely from its
// [external.Class] and text, since [external.ParserInput] doesn't carry the
// lexer's original kind (only what's needed to reparse). This is enough for
// reflang's own grammar, which reflang also defines the kinds for.
func (p *exprParser) kindAt(i int) external.SyntaxKind {
	class := p.input.Class(i)
	text := p.input.Text(i)
	switch class {
	case external.ClassIdent:
		if kind, ok := keywords[text]; ok {
			return kind
		}
		return KindIdent
	case external.ClassUnderscore:
		return KindUnderscore
	case external.ClassIntLiteral:
		return KindIntLiteral
	case external.ClassStringLiteral:
		return KindStringLiteral
	case external.ClassLifetimeIdent:
		return KindLifetimeIdent
	case external.ClassPunct:
		if kind, ok := punctKinds[rune(text[0])]; ok {
			return kind
		}
		return KindUnknown
	default:
		return KindUnknown
	}
}

func (p *exprParser) isPunct(off int, ch byte) bool {
	class, ok := p.classAt(off)
	return ok && class == external.ClassPunct && p.textAt(off) == string(ch)
}

func (p *exprParser) bumpToken() external.TokenEvent {
	ev := external.TokenEvent{Kind: p.kindAt(p.pos), N: 1}
	p.pos++
	return ev
}

// path parses an identifier, possibly followed by `::`-joined segments
// (detected via [external.ParserInput.IsJoint], since the lexer only ever
// emits single ':' tokens) and an optional call argument list.
func (p *exprParser) path() (events []external.Event, ok bool) {
	class, exists := p.classAt(0)
	if !exists || (class != external.ClassIdent && class != external.ClassUnderscore) {
		return nil, false
	}

	node := KindNodeIdentExpr
	events = append(events, p.bumpToken())
	wrap := func(ok bool) ([]external.Event, bool) {
		out := make([]external.Event, 0, len(events)+2)
		out = append(out, external.EnterEvent{Kind: node})
		out = append(out, events...)
		out = append(out, external.ExitEvent{})
		return out, ok
	}

	for p.isColonColon() {
		node = KindNodePathExpr
		events = append(events, p.bumpToken()) // first ':'
		events = append(events, p.bumpToken()) // second ':'
		class, exists := p.classAt(0)
		if !exists || (class != external.ClassIdent && class != external.ClassUnderscore) {
			return wrap(false)
		}
		events = append(events, p.bumpToken())
	}

	if p.isPunct(0, '(') {
		callEvents, callOK := p.argList()
		node = KindNodeCallExpr
		events = append(events, callEvents...)
		if !callOK {
			return wrap(false)
		}
	}

	return wrap(true)
}

// isColonColon reports whether the current position begins a `::`: two
// adjacent ':' units with the first marked Joint.
func (p *exprParser) isColonColon() bool {
	if !p.isPunct(0, ':') || !p.isPunct(1, ':') {
		return false
	}
	return p.input.IsJoint(p.pos)
}

func (p *exprParser) argList() (events []external.Event, ok bool) {
	events = append(events, external.EnterEvent{Kind: KindNodeArgList})
	events = append(events, p.bumpToken()) // '('

	if !p.isPunct(0, ')') {
		for {
			argEvents, _, argOK := p.expr()
			events = append(events, argEvents...)
			if !argOK {
				events = append(events, external.ExitEvent{})
				return events, false
			}
			if p.isPunct(0, ',') {
				events = append(events, p.bumpToken())
				continue
			}
			break
		}
	}

	if !p.isPunct(0, ')') {
		events = append(events, external.ExitEvent{})
		return events, false
	}
	events = append(events, p.bumpToken()) // ')'
	events = append(events, external.ExitEvent{})
	return events, true
}

func (p *exprParser) primary() (events []external.Event, ok bool) {
	class, exists := p.classAt(0)
	if !exists {
		return nil, false
	}

	switch {
	case class == external.ClassIdent || class == external.ClassUnderscore:
		return p.path()

	case class == external.ClassIntLiteral || class == external.ClassStringLiteral:
		tok := p.bumpToken()
		return []external.Event{
			external.EnterEvent{Kind: KindNodeLiteralExpr},
			tok,
			external.ExitEvent{},
		}, true

	case p.isPunct(0, '('):
		open := p.bumpToken()
		inner, _, innerOK := p.expr()
		events = append([]external.Event{external.EnterEvent{Kind: KindNodeParenExpr}, open}, inner...)
		if !innerOK || !p.isPunct(0, ')') {
			events = append(events, external.ExitEvent{})
			return events, false
		}
		events = append(events, p.bumpToken(), external.ExitEvent{})
		return events, true

	case p.isPunct(0, '-'):
		minus := p.bumpToken()
		inner, innerOK := p.unary()
		events = append([]external.Event{external.EnterEvent{Kind: KindNodeUnaryExpr}, minus}, inner...)
		events = append(events, external.ExitEvent{})
		return events, innerOK

	default:
		return nil, false
	}
}

func (p *exprParser) unary() (events []external.Event, ok bool) {
	return p.primary()
}

func (p *exprParser) multiplicative() (events []external.Event, n int, ok bool) {
	lhs, lhsOK := p.unary()
	if !lhsOK {
		return lhs, 0, false
	}
	events = lhs
	for p.isPunct(0, '*') || p.isPunct(0, '/') {
		op := p.bumpToken()
		rhs, rhsOK := p.unary()
		events = append([]external.Event{external.EnterEvent{Kind: KindNodeBinaryExpr}}, append(events, op)...)
		events = append(events, rhs...)
		events = append(events, external.ExitEvent{})
		if !rhsOK {
			return events, 0, false
		}
	}
	return events, 0, true
}

func (p *exprParser) expr() (events []external.Event, n int, ok bool) {
	start := p.pos
	lhs, _, lhsOK := p.multiplicative()
	if !lhsOK {
		return lhs, p.pos - start, false
	}
	events = lhs
	for p.isPunct(0, '+') || p.isPunct(0, '-') {
		op := p.bumpToken()
		rhs, _, rhsOK := p.multiplicative()
		events = append([]external.Event{external.EnterEvent{Kind: KindNodeBinaryExpr}}, append(events, op)...)
		events = append(events, rhs...)
		events = append(events, external.ExitEvent{})
		if !rhsOK {
			return events, p.pos - start, false
		}
	}
	return events, p.pos - start, true
}
