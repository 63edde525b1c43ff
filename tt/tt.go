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

// Package tt defines the token tree: the delimiter-nested, spacing-aware
// sequence of leaves that the bridge converts a CST to and from (spec.md
// §3). A token tree carries just enough information to be re-lexed and
// re-parsed, and nothing else — it is not a CST, and has no notion of
// grammar productions.
package tt

import (
	"fmt"
	"strings"

	"github.com/dirbaio/syntaxbridge/token"
)

// DelimKind is the kind of bracket a [Subtree] is wrapped in.
type DelimKind int8

const (
	// Invisible subtrees have no surface-syntax bracket; they exist only to
	// group tokens (for instance, the result of a macro substitution whose
	// own parenthesization must not interact with the surrounding grammar).
	Invisible DelimKind = iota
	Paren
	Brace
	Bracket
)

// String implements [fmt.Stringer].
func (k DelimKind) String() string {
	switch k {
	case Invisible:
		return "Invisible"
	case Paren:
		return "Paren"
	case Brace:
		return "Brace"
	case Bracket:
		return "Bracket"
	default:
		return fmt.Sprintf("tt.DelimKind(%d)", int(k))
	}
}

// Open and Close return the surface-syntax characters for k, or "" for
// [Invisible].
func (k DelimKind) Open() string  { return delimChars[k][0] }
func (k DelimKind) Close() string { return delimChars[k][1] }

var delimChars = map[DelimKind][2]string{
	Invisible: {"", ""},
	Paren:     {"(", ")"},
	Brace:     {"{", "}"},
	Bracket:   {"[", "]"},
}

// Delimiter is the bracket pair wrapping a [Subtree]. A single id names the
// whole pair — not one id per bracket — matching how a [token.Map] records
// both ends of a delimiter under one [token.ID] (spec.md §3). ID is
// [token.Nil] when the subtree is wholly synthetic.
type Delimiter struct {
	Kind DelimKind
	ID   token.ID
}

// Spacing records whether a [Punct] leaf is immediately followed by another
// punctuation character with no intervening trivia — the bridge's
// replacement for carrying raw whitespace inside the tree (spec.md §4.3).
type Spacing int8

const (
	// Alone means the punct is not glued to whatever follows: either there
	// is trivia after it, or nothing after it, or the next token isn't punct.
	Alone Spacing = iota
	// Joint means the punct is immediately adjacent to another punct
	// character, with no intervening trivia. A re-lexer must treat the two
	// as capable of combining into a single multi-character operator.
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

// TokenTree is either a [Subtree] or a [Leaf]. It is a closed sum type:
// the only implementations are the two defined in this package.
type TokenTree interface {
	isTokenTree()
	// TokenID returns the leading token.ID associated with this node: the
	// delimiter's open id for a Subtree, or the leaf's own id.
	TokenID() token.ID
}

// Subtree is a delimited sequence of token trees.
type Subtree struct {
	Delimiter Delimiter
	Tokens    []TokenTree
}

func (*Subtree) isTokenTree() {}

// TokenID implements [TokenTree].
func (s *Subtree) TokenID() token.ID { return s.Delimiter.ID }

// Ident is a leaf identifier or keyword.
type Ident struct {
	ID   token.ID
	Text string
}

func (Ident) isTokenTree()        {}
func (i Ident) TokenID() token.ID { return i.ID }

// Literal is a leaf numeric, string, char, or byte-string constant, stored
// verbatim as it appeared in the source (escapes are not interpreted).
type Literal struct {
	ID   token.ID
	Text string
}

func (Literal) isTokenTree()        {}
func (l Literal) TokenID() token.ID { return l.ID }

// Punct is a single ASCII punctuation character. Multi-character operators
// like `::` or `->` are represented as consecutive Joint Puncts, per
// spec.md §4.3's "punctuation is split to one rune per leaf".
type Punct struct {
	ID      token.ID
	Char    rune
	Spacing Spacing
}

func (Punct) isTokenTree()        {}
func (p Punct) TokenID() token.ID { return p.ID }

// String renders t as flat source text, ignoring spacing beyond what
// [Spacing] dictates (i.e. it never reinserts the original whitespace —
// only enough to keep adjacent Alone puncts and idents from fusing).
func String(t TokenTree) string {
	var b strings.Builder
	writeTokenTree(&b, t)
	return b.String()
}

func writeTokenTree(b *strings.Builder, t TokenTree) {
	switch t := t.(type) {
	case *Subtree:
		b.WriteString(t.Delimiter.Kind.Open())
		for i, child := range t.Tokens {
			if i > 0 {
				if needsSpace(t.Tokens[i-1], child) {
					b.WriteByte(' ')
				}
			}
			writeTokenTree(b, child)
		}
		b.WriteString(t.Delimiter.Kind.Close())
	case Ident:
		b.WriteString(t.Text)
	case Literal:
		b.WriteString(t.Text)
	case Punct:
		b.WriteRune(t.Char)
	}
}

func needsSpace(prev, next TokenTree) bool {
	p, ok := prev.(Punct)
	if !ok {
		return true
	}
	return p.Spacing == Alone
}
