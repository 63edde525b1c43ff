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
	"strings"

	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

// piece is one fragment of source text a unit contributes when replayed:
// either a leaf's own text, or one bracket character of a delimiter.
type piece struct {
	text string
	id   token.ID
}

// unit is one entry of the flat, random-access view the TT→CST sink
// replays against and the external parser reads as a [external.ParserInput]
// (spec.md §4.5). A unit is usually one TT leaf or one delimiter bracket,
// except a lifetime identifier, which merges two TT leaves (the `'` punct
// and the following ident) into a single unit — matching what a real
// lexer would have reported as one token.
type unit struct {
	class external.Class
	text  string // what the external parser sees via ParserInput.Text

	isPunctLeaf bool      // true for an ordinary (non-bracket) Punct leaf
	spacing     tt.Spacing // meaningful only if isPunctLeaf
	punctChar   byte      // meaningful only if isPunctLeaf

	delimKind tt.DelimKind // meaningful only for an enter/exit unit
	pieces    []piece
}

// linearize flattens root into the unit sequence the sink and parser share.
// Invisible subtrees are transparent: their brackets contribute no unit,
// but their children are still visited in place.
func linearize(root *tt.Subtree) []unit {
	var units []unit
	linearizeSubtreeInto(&units, nil, root)
	return units
}

// linearizeItems flattens a bare sibling list (not wrapped in a Subtree) —
// used by the expression splitter, which slices a subtree's children
// directly rather than converting the whole thing at once.
func linearizeItems(items []tt.TokenTree) []unit {
	var units []unit
	linearizeItemsInto(&units, nil, items)
	return units
}

// linearizeItemsWithBoundaries is like linearizeItems, but also records, for
// each index i in items, the unit index at which items[i] begins —
// boundaries[len(items)] is the total unit count. Two adjacent entries can
// be equal when a lifetime-ident pair (two items) merges into one unit.
func linearizeItemsWithBoundaries(items []tt.TokenTree) (units []unit, boundaries []int) {
	linearizeItemsInto(&units, &boundaries, items)
	boundaries = append(boundaries, len(units))
	return units, boundaries
}

func linearizeSubtreeInto(units *[]unit, boundaries *[]int, sub *tt.Subtree) {
	visible := sub.Delimiter.Kind != tt.Invisible
	if visible {
		*units = append(*units, unit{
			class:     external.ClassPunct,
			text:      sub.Delimiter.Kind.Open(),
			delimKind: sub.Delimiter.Kind,
			pieces:    []piece{{text: sub.Delimiter.Kind.Open(), id: sub.Delimiter.ID}},
		})
	}
	linearizeItemsInto(units, boundaries, sub.Tokens)
	if visible {
		*units = append(*units, unit{
			class:     external.ClassPunct,
			text:      sub.Delimiter.Kind.Close(),
			delimKind: sub.Delimiter.Kind,
			pieces:    []piece{{text: sub.Delimiter.Kind.Close(), id: sub.Delimiter.ID}},
		})
	}
}

func linearizeItemsInto(units *[]unit, boundaries *[]int, list []tt.TokenTree) {
	for i := 0; i < len(list); i++ {
		if boundaries != nil {
			*boundaries = append(*boundaries, len(*units))
		}
		switch v := list[i].(type) {
		case *tt.Subtree:
			linearizeSubtreeInto(units, nil, v)

		case tt.Punct:
			if v.Char == '\'' && v.Spacing == tt.Joint && i+1 < len(list) {
				if id, ok := list[i+1].(tt.Ident); ok {
					*units = append(*units, unit{
						class: external.ClassLifetimeIdent,
						text:  "'" + id.Text,
						pieces: []piece{
							{text: "'", id: v.ID},
							{text: id.Text, id: id.ID},
						},
					})
					i++ // the Ident was consumed too
					if boundaries != nil {
						*boundaries = append(*boundaries, len(*units)-1)
					}
					continue
				}
			}
			*units = append(*units, unit{
				class:       external.ClassPunct,
				text:        string(v.Char),
				isPunctLeaf: true,
				spacing:     v.Spacing,
				punctChar:   byte(v.Char),
				pieces:      []piece{{text: string(v.Char), id: v.ID}},
			})

		case tt.Ident:
			*units = append(*units, unit{
				class:  external.ClassIdent,
				text:   v.Text,
				pieces: []piece{{text: v.Text, id: v.ID}},
			})

		case tt.Literal:
			*units = append(*units, unit{
				class:  classifyLiteral(v.Text),
				text:   v.Text,
				pieces: []piece{{text: v.Text, id: v.ID}},
			})
		}
	}
}

// classifyLiteral guesses the literal subkind of raw TT literal text, since
// a token tree (like rust-analyzer's own `tt::Literal`) keeps only the
// verbatim text and not which lexer kind produced it. This is necessarily a
// heuristic; an external parser with its own lexer-level literal table may
// reclassify further once it sees the text.
func classifyLiteral(text string) external.Class {
	switch {
	case strings.HasPrefix(text, "b\""):
		return external.ClassByteStringLiteral
	case strings.HasPrefix(text, "b'"):
		return external.ClassByteLiteral
	case strings.HasPrefix(text, "\""):
		return external.ClassStringLiteral
	case strings.HasPrefix(text, "'"):
		return external.ClassCharLiteral
	case strings.ContainsAny(text, ".eE") && hasLeadingDigit(text):
		return external.ClassFloatLiteral
	default:
		return external.ClassIntLiteral
	}
}

func hasLeadingDigit(text string) bool {
	return len(text) > 0 && text[0] >= '0' && text[0] <= '9'
}

// unitInput adapts a unit slice into an [external.ParserInput].
type unitInput struct{ units []unit }

func (u unitInput) Len() int                   { return len(u.units) }
func (u unitInput) Class(i int) external.Class { return u.units[i].class }
func (u unitInput) Text(i int) string          { return u.units[i].text }

func (u unitInput) IsJoint(i int) bool {
	un := u.units[i]
	return un.isPunctLeaf && un.spacing == tt.Joint
}
