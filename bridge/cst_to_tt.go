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

// Package bridge implements the bidirectional conversion between a CST
// token stream and a token tree: cst_to_tt, cst_to_tt_mod, tt_to_cst,
// parse_to_tt, and split_by_sep (spec.md §4, §6).
package bridge

import (
	"fmt"

	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/source"
	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

type stackEntry struct {
	subtree   *tt.Subtree
	slot      token.Slot
	openRange token.Range
}

// convertTokens runs the shared CST→TT state machine (spec.md §4.3) over
// src until it is exhausted, returning the unflattened root subtree (a
// Subtree with Delimiter.Kind == tt.Invisible).
func convertTokens(src source.Source) *tt.Subtree {
	alloc := src.Allocator()
	stack := []stackEntry{{
		subtree: &tt.Subtree{Delimiter: tt.Delimiter{Kind: tt.Invisible}},
	}}

	for {
		t, ok := src.Bump()
		if !ok {
			break
		}
		top := &stack[len(stack)-1]

		switch {
		case t.Class == external.ClassComment:
			if trees, ok := src.ConvertDocComment(t); ok {
				id := alloc.Alloc(t.Range, t.Origin)
				source.StampDocLiteral(trees, id)
				top.subtree.Tokens = append(top.subtree.Tokens, trees...)
			}
			// Non-doc comments are dropped (spec.md §4.3 step 1).

		case t.Class == external.ClassPunct:
			if t.Origin == nil && len(t.Text) != 1 {
				panic(fmt.Sprintf("bridge: punctuation token %q is not a single ASCII byte", t.Text))
			}

			if top.subtree.Delimiter.Kind != tt.Invisible && t.Text == top.subtree.Delimiter.Kind.Close() {
				closed := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				closeRange := t.Range
				alloc.CloseDelim(closed.slot, &closeRange)
				parent := &stack[len(stack)-1]
				parent.subtree.Tokens = append(parent.subtree.Tokens, closed.subtree)
				continue
			}

			if dk, isOpen := openDelimKind(t.Text); isOpen {
				id, slot := alloc.OpenDelim(t.Range)
				stack = append(stack, stackEntry{
					subtree:   &tt.Subtree{Delimiter: tt.Delimiter{Kind: dk, ID: id}},
					slot:      slot,
					openRange: t.Range,
				})
				continue
			}

			spacing := tt.Alone
			if next, ok := src.Peek(); ok && !next.Class.IsTrivia() &&
				next.Class == external.ClassPunct && !isNonJoinable(next.Text) {
				spacing = tt.Joint
			}
			id := alloc.Alloc(t.Range, t.Origin)
			top.subtree.Tokens = append(top.subtree.Tokens, tt.Punct{
				ID: id, Char: rune(t.Text[0]), Spacing: spacing,
			})

		case t.Class == external.ClassLifetimeIdent:
			apostropheRange := token.Range{Start: t.Range.Start, End: t.Range.Start + 1}
			apID := alloc.Alloc(apostropheRange, t.Origin)
			top.subtree.Tokens = append(top.subtree.Tokens, tt.Punct{
				ID: apID, Char: '\'', Spacing: tt.Joint,
			})

			identRange := token.Range{Start: t.Range.Start + 1, End: t.Range.End}
			idID := alloc.Alloc(identRange, t.Origin)
			top.subtree.Tokens = append(top.subtree.Tokens, tt.Ident{
				ID: idID, Text: alloc.InternIdent(t.Text[1:]),
			})

		case t.Class == external.ClassIdent || t.Class == external.ClassKeyword || t.Class == external.ClassUnderscore:
			id := alloc.Alloc(t.Range, t.Origin)
			top.subtree.Tokens = append(top.subtree.Tokens, tt.Ident{ID: id, Text: alloc.InternIdent(t.Text)})

		case t.Class.IsLiteral():
			id := alloc.Alloc(t.Range, t.Origin)
			top.subtree.Tokens = append(top.subtree.Tokens, tt.Literal{ID: id, Text: t.Text})

		default:
			// Whitespace, non-doc comments already handled above, and any
			// other unrecognized kind: skipped silently (spec.md §4.3 step 8).
		}
	}

	repairUnbalanced(alloc, &stack)
	return stack[0].subtree
}

// repairUnbalanced flushes any subtrees still open when input ended,
// demoting each unclosed opener to a single Alone punct leaf allocated
// fresh over its original open range, and discarding its reserved
// delimiter slot (spec.md §4.3's "end-of-stream repair").
func repairUnbalanced(alloc *token.Allocator, stack *[]stackEntry) {
	s := *stack
	for len(s) > 1 {
		entry := s[len(s)-1]
		s = s[:len(s)-1]
		parent := &s[len(s)-1]

		alloc.CloseDelim(entry.slot, nil)
		demotedID := alloc.Alloc(entry.openRange, nil)
		parent.subtree.Tokens = append(parent.subtree.Tokens, tt.Punct{
			ID: demotedID, Char: openChar(entry.subtree.Delimiter.Kind), Spacing: tt.Alone,
		})
		parent.subtree.Tokens = append(parent.subtree.Tokens, entry.subtree.Tokens...)
	}
	*stack = s
}

// flatten implements spec.md §4.3's root flattening: a root subtree whose
// only child is itself a subtree collapses to that child.
func flatten(root *tt.Subtree) *tt.Subtree {
	if len(root.Tokens) == 1 {
		if only, ok := root.Tokens[0].(*tt.Subtree); ok {
			return only
		}
	}
	return root
}

func openDelimKind(text string) (tt.DelimKind, bool) {
	switch text {
	case "(":
		return tt.Paren, true
	case "{":
		return tt.Brace, true
	case "[":
		return tt.Bracket, true
	default:
		return 0, false
	}
}

func openChar(kind tt.DelimKind) rune {
	switch kind {
	case tt.Paren:
		return '('
	case tt.Brace:
		return '{'
	case tt.Bracket:
		return '['
	default:
		panic(fmt.Sprintf("bridge: %v has no opening character", kind))
	}
}

// isNonJoinable reports whether text is one of the characters that, per
// spec.md §4.3 step 4, never glue to a preceding punct even when adjacent:
// the three opening brackets (underscore is excluded earlier, by Class).
func isNonJoinable(text string) bool {
	return text == "[" || text == "{" || text == "("
}

// CSTToTT is the public `cst_to_tt` operation (spec.md §6): convert an
// entire CST node into a token tree, starting a fresh id allocator whose
// global offset is within.Start, so that the returned Map's ranges are
// relative to the start of the converted node (spec.md §4.1) regardless of
// where within sits in a larger buffer.
func CSTToTT[Node comparable](walker external.Walker[Node], root Node, within token.Range) (*tt.Subtree, *token.Map) {
	alloc := token.NewAllocator(within.Start)
	cur := walker.Walk(root, within)
	src := source.NewCSTSource(cur, alloc, nil, nil)

	result := convertTokens(src)
	src.Finish()

	return flatten(result), alloc.Finish()
}

// CSTToTTMod is the public `cst_to_tt_mod` operation (spec.md §6): convert
// a CST node using an allocator that already has state (so ids continue
// from where a previous conversion left off), optionally splicing in
// caller-supplied synthetic tokens keyed by node identity. The allocator's
// map is left writable; the caller decides when to finalize it.
func CSTToTTMod[Node comparable](
	walker external.Walker[Node],
	root Node,
	within token.Range,
	alloc *token.Allocator,
	replace, appendMap map[Node][]source.SyntheticToken,
) (*tt.Subtree, *token.Map, token.ID) {
	cur := walker.Walk(root, within)
	src := source.NewCSTSource(cur, alloc, replace, appendMap)

	result := convertTokens(src)
	src.Finish()

	return flatten(result), alloc.Map(), alloc.NextID()
}

// ParseToTT is the public `parse_to_tt` operation (spec.md §4.6, §6): lex
// text and convert the resulting raw token stream into a token tree. It
// reports ok == false if the lexer found any errors.
func ParseToTT(lexer external.Lexer, text string) (result *tt.Subtree, m *token.Map, ok bool) {
	lexed := lexer.Lex(text)
	if len(lexed.Errors()) > 0 {
		return nil, nil, false
	}

	alloc := token.NewAllocator(0)
	src := source.NewRawSource(lexed, alloc, 0)

	root := convertTokens(src)
	return flatten(root), alloc.Finish(), true
}
