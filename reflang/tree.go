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
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/token"
)

// NodeID names a node within a [Tree]. It is comparable, as required by
// [external.Walker]'s Node type parameter.
type NodeID int32

// elem is one child of a node: a token (isToken true, tok* fields set) or a
// child node (isToken false, child set).
type elem struct {
	isToken bool

	tokKind external.SyntaxKind
	tokText string
	tokRng  token.Range

	child NodeID
}

// Tree is a concrete CST built by a [Builder].
type Tree struct {
	kinds    []external.SyntaxKind
	children [][]elem
}

func (t *Tree) newNode(kind external.SyntaxKind) NodeID {
	id := NodeID(len(t.kinds))
	t.kinds = append(t.kinds, kind)
	t.children = append(t.children, nil)
	return id
}

// Kind returns the grammar kind of node id.
func (t *Tree) Kind(id NodeID) external.SyntaxKind { return t.kinds[id] }

// BuildError is a parse error recorded by [Builder.Error].
type BuildError struct {
	Message string
	At      token.Range
}

// ParseResult is the P type [Builder] produces (spec.md §6's
// "CSTBuilder[P].Finish() P").
type ParseResult struct {
	Tree   *Tree
	Root   NodeID
	Errors []BuildError
}

// Builder implements [external.CSTBuilder][*ParseResult]. It reconstructs
// each leaf's byte range from a running offset over committed token text,
// since [external.CSTBuilder.Token] is not given one directly — matching
// how a real tree builder recomputes positions from token lengths.
type Builder struct {
	tree   *Tree
	stack  []NodeID
	root   NodeID
	offset uint32
	errors []BuildError
}

// NewBuilder creates an empty Builder ready to receive events.
func NewBuilder() *Builder {
	return &Builder{tree: &Tree{}, root: -1}
}

func (b *Builder) StartNode(kind external.SyntaxKind) {
	id := b.tree.newNode(kind)
	if len(b.stack) > 0 {
		parent := b.stack[len(b.stack)-1]
		b.tree.children[parent] = append(b.tree.children[parent], elem{child: id})
	} else {
		b.root = id
	}
	b.stack = append(b.stack, id)
}

func (b *Builder) FinishNode() {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Builder) Token(kind external.SyntaxKind, text string) {
	start := b.offset
	b.offset += uint32(len(text))
	parent := b.stack[len(b.stack)-1]
	b.tree.children[parent] = append(b.tree.children[parent], elem{
		isToken: true,
		tokKind: kind,
		tokText: text,
		tokRng:  token.Range{Start: start, End: b.offset},
	})
}

func (b *Builder) Error(msg string, at token.Range) {
	b.errors = append(b.errors, BuildError{Message: msg, At: at})
}

func (b *Builder) Finish() *ParseResult {
	return &ParseResult{Tree: b.tree, Root: b.root, Errors: b.errors}
}

// Walker implements [external.Walker][NodeID] over a [Tree].
type Walker struct{ Tree *Tree }

// walkStep is one flattened pre-order event, plus — for a WalkEnter step —
// the index of its own matching WalkLeave step, so [Cursor.SkipSubtree] can
// jump straight past it.
type walkStep struct {
	event       external.WalkEvent[NodeID]
	matchingEnd int
}

func (w Walker) Walk(root NodeID, _ token.Range) external.Cursor[NodeID] {
	var steps []walkStep
	flattenNode(&steps, w.Tree, root)
	return &Cursor{steps: steps}
}

func flattenNode(steps *[]walkStep, tree *Tree, id NodeID) {
	enterIdx := len(*steps)
	*steps = append(*steps, walkStep{event: external.WalkEnter[NodeID]{Node: id, Kind: tree.kinds[id]}})

	for _, el := range tree.children[id] {
		if el.isToken {
			*steps = append(*steps, walkStep{event: external.WalkToken[NodeID]{
				Class: classOf(el.tokKind), Kind: el.tokKind, Range: el.tokRng, Text: el.tokText,
			}})
		} else {
			flattenNode(steps, tree, el.child)
		}
	}

	exitIdx := len(*steps)
	*steps = append(*steps, walkStep{event: external.WalkLeave[NodeID]{Node: id}})
	(*steps)[enterIdx].matchingEnd = exitIdx
}

// Cursor implements [external.Cursor][NodeID] over a pre-flattened walk.
type Cursor struct {
	steps []walkStep
	idx   int
}

func (c *Cursor) Next() (external.WalkEvent[NodeID], bool) {
	if c.idx >= len(c.steps) {
		return nil, false
	}
	s := c.steps[c.idx]
	c.idx++
	return s.event, true
}

func (c *Cursor) SkipSubtree() {
	if c.idx == 0 {
		return
	}
	enter := c.steps[c.idx-1]
	c.idx = enter.matchingEnd + 1
}
