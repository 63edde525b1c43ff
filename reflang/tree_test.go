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

package reflang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/reflang"
	"github.com/dirbaio/syntaxbridge/token"
)

// buildSample constructs: SourceFile( CallExpr( ArgList( "a" ) ), "b" )
func buildSample() *reflang.ParseResult {
	b := reflang.NewBuilder()
	b.StartNode(reflang.KindNodeSourceFile)
	b.StartNode(reflang.KindNodeCallExpr)
	b.StartNode(reflang.KindNodeArgList)
	b.Token(reflang.KindIdent, "a")
	b.FinishNode() // ArgList
	b.FinishNode() // CallExpr
	b.Token(reflang.KindIdent, "b")
	b.FinishNode() // SourceFile
	return b.Finish()
}

func TestWalkerPreOrderVisitsEveryNodeAndToken(t *testing.T) {
	result := buildSample()
	cur := reflang.Walker{Tree: result.Tree}.Walk(result.Root, token.Range{})

	var kinds []string
	for {
		ev, ok := cur.Next()
		if !ok {
			break
		}
		switch e := ev.(type) {
		case external.WalkEnter[reflang.NodeID]:
			kinds = append(kinds, "enter")
		case external.WalkLeave[reflang.NodeID]:
			kinds = append(kinds, "leave")
		case external.WalkToken[reflang.NodeID]:
			kinds = append(kinds, "token:"+e.Text)
		}
	}
	assert.Equal(t, []string{
		"enter", "enter", "enter", "token:a", "leave", "leave", "token:b", "leave",
	}, kinds)
}

func TestCursorSkipSubtreeJumpsPastNode(t *testing.T) {
	result := buildSample()
	cur := reflang.Walker{Tree: result.Tree}.Walk(result.Root, token.Range{})

	ev, ok := cur.Next()
	require.True(t, ok)
	_, isEnter := ev.(external.WalkEnter[reflang.NodeID])
	require.True(t, isEnter) // entered SourceFile

	ev, ok = cur.Next()
	require.True(t, ok)
	_, isEnter = ev.(external.WalkEnter[reflang.NodeID])
	require.True(t, isEnter) // entered CallExpr

	cur.SkipSubtree() // skip everything inside CallExpr, including ArgList and "a"

	ev, ok = cur.Next()
	require.True(t, ok)
	tok, isToken := ev.(external.WalkToken[reflang.NodeID])
	require.True(t, isToken)
	assert.Equal(t, "b", tok.Text)
}

func TestBuilderReconstructsOffsetsFromTokenLengths(t *testing.T) {
	b := reflang.NewBuilder()
	b.StartNode(reflang.KindNodeSourceFile)
	b.Token(reflang.KindIdent, "foo")
	b.Token(reflang.KindWhitespace, " ")
	b.Token(reflang.KindIdent, "bar")
	b.FinishNode()
	result := b.Finish()

	cur := reflang.Walker{Tree: result.Tree}.Walk(result.Root, token.Range{})
	var ranges []token.Range
	for {
		ev, ok := cur.Next()
		if !ok {
			break
		}
		if tok, ok := ev.(external.WalkToken[reflang.NodeID]); ok {
			ranges = append(ranges, tok.Range)
		}
	}
	assert.Equal(t, []token.Range{
		{Start: 0, End: 3},
		{Start: 3, End: 4},
		{Start: 4, End: 7},
	}, ranges)
}
