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

	"github.com/dirbaio/syntaxbridge/bridge"
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/reflang"
	"github.com/dirbaio/syntaxbridge/token"
)

func TestParserParsesBinaryPrecedence(t *testing.T) {
	root, _, ok := bridge.ParseToTT(reflang.Lexer{}, "1+2*3")
	require.True(t, ok)

	result, _, report := bridge.TTToCST[*reflang.ParseResult](
		reflang.Parser{}, reflang.NewBuilder(), external.EntryExpr, root,
		reflang.KindReinsertedSpace, "t.rl")
	assert.Empty(t, report.Diagnostics)

	// 1+2*3 parses as 1+(2*3): root should be a BinaryExpr whose second
	// operand is itself a BinaryExpr.
	assert.Equal(t, reflang.KindNodeBinaryExpr, result.Tree.Kind(result.Root))

	var enters []external.SyntaxKind
	cur := reflang.Walker{Tree: result.Tree}.Walk(result.Root, token.Range{})
	for {
		ev, ok := cur.Next()
		if !ok {
			break
		}
		if e, ok := ev.(external.WalkEnter[reflang.NodeID]); ok {
			enters = append(enters, e.Kind)
		}
	}
	assert.Equal(t, []external.SyntaxKind{
		reflang.KindNodeBinaryExpr, reflang.KindNodeLiteralExpr,
		reflang.KindNodeBinaryExpr, reflang.KindNodeLiteralExpr, reflang.KindNodeLiteralExpr,
	}, enters)
}

func TestParserReportsErrorOnTrailingOperator(t *testing.T) {
	root, _, ok := bridge.ParseToTT(reflang.Lexer{}, "1+")
	require.True(t, ok)

	_, _, report := bridge.TTToCST[*reflang.ParseResult](
		reflang.Parser{}, reflang.NewBuilder(), external.EntryExpr, root,
		reflang.KindReinsertedSpace, "t.rl")
	assert.NotEmpty(t, report.Diagnostics)
}

func TestParserPassthroughForUnimplementedEntryPoints(t *testing.T) {
	root, _, ok := bridge.ParseToTT(reflang.Lexer{}, "let x")
	require.True(t, ok)

	result, _, report := bridge.TTToCST[*reflang.ParseResult](
		reflang.Parser{}, reflang.NewBuilder(), external.EntryItem, root,
		reflang.KindReinsertedSpace, "t.rl")
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, reflang.KindNodeSourceFile, result.Tree.Kind(result.Root))
}
