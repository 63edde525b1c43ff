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

package bridge_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbaio/syntaxbridge/bridge"
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/reflang"
	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

// flattenText walks result's tree and concatenates every leaf token's text,
// in source order, including any reinserted whitespace.
func flattenText(t *testing.T, result *reflang.ParseResult) string {
	t.Helper()
	cur := reflang.Walker{Tree: result.Tree}.Walk(result.Root, token.Range{})
	var b strings.Builder
	for {
		ev, ok := cur.Next()
		if !ok {
			break
		}
		if tok, ok := ev.(external.WalkToken[reflang.NodeID]); ok {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

func TestTTToCSTRoundTripsSimpleExpr(t *testing.T) {
	root, origMap, ok := bridge.ParseToTT(reflang.Lexer{}, "a+b*c")
	require.True(t, ok)

	result, newMap, report := bridge.TTToCST[*reflang.ParseResult](
		reflang.Parser{}, reflang.NewBuilder(), external.EntryExpr, root,
		reflang.KindReinsertedSpace, "t.rl")

	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, "a+b*c", flattenText(t, result))

	// Every id from the original conversion should have survived replay
	// with the same id, landing somewhere in the reconstructed text.
	for _, leaf := range root.Tokens {
		id := leaf.TokenID()
		_, hadOrig := origMap.Range(id)
		require.True(t, hadOrig)
		_, hadNew := newMap.Range(id)
		assert.True(t, hadNew, "id %s should be reused by the sink", id)
	}
}

func TestTTToCSTReinsertsWhitespaceBetweenAdjacentAlonePuncts(t *testing.T) {
	// Hand-built: two Alone-spaced '-' leaves that must not be allowed to
	// fuse into a single lexeme once replayed as flat text, followed by a
	// literal. ParseToTT produces this shape for "- -1", where whitespace
	// separates the two puncts, and a macro transcriber can produce it
	// with no whitespace in the source at all.
	root := &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Invisible},
		Tokens: []tt.TokenTree{
			tt.Punct{ID: 1, Char: '-', Spacing: tt.Alone},
			tt.Punct{ID: 2, Char: '-', Spacing: tt.Alone},
			tt.Literal{ID: 3, Text: "1"},
		},
	}

	result, newMap, report := bridge.TTToCST[*reflang.ParseResult](
		reflang.Parser{}, reflang.NewBuilder(), external.EntryExpr, root,
		reflang.KindReinsertedSpace, "t.rl")

	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, "- -1", flattenText(t, result))

	r1, ok := newMap.Range(1)
	require.True(t, ok)
	assert.Equal(t, token.Range{Start: 0, End: 1}, r1)
	r2, ok := newMap.Range(2)
	require.True(t, ok)
	assert.Equal(t, token.Range{Start: 2, End: 3}, r2)
	r3, ok := newMap.Range(3)
	require.True(t, ok)
	assert.Equal(t, token.Range{Start: 3, End: 4}, r3)
}

func TestTTToCSTRecordsParserErrors(t *testing.T) {
	// "1 +" is a valid prefix but an incomplete expression: the trailing
	// '+' has no right-hand side.
	root, _, ok := bridge.ParseToTT(reflang.Lexer{}, "1+")
	require.True(t, ok)

	_, _, report := bridge.TTToCST[*reflang.ParseResult](
		reflang.Parser{}, reflang.NewBuilder(), external.EntryExpr, root,
		reflang.KindReinsertedSpace, "t.rl")

	require.Len(t, report.Diagnostics, 1)
	assert.NotEmpty(t, report.Diagnostics[0].Message)
}
