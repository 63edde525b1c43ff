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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/tt"
)

func TestLinearizeFlattensDelimitersIntoOpenCloseUnits(t *testing.T) {
	sub := &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Paren, ID: 1},
		Tokens: []tt.TokenTree{
			tt.Ident{ID: 2, Text: "a"},
			tt.Punct{ID: 3, Char: '+', Spacing: tt.Alone},
			tt.Ident{ID: 4, Text: "b"},
		},
	}

	units := linearize(sub)
	require.Len(t, units, 5)
	assert.Equal(t, "(", units[0].text)
	assert.Equal(t, tt.Paren, units[0].delimKind)
	assert.Equal(t, "a", units[1].text)
	assert.Equal(t, "+", units[2].text)
	assert.True(t, units[2].isPunctLeaf)
	assert.Equal(t, "b", units[3].text)
	assert.Equal(t, ")", units[4].text)
	assert.Equal(t, tt.Paren, units[4].delimKind)
}

func TestLinearizeMergesLifetimeIdentIntoOneUnit(t *testing.T) {
	items := []tt.TokenTree{
		tt.Punct{ID: 1, Char: '\'', Spacing: tt.Joint},
		tt.Ident{ID: 2, Text: "a"},
		tt.Punct{ID: 3, Char: ':', Spacing: tt.Alone},
	}

	units, boundaries := linearizeItemsWithBoundaries(items)
	require.Len(t, units, 2)
	assert.Equal(t, external.ClassLifetimeIdent, units[0].class)
	assert.Equal(t, "'a", units[0].text)
	require.Len(t, units[0].pieces, 2)
	assert.Equal(t, ":", units[1].text)

	// boundaries has one entry per original item, plus a trailing total;
	// the two lifetime pieces (items 0 and 1) both begin at unit 0.
	assert.Equal(t, []int{0, 0, 1, 2}, boundaries)
}

func TestLinearizeInvisibleSubtreeContributesNoBracketUnits(t *testing.T) {
	sub := &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Invisible},
		Tokens: []tt.TokenTree{
			tt.Ident{ID: 1, Text: "a"},
		},
	}
	units := linearize(sub)
	require.Len(t, units, 1)
	assert.Equal(t, "a", units[0].text)
}

func TestClassifyLiteral(t *testing.T) {
	cases := map[string]external.Class{
		`"hi"`:  external.ClassStringLiteral,
		`'a'`:   external.ClassCharLiteral,
		`b"hi"`: external.ClassByteStringLiteral,
		`b'a'`:  external.ClassByteLiteral,
		`123`:   external.ClassIntLiteral,
		`1.5`:   external.ClassFloatLiteral,
		`1e9`:   external.ClassFloatLiteral,
	}
	for text, want := range cases {
		assert.Equal(t, want, classifyLiteral(text), "classifyLiteral(%q)", text)
	}
}

func TestUnitInputIsJointOnlyForJointPunct(t *testing.T) {
	items := []tt.TokenTree{
		tt.Punct{ID: 1, Char: ':', Spacing: tt.Joint},
		tt.Punct{ID: 2, Char: ':', Spacing: tt.Alone},
		tt.Ident{ID: 3, Text: "a"},
	}
	units := linearizeItems(items)
	in := unitInput{units: units}
	assert.True(t, in.IsJoint(0))
	assert.False(t, in.IsJoint(1))
	assert.False(t, in.IsJoint(2))
}
