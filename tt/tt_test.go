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

package tt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

func TestStringFlattensSubtree(t *testing.T) {
	sub := &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Paren, ID: 1},
		Tokens: []tt.TokenTree{
			tt.Ident{ID: 3, Text: "a"},
			tt.Punct{ID: 4, Char: '+', Spacing: tt.Alone},
			tt.Ident{ID: 5, Text: "b"},
		},
	}
	assert.Equal(t, "(a + b)", tt.String(sub))
}

func TestStringJoinsJointPuncts(t *testing.T) {
	sub := &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Invisible},
		Tokens: []tt.TokenTree{
			tt.Punct{ID: 1, Char: ':', Spacing: tt.Joint},
			tt.Punct{ID: 2, Char: ':', Spacing: tt.Alone},
		},
	}
	assert.Equal(t, "::", tt.String(sub))
}

func TestTokenIDDispatchesByVariant(t *testing.T) {
	var leaf tt.TokenTree = tt.Ident{ID: 42, Text: "x"}
	assert.Equal(t, token.ID(42), leaf.TokenID())

	sub := &tt.Subtree{Delimiter: tt.Delimiter{Kind: tt.Brace, ID: 9}}
	assert.Equal(t, token.ID(9), sub.TokenID())
}
