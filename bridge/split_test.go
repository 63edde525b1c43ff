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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbaio/syntaxbridge/bridge"
	"github.com/dirbaio/syntaxbridge/external"
	"github.com/dirbaio/syntaxbridge/reflang"
	"github.com/dirbaio/syntaxbridge/tt"
)

func TestSplitBySepStopsAtFirstUnparseableItem(t *testing.T) {
	group, _, ok := bridge.ParseToTT(reflang.Lexer{}, "(1, 2, 3 +)")
	require.True(t, ok)
	require.Equal(t, tt.Paren, group.Delimiter.Kind)

	items, residue := bridge.SplitBySep(reflang.Parser{}, external.EntryExpr, group, ',')

	require.Len(t, items, 2)
	assert.Equal(t, "1", tt.String(items[0]))
	assert.Equal(t, "2", tt.String(items[1]))
	assert.Equal(t, "3 +", tt.String(residue))
}

func TestSplitBySepAllItemsWellFormed(t *testing.T) {
	group, _, ok := bridge.ParseToTT(reflang.Lexer{}, "(1, 2, 3)")
	require.True(t, ok)

	items, residue := bridge.SplitBySep(reflang.Parser{}, external.EntryExpr, group, ',')

	require.Len(t, items, 3)
	assert.Equal(t, "1", tt.String(items[0]))
	assert.Equal(t, "2", tt.String(items[1]))
	assert.Equal(t, "3", tt.String(items[2]))
	assert.Empty(t, residue.Tokens)
}

func TestSplitBySepEmptyGroup(t *testing.T) {
	group, _, ok := bridge.ParseToTT(reflang.Lexer{}, "()")
	require.True(t, ok)

	items, residue := bridge.SplitBySep(reflang.Parser{}, external.EntryExpr, group, ',')

	assert.Empty(t, items)
	assert.Empty(t, residue.Tokens)
}
