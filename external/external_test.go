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

package external_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dirbaio/syntaxbridge/external"
)

func TestClassIsLiteral(t *testing.T) {
	literals := []external.Class{
		external.ClassIntLiteral, external.ClassFloatLiteral,
		external.ClassStringLiteral, external.ClassCharLiteral,
		external.ClassByteLiteral, external.ClassByteStringLiteral,
	}
	for _, c := range literals {
		assert.True(t, c.IsLiteral(), "%v should be a literal class", c)
	}
	assert.False(t, external.ClassIdent.IsLiteral())
	assert.False(t, external.ClassPunct.IsLiteral())
}

func TestClassIsTrivia(t *testing.T) {
	assert.True(t, external.ClassWhitespace.IsTrivia())
	assert.True(t, external.ClassComment.IsTrivia())
	assert.False(t, external.ClassIdent.IsTrivia())
	assert.False(t, external.ClassPunct.IsTrivia())
}

func TestEntryPointString(t *testing.T) {
	assert.Equal(t, "expr", external.EntryExpr.String())
	assert.Equal(t, "item", external.EntryItem.String())
}
