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

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbaio/syntaxbridge/reflang"
	"github.com/dirbaio/syntaxbridge/source"
	"github.com/dirbaio/syntaxbridge/token"
)

func TestRawSourceBumpsInOrderAndExhausts(t *testing.T) {
	lexed := reflang.Lexer{}.Lex("a+b")
	alloc := token.NewAllocator(0)
	src := source.NewRawSource(lexed, alloc, 0)

	var texts []string
	for {
		tok, ok := src.Bump()
		if !ok {
			break
		}
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"a", "+", "b"}, texts)

	_, ok := src.Bump()
	assert.False(t, ok)
}

func TestRawSourcePeekIsIdempotentUntilBump(t *testing.T) {
	lexed := reflang.Lexer{}.Lex("a+")
	alloc := token.NewAllocator(0)
	src := source.NewRawSource(lexed, alloc, 0)

	p1, ok := src.Peek()
	require.True(t, ok)
	p2, ok := src.Peek()
	require.True(t, ok)
	assert.Equal(t, p1, p2)

	b, ok := src.Bump()
	require.True(t, ok)
	assert.Equal(t, p1, b)
}

func TestRawSourceShiftsRangesByBase(t *testing.T) {
	lexed := reflang.Lexer{}.Lex("a")
	alloc := token.NewAllocator(0)
	src := source.NewRawSource(lexed, alloc, 100)

	tok, ok := src.Bump()
	require.True(t, ok)
	assert.Equal(t, token.Range{Start: 100, End: 101}, tok.Range)
}

func TestRawSourceConvertDocCommentDesugarsOuterDoc(t *testing.T) {
	lexed := reflang.Lexer{}.Lex("/// hi")
	alloc := token.NewAllocator(0)
	src := source.NewRawSource(lexed, alloc, 0)

	tok, ok := src.Bump()
	require.True(t, ok)

	trees, ok := src.ConvertDocComment(tok)
	require.True(t, ok)
	assert.Len(t, trees, 2)
}

func TestRawSourceConvertDocCommentRejectsPlainComment(t *testing.T) {
	lexed := reflang.Lexer{}.Lex("// plain")
	alloc := token.NewAllocator(0)
	src := source.NewRawSource(lexed, alloc, 0)

	tok, ok := src.Bump()
	require.True(t, ok)

	_, ok = src.ConvertDocComment(tok)
	assert.False(t, ok)
}
