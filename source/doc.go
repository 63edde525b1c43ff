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

package source

import (
	"strconv"
	"strings"

	"github.com/dirbaio/syntaxbridge/token"
	"github.com/dirbaio/syntaxbridge/tt"
)

// DesugarDocComment turns a single doc-comment token into the attribute
// token tree the converter splices in its place, per spec.md §4.3's doc
// comment desugaring rule. It reports ok == false for a comment that is
// not a doc comment (a plain `//` or `/* */`), in which case the caller
// should drop the token instead.
//
// The returned trees carry [token.Nil] ids — they are pure scaffolding,
// manufactured out of thin air, as spec.md §4.3 requires — except the
// literal, which the caller must assign an id to itself (the same id the
// original comment range would have gotten), so that diagnostics
// attributed to the fabricated attribute still point at the comment.
func DesugarDocComment(text string) (trees []tt.TokenTree, ok bool) {
	prefix, inner, ok := classifyDocComment(text)
	if !ok {
		return nil, false
	}

	body := text[len(prefix):]
	if strings.HasPrefix(prefix, "/*") {
		body = strings.TrimSuffix(body, "*/")
	}
	quoted := strconv.Quote(body)

	bracket := &tt.Subtree{
		Delimiter: tt.Delimiter{Kind: tt.Bracket},
		Tokens: []tt.TokenTree{
			tt.Ident{Text: "doc"},
			tt.Punct{Char: '=', Spacing: tt.Alone},
			tt.Literal{Text: quoted},
		},
	}

	out := []tt.TokenTree{tt.Punct{Char: '#', Spacing: tt.Alone}}
	if inner {
		out = append(out, tt.Punct{Char: '!', Spacing: tt.Alone})
	}
	out = append(out, bracket)
	return out, true
}

// classifyDocComment reports the doc-comment prefix of text and whether it
// is an inner (`//!`, `/*!`) or outer (`///`, `/**`) doc comment.
//
// `////...` (four or more slashes) and `/**/`/`/***...` are deliberately
// excluded: rustdoc treats these as ordinary comments, not doc comments.
func classifyDocComment(text string) (prefix string, inner, ok bool) {
	switch {
	case strings.HasPrefix(text, "////"):
		return "", false, false
	case strings.HasPrefix(text, "///"):
		return "///", false, true
	case strings.HasPrefix(text, "//!"):
		return "//!", true, true
	case strings.HasPrefix(text, "/*!"):
		return "/*!", true, true
	case strings.HasPrefix(text, "/**") && text != "/**/" && !strings.HasPrefix(text, "/***"):
		return "/**", false, true
	default:
		return "", false, false
	}
}

// StampDocLiteral assigns id to the literal leaf inside trees, as produced
// by [DesugarDocComment]. trees must be the unmodified slice DesugarDocComment
// returned.
func StampDocLiteral(trees []tt.TokenTree, id token.ID) {
	bracket := trees[len(trees)-1].(*tt.Subtree)
	lit := bracket.Tokens[2].(tt.Literal)
	lit.ID = id
	bracket.Tokens[2] = lit
}
