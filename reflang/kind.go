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

// Package reflang is a minimal concrete language used only by this module's
// own tests: a [Lexer], [Parser] ([external.EventParser]), tree [Builder]
// ([external.CSTBuilder]), and [Walker] ([external.Walker]), all built
// against the same [external] interfaces any real front-end would
// implement. It exists purely to exercise the bridge end to end; nothing
// in the bridge depends on it (spec.md §6, §8).
package reflang

import (
	"fmt"

	"github.com/dirbaio/syntaxbridge/external"
)

// Token and node kinds, as the opaque [external.SyntaxKind] values reflang
// assigns meaning to.
const (
	KindEOF external.SyntaxKind = iota
	KindWhitespace
	KindLineComment
	KindBlockComment
	KindIdent
	KindUnderscore
	KindIntLiteral
	KindStringLiteral
	KindLifetimeIdent
	KindTrue
	KindFalse
	KindLet
	KindFn

	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket

	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindEq
	KindColon
	KindColonColon
	KindArrow    // ->
	KindFatArrow // =>
	KindDotDotEq // ..=
	KindDot
	KindComma
	KindSemi
	KindUnknown

	// Synthetic kind used only for a whitespace token reinserted by the
	// TT→CST sink (spec.md §4.5 step 3); the lexer never produces it.
	KindReinsertedSpace

	// Node kinds.
	KindNodeSourceFile
	KindNodeIdentExpr
	KindNodePathExpr
	KindNodeLiteralExpr
	KindNodeParenExpr
	KindNodeUnaryExpr
	KindNodeBinaryExpr
	KindNodeCallExpr
	KindNodeArgList
	KindNodeError
)

var keywords = map[string]external.SyntaxKind{
	"true":  KindTrue,
	"false": KindFalse,
	"let":   KindLet,
	"fn":    KindFn,
}

// kindName returns a readable name for k, for test failure messages.
func kindName(k external.SyntaxKind) string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindWhitespace:
		return "WHITESPACE"
	case KindLineComment:
		return "LINE_COMMENT"
	case KindBlockComment:
		return "BLOCK_COMMENT"
	case KindIdent:
		return "IDENT"
	case KindUnderscore:
		return "UNDERSCORE"
	case KindIntLiteral:
		return "INT"
	case KindStringLiteral:
		return "STRING"
	case KindLifetimeIdent:
		return "LIFETIME_IDENT"
	case KindTrue:
		return "TRUE_KW"
	case KindFalse:
		return "FALSE_KW"
	case KindLet:
		return "LET_KW"
	case KindFn:
		return "FN_KW"
	case KindLParen:
		return "L_PAREN"
	case KindRParen:
		return "R_PAREN"
	case KindLBrace:
		return "L_BRACE"
	case KindRBrace:
		return "R_BRACE"
	case KindLBracket:
		return "L_BRACKET"
	case KindRBracket:
		return "R_BRACKET"
	case KindPlus:
		return "PLUS"
	case KindMinus:
		return "MINUS"
	case KindStar:
		return "STAR"
	case KindSlash:
		return "SLASH"
	case KindEq:
		return "EQ"
	case KindColon:
		return "COLON"
	case KindColonColon:
		return "COLONCOLON"
	case KindArrow:
		return "ARROW"
	case KindFatArrow:
		return "FAT_ARROW"
	case KindDotDotEq:
		return "DOTDOTEQ"
	case KindDot:
		return "DOT"
	case KindComma:
		return "COMMA"
	case KindSemi:
		return "SEMI"
	case KindReinsertedSpace:
		return "INSERTED_SPACE"
	case KindNodeSourceFile:
		return "SOURCE_FILE"
	case KindNodeIdentExpr:
		return "IDENT_EXPR"
	case KindNodePathExpr:
		return "PATH_EXPR"
	case KindNodeLiteralExpr:
		return "LITERAL_EXPR"
	case KindNodeParenExpr:
		return "PAREN_EXPR"
	case KindNodeUnaryExpr:
		return "UNARY_EXPR"
	case KindNodeBinaryExpr:
		return "BINARY_EXPR"
	case KindNodeCallExpr:
		return "CALL_EXPR"
	case KindNodeArgList:
		return "ARG_LIST"
	case KindNodeError:
		return "ERROR"
	default:
		return fmt.Sprintf("reflang.Kind(%d)", int(k))
	}
}

func classOf(k external.SyntaxKind) external.Class {
	switch k {
	case KindWhitespace, KindReinsertedSpace:
		return external.ClassWhitespace
	case KindLineComment, KindBlockComment:
		return external.ClassComment
	case KindIdent:
		return external.ClassIdent
	case KindUnderscore:
		return external.ClassUnderscore
	case KindIntLiteral:
		return external.ClassIntLiteral
	case KindStringLiteral:
		return external.ClassStringLiteral
	case KindLifetimeIdent:
		return external.ClassLifetimeIdent
	case KindTrue, KindFalse, KindLet, KindFn:
		return external.ClassKeyword
	case KindEOF:
		return external.ClassEOF
	case KindLParen, KindRParen, KindLBrace, KindRBrace, KindLBracket, KindRBracket,
		KindPlus, KindMinus, KindStar, KindSlash, KindEq, KindColon, KindColonColon,
		KindArrow, KindFatArrow, KindDotDotEq, KindDot, KindComma, KindSemi:
		return external.ClassPunct
	default:
		return external.ClassOther
	}
}
