// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines daria token kinds and reserved characters.
package token

import "strconv"

// Kind represents a daria token kind.
type Kind int

const (
	EOF Kind = iota
	IDENT
	VALUE

	LPAREN    // (
	RPAREN    // )
	EQUALS    // =
	LINEBREAK // \n
)

// Reserved runes.
const (
	RuneLParen  = '('
	RuneRParen  = ')'
	RuneEquals  = '='
	RuneNewline = '\n'
	RuneComment = ';'
	RuneValue   = ':'
	RuneSpace   = ' '
	RuneTab     = '\t'
	RuneReturn  = '\r'
)

// IsForbidden returns true if the rune terminates an identifier or a value.
func IsForbidden(r rune) bool {
	switch r {
	case RuneLParen, RuneRParen, RuneEquals, RuneComment, RuneValue,
		RuneSpace, RuneTab, RuneReturn, RuneNewline:
		return true
	}
	return false
}

// IsBlank returns true for the whitespace the lexer discards.
func IsBlank(r rune) bool {
	return r == RuneSpace || r == RuneTab || r == RuneReturn
}

// KindFromRune returns the token kind for a single-character token rune.
// The second result is false if r does not form a token on its own.
func KindFromRune(r rune) (Kind, bool) {
	switch r {
	case RuneLParen:
		return LPAREN, true
	case RuneRParen:
		return RPAREN, true
	case RuneEquals:
		return EQUALS, true
	case RuneNewline:
		return LINEBREAK, true
	}
	return EOF, false
}

// String returns the string representation of a token kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case VALUE:
		return "VALUE"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case EQUALS:
		return "="
	case LINEBREAK:
		return "LINEBREAK"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a scanned token. Text is only set for IDENT and VALUE; for a
// VALUE it is the name without the leading colon.
type Token struct {
	Kind Kind
	Text string
	Line int // Line number where this token started (1-based)
}

// Ident returns an identifier token.
func Ident(name string) Token { return Token{Kind: IDENT, Text: name} }

// Value returns a literal value token.
func Value(name string) Token { return Token{Kind: VALUE, Text: name} }

// Of returns a token of a kind that carries no text.
func Of(k Kind) Token { return Token{Kind: k} }

// Same reports whether two tokens have the same kind and text, ignoring
// their position.
func (t Token) Same(o Token) bool {
	return t.Kind == o.Kind && t.Text == o.Text
}

// String returns a human readable form of the token.
func (t Token) String() string {
	switch t.Kind {
	case IDENT:
		return strconv.Quote(t.Text)
	case VALUE:
		return strconv.Quote(string(RuneValue) + t.Text)
	}
	return t.Kind.String()
}
