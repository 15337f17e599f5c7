// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming lexer for daria source text.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"nickandperla.net/daria/internal/token"
)

// ErrEmptyValue is returned when a ':' is not followed by a value name.
var ErrEmptyValue = errors.New("empty value name")

// Error is a lexical error. Any lexical error aborts the whole pass.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Scanner tokenizes daria input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	line   int // Current line number (1-based)
	done   bool
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Lex scans the whole source and returns its tokens, terminated by EOF.
func Lex(src string) ([]token.Token, error) {
	return NewFromString(src).All()
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// All scans the remaining input. The result always ends with exactly one
// EOF token.
func (s *Scanner) All() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next token from the input. Once EOF has been returned,
// every further call returns EOF again.
func (s *Scanner) Next() (token.Token, error) {
	if s.done {
		return token.Token{Kind: token.EOF, Line: s.line}, nil
	}

	for {
		r, err := s.read()
		if err == io.EOF {
			s.done = true
			return token.Token{Kind: token.EOF, Line: s.line}, nil
		}
		if err != nil {
			return token.Token{}, err
		}

		if kind, ok := token.KindFromRune(r); ok {
			tok := token.Token{Kind: kind, Line: s.line}
			if r == token.RuneNewline {
				s.line++
			}
			return tok, nil
		}

		switch {
		case r == token.RuneComment:
			if err := s.skipComment(); err != nil {
				return token.Token{}, err
			}
		case token.IsBlank(r):
			// discarded
		case r == token.RuneValue:
			return s.scanValue()
		default:
			s.reader.UnreadRune()
			name, err := s.scanName()
			if err != nil {
				return token.Token{}, err
			}
			return token.Token{Kind: token.IDENT, Text: name, Line: s.line}, nil
		}
	}
}

func (s *Scanner) read() (rune, error) {
	r, _, err := s.reader.ReadRune()
	return r, err
}

// scanValue scans the name following a ':'.
func (s *Scanner) scanValue() (token.Token, error) {
	line := s.line
	name, err := s.scanName()
	if err != nil {
		return token.Token{}, err
	}
	if name == "" {
		return token.Token{}, &Error{Line: line, Err: ErrEmptyValue}
	}
	return token.Token{Kind: token.VALUE, Text: name, Line: line}, nil
}

// scanName reads runes up to the next forbidden rune or EOF. The forbidden
// rune is left in the input.
func (s *Scanner) scanName() (string, error) {
	s.buf.Reset()
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if token.IsForbidden(r) {
			s.reader.UnreadRune()
			break
		}
		s.buf.WriteRune(r)
	}
	return s.buf.String(), nil
}

// skipComment discards everything up to, but not including, the next
// newline.
func (s *Scanner) skipComment() error {
	for {
		r, err := s.read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == token.RuneNewline {
			s.reader.UnreadRune()
			return nil
		}
	}
}
