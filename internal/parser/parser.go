// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser turns daria tokens into top-level pattern expressions.
//
// Grammar:
//
//	program    := statement*
//	statement  := definition | invocation | value
//	definition := name param* '=' invocation ('\n' | EOF)
//	invocation := name arg*                 ('\n' | EOF)
//	arg        := name | value | '(' invocation ')'
package parser

import (
	"errors"
	"fmt"

	"nickandperla.net/daria/internal/expr"
	"nickandperla.net/daria/internal/scanner"
	"nickandperla.net/daria/internal/token"
)

var (
	// ErrUnexpectedToken is returned when a token does not fit the grammar.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrNestedParameter is returned when a definition parameter is a call
	// with its own arguments.
	ErrNestedParameter = errors.New("unexpected invocation in definition parameters")
)

// Error is a parse error. There is no recovery; the first one aborts the
// whole parse.
type Error struct {
	Line  int
	Token token.Token
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d: %v %s", e.Line, e.Err, e.Token)
}

func (e *Error) Unwrap() error { return e.Err }

// Parser is a recursive-descent parser over a token slice.
type Parser struct {
	tokens  []token.Token
	current int
	lines   []int
}

// New creates a Parser. A trailing EOF is added if the tokens lack one.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Kind: token.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// ParseString lexes and parses src.
func ParseString(src string) ([]expr.Pattern, error) {
	toks, err := scanner.Lex(src)
	if err != nil {
		return nil, err
	}
	return New(toks).Parse()
}

// Parse returns the top-level statements in source order.
func (p *Parser) Parse() ([]expr.Pattern, error) {
	var patterns []expr.Pattern
	p.lines = p.lines[:0]
	for !p.isAtEnd() {
		line := p.peek().Line
		pattern, err := p.statement()
		if err != nil {
			return nil, err
		}
		if pattern != nil {
			patterns = append(patterns, pattern)
			p.lines = append(p.lines, line)
		}
	}
	return patterns, nil
}

// Lines returns the starting line of each statement returned by the last
// call to Parse.
func (p *Parser) Lines() []int {
	return p.lines
}

// statement parses a definition, an invocation or a bare value. A blank
// line yields nil.
func (p *Parser) statement() (expr.Pattern, error) {
	tok := p.advance()
	switch tok.Kind {
	case token.LINEBREAK:
		return nil, nil
	case token.VALUE:
		return expr.Value{Name: tok.Text}, nil
	case token.IDENT:
	default:
		return nil, unexpected(tok)
	}
	name := tok.Text

	args, err := p.commonArguments()
	if err != nil {
		return nil, err
	}

	switch next := p.peek(); next.Kind {
	case token.LINEBREAK, token.EOF:
		p.skipLineBreak()
		return expr.NewInvocation(name, args...), nil

	case token.EQUALS:
		p.advance()
		for _, a := range args {
			if inv, ok := a.(expr.Invocation); ok && len(inv.Args) > 0 {
				return nil, &Error{Line: next.Line, Token: next, Err: ErrNestedParameter}
			}
		}

		body, err := p.invocation(false)
		if err != nil {
			return nil, err
		}
		if body.FullName() == "" {
			return nil, unexpected(next)
		}

		end := p.peek()
		if end.Kind != token.LINEBREAK && end.Kind != token.EOF {
			return nil, unexpected(end)
		}
		p.skipLineBreak()

		if len(args) == 0 {
			args = nil
		}
		return expr.Definition{Name: name, Params: args, Body: body}, nil

	default:
		return nil, unexpected(next)
	}
}

// commonArguments consumes the arguments following a statement's leading
// name, up to a line break, EOF or '='.
func (p *Parser) commonArguments() ([]expr.Pattern, error) {
	var args []expr.Pattern
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.LINEBREAK, token.EOF, token.EQUALS:
			return args, nil
		case token.LPAREN:
			arg, err := p.invocation(false)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		case token.IDENT:
			p.advance()
			args = append(args, expr.Var(tok.Text))
		case token.VALUE:
			p.advance()
			args = append(args, expr.Value{Name: tok.Text})
		default:
			return nil, unexpected(tok)
		}
	}
}

// invocation parses a parenthesized group, a call or a value. In argument
// position a bare name does not take arguments of its own.
func (p *Parser) invocation(isArgument bool) (expr.Pattern, error) {
	if p.peek().Kind == token.LPAREN {
		p.advance()
		inner, err := p.invocation(false)
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Kind != token.RPAREN {
			return nil, unexpected(closing)
		}
		p.advance()
		return inner, nil
	}

	tok := p.advance()
	switch tok.Kind {
	case token.IDENT:
		if isArgument {
			return expr.Var(tok.Text), nil
		}
		args, err := p.invocationArguments()
		if err != nil {
			return nil, err
		}
		return expr.NewInvocation(tok.Text, args...), nil
	case token.VALUE:
		return expr.Value{Name: tok.Text}, nil
	}
	return nil, unexpected(tok)
}

func (p *Parser) invocationArguments() ([]expr.Pattern, error) {
	var args []expr.Pattern
	for {
		switch p.peek().Kind {
		case token.LINEBREAK, token.EOF, token.RPAREN:
			return args, nil
		}
		arg, err := p.invocation(true)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (p *Parser) skipLineBreak() {
	if p.peek().Kind == token.LINEBREAK {
		p.advance()
	}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// advance consumes the current token. EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.current]
	if tok.Kind != token.EOF {
		p.current++
	}
	return tok
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func unexpected(tok token.Token) error {
	return &Error{Line: tok.Line, Token: tok, Err: ErrUnexpectedToken}
}
