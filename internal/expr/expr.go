// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines daria pattern expressions.
package expr

import (
	"strings"

	"nickandperla.net/daria/internal/token"
)

// Pattern is the interface all pattern expressions implement. The set of
// implementations is closed: Definition, Invocation and Value.
type Pattern interface {
	// String returns the source representation of the pattern.
	String() string
	// FullName returns the name the pattern is bound under.
	FullName() string

	pattern()
}

// Definition is a clause declaration: name params... = body.
type Definition struct {
	Name   string
	Params []Pattern
	Body   Pattern
}

func (Definition) pattern()           {}
func (d Definition) FullName() string { return d.Name }

func (d Definition) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	for _, p := range d.Params {
		sb.WriteByte(' ')
		writeArg(&sb, p)
	}
	sb.WriteString(" = ")
	if d.Body != nil {
		sb.WriteString(d.Body.String())
	}
	return sb.String()
}

// Invocation is an unresolved call. A zero-argument Invocation is also how
// variables and wildcards are represented.
type Invocation struct {
	Name string
	Args []Pattern
}

func (Invocation) pattern()           {}
func (i Invocation) FullName() string { return i.Name }

func (i Invocation) String() string {
	var sb strings.Builder
	sb.WriteString(i.Name)
	for _, a := range i.Args {
		sb.WriteByte(' ')
		writeArg(&sb, a)
	}
	return sb.String()
}

// Value is a fully reduced literal atom. Values compare by name.
type Value struct {
	Name string
}

func (Value) pattern()           {}
func (v Value) FullName() string { return v.Name }
func (v Value) String() string   { return string(token.RuneValue) + v.Name }

// writeArg renders p in argument position, parenthesizing calls that carry
// their own arguments.
func writeArg(sb *strings.Builder, p Pattern) {
	switch p := p.(type) {
	case Invocation:
		if len(p.Args) > 0 {
			sb.WriteByte('(')
			sb.WriteString(p.String())
			sb.WriteByte(')')
			return
		}
		sb.WriteString(p.Name)
	case Definition:
		sb.WriteByte('(')
		sb.WriteString(p.String())
		sb.WriteByte(')')
	case Value:
		sb.WriteString(p.String())
	}
}

// NewInvocation creates an Invocation, normalizing an empty argument list to
// nil.
func NewInvocation(name string, args ...Pattern) Invocation {
	if len(args) == 0 {
		args = nil
	}
	return Invocation{Name: name, Args: args}
}

// Var creates a zero-argument Invocation standing for a variable.
func Var(name string) Invocation {
	return Invocation{Name: name}
}

// Values creates a Value for every name.
func Values(names ...string) []Pattern {
	out := make([]Pattern, len(names))
	for i, n := range names {
		out[i] = Value{Name: n}
	}
	return out
}

// Equal reports whether two patterns are structurally equal. Nil and empty
// argument lists are treated alike.
func Equal(a, b Pattern) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case Value:
		bv, ok := b.(Value)
		return ok && a.Name == bv.Name
	case Invocation:
		bi, ok := b.(Invocation)
		return ok && a.Name == bi.Name && EqualAll(a.Args, bi.Args)
	case Definition:
		bd, ok := b.(Definition)
		return ok && a.Name == bd.Name && EqualAll(a.Params, bd.Params) && Equal(a.Body, bd.Body)
	}
	return false
}

// EqualAll compares two pattern lists element-wise with Equal.
func EqualAll(a, b []Pattern) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
