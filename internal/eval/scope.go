// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the daria evaluator.
package eval

import (
	"sort"
	"sync"

	"nickandperla.net/daria/internal/expr"
)

// Clause is one registered (params, body) pair of a function.
type Clause struct {
	Params []expr.Pattern
	Body   expr.Pattern
}

// score compares the clause parameters against reduced call arguments,
// position by position up to the shorter list. A literal parameter that
// differs from its argument is a miss; a literal that matches adds one to
// the score. Variables match anything and score nothing.
func (c Clause) score(args []expr.Value) (score int, miss bool) {
	n := len(c.Params)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		lit, ok := c.Params[i].(expr.Value)
		if !ok {
			continue
		}
		if lit != args[i] {
			return 0, true
		}
		score++
	}
	return score, false
}

// Scope holds the clauses of every function, in registration order.
// Clauses are only ever appended.
type Scope struct {
	mu      sync.RWMutex
	clauses map[string][]Clause
}

// NewScope creates a new empty scope.
func NewScope() *Scope {
	return &Scope{
		clauses: make(map[string][]Clause),
	}
}

// Define appends a clause under name.
func (s *Scope) Define(name string, c Clause) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clauses[name] = append(s.clauses[name], c)
}

// Lookup selects the clause of name that best matches args.
//
// Clauses that miss on any literal position are skipped. Among the rest the
// highest score wins and, on equal scores, the earliest registered clause
// wins. A clause whose score equals len(args) is taken at once. The second
// result is false when no clause is eligible.
func (s *Scope) Lookup(name string, args []expr.Value) (Clause, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best, bestScore := -1, 0
	clauses := s.clauses[name]
	for i, c := range clauses {
		score, miss := c.score(args)
		if miss {
			continue
		}
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
		if score == len(args) {
			break
		}
	}
	if best == -1 {
		return Clause{}, -1, false
	}
	return clauses[best], best, true
}

// Has returns true if at least one clause is registered under name.
func (s *Scope) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clauses[name]) > 0
}

// Clauses returns a copy of the clauses registered under name.
func (s *Scope) Clauses(name string) []Clause {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Clause(nil), s.clauses[name]...)
}

// Names returns the names of all defined functions, sorted.
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.clauses))
	for name := range s.clauses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
