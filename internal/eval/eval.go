package eval

import (
	"fmt"
	"strings"

	"nickandperla.net/daria/internal/expr"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 10000

// Logf is the logging function used for debug traces.
type Logf func(format string, v ...interface{})

// Bindings maps the parameter names of the clause being reduced to their
// argument values. A fresh map is built for every dispatch.
type Bindings map[string]expr.Value

// Lookup returns the value bound to name. It is safe on a nil map.
func (b Bindings) Lookup(name string) (expr.Value, bool) {
	v, ok := b[name]
	return v, ok
}

// bind zips parameter names with argument values over the shorter list.
// When a name repeats, the later position wins.
func bind(params []expr.Pattern, args []expr.Value) Bindings {
	n := len(params)
	if len(args) < n {
		n = len(args)
	}
	b := make(Bindings, n)
	for i := 0; i < n; i++ {
		b[params[i].FullName()] = args[i]
	}
	return b
}

// Evaluator reduces pattern expressions against a Scope.
type Evaluator struct {
	scope    *Scope
	maxDepth int
	debug    bool
	logf     Logf
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithScope sets the clause store. It is shared, not copied.
func WithScope(s *Scope) Option {
	return func(e *Evaluator) { e.scope = s }
}

// WithMaxDepth sets the nesting limit. Values <= 0 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// WithDebug enables dispatch tracing through the Logf function.
func WithDebug(debug bool) Option {
	return func(e *Evaluator) { e.debug = debug }
}

// WithLogf sets the logging function.
func WithLogf(logf Logf) Option {
	return func(e *Evaluator) { e.logf = logf }
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.scope == nil {
		e.scope = NewScope()
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	if e.logf == nil {
		e.logf = func(format string, v ...interface{}) {}
	}
	return e
}

// Scope returns the evaluator's clause store.
func (e *Evaluator) Scope() *Scope {
	return e.scope
}

// Eval evaluates one top-level statement. Definitions are registered and
// produce no value, which is reported by a false second result.
func (e *Evaluator) Eval(p expr.Pattern) (expr.Value, bool, error) {
	switch p := p.(type) {
	case expr.Definition:
		e.define(p)
		return expr.Value{}, false, nil
	case expr.Invocation, expr.Value:
		v, err := e.reduce(p, nil, 0)
		if err != nil {
			return expr.Value{}, false, err
		}
		return v, true, nil
	}
	return expr.Value{}, false, &RuntimeError{Err: fmt.Errorf("unknown pattern %T", p)}
}

// EvalAll evaluates statements in order and stops at the first error.
func (e *Evaluator) EvalAll(patterns []expr.Pattern) error {
	for _, p := range patterns {
		if _, _, err := e.Eval(p); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) define(d expr.Definition) {
	e.scope.Define(d.Name, Clause{Params: d.Params, Body: d.Body})
	if e.debug {
		e.logf("define %s", d)
	}
}

// reduce evaluates p in argument or body position.
func (e *Evaluator) reduce(p expr.Pattern, locals Bindings, depth int) (expr.Value, error) {
	if depth > e.maxDepth {
		return expr.Value{}, &RuntimeError{Name: p.FullName(), Err: ErrDepthExceeded}
	}
	switch p := p.(type) {
	case expr.Value:
		return p, nil
	case expr.Invocation:
		return e.invoke(p, locals, depth)
	case expr.Definition:
		return expr.Value{}, &RuntimeError{Name: p.Name, Err: ErrDefinitionNotAllowed}
	}
	return expr.Value{}, &RuntimeError{Err: fmt.Errorf("unknown pattern %T", p)}
}

// invoke reduces the arguments left to right, then dispatches to the best
// matching clause. The clause body sees only the bindings of this call.
func (e *Evaluator) invoke(inv expr.Invocation, locals Bindings, depth int) (expr.Value, error) {
	args := make([]expr.Value, len(inv.Args))
	for i, a := range inv.Args {
		v, err := e.reduce(a, locals, depth+1)
		if err != nil {
			return expr.Value{}, err
		}
		args[i] = v
	}

	clause, index, ok := e.scope.Lookup(inv.Name, args)
	if !ok {
		v := resolveUnbound(inv.Name, locals)
		if e.debug && len(args) > 0 {
			e.logf("dispatch %s -> no clause, %s", call(inv.Name, args), v)
		}
		return v, nil
	}
	if e.debug {
		e.logf("dispatch %s -> clause #%d", call(inv.Name, args), index+1)
	}
	return e.reduce(clause.Body, bind(clause.Params, args), depth+1)
}

// resolveUnbound resolves a name that no clause matched. The local bindings
// of the current call are tried first; failing that, the name stands for
// itself as a literal value.
func resolveUnbound(name string, locals Bindings) expr.Value {
	if v, ok := locals.Lookup(name); ok {
		return v
	}
	return expr.Value{Name: name}
}

func call(name string, args []expr.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
