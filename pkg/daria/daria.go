// Package daria provides the public API for the daria interpreter.
package daria

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"nickandperla.net/daria/internal/eval"
	"nickandperla.net/daria/internal/expr"
	"nickandperla.net/daria/internal/parser"
	"nickandperla.net/daria/internal/scanner"
	"nickandperla.net/daria/internal/store"
)

// Runtime is the daria interpreter runtime. It owns one scope of clauses for
// its whole lifetime; definitions from every evaluated input accumulate in
// it.
type Runtime struct {
	evaluator *eval.Evaluator
	history   store.Store
	fs        afero.Fs
	logf      Logf
	debug     bool
	maxDepth  int
	prelude   string
	noPrelude bool
	keepGoing bool
	load      []string
}

// New creates a new daria runtime with the given options. The prelude and
// any files given with WithLoad are evaluated before New returns.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		fs:      afero.NewOsFs(),
		prelude: DefaultPrelude,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.evaluator = eval.New(
		eval.WithMaxDepth(r.maxDepth),
		eval.WithDebug(r.debug),
		eval.WithLogf(r.logf),
	)

	if !r.noPrelude && r.prelude != "" {
		if _, err := r.Eval(r.prelude); err != nil {
			return nil, errors.Wrap(err, "prelude")
		}
	}

	for _, path := range r.load {
		if _, err := r.EvalFile(path); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Parse lexes and parses src without evaluating it.
func Parse(src string) ([]Pattern, error) {
	return parser.ParseString(src)
}

// Tree returns the indented debug tree of patterns.
func Tree(patterns []Pattern) string {
	return expr.Sprint(patterns...)
}

// Render returns the source form of a value, e.g. ":true".
func Render(v Value) string {
	return v.String()
}

// Eval evaluates src and returns the rendered values of its statements, one
// per line. Definitions produce no output.
func (r *Runtime) Eval(src string) (string, error) {
	values, err := r.EvalValues(src)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Render(v)
	}
	return strings.Join(out, "\n"), err
}

// EvalValues evaluates src statement by statement. A lexical or parse error
// rejects the whole input before anything runs. A runtime error aborts its
// statement and, unless keep-going is enabled, every statement after it; the
// values produced so far are returned either way.
func (r *Runtime) EvalValues(src string) ([]Value, error) {
	toks, err := scanner.Lex(src)
	if err != nil {
		return nil, errors.Wrap(err, "lex")
	}
	p := parser.New(toks)
	patterns, err := p.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	lines := p.Lines()

	var values []Value
	var result *multierror.Error
	for i, pattern := range patterns {
		v, ok, err := r.evaluator.Eval(pattern)
		if err != nil {
			err = errors.Wrapf(err, "statement %d (line %d)", i+1, lines[i])
			if !r.keepGoing {
				return values, err
			}
			result = multierror.Append(result, err)
			continue
		}
		if ok {
			values = append(values, v)
		}
	}
	return values, result.ErrorOrNil()
}

// EvalFile evaluates the file at path on the runtime's filesystem.
func (r *Runtime) EvalFile(path string) (string, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", errors.Wrapf(err, "can't read %s", path)
	}
	out, err := r.Eval(string(data))
	if err != nil {
		return out, errors.Wrap(err, path)
	}
	return out, nil
}

// Clauses returns the clauses registered under name, in registration order.
func (r *Runtime) Clauses(name string) []Clause {
	return r.evaluator.Scope().Clauses(name)
}

// Names returns the names of all defined functions, sorted.
func (r *Runtime) Names() []string {
	return r.evaluator.Scope().Names()
}

// Record appends an evaluated input and its outcome to the session history.
// It does nothing when no history store is configured.
func (r *Runtime) Record(input, output string, evalErr error) error {
	if r.history == nil {
		return nil
	}
	e := store.Entry{Input: input, Output: output}
	if evalErr != nil {
		e.Err = evalErr.Error()
	}
	return r.history.Append(e)
}

// History returns up to limit of the most recent history entries, oldest
// first. A limit <= 0 returns everything.
func (r *Runtime) History(limit int) ([]Entry, error) {
	if r.history == nil {
		return nil, nil
	}
	return r.history.Recent(limit)
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.history != nil {
		return r.history.Close()
	}
	return nil
}
