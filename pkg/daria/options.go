package daria

import (
	"github.com/spf13/afero"

	"nickandperla.net/daria/internal/eval"
	"nickandperla.net/daria/internal/expr"
	"nickandperla.net/daria/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithMaxDepth sets the evaluation nesting limit. Values <= 0 select
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(r *Runtime) {
		r.maxDepth = n
	}
}

// WithLogf sets the logging function used for debug traces.
func WithLogf(logf Logf) Option {
	return func(r *Runtime) {
		r.logf = logf
	}
}

// WithDebug enables tracing of definitions and clause dispatch.
func WithDebug(debug bool) Option {
	return func(r *Runtime) {
		r.debug = debug
	}
}

// WithFs sets the filesystem used by EvalFile and WithLoad.
func WithFs(fs afero.Fs) Option {
	return func(r *Runtime) {
		r.fs = fs
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, DefaultPrelude is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoPrelude disables loading the prelude.
func WithNoPrelude() Option {
	return func(r *Runtime) {
		r.noPrelude = true
	}
}

// WithKeepGoing makes a failing statement abort only itself. Every failure
// is collected and returned together once the input is done.
func WithKeepGoing(keepGoing bool) Option {
	return func(r *Runtime) {
		r.keepGoing = keepGoing
	}
}

// WithHistory sets the session history store. The runtime closes it.
func WithHistory(s Store) Option {
	return func(r *Runtime) {
		r.history = s
	}
}

// WithLoad evaluates the given files, after the prelude, when the runtime is
// created.
func WithLoad(paths ...string) Option {
	return func(r *Runtime) {
		r.load = append(r.load, paths...)
	}
}

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = eval.DefaultMaxDepth

// Logf is the logging function used for debug traces.
type Logf = eval.Logf

// Pattern is a parsed daria expression.
type Pattern = expr.Pattern

// Value is a fully reduced literal atom.
type Value = expr.Value

// Clause is one registered (params, body) pair of a function.
type Clause = eval.Clause

// Store is the session history interface.
type Store = store.Store

// Entry is one session history record.
type Entry = store.Entry

// NewMemoryHistory returns an in-memory history store.
func NewMemoryHistory() Store {
	return store.NewMemory()
}

// NewSQLiteHistory opens or creates a SQLite history store at path.
func NewSQLiteHistory(path string) (Store, error) {
	s, err := store.NewSQLite(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
