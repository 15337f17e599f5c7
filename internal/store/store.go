// Package store keeps the session history of the daria REPL.
//
// Only the statements typed and what they printed are recorded. Clause
// definitions live in the evaluator's Scope and are never written here.
package store

// Entry is one evaluated statement.
type Entry struct {
	ID     int64
	Input  string // Statement source as typed
	Output string // Rendered result, empty if none
	Err    string // Error text, empty on success
	Ts     string
}

// Store is the interface for session history.
type Store interface {
	// Append records an entry. An entry identical to the most recent one
	// (same input, output and error) is not recorded again.
	Append(e Entry) error
	// Recent returns up to limit of the newest entries, oldest first.
	// A limit <= 0 returns everything.
	Recent(limit int) ([]Entry, error)
	// Close releases resources.
	Close() error
}

func sameEntry(a, b Entry) bool {
	return a.Input == b.Input && a.Output == b.Output && a.Err == b.Err
}
