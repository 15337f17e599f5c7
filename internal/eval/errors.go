package eval

import (
	"errors"
	"fmt"
)

var (
	// ErrDefinitionNotAllowed is returned when a definition appears anywhere
	// but at the top level of a program.
	ErrDefinitionNotAllowed = errors.New("can't evaluate a definition here")

	// ErrDepthExceeded is returned when nested reductions go deeper than the
	// evaluator's limit, usually because of recursion with no base case.
	ErrDepthExceeded = errors.New("evaluation depth exceeded")
)

// RuntimeError is an evaluation failure. It aborts the enclosing top-level
// statement.
type RuntimeError struct {
	Name string // Function being reduced when the failure happened
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("runtime error: %v", e.Err)
	}
	return fmt.Sprintf("runtime error in %s: %v", e.Name, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }
