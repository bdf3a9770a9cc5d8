package volt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when a request without a Kind reaches
	// the commit step, or when a nil deferred unit is dispatched.
	ErrInvalidRequest = errors.New("action kind is required")

	// ErrDispatchInProgress is returned when a dispatch overlaps another:
	// a re-entrant dispatch from inside a reducer or observer, or a
	// concurrent dispatch from another goroutine. The store never retries
	// internally; use WithRetry or WithBackoff if the caller wants that.
	ErrDispatchInProgress = errors.New("dispatch already in progress")

	// ErrEmptyReducerMap is returned by Combine for an empty reducer map.
	// An empty composite cannot supply a meaningful default state.
	ErrEmptyReducerMap = errors.New("reducer map must not be empty")
)

// TransitionError reports a reducer failure. Reducers signal failure by
// panicking (their signature has no error return); the commit
// step recovers the panic, leaves the prior state current, skips observer
// notification, and surfaces this error to the dispatch caller.
type TransitionError struct {
	// Kind is the action kind that triggered the failing transition.
	Kind string

	// Recovered is the recovered panic value.
	Recovered any
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("reducer failed for kind %q: %v", e.Kind, e.Recovered)
}
