package volt

// Reducer computes the next state from the current state and an action.
// Reducers must be pure: no side effects, no in-place mutation, and the
// same state returned for unrecognized actions. The zero value of S is
// the "absent" state a reducer receives exactly once at construction.
type Reducer[S any] func(state S, action Action) S

// Request carries a dispatch through the processing pipeline. It holds
// either a plain Action or a Deferred unit of work, never both; only
// plain actions reach the commit step.
//
// Interceptors may rewrite Action before it reaches the commit step.
// The commit step fills Previous, State and Result and sets Committed.
type Request[S any] struct {
	// Action is the plain change request. Interceptors see and may
	// transform it; the reducer receives whatever reaches the commit step.
	Action Action

	// Deferred, when non-nil, marks this request as a deferred unit of
	// work. It is intercepted ahead of all user interceptors and never
	// reaches the commit step.
	Deferred Deferred[S]

	// Previous is the state before the transition. Set by the commit step.
	Previous S

	// State is the state after the transition. Set by the commit step.
	State S

	// Result is the dispatch result: the new state for committed actions,
	// or the deferred unit's own return value.
	Result any

	// Committed reports whether the commit step replaced the state.
	// False when the request was short-circuited by an interceptor or
	// handled as a deferred unit.
	Committed bool
}
