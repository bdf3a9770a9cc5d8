package volt

import "context"

// initKind is the reserved action kind dispatched once at construction to
// force the reducer to emit its default state. It is guaranteed never to
// match an application-defined kind.
const initKind = "@@volt/INIT"

// Action describes an intended state transition. It carries a discriminant
// Kind and an optional Payload, and is fully serializable so actions can
// be logged, decoded from external sources, or replayed in tests.
//
// An Action with an empty Kind is rejected by the commit step with
// ErrInvalidRequest unless an interceptor rewrites it first.
type Action struct {
	Kind    string `json:"kind" yaml:"kind"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Deferred is a unit of work that issues its own follow-up dispatches
// instead of producing a state directly. It runs outside the commit
// critical section, so dispatches it makes are ordinary top-level
// dispatches: each re-enters the pipeline and is subject to the same
// single-flight exclusion as any external caller.
//
// The returned value becomes the result of the DispatchDeferred call.
type Deferred[S any] func(ctx context.Context, tk Toolkit[S]) (any, error)

// Toolkit is the capability object handed to a Deferred unit of work.
// It bundles exactly the two store operations a deferred procedure may
// use; holding a Toolkit does not grant Subscribe or configuration access.
type Toolkit[S any] struct {
	// Dispatch issues a follow-up action through the full pipeline.
	Dispatch func(ctx context.Context, action Action) (S, error)

	// GetState reads the most recently committed state.
	GetState func() S
}
