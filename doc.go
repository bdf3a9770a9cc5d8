/*
Package volt provides a minimal predictable state container.

The core type is Store, which holds a single current state value and
replaces it only through pure reducer functions, in response to discrete
serializable actions. Observers are notified after every committed
transition.

# Store

A Store processes each dispatched action through a pipeline before the
reducer runs:

	Dispatch → Interceptors → Commit (reducer) → Notify observers

The commit step is single-flight: only one dispatch may be in progress
per store, and a dispatch issued from inside a reducer or observer fails
fast with ErrDispatchInProgress instead of deadlocking or interleaving
half-applied transitions.

# Reducers

Reducers are pure functions of the shape func(state S, action Action) S.
A reducer must return its input state unchanged for actions it does not
recognize, and must never mutate state in place. The zero value of S is
the reducer's "absent" state; the Store establishes the initial state by
invoking the reducer once with the zero value and a reserved internal
action kind.

	func counter(state int, action volt.Action) int {
	    switch action.Kind {
	    case "INC":
	        return state + 1
	    default:
	        return state
	    }
	}

	store := volt.New(counter)
	store.GetState()                                  // 0
	store.Dispatch(ctx, volt.Action{Kind: "INC"})     // 1

# Composition

Combine merges a map of named reducers into one reducer over a state
tree keyed by the same names. Each sub-reducer only ever sees the slice
under its own key. Lift adapts a typed reducer (with an explicit default
for the absent case) into the composite map:

	root, err := volt.Combine(map[string]volt.Reducer[any]{
	    "cake":     volt.Lift(CakeState{NoOfCakes: 10}, cakeReducer),
	    "iceCream": volt.Lift(IceCreamState{NoOfIceCreams: 20}, iceCreamReducer),
	})

# Interceptors

Interceptors wrap the commit step with cross-cutting behavior. The first
interceptor passed to New is the outermost. Options cover resilience
(WithRetry, WithTimeout, WithCircuitBreaker), observation
(WithErrorHandler) and middleware sequences (WithMiddleware with the
Use* adapters). Deferred units of work dispatched via DispatchDeferred
are intercepted before any user interceptor and run outside the commit
critical section; their follow-up dispatches re-enter the pipeline as
ordinary top-level dispatches.

# Observers

Subscribe registers a callback invoked after every committed transition,
in subscription order. The returned unsubscribe handle is idempotent.
Notification iterates a snapshot of the registry, so subscribing or
unsubscribing from inside an observer takes effect on the next dispatch.

# Action sources

Serialized actions can be fed from external sources. A Source emits raw
bytes; Feed decodes each emission with the configured Codec (JSON by
default, YAML available) and dispatches it. FileSource watches a file
via fsnotify; ChannelSource adapts an existing byte channel and is the
workhorse for tests.

# Observability

Stores emit capitan signals for dispatches, failures, state replacement,
status transitions and observer churn. A MetricsProvider receives
timing callbacks for integration with metrics systems.
*/
package volt
