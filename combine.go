package volt

// Tree is the composite state produced by a combined reducer: one slice
// of state per reducer-map key.
type Tree = map[string]any

// Combine merges a map of named reducers into a single reducer over a
// state tree keyed by the same names. Each sub-reducer receives only the
// slice under its own key (nil when the tree is absent) and its return
// value becomes that key's next slice.
//
// The combined reducer builds a fresh Tree on every invocation, even when
// every slice is unchanged. Returning the prior tree when nothing changed
// is a common optimization elsewhere; this container trades it for
// determinism, and tests may rely on the fresh composite.
//
// Sub-reducers are invoked in Go map iteration order, which is
// deliberately unspecified: reducers must not have cross-key effects or
// depend on evaluation order.
//
// Combine returns ErrEmptyReducerMap for an empty map, since an empty
// composite cannot supply a meaningful default state.
func Combine(reducers map[string]Reducer[any]) (Reducer[Tree], error) {
	if len(reducers) == 0 {
		return nil, ErrEmptyReducerMap
	}

	// Copy so later mutation of the caller's map cannot change the tree shape.
	byKey := make(map[string]Reducer[any], len(reducers))
	for k, r := range reducers {
		byKey[k] = r
	}

	return func(state Tree, action Action) Tree {
		next := make(Tree, len(byKey))
		for k, r := range byKey {
			var slice any
			if state != nil {
				slice = state[k]
			}
			next[k] = r(slice, action)
		}
		return next
	}, nil
}

// Lift adapts a typed reducer into the dynamic form Combine consumes.
// The def value stands in for the absent state: it is used when the slice
// has never been populated (nil), which is how a sub-reducer supplies a
// non-zero default at store construction.
//
// A slice value of the wrong dynamic type panics, surfacing from dispatch
// as a *TransitionError.
func Lift[Sub any](def Sub, reducer Reducer[Sub]) Reducer[any] {
	return func(state any, action Action) any {
		cur := def
		if state != nil {
			cur = state.(Sub)
		}
		return reducer(cur, action)
	}
}
