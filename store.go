package volt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

const (
	commitName   = pipz.Name("volt:commit")
	deferredName = pipz.Name("volt:deferred")
)

// Store holds a single current state value and replaces it only through
// its reducer, in response to dispatched actions. Observers are notified
// after every committed transition.
//
// A Store is safe for concurrent readers. Dispatch is single-flight:
// overlapping dispatches, whether re-entrant or from another goroutine,
// fail fast with ErrDispatchInProgress.
type Store[S any] struct {
	reducer  Reducer[S]
	pipeline pipz.Chainable[*Request[S]]
	clock    clockz.Clock
	codec    Codec
	metrics  MetricsProvider
	history  *errorLog

	status    atomic.Int32
	state     atomic.Pointer[S]
	lastError atomic.Pointer[error]

	// commitMu serializes the commit step. It is acquired with TryLock so
	// dispatch never blocks: an overlapping dispatch is rejected instead.
	commitMu sync.Mutex

	subMu  sync.Mutex
	subs   []observer
	nextID uint64
}

// New creates a Store governed by the given reducer.
//
// The initial state is established by invoking the reducer once with the
// zero value of S and a reserved internal action kind; the reducer's
// default branch therefore decides the starting state. A reducer that
// panics here is a programming error and the panic propagates.
//
// Interceptors wrap the commit step; the first interceptor is the
// outermost and sees the raw request first. Instance configuration uses
// chainable methods before the first dispatch:
//
//	store := volt.New(counter,
//	    volt.WithMiddleware(
//	        volt.UseEffect[int]("audit", auditFn),
//	    ),
//	).Codec(volt.YAMLCodec{}).ErrorHistorySize(16)
func New[S any](reducer Reducer[S], interceptors ...Interceptor[S]) *Store[S] {
	s := &Store[S]{
		reducer: reducer,
		clock:   clockz.RealClock,
		codec:   JSONCodec{},
	}

	terminal := pipz.Apply(commitName, s.commit)
	s.pipeline = s.deferredStage(buildPipeline(terminal, interceptors))

	initial := reducer(*new(S), Action{Kind: initKind})
	s.state.Store(&initial)
	s.status.Store(int32(StatusReady))

	return s
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Clock sets a custom clock for dispatch timing.
// Must be called before the first dispatch.
func (s *Store[S]) Clock(clock clockz.Clock) *Store[S] {
	s.clock = clock
	return s
}

// Metrics sets a metrics provider for observability integration.
// The provider receives callbacks on dispatches, failures, and status
// changes. Must be called before the first dispatch.
func (s *Store[S]) Metrics(provider MetricsProvider) *Store[S] {
	s.metrics = provider
	return s
}

// Codec sets the codec used by Feed to decode serialized actions.
// Default: JSONCodec. Must be called before Feed.
func (s *Store[S]) Codec(codec Codec) *Store[S] {
	s.codec = codec
	return s
}

// ErrorHistorySize sets the number of recent dispatch errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before the first dispatch.
func (s *Store[S]) ErrorHistorySize(n int) *Store[S] {
	s.history = newErrorLog(n)
	return s
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// GetState returns the most recently committed state. It is safe to call
// from anywhere, including inside an observer callback, where it reflects
// the state replaced by the dispatch being notified.
func (s *Store[S]) GetState() S {
	return *s.state.Load()
}

// Status returns the current health of the store.
func (s *Store[S]) Status() Status {
	return Status(s.status.Load())
}

// LastError returns the last dispatch error, or nil if the most recent
// dispatch committed.
func (s *Store[S]) LastError() error {
	ptr := s.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent dispatch errors, oldest first.
// Returns nil unless enabled via ErrorHistorySize.
func (s *Store[S]) ErrorHistory() []error {
	return s.history.recent()
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

// Dispatch runs an action through the pipeline. If the commit step is
// reached, the state is replaced with the reducer's return value and all
// observers registered at that moment are notified, in subscription
// order. Observers are notified even when the new state equals the prior
// one.
//
// The returned state is the committed result; when an interceptor
// short-circuits the pipeline without committing, the current state is
// returned unchanged.
func (s *Store[S]) Dispatch(ctx context.Context, action Action) (S, error) {
	start := s.clock.Now()
	capitan.Emit(ctx, DispatchReceived, KeyKind.Field(action.Kind))
	if s.metrics != nil {
		s.metrics.OnActionReceived()
	}

	req := &Request[S]{Action: action}
	out, err := s.pipeline.Process(ctx, req)
	if err != nil {
		s.fail(ctx, action.Kind, err, dispatchStage(err), start)
		return s.GetState(), err
	}

	s.clearErrors(ctx)
	if s.metrics != nil {
		s.metrics.OnDispatchSuccess(s.clock.Since(start))
	}

	if !out.Committed {
		return s.GetState(), nil
	}
	return out.State, nil
}

// DispatchDeferred hands a deferred unit of work to the pipeline. The
// unit is invoked with a Toolkit instead of being forwarded to the commit
// step, and its return value is the dispatch result. The store's state is
// not touched by this call itself; only the unit's follow-up dispatches
// commit transitions.
func (s *Store[S]) DispatchDeferred(ctx context.Context, unit Deferred[S]) (any, error) {
	if unit == nil {
		return nil, ErrInvalidRequest
	}

	start := s.clock.Now()
	if s.metrics != nil {
		s.metrics.OnActionReceived()
	}

	req := &Request[S]{Deferred: unit}
	out, err := s.pipeline.Process(ctx, req)
	if err != nil {
		stage := dispatchStage(err)
		if stage == "pipeline" {
			stage = "deferred"
		}
		s.fail(ctx, "", err, stage, start)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OnDispatchSuccess(s.clock.Since(start))
	}
	return out.Result, nil
}

// commit is the innermost pipeline stage: it enforces the single-flight
// rule, applies the reducer, replaces the state, and notifies observers
// before releasing the exclusion. Only plain actions reach it.
func (s *Store[S]) commit(ctx context.Context, req *Request[S]) (*Request[S], error) {
	if !s.commitMu.TryLock() {
		return req, ErrDispatchInProgress
	}
	defer s.commitMu.Unlock()

	if req.Action.Kind == "" {
		return req, ErrInvalidRequest
	}

	prev := *s.state.Load()
	next, err := s.apply(prev, req.Action)
	if err != nil {
		return req, err
	}

	s.state.Store(&next)
	req.Previous = prev
	req.State = next
	req.Result = next
	req.Committed = true

	capitan.Emit(ctx, StateReplaced, KeyKind.Field(req.Action.Kind))
	for _, fn := range s.snapshotObservers() {
		fn()
	}

	return req, nil
}

// apply invokes the reducer, converting a panic into a TransitionError so
// a failing reducer can never leave the store half-updated.
func (s *Store[S]) apply(prev S, action Action) (next S, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TransitionError{Kind: action.Kind, Recovered: r}
		}
	}()
	return s.reducer(prev, action), nil
}

// deferredStage intercepts requests carrying a deferred unit of work
// before any user interceptor runs. The unit executes outside the commit
// critical section, so its synchronous follow-up dispatches succeed.
func (s *Store[S]) deferredStage(next pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
	return pipz.Apply(deferredName, func(ctx context.Context, req *Request[S]) (*Request[S], error) {
		if req.Deferred == nil {
			return next.Process(ctx, req)
		}

		capitan.Emit(ctx, DeferredInvoked)
		result, err := req.Deferred(ctx, Toolkit[S]{
			Dispatch: s.Dispatch,
			GetState: s.GetState,
		})
		if err != nil {
			return req, err
		}
		req.Result = result
		return req, nil
	})
}

// fail records a dispatch error and degrades the store status.
func (s *Store[S]) fail(ctx context.Context, kind string, err error, stage string, start time.Time) {
	e := err
	s.lastError.Store(&e)
	s.history.record(err)
	s.transition(ctx, StatusDegraded)
	capitan.Emit(ctx, DispatchFailed,
		KeyKind.Field(kind),
		KeyError.Field(err.Error()),
	)
	if s.metrics != nil {
		s.metrics.OnDispatchFailure(stage, s.clock.Since(start))
	}
}

// clearErrors resets error bookkeeping after a successful dispatch.
func (s *Store[S]) clearErrors(ctx context.Context) {
	s.lastError.Store(nil)
	s.history.reset()
	s.transition(ctx, StatusReady)
}

// transition updates the status and emits a status change event if changed.
func (s *Store[S]) transition(ctx context.Context, to Status) {
	from := Status(s.status.Swap(int32(to)))
	if from == to {
		return
	}
	capitan.Emit(ctx, StatusChanged,
		KeyOldStatus.Field(from.String()),
		KeyNewStatus.Field(to.String()),
	)
	if s.metrics != nil {
		s.metrics.OnStatusChange(from, to)
	}
}

// dispatchStage classifies a dispatch error for metrics.
func dispatchStage(err error) string {
	var te *TransitionError
	switch {
	case errors.Is(err, ErrDispatchInProgress):
		return "exclusion"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	case errors.As(err, &te):
		return "reducer"
	default:
		return "pipeline"
	}
}
