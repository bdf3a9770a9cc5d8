package volt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/pipz"
)

func TestInterceptor_FirstIsOutermost(t *testing.T) {
	ctx := context.Background()

	var order []string
	mark := func(label string) Interceptor[int] {
		return func(next pipz.Chainable[*Request[int]]) pipz.Chainable[*Request[int]] {
			return pipz.Apply(pipz.Name(label), func(ctx context.Context, req *Request[int]) (*Request[int], error) {
				order = append(order, label)
				return next.Process(ctx, req)
			})
		}
	}

	store := New(counter, mark("outer"), mark("inner"))

	if _, err := store.Dispatch(ctx, Action{Kind: "INC"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("expected [outer inner], got %v", order)
	}
}

func TestWithMiddleware_TransformAliasesKind(t *testing.T) {
	ctx := context.Background()

	store := New(counter, WithMiddleware(
		UseTransform("alias", func(_ context.Context, req *Request[int]) *Request[int] {
			if req.Action.Kind == "BUMP" {
				req.Action.Kind = "INC"
			}
			return req
		}),
	))

	next, err := store.Dispatch(ctx, Action{Kind: "BUMP"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if next != 1 {
		t.Errorf("expected aliased action to increment, got %d", next)
	}
}

func TestWithMiddleware_EffectObservesEveryDispatch(t *testing.T) {
	ctx := context.Background()

	var kinds []string
	store := New(counter, WithMiddleware(
		UseEffect("audit", func(_ context.Context, req *Request[int]) error {
			kinds = append(kinds, req.Action.Kind)
			return nil
		}),
	))

	_, _ = store.Dispatch(ctx, Action{Kind: "INC"})
	_, _ = store.Dispatch(ctx, Action{Kind: "NOOP"})

	if len(kinds) != 2 || kinds[0] != "INC" || kinds[1] != "NOOP" {
		t.Errorf("expected [INC NOOP], got %v", kinds)
	}
}

func TestWithRetry_RecoversFromTransientFailure(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	flaky := UseApply("flaky", func(_ context.Context, req *Request[int]) (*Request[int], error) {
		attempts++
		if attempts < 3 {
			return req, errors.New("transient")
		}
		return req, nil
	})

	store := New(counter,
		WithRetry[int](3),
		WithMiddleware(flaky),
	)

	next, err := store.Dispatch(ctx, Action{Kind: "INC"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if next != 1 {
		t.Errorf("expected 1, got %d", next)
	}
	if store.Status() != StatusReady {
		t.Errorf("expected ready after recovery, got %s", store.Status())
	}
}

func TestWithErrorHandler_ObservesButDoesNotRecover(t *testing.T) {
	ctx := context.Background()

	var seen error
	observe := pipz.Effect(pipz.Name("observe"), func(_ context.Context, perr *pipz.Error[*Request[int]]) error {
		seen = perr.Err
		return nil
	})

	store := New(counter, WithErrorHandler[int](observe))

	_, err := store.Dispatch(ctx, Action{Kind: "BOOM"})
	if err == nil {
		t.Fatal("expected error to propagate past the handler")
	}

	var te *TransitionError
	if !errors.As(seen, &te) {
		t.Errorf("expected handler to observe a TransitionError, got %v", seen)
	}
}

func TestWithTimeout_BoundsSlowMiddleware(t *testing.T) {
	ctx := context.Background()

	slow := UseApply("slow", func(ctx context.Context, req *Request[int]) (*Request[int], error) {
		select {
		case <-time.After(time.Second):
			return req, nil
		case <-ctx.Done():
			return req, ctx.Err()
		}
	})

	store := New(counter,
		WithTimeout[int](20*time.Millisecond),
		WithMiddleware(slow),
	)

	if _, err := store.Dispatch(ctx, Action{Kind: "INC"}); err == nil {
		t.Fatal("expected timeout error")
	}
	if store.GetState() != 0 {
		t.Errorf("expected state unchanged, got %d", store.GetState())
	}
}

func TestUseFilter_ShortCircuitWithoutCommit(t *testing.T) {
	ctx := context.Background()

	// When the condition is false the wrapped pipeline is skipped, so the
	// action never reaches the commit step. Dispatch returns the current
	// state without error.
	gate := func(next pipz.Chainable[*Request[int]]) pipz.Chainable[*Request[int]] {
		return pipz.NewFilter(pipz.Name("gate"), func(_ context.Context, req *Request[int]) bool {
			return req.Action.Kind != "DROP"
		}, next)
	}

	store := New(counter, gate)

	notified := 0
	store.Subscribe(func() { notified++ })

	if _, err := store.Dispatch(ctx, Action{Kind: "INC"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	next, err := store.Dispatch(ctx, Action{Kind: "DROP"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if next != 1 {
		t.Errorf("expected current state 1 from short-circuited dispatch, got %d", next)
	}
	if notified != 1 {
		t.Errorf("expected 1 notification, got %d", notified)
	}
}

func TestUseMutate_ConditionalRewrite(t *testing.T) {
	ctx := context.Background()

	store := New(counter, WithMiddleware(
		UseMutate("double",
			func(_ context.Context, req *Request[int]) *Request[int] {
				req.Action.Payload = req.Action.Payload.(int) * 2
				return req
			},
			func(_ context.Context, req *Request[int]) bool {
				_, ok := req.Action.Payload.(int)
				return req.Action.Kind == "ADD" && ok
			},
		),
	))

	next, err := store.Dispatch(ctx, Action{Kind: "ADD", Payload: 3})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if next != 6 {
		t.Errorf("expected doubled payload to yield 6, got %d", next)
	}
}
