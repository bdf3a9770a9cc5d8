package volt

import (
	"context"
	"time"

	"github.com/zoobzio/pipz"
)

// Interceptor wraps the next pipeline stage with cross-cutting behavior:
// it may transform the request, short-circuit, observe errors, or delay.
// Interceptors passed to New wrap the commit step; the first interceptor
// in the list is the outermost, so it sees the raw request first and its
// return value is what the dispatch ultimately yields.
//
// Instance configuration (clock, metrics, codec, error history) is
// handled via chainable methods on the Store.
type Interceptor[S any] func(pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]]

// buildPipeline wraps the commit terminal with interceptors. Wrapping is
// right-to-left so the first interceptor ends up outermost.
func buildPipeline[S any](terminal pipz.Chainable[*Request[S]], interceptors []Interceptor[S]) pipz.Chainable[*Request[S]] {
	pipeline := terminal
	for i := len(interceptors) - 1; i >= 0; i-- {
		pipeline = interceptors[i](pipeline)
	}
	return pipeline
}

// -----------------------------------------------------------------------------
// Pipeline Options - Wrapping (With*)
// -----------------------------------------------------------------------------
// These options wrap the pipeline below them, providing protection at the
// boundary. Use for resilience patterns that should apply to dispatch as
// a whole.

// WithRetry wraps the pipeline with retry logic.
// Failed dispatches are retried immediately up to maxAttempts times.
// This is the caller-side answer to ErrDispatchInProgress, which the
// store itself never retries. For delays between retries, use WithBackoff.
func WithRetry[S any](maxAttempts int) Interceptor[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.NewRetry("retry", p, maxAttempts)
	}
}

// WithBackoff wraps the pipeline with exponential backoff retry logic.
// Failed dispatches are retried with increasing delays: baseDelay,
// 2*baseDelay, 4*baseDelay, etc.
func WithBackoff[S any](maxAttempts int, baseDelay time.Duration) Interceptor[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.NewBackoff("backoff", p, maxAttempts, baseDelay)
	}
}

// WithTimeout wraps the pipeline with a deadline. If a dispatch takes
// longer than the specified duration, it fails with a timeout error.
// Reducers are synchronous, so this mostly bounds middleware.
func WithTimeout[S any](d time.Duration) Interceptor[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.NewTimeout("timeout", p, d)
	}
}

// WithCircuitBreaker wraps the pipeline with circuit breaker protection.
// After 'failures' consecutive dispatch failures, the circuit opens and
// rejects further dispatches until 'recovery' time has passed.
func WithCircuitBreaker[S any](failures int, recovery time.Duration) Interceptor[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.NewCircuitBreaker("circuit-breaker", p, failures, recovery)
	}
}

// WithErrorHandler adds error observation to the pipeline.
// Errors are passed to the handler for logging, metrics, or alerting,
// but still propagate to the dispatch caller. Use this for observability,
// not recovery.
func WithErrorHandler[S any](handler pipz.Chainable[*pipz.Error[*Request[S]]]) Interceptor[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.NewHandle("error-handler", p, handler)
	}
}

// WithMiddleware wraps the pipeline with a sequence of processors.
// Processors execute in order, with the wrapped pipeline (and ultimately
// the commit step) last.
//
// Use the Use* functions to create processors for common patterns, or
// provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	volt.New(counter,
//	    volt.WithMiddleware(
//	        volt.UseEffect[int]("audit", auditFn),
//	        volt.UseTransform[int]("alias", aliasFn),
//	    ),
//	    volt.WithTimeout[int](time.Second),
//	)
func WithMiddleware[S any](processors ...pipz.Chainable[*Request[S]]) Interceptor[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		all := make([]pipz.Chainable[*Request[S]], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence("middleware", all...)
	}
}

// -----------------------------------------------------------------------------
// Middleware Processors - Adapters (Use*)
// -----------------------------------------------------------------------------
// These create processors for use inside WithMiddleware. They transform
// or observe the request on its way to the commit step.

// UseTransform creates a processor that transforms the request.
// Cannot fail. Use for pure rewrites like aliasing action kinds.
func UseTransform[S any](name string, fn func(context.Context, *Request[S]) *Request[S]) pipz.Chainable[*Request[S]] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the request and fail.
// Use for enrichment or checks that may produce errors.
func UseApply[S any](name string, fn func(context.Context, *Request[S]) (*Request[S], error)) pipz.Chainable[*Request[S]] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect.
// The request passes through unchanged. Use for logging, metrics, or
// notifications that should not affect the transition.
func UseEffect[S any](name string, fn func(context.Context, *Request[S]) error) pipz.Chainable[*Request[S]] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseMutate creates a processor that conditionally transforms the request.
// The transformer is only applied when the condition returns true.
func UseMutate[S any](name string, transformer func(context.Context, *Request[S]) *Request[S], condition func(context.Context, *Request[S]) bool) pipz.Chainable[*Request[S]] {
	return pipz.Mutate(pipz.Name(name), transformer, condition)
}

// UseFilter wraps a processor with a condition.
// If the condition returns false, the request passes through unchanged.
func UseFilter[S any](name string, condition func(context.Context, *Request[S]) bool, processor pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
	return pipz.NewFilter(pipz.Name(name), condition, processor)
}

// UseRateLimit creates a rate limiting processor.
// Uses a token bucket with the specified rate (dispatches per second) and
// burst size. When tokens are exhausted, dispatches wait for availability.
func UseRateLimit[S any](rate float64, burst int) pipz.Chainable[*Request[S]] {
	return pipz.NewRateLimiter[*Request[S]]("rate-limiter", rate, burst)
}
