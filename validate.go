package volt

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/pipz"
)

// Validator is implemented by action payloads that can check themselves.
// Validation is opt-in via WithValidation; the core container never
// inspects payload shape.
type Validator interface {
	Validate() error
}

// validate is the shared validator instance for struct tag validation.
var validate = validator.New()

// WithValidation rejects actions whose payload implements Validator and
// fails its own Validate check. Payloads that do not implement Validator
// pass through untouched.
func WithValidation[S any]() Interceptor[S] {
	return func(next pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.Apply(pipz.Name("volt:validate"), func(ctx context.Context, req *Request[S]) (*Request[S], error) {
			if v, ok := req.Action.Payload.(Validator); ok {
				if err := v.Validate(); err != nil {
					return req, fmt.Errorf("payload validation failed: %w", err)
				}
			}
			return next.Process(ctx, req)
		})
	}
}

// WithStructValidation rejects actions whose struct payload fails its
// `validate` struct tags, using go-playground/validator. Non-struct
// payloads pass through untouched.
func WithStructValidation[S any]() Interceptor[S] {
	return func(next pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.Apply(pipz.Name("volt:validate-struct"), func(ctx context.Context, req *Request[S]) (*Request[S], error) {
			if isStructPayload(req.Action.Payload) {
				if err := validate.Struct(req.Action.Payload); err != nil {
					return req, fmt.Errorf("payload validation failed: %w", err)
				}
			}
			return next.Process(ctx, req)
		})
	}
}

// isStructPayload reports whether p is a struct or non-nil struct pointer.
func isStructPayload(p any) bool {
	if p == nil {
		return false
	}
	rv := reflect.ValueOf(p)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}
