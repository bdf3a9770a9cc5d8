package volt

import (
	"context"
	"errors"
	"testing"
)

type depositPayload struct {
	Amount int
}

func (d depositPayload) Validate() error {
	if d.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

func depositReducer(state int, action Action) int {
	if action.Kind == "DEPOSIT" {
		if p, ok := action.Payload.(depositPayload); ok {
			return state + p.Amount
		}
	}
	return state
}

func TestWithValidation_RejectsInvalidPayload(t *testing.T) {
	ctx := context.Background()
	store := New(depositReducer, WithValidation[int]())

	notified := 0
	store.Subscribe(func() { notified++ })

	_, err := store.Dispatch(ctx, Action{Kind: "DEPOSIT", Payload: depositPayload{Amount: -5}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if store.GetState() != 0 {
		t.Errorf("expected state unchanged, got %d", store.GetState())
	}
	if notified != 0 {
		t.Errorf("expected no notifications, got %d", notified)
	}
}

func TestWithValidation_AcceptsValidPayload(t *testing.T) {
	ctx := context.Background()
	store := New(depositReducer, WithValidation[int]())

	next, err := store.Dispatch(ctx, Action{Kind: "DEPOSIT", Payload: depositPayload{Amount: 25}})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if next != 25 {
		t.Errorf("expected 25, got %d", next)
	}
}

func TestWithValidation_IgnoresNonValidatorPayloads(t *testing.T) {
	ctx := context.Background()
	store := New(counter, WithValidation[int]())

	next, err := store.Dispatch(ctx, Action{Kind: "ADD", Payload: 3})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if next != 3 {
		t.Errorf("expected 3, got %d", next)
	}
}

type profilePayload struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestWithStructValidation_Tags(t *testing.T) {
	ctx := context.Background()
	store := New(func(state int, _ Action) int { return state + 1 }, WithStructValidation[int]())

	if _, err := store.Dispatch(ctx, Action{Kind: "SET_PROFILE", Payload: profilePayload{Name: "ada"}}); err == nil {
		t.Fatal("expected validation error for missing email")
	}

	if _, err := store.Dispatch(ctx, Action{
		Kind:    "SET_PROFILE",
		Payload: profilePayload{Name: "ada", Email: "ada@example.com"},
	}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
}

func TestWithStructValidation_NonStructPassthrough(t *testing.T) {
	ctx := context.Background()
	store := New(counter, WithStructValidation[int]())

	next, err := store.Dispatch(ctx, Action{Kind: "ADD", Payload: 7})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if next != 7 {
		t.Errorf("expected 7, got %d", next)
	}
}
