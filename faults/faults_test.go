package faults

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsBusiness(t *testing.T) {
	if !IsBusiness(ErrInsufficientStock) {
		t.Fatal("sentinel should be business")
	}
	if !IsBusiness(fmt.Errorf("adding: %w", ErrSubscriptionConflict)) {
		t.Fatal("wrapped sentinel should be business")
	}
	if !IsBusiness(Invalid("email", "is required")) {
		t.Fatal("validation should be business")
	}
	if IsBusiness(errors.New("mongo: connection reset")) {
		t.Fatal("infrastructure errors must not be shown verbatim")
	}
}

func TestAsValidation(t *testing.T) {
	err := fmt.Errorf("checking input: %w", Invalid("postcode", "is required"))
	v, ok := AsValidation(err)
	if !ok {
		t.Fatal("expected a validation error")
	}
	if v.Field != "postcode" {
		t.Fatalf("expected field postcode, got %q", v.Field)
	}
	if err.Error() != "checking input: postcode is required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	if _, ok := AsValidation(ErrEmptyCart); ok {
		t.Fatal("sentinel is not a validation error")
	}
}
