package models

import (
	"testing"
	"time"
)

func TestDiscountActiveWindowIsHalfOpen(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	d := Discount{Start: start, End: end}

	if d.ActiveAt(start.Add(-time.Second)) {
		t.Fatal("before start should be inactive")
	}
	if !d.ActiveAt(start) {
		t.Fatal("start instant should be active")
	}
	if !d.ActiveAt(end.Add(-time.Second)) {
		t.Fatal("just before end should be active")
	}
	if d.ActiveAt(end) {
		t.Fatal("end instant should be inactive")
	}
}

func TestDiscountApply(t *testing.T) {
	percent := Discount{Type: DiscountTypePercent, Value: 25}
	if got := percent.Apply(80); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}

	amount := Discount{Type: DiscountTypeAmount, Value: 30}
	if got := amount.Apply(80); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := amount.Apply(20); got != 0 {
		t.Fatalf("expected floor at zero, got %v", got)
	}
}
