package models

import "time"

// Discount types. The value is a percentage or a fixed amount off.
const (
	DiscountTypePercent = "percent"
	DiscountTypeAmount  = "amount"
)

// Discount is a code usable during the half-open window [Start, End).
type Discount struct {
	DiscountID string    `json:"discountId" bson:"discountId"`
	Code       string    `json:"code" bson:"code"`
	Type       string    `json:"type" bson:"type"`
	Value      float64   `json:"value" bson:"value"`
	Start      time.Time `json:"start" bson:"start"`
	End        time.Time `json:"end" bson:"end"`
}

// ActiveAt reports whether the code is usable at t: t in [Start, End).
func (d *Discount) ActiveAt(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.End)
}

// Apply returns amount with the discount taken off, floored at zero.
func (d *Discount) Apply(amount float64) float64 {
	var out float64
	switch d.Type {
	case DiscountTypeAmount:
		out = amount - d.Value
	default:
		out = amount - (amount * d.Value / 100)
	}
	if out < 0 {
		return 0
	}
	return out
}
