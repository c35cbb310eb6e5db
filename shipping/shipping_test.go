package shipping

import (
	"testing"

	"calyx/config"
)

func TestCalculate(t *testing.T) {
	cfg := &config.Config{
		ShippingAmount:         10,
		FreeShippingOver:       100,
		DomesticCountry:        "Australia",
		InternationalSurcharge: 15,
	}

	cases := []struct {
		name    string
		net     float64
		country string
		want    float64
	}{
		{"empty cart", 0, "Australia", 0},
		{"zero after discount", -5, "Australia", 0},
		{"domestic", 50, "Australia", 10},
		{"unknown destination charged domestic", 50, "", 10},
		{"international", 50, "Germany", 25},
		{"at free threshold", 100, "Germany", 0},
		{"over free threshold", 150, "Australia", 0},
	}
	for _, tc := range cases {
		if got := Calculate(tc.net, cfg, tc.country); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCalculateNoFreeThreshold(t *testing.T) {
	cfg := &config.Config{ShippingAmount: 10}
	if got := Calculate(1000, cfg, ""); got != 10 {
		t.Fatalf("expected flat shipping without a threshold, got %v", got)
	}
}
