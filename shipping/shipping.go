// Package shipping computes the shipping amount for a cart: a pure function
// of the net merchandise amount, the deployment config and the destination
// country already captured in the session.
package shipping

import "calyx/config"

// Calculate returns the shipping amount for a net merchandise amount going
// to country. Zero for empty carts and above the free-shipping threshold.
func Calculate(netAmount float64, cfg *config.Config, country string) float64 {
	if netAmount <= 0 {
		return 0
	}
	if cfg.FreeShippingOver > 0 && netAmount >= cfg.FreeShippingOver {
		return 0
	}
	amount := cfg.ShippingAmount
	if cfg.DomesticCountry != "" && country != "" && country != cfg.DomesticCountry {
		amount += cfg.InternationalSurcharge
	}
	return amount
}
