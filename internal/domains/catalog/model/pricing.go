package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// IsDiscountActive reports whether the product's discount applies at
// the given instant: on sale, a percent is set, and the optional
// start/end bounds contain now.
func (p *Product) IsDiscountActive(now time.Time) bool {
	if !p.OnSale || !p.DiscountPercent.Valid {
		return false
	}
	if p.DiscountStartAt != nil && p.DiscountStartAt.After(now) {
		return false
	}
	if p.DiscountEndAt != nil && p.DiscountEndAt.Before(now) {
		return false
	}
	return true
}

// FinalPrice is price * (1 - discountPercent/100) while the discount is
// active, otherwise the list price. Computed as price*(100-pct)/100 so
// the division is an exact decimal shift.
func (p *Product) FinalPrice(now time.Time) decimal.Decimal {
	if !p.IsDiscountActive(now) {
		return p.Price
	}
	return p.Price.Mul(hundred.Sub(p.DiscountPercent.Decimal)).Div(hundred)
}

// DaysLeft is the number of whole days until the discount window
// closes, or nil when the discount is not active, has no end date, or
// the window already closed.
func (p *Product) DaysLeft(now time.Time) *int {
	if !p.IsDiscountActive(now) || p.DiscountEndAt == nil || !p.DiscountEndAt.After(now) {
		return nil
	}
	days := int(p.DiscountEndAt.Sub(now).Hours() / 24)
	return &days
}
