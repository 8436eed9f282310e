// Package pricing implements the cart and money rules of the
// marketplace: order totals (tax, platform fee, delivery) and the
// three-way commission split between property, platform and restaurant.
package pricing

import "github.com/shopspring/decimal"

// Platform-wide pricing policy. Tax and fees are flat across all
// restaurants; delivery inside the hotel is free.
var (
	TaxRate        = decimal.NewFromFloat(0.05)
	PlatformFee    = decimal.NewFromInt(15)
	DeliveryCharge = decimal.Zero

	PropertyCommissionRate = decimal.NewFromFloat(0.10)
	PlatformCommissionRate = decimal.NewFromFloat(0.05)
)

// Round2 rounds a monetary amount to two fraction digits, half away
// from zero. Every derived money value goes through this so that the
// breakdown lines always reconcile exactly with the total.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Line is one cart line: a menu item reference with its unit price
// captured at add time, a quantity and optional free-text instructions.
type Line struct {
	MenuItemID   string
	Name         string
	UnitPrice    decimal.Decimal
	Quantity     int
	Instructions string
}

// Total returns the line's price contribution
func (l Line) Total() decimal.Decimal {
	return Round2(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// Totals is the money breakdown of a cart or order
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	PlatformFee    decimal.Decimal `json:"platform_fee"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// ComputeTotals derives the money breakdown for a set of cart lines.
// It is recomputed on every read; nothing is cached.
func ComputeTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	subtotal = Round2(subtotal)

	tax := Round2(subtotal.Mul(TaxRate))
	total := Round2(subtotal.Add(tax).Add(DeliveryCharge).Add(PlatformFee))

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DeliveryCharge: DeliveryCharge,
		PlatformFee:    PlatformFee,
		TotalAmount:    total,
	}
}

// CommissionSplit is the three-way division of an order's value
type CommissionSplit struct {
	PropertyCommission decimal.Decimal `json:"property_commission"`
	PlatformCommission decimal.Decimal `json:"platform_commission"`
	RestaurantPayout   decimal.Decimal `json:"restaurant_payout"`
}

// ComputeCommissionSplit divides an order amount between the property,
// the platform and the restaurant. The payout is defined as the
// remainder, so the three parts always sum back to the input amount.
func ComputeCommissionSplit(amount, propertyRate, platformRate decimal.Decimal) CommissionSplit {
	property := Round2(amount.Mul(propertyRate))
	platform := Round2(amount.Mul(platformRate))
	payout := Round2(amount.Sub(property).Sub(platform))

	return CommissionSplit{
		PropertyCommission: property,
		PlatformCommission: platform,
		RestaurantPayout:   payout,
	}
}

// DefaultCommissionSplit applies the platform's standard rates
func DefaultCommissionSplit(amount decimal.Decimal) CommissionSplit {
	return ComputeCommissionSplit(amount, PropertyCommissionRate, PlatformCommissionRate)
}
