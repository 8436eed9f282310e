package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []Line
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "empty cart still carries the platform fee",
			lines:        nil,
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "15",
		},
		{
			name: "reference breakdown 349 + 249",
			lines: []Line{
				{MenuItemID: "m1", UnitPrice: dec("349"), Quantity: 1},
				{MenuItemID: "m2", UnitPrice: dec("249"), Quantity: 1},
			},
			wantSubtotal: "598",
			wantTax:      "29.90",
			wantTotal:    "642.90",
		},
		{
			name: "quantity multiplies the unit price",
			lines: []Line{
				{MenuItemID: "m1", UnitPrice: dec("99.50"), Quantity: 3},
			},
			wantSubtotal: "298.50",
			wantTax:      "14.93",
			wantTotal:    "328.43",
		},
		{
			name: "tax rounds half away from zero",
			lines: []Line{
				{MenuItemID: "m1", UnitPrice: dec("0.10"), Quantity: 1},
			},
			wantSubtotal: "0.10",
			wantTax:      "0.01",
			wantTotal:    "15.11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines)
			if !got.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Errorf("Subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			}
			if !got.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Errorf("TaxAmount = %s, want %s", got.TaxAmount, tt.wantTax)
			}
			if !got.DeliveryCharge.Equal(decimal.Zero) {
				t.Errorf("DeliveryCharge = %s, want 0", got.DeliveryCharge)
			}
			if !got.PlatformFee.Equal(dec("15")) {
				t.Errorf("PlatformFee = %s, want 15", got.PlatformFee)
			}
			if !got.TotalAmount.Equal(dec(tt.wantTotal)) {
				t.Errorf("TotalAmount = %s, want %s", got.TotalAmount, tt.wantTotal)
			}

			// The breakdown must reconcile exactly with the total.
			sum := got.Subtotal.Add(got.TaxAmount).Add(got.DeliveryCharge).Add(got.PlatformFee)
			if !sum.Equal(got.TotalAmount) {
				t.Errorf("breakdown sums to %s, total is %s", sum, got.TotalAmount)
			}
		})
	}
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"-1.005", "-1.01"},
		{"29.899999", "29.90"},
		{"2.675", "2.68"},
	}
	for _, tt := range tests {
		if got := Round2(dec(tt.in)); !got.Equal(dec(tt.want)) {
			t.Errorf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestComputeCommissionSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		wantProperty string
		wantPlatform string
		wantPayout   string
	}{
		{"reference order", "642.90", "64.29", "32.15", "546.46"},
		{"round total", "1000", "100", "50", "850"},
		{"small order", "15", "1.50", "0.75", "12.75"},
		{"zero", "0", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultCommissionSplit(dec(tt.amount))
			if !got.PropertyCommission.Equal(dec(tt.wantProperty)) {
				t.Errorf("PropertyCommission = %s, want %s", got.PropertyCommission, tt.wantProperty)
			}
			if !got.PlatformCommission.Equal(dec(tt.wantPlatform)) {
				t.Errorf("PlatformCommission = %s, want %s", got.PlatformCommission, tt.wantPlatform)
			}
			if !got.RestaurantPayout.Equal(dec(tt.wantPayout)) {
				t.Errorf("RestaurantPayout = %s, want %s", got.RestaurantPayout, tt.wantPayout)
			}

			sum := got.PropertyCommission.Add(got.PlatformCommission).Add(got.RestaurantPayout)
			if !sum.Equal(dec(tt.amount)) {
				t.Errorf("split sums to %s, want %s", sum, tt.amount)
			}
		})
	}
}

func TestComputeCommissionSplit_CustomRates(t *testing.T) {
	got := ComputeCommissionSplit(dec("200"), dec("0.20"), dec("0.05"))
	if !got.PropertyCommission.Equal(dec("40")) {
		t.Errorf("PropertyCommission = %s, want 40", got.PropertyCommission)
	}
	if !got.PlatformCommission.Equal(dec("10")) {
		t.Errorf("PlatformCommission = %s, want 10", got.PlatformCommission)
	}
	if !got.RestaurantPayout.Equal(dec("150")) {
		t.Errorf("RestaurantPayout = %s, want 150", got.RestaurantPayout)
	}
}
