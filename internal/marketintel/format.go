package marketintel

import (
	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

var usdUnits = []struct {
	suffix string
	scale  decimal.Decimal
}{
	{"T", decimal.New(1, 12)},
	{"B", decimal.New(1, 9)},
	{"M", decimal.New(1, 6)},
	{"K", decimal.New(1, 3)},
}

// formatUSD renders an amount as "$1.23B" style text.
func formatUSD(v *float64) string {
	if v == nil {
		return notAvailable
	}
	amount := decimal.NewFromFloat(*v)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	for _, unit := range usdUnits {
		if amount.GreaterThanOrEqual(unit.scale) {
			return sign + "$" + amount.Div(unit.scale).StringFixed(2) + unit.suffix
		}
	}
	return sign + "$" + amount.StringFixed(2)
}

// formatPercent renders a change as "+4.20%" style text.
func formatPercent(v *float64) string {
	if v == nil {
		return notAvailable
	}
	pct := decimal.NewFromFloat(*v).Round(2)
	if pct.IsZero() || pct.IsPositive() {
		return "+" + pct.Abs().StringFixed(2) + "%"
	}
	return pct.StringFixed(2) + "%"
}
