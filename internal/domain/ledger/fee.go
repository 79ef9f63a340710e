package ledger

import "github.com/shopspring/decimal"

// ManagementFee computes the management fee for a payment amount and a
// whole-number fee percent. The product of amount and percent is
// rounded to the nearest integer (half away from zero) before shifting
// two decimal places, so 133.33 at 7.5 percent yields exactly 10.00.
// The rounding order is load-bearing: rounding the quotient instead
// produces different cents on boundary amounts.
func ManagementFee(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Round(0).Shift(-2)
}
