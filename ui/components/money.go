package components

import "github.com/shopspring/decimal"

// FormatMoney renders an amount in quetzales, e.g. Q12.50.
func FormatMoney(amount decimal.Decimal) string {
	return "Q" + amount.StringFixed(2)
}
