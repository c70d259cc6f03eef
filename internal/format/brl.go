// Package format renders numbers the way the dashboard's Brazilian audience
// reads them: "." groups thousands and "," separates decimals.
package format

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	integerPattern  = "#.###,"
	currencyPattern = "#.###,##"
	currencyPrefix  = "R$ "
)

// Integer formats a count, e.g. 5000 -> "5.000".
func Integer(n int) string {
	return humanize.FormatInteger(integerPattern, n)
}

// Currency formats a money amount, e.g. 12345.6 -> "R$ 12.345,60".
func Currency(amount decimal.Decimal) string {
	return CurrencyFloat(amount.Round(2).InexactFloat64())
}

// CurrencyFloat is Currency for plain floats.
func CurrencyFloat(amount float64) string {
	return currencyPrefix + humanize.FormatFloat(currencyPattern, amount)
}

// Decimal formats a real number with two decimals and no currency prefix.
func Decimal(v float64) string {
	return humanize.FormatFloat(currencyPattern, v)
}
