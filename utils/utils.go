package utils

import (
	// Go Internal Packages
	"strconv"
	"strings"

	// External Packages
	"github.com/shopspring/decimal"
)

func JoinStrings(values []string) string {
	return strings.Join(values, ", ")
}

// fixed2 rounds the exact binary value of v to two decimals, so 2.675
// (stored as 2.67499...) becomes 2.67. ok is false for Inf and NaN.
func fixed2(v float64) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', 2, 64))
	return d, err == nil
}

// FormatFixed2 renders v with two decimals.
func FormatFixed2(v float64) string {
	d, ok := fixed2(v)
	if !ok {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return d.StringFixed(2)
}

// FormatCurrency renders v as a dollar amount with two decimals, e.g. "$1234.50".
func FormatCurrency(v float64) string {
	d, ok := fixed2(v)
	if !ok {
		return "$" + strconv.FormatFloat(v, 'f', 2, 64)
	}
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatPercent renders a ratio in [0,1] as a percentage, e.g. 0.8751 -> "87.51%".
func FormatPercent(ratio float64) string {
	return FormatFixed2(ratio*100) + "%"
}

// ParseBool accepts the boolean spellings found in CSV exports.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "1.0", "yes":
		return true, true
	case "false", "0", "0.0", "no":
		return false, true
	}
	return false, false
}

// ParseNumber parses a numeric CSV cell.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
