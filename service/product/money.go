package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// currencies without a minor unit
var zeroDecimal = map[string]bool{
	"JPY": true, "KRW": true, "VND": true, "CLP": true, "ISK": true,
}

var symbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥",
}

// Exponent is the number of minor-unit digits of currency.
func Exponent(currency string) int32 {
	if zeroDecimal[strings.ToUpper(currency)] {
		return 0
	}
	return 2
}

// FormatMoney renders an amount in minor units, e.g. 1050 USD -> "$10.50",
// 1050 CHF -> "CHF 10.50".
func FormatMoney(minor int64, currency string) string {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	exp := Exponent(cur)
	amount := decimal.New(minor, -exp)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	text := amount.StringFixed(exp)
	if sym, ok := symbols[cur]; ok {
		return sign + sym + text
	}
	if cur == "" {
		return sign + text
	}
	return fmt.Sprintf("%s %s%s", cur, sign, text)
}
