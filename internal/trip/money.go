package trip

import (
	"math"
	"strconv"
	"strings"
)

// MinorPerMajor is the number of minor units (paise, cents) in one major unit.
const MinorPerMajor = 100

// Money is an amount in minor currency units.
type Money int64

// FromMajor converts whole units to Money, saturating instead of wrapping
// when the amount does not fit.
func FromMajor(major int64) Money {
	switch {
	case major > math.MaxInt64/MinorPerMajor:
		return Money(math.MaxInt64)
	case major < math.MinInt64/MinorPerMajor:
		return Money(math.MinInt64)
	}
	return Money(major * MinorPerMajor)
}

func (m Money) Minor() int64 { return int64(m) }

func (m Money) Major() float64 { return float64(m) / MinorPerMajor }

// String formats m in major units with two decimals, e.g. "5250.00".
func (m Money) String() string {
	return strconv.FormatFloat(m.Major(), 'f', 2, 64)
}

// MarshalJSON encodes m as a number in major units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Major(), 'f', -1, 64)), nil
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders m with the currency's symbol, or its code when no symbol is
// known. Whole amounts drop the decimals: "₹15000", "CHF 10.50".
func (m Money) Format(currency string) string {
	amount := strconv.FormatInt(int64(m)/MinorPerMajor, 10)
	if int64(m)%MinorPerMajor != 0 {
		amount = m.String()
	}
	if sym, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return sym + amount
	}
	return strings.TrimSpace(currency + " " + amount)
}
