package finance

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// FormatMoney formats an amount with the currency symbol and the currency's
// number of decimals, e.g. "$1,234.50" or "12.30 p.".
//
// Unknown currencies are printed as "12.30 XYZ".
func FormatMoney(amount decimal.Decimal, cur Currency) string {
	if money.GetCurrency(string(cur)) == nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), cur)
	}
	// to get a never nil currency I need to call the Money constructor
	c := *money.New(0, string(cur)).Currency()
	minor := amount.Round(int32(c.Fraction)).Shift(int32(c.Fraction))
	return c.Formatter().Format(minor.IntPart())
}

// FormatSigned is like FormatMoney with an explicit sign, "-" for zero.
func FormatSigned(amount decimal.Decimal, cur Currency) string {
	switch {
	case amount.IsZero():
		return "-"
	case amount.IsPositive():
		return "+" + FormatMoney(amount, cur)
	default:
		return FormatMoney(amount, cur)
	}
}
