package finance

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 currency code.
//
// Only the codes listed in Currencies can be used in new records, but any
// value can be normalized (unknown ones at parity).
type Currency string

const (
	BYN Currency = "BYN"
	RUB Currency = "RUB"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// Currencies lists the supported currencies, reporting currency first.
var Currencies = []Currency{BYN, RUB, USD, EUR}

// ReportingCurrency is the currency exchange rates are quoted in and every
// aggregate is normalized into.
const ReportingCurrency = BYN

// SavingsCurrency is the currency of all savings entries.
const SavingsCurrency = USD

// ParseCurrency parses a supported currency code, case insensitive.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w %q, want one of %v", ErrInvalidCurrency, s, Currencies)
	}
	return c, nil
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case BYN, RUB, USD, EUR:
		return true
	}
	return false
}

func (c Currency) String() string { return string(c) }
