package finance

import (
	"maps"

	"github.com/shopspring/decimal"
)

// Normalizer converts amounts between currencies with a single snapshot of
// exchange rates.
//
// Rates are quoted in the Reporting currency: Rates[USD] is the amount of
// Reporting currency one USD is worth. Conversions between two other
// currencies go through the Reporting currency. A missing or zero rate counts
// as 1, so an unknown currency is taken at parity instead of failing.
//
// Arithmetic is exact decimal arithmetic, divisions use
// decimal.DivisionPrecision digits. Rounding is left to presentation.
type Normalizer struct {
	Reporting Currency
	Rates     map[Currency]decimal.Decimal
}

// NewNormalizer returns the Normalizer for the exchange rates of s, reporting
// in ReportingCurrency.
func NewNormalizer(s Settings) Normalizer {
	return Normalizer{Reporting: ReportingCurrency, Rates: maps.Clone(s.ExchangeRates)}
}

func (n Normalizer) rate(cur Currency) decimal.Decimal {
	r, ok := n.Rates[cur]
	if !ok || r.IsZero() {
		return decimal.NewFromInt(1)
	}
	return r
}

// Normalize converts amount from the given currency into the Reporting
// currency. Amounts already in the Reporting currency are returned unchanged.
func (n Normalizer) Normalize(amount decimal.Decimal, from Currency) decimal.Decimal {
	if from == n.Reporting {
		return amount
	}
	return amount.Mul(n.rate(from))
}

// ConvertBetween converts amount from one currency to another through the
// Reporting currency.
func (n Normalizer) ConvertBetween(amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from == to {
		return amount
	}
	pivot := n.Normalize(amount, from)
	if to == n.Reporting {
		return pivot
	}
	return pivot.Div(n.rate(to))
}

// Rate returns how much one unit of from is worth in to.
func (n Normalizer) Rate(from, to Currency) decimal.Decimal {
	return n.ConvertBetween(decimal.NewFromInt(1), from, to)
}

// Amount returns the transaction amount in the Reporting currency.
func (n Normalizer) Amount(tx Transaction) decimal.Decimal { return n.Normalize(tx.Amount, tx.Currency) }

// Total returns the sum of the transaction amounts in the Reporting currency,
// whatever their type.
func (n Normalizer) Total(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(n.Amount(tx))
	}
	return total
}

// Balance returns incomes minus expenses in the Reporting currency.
func (n Normalizer) Balance(txs []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(n.Normalize(tx.Signed(), tx.Currency))
	}
	return balance
}
