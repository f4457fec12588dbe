package finance

import (
	"maps"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for an expense category.
type Budget struct {
	Limit    decimal.Decimal `json:"limit"`
	Currency Currency        `json:"currency"`
}

// Budgets maps an expense category to its budget. There is at most one budget
// per category.
type Budgets map[string]Budget

func (b Budgets) clone() Budgets {
	if b == nil {
		return nil
	}
	return maps.Clone(b)
}
