package finance

import (
	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the normalized sum of the transactions of a category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// GroupByCategory sums the normalized transaction amounts per category, in
// the order categories first appear in txs. Types are not distinguished:
// filter the transactions first.
func (n Normalizer) GroupByCategory(txs []Transaction) []CategoryTotal {
	var totals []CategoryTotal
	index := make(map[string]int)
	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(n.Amount(tx))
	}
	return totals
}

// MonthTotals are the normalized income and expense of a month.
type MonthTotals struct {
	Month   date.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// GroupByMonth sums the normalized incomes and expenses of each of the given
// months. The result has one entry per month, in the given order, zero for
// months without transactions. Transactions outside the months are ignored.
func (n Normalizer) GroupByMonth(txs []Transaction, months []date.Month) []MonthTotals {
	totals := make([]MonthTotals, len(months))
	index := make(map[date.Month]int, len(months))
	for i, m := range months {
		totals[i] = MonthTotals{Month: m, Income: decimal.Zero, Expense: decimal.Zero}
		index[m] = i
	}
	for _, tx := range txs {
		i, ok := index[date.MonthOf(tx.Date)]
		if !ok {
			continue
		}
		switch tx.Type {
		case Income:
			totals[i].Income = totals[i].Income.Add(n.Amount(tx))
		case Expense:
			totals[i].Expense = totals[i].Expense.Add(n.Amount(tx))
		}
	}
	return totals
}
