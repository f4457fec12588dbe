package finance

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/finance/date"
)

// Period is a reporting window ending today: the current month, the current
// month and the two before it, or the current year.
type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod parses "month", "quarter" or "year".
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodMonth, PeriodQuarter, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q, want month, quarter or year", s)
}

// Start returns the first day of the period ending on today.
//
// A quarter starts on the first day of the month two months before today's,
// not on a calendar quarter.
func (p Period) Start(today date.Date) date.Date {
	switch p {
	case PeriodQuarter:
		return date.MonthOf(today).Add(-2).First()
	case PeriodYear:
		return date.New(today.Year(), time.January, 1)
	default:
		return date.MonthOf(today).First()
	}
}

// Months returns the number of calendar months the period spans.
func (p Period) Months() int {
	switch p {
	case PeriodQuarter:
		return 3
	case PeriodYear:
		return 12
	default:
		return 1
	}
}

// filter returns the transactions matching keep, in their original order.
func filter(txs []Transaction, keep func(Transaction) bool) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByMonth returns the transactions dated within the month, first and
// last day included, in their original order.
func FilterByMonth(txs []Transaction, m date.Month) []Transaction {
	r := m.Range()
	return filter(txs, func(tx Transaction) bool { return r.Contains(tx.Date) })
}

// FilterByPeriod returns the transactions dated on or after the start of the
// period ending today, in their original order. There is no upper bound.
func FilterByPeriod(txs []Transaction, p Period, today date.Date) []Transaction {
	r := date.Since(p.Start(today))
	return filter(txs, func(tx Transaction) bool { return r.Contains(tx.Date) })
}

// FilterByType returns the transactions of the given type.
func FilterByType(txs []Transaction, kind TransactionType) []Transaction {
	return filter(txs, func(tx Transaction) bool { return tx.Type == kind })
}

// FilterByCategory returns the transactions of the given category.
func FilterByCategory(txs []Transaction, category string) []Transaction {
	return filter(txs, func(tx Transaction) bool { return tx.Category == category })
}

// SortByDateDesc returns a copy of txs sorted by date, newest first, then by
// id descending.
func SortByDateDesc(txs []Transaction) []Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

// Selection narrows a transaction list the way the list view does. Zero
// fields select everything.
type Selection struct {
	Month    date.Month // zero for all months
	Type     TransactionType
	Category string
}

// Apply returns the selected transactions, newest first.
func (sel Selection) Apply(txs []Transaction) []Transaction {
	if sel.Month != (date.Month{}) {
		txs = FilterByMonth(txs, sel.Month)
	}
	if sel.Type != "" {
		txs = FilterByType(txs, sel.Type)
	}
	if sel.Category != "" {
		txs = FilterByCategory(txs, sel.Category)
	}
	return SortByDateDesc(txs)
}
