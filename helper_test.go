package finance

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/etnz/finance/date"
	"github.com/etnz/finance/kv"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create a decimal from a const.
func D(v float64) decimal.Decimal { return newDecimal(v) }

// day is a helper for test to create a date from an ISO string.
func day(s string) date.Date { return date.MustParse(s) }

// expense is a helper for test to create an expense.
func expense(id string, amount float64, cur Currency, category, on string) Transaction {
	return Transaction{ID: id, Type: Expense, Amount: D(amount), Currency: cur, Category: category, Date: day(on)}
}

// income is a helper for test to create an income.
func income(id string, amount float64, cur Currency, category, on string) Transaction {
	return Transaction{ID: id, Type: Income, Amount: D(amount), Currency: cur, Category: category, Date: day(on)}
}

func ids(txs []Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}

// openTestStore opens a Store on an in-memory medium with today pinned.
func openTestStore(t *testing.T, today string) (*Store, *kv.Memory) {
	t.Helper()
	m := kv.NewMemory()
	s, err := Open(m, WithClock(func() date.Date { return day(today) }))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	return s, m
}

// canonical returns the compact JSON of a document, used to compare documents.
func canonical(t *testing.T, doc *Document) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	return string(b)
}

// compactJSON re-encodes a JSON text without insignificant spaces.
func compactJSON(t *testing.T, s string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		t.Fatalf("Compact() unexpected error: %v", err)
	}
	return buf.String()
}

var errQuota = errors.New("quota exceeded")

// flakyMedium is a kv.Store whose writes fail while failing is true.
type flakyMedium struct {
	*kv.Memory
	failing bool
}

func (f *flakyMedium) Set(key, value string) error {
	if f.failing {
		return errQuota
	}
	return f.Memory.Set(key, value)
}
