package finance

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/finance/kv"
)

// populated returns a store with a bit of everything.
func populated(t *testing.T) *Store {
	t.Helper()
	s, _ := openTestStore(t, "2024-03-15")
	s.AddCategory(Expense, "Сбережение")
	s.AddTransaction(Transaction{Type: Expense, Amount: D(12.34), Currency: EUR, Category: "Еда", Description: "кафе", Date: day("2024-03-02")})
	s.AddTransaction(income("", 2500, BYN, "Зарплата", "2024-03-05"))
	s.AddTransaction(expense("", 0.035, RUB, "Подписки", "2024-02-29"))
	s.AddSaving(Saving{Type: Deposit, Amount: D(150), Note: "march", Date: day("2024-03-06")})
	s.SetBudget("Еда", D(400), BYN)
	s.SetExchangeRate(USD, D(3.1234))
	return s
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := populated(t)
	var export strings.Builder
	if err := src.Export(&export); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	if !strings.HasPrefix(export.String(), "{\n  \"transactions\": [") {
		t.Errorf("Export() is not indented with 2 spaces:\n%s", export.String())
	}

	dst, _ := openTestStore(t, "2024-03-15")
	if err := dst.Import([]byte(export.String())); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if got, want := canonical(t, dst.Document()), canonical(t, src.Document()); got != want {
		t.Errorf("Import(Export()) =\n%s\nwant\n%s", got, want)
	}

	// exporting again gives the same file
	var again strings.Builder
	dst.Export(&again)
	if again.String() != export.String() {
		t.Errorf("second Export() differs:\n%s\nwant\n%s", again.String(), export.String())
	}
}

func TestImport_RejectsWithoutMutation(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"missing settings", `{"transactions":[],"categories":{"expense":[]}}`},
		{"missing transactions", `{"categories":{},"settings":{}}`},
		{"missing categories", `{"transactions":[],"settings":{}}`},
		{"null settings", `{"transactions":[],"categories":{},"settings":null}`},
		{"not json", `finance`},
		{"array", `[]`},
		{"wrong shape", `{"transactions":"none","categories":{},"settings":{}}`},
		{"bad date", `{"transactions":[{"id":"1","type":"income","amount":1,"currency":"BYN","category":"x","date":"yesterday"}],"categories":{},"settings":{}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := populated(t)
			m := s.medium.(*kv.Memory)
			before := canonical(t, s.Document())
			persisted, _, _ := m.Get(DefaultStorageKey)

			err := s.Import([]byte(tc.data))
			if !errors.Is(err, ErrInvalidImport) {
				t.Fatalf("Import() error = %v, want %v", err, ErrInvalidImport)
			}
			if got := canonical(t, s.Document()); got != before {
				t.Errorf("Import() mutated the document:\n%s\nwant\n%s", got, before)
			}
			if got, _, _ := m.Get(DefaultStorageKey); got != persisted {
				t.Errorf("Import() rewrote the persisted document")
			}
		})
	}
}

func TestImport_FillsOptionalKeys(t *testing.T) {
	s := populated(t)
	data := `{"transactions":[],"categories":{"expense":["Еда"]},"settings":{"theme":"light","defaultCurrency":"EUR","exchangeRates":{"USD":3}},"extra":"kept"}`
	if err := s.Import([]byte(data)); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	doc := s.Document()
	if doc.Savings == nil || len(doc.Savings) != 0 {
		t.Errorf("Import() savings = %v, want empty", doc.Savings)
	}
	if doc.Budgets == nil || len(doc.Budgets) != 0 {
		t.Errorf("Import() budgets = %v, want empty", doc.Budgets)
	}
	if doc.Settings.Theme != ThemeLight || doc.Settings.DefaultCurrency != EUR {
		t.Errorf("Import() settings = %+v", doc.Settings)
	}
	if _, ok := doc.Settings.ExchangeRates[EUR]; ok {
		t.Errorf("Import() merged default rates into the imported ones")
	}
	if got := canonical(t, doc); !strings.HasSuffix(got, `"extra":"kept"}`) {
		t.Errorf("Import() lost the unknown key: %s", got)
	}
}

func TestImport_DropsUnknownRecordFields(t *testing.T) {
	s := populated(t)
	data := `{"transactions":[{"id":"a","type":"expense","amount":5,"currency":"BYN","category":"Еда","date":"2024-03-01","createdAt":123}],"categories":{"expense":["Еда"]},"settings":{}}`
	if err := s.Import([]byte(data)); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "createdAt") {
		t.Errorf("Export() kept a record field unknown to Transaction:\n%s", buf.String())
	}
	if tx, ok := s.Transaction("a"); !ok || !tx.Amount.Equal(D(5)) {
		t.Errorf("Transaction(a) = %+v, %v, want the imported record", tx, ok)
	}
}

func TestExportFilename(t *testing.T) {
	if got, want := ExportFilename(day("2024-03-05")), "finance-backup-2024-03-05.json"; got != want {
		t.Errorf("ExportFilename() = %q, want %q", got, want)
	}
}
