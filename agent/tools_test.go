package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/kv"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

func testStore(t *testing.T) *finance.Store {
	t.Helper()
	s, err := finance.Open(kv.NewMemory(), finance.WithClock(func() date.Date { return date.MustParse("2024-03-15") }))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	txs := []finance.Transaction{
		{Type: finance.Expense, Amount: decimal.NewFromInt(30), Currency: finance.BYN, Category: "Еда", Description: "кафе", Date: date.MustParse("2024-03-10")},
		{Type: finance.Expense, Amount: decimal.NewFromInt(12), Currency: finance.BYN, Category: "Транспорт", Description: "такси", Date: date.MustParse("2024-02-10")},
		{Type: finance.Income, Amount: decimal.NewFromInt(1000), Currency: finance.USD, Category: "Зарплата", Date: date.MustParse("2024-03-05")},
	}
	for _, tx := range txs {
		if _, err := s.AddTransaction(tx); err != nil {
			t.Fatalf("AddTransaction() unexpected error: %v", err)
		}
	}
	if err := s.SetBudget("Еда", decimal.NewFromInt(100), finance.BYN); err != nil {
		t.Fatalf("SetBudget() unexpected error: %v", err)
	}
	return s
}

func TestAccountantTools(t *testing.T) {
	s := testStore(t)
	lib := NewLibrary(accountantTools(s))

	testCases := []struct {
		name    string
		args    map[string]any
		want    []string // substrings of the output
		wantErr bool
	}{
		{name: "Dashboard", want: []string{"# Dashboard on 2024-03-15", "кафе"}},
		{name: "Budgets", want: []string{"Budgets for 2024-03", "Еда", "30.0%"}},
		{name: "Savings", want: []string{"# Savings", "No savings yet"}},
		{name: "Settings", want: []string{"Exchange rates to BYN", "3.27"}},
		{name: "Statistics", want: []string{"# Statistics since 2024-03-01"}},
		{name: "Statistics", args: map[string]any{"period": "quarter"}, want: []string{"# Statistics since 2024-01-01", "Транспорт"}},
		{name: "Statistics", args: map[string]any{"period": "week"}, wantErr: true},
		{name: "Transactions", want: []string{"Transactions of March 2024", "кафе"}},
		{name: "Transactions", args: map[string]any{"month": "2024-02"}, want: []string{"такси"}},
		{name: "Transactions", args: map[string]any{"type": "income"}, want: []string{"Зарплата"}},
		{name: "Transactions", args: map[string]any{"month": 2}, wantErr: true},
		{name: "Convert", args: map[string]any{"amount": 100.0, "from": "USD", "to": "BYN"}, want: []string{"100 USD = **327.00 BYN**"}},
		{name: "Convert", args: map[string]any{"amount": "100", "from": "USD", "to": "BYN"}, wantErr: true},
		{name: "Convert", args: map[string]any{"amount": 100.0, "from": "XYZ", "to": "BYN"}, wantErr: true},
		{name: "Unknown", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib(context.Background(), &genai.FunctionCall{ID: "id", Name: tc.name, Args: tc.args})
			if resp.ID != "id" || resp.Name != tc.name {
				t.Errorf("response ID, Name = %q, %q, want id, %q", resp.ID, resp.Name, tc.name)
			}
			errMsg, hasErr := resp.Response["error"]
			if hasErr != tc.wantErr {
				t.Fatalf("%s(%v) error = %v, wantErr %v", tc.name, tc.args, errMsg, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			out, _ := resp.Response["output"].(string)
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("%s(%v) output does not contain %q:\n%s", tc.name, tc.args, w, out)
				}
			}
		})
	}
}

func TestNewAccountant(t *testing.T) {
	e := NewAccountant(testStore(t))
	decls := e.Config.Tools[0].FunctionDeclarations
	if len(decls) != 7 {
		t.Errorf("Accountant declares %d functions, want 7", len(decls))
	}
	if e.Library == nil {
		t.Error("Accountant has no library")
	}

	f := newFacilitator(e, NewAdvisor())
	names := []string{}
	for _, d := range f.Config.Tools[0].FunctionDeclarations {
		names = append(names, d.Name)
	}
	if strings.Join(names, ",") != "Accountant,Advisor" {
		t.Errorf("Facilitator tools = %v, want Accountant,Advisor", names)
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]any{"s": "value", "n": 1.0, "nil": nil}
	if got, err := stringArg(args, "s", "def"); err != nil || got != "value" {
		t.Errorf("stringArg(s) = %q, %v", got, err)
	}
	if got, err := stringArg(args, "missing", "def"); err != nil || got != "def" {
		t.Errorf("stringArg(missing) = %q, %v", got, err)
	}
	if got, err := stringArg(args, "nil", "def"); err != nil || got != "def" {
		t.Errorf("stringArg(nil) = %q, %v", got, err)
	}
	if _, err := stringArg(args, "n", "def"); err == nil {
		t.Error("stringArg(n) expected an error")
	}
}
