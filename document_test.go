package finance

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultDocument(t *testing.T) {
	got := canonical(t, DefaultDocument())
	want := `{"transactions":[],` +
		`"categories":{"expense":["Еда","Транспорт","Жильё","Развлечения","Одежда","Здоровье","Подписки","Другое"],"income":["Зарплата","Подработка","Инвестиции","Другое"]},` +
		`"savings":[],"budgets":{},` +
		`"settings":{"theme":"auto","defaultCurrency":"BYN","exchangeRates":{"EUR":3.55,"RUB":0.035,"USD":3.27}}}`
	if got != want {
		t.Errorf("DefaultDocument() =\n%s\nwant\n%s", got, want)
	}
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := DefaultDocument()
	doc.Transactions = append(doc.Transactions, expense("1", 1, BYN, "Еда", "2024-03-01"))
	doc.Budgets["Еда"] = Budget{Limit: D(1), Currency: BYN}
	c := doc.Clone()

	c.Transactions[0].Amount = D(99)
	c.Categories[Expense][0] = "changed"
	c.Budgets["Еда"] = Budget{Limit: D(2), Currency: USD}
	c.Settings.ExchangeRates[USD] = D(1)

	if got := canonical(t, doc); strings.Contains(got, "changed") || strings.Contains(got, `"amount":99`) || strings.Contains(got, `"USD":1}`) || strings.Contains(got, `"limit":2`) {
		t.Errorf("Clone() shares state with the original: %s", got)
	}
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"savings":[{"id":"s","type":"deposit","amount":"10.50","date":"2024-3-1"}]}`), &doc); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if len(doc.Savings) != 1 || !doc.Savings[0].Amount.Equal(D(10.5)) || doc.Savings[0].Date != day("2024-03-01") {
		t.Errorf("Unmarshal() savings = %+v", doc.Savings)
	}
	if len(doc.Categories[Expense]) != 8 || doc.Settings.Theme != ThemeAuto {
		t.Errorf("Unmarshal() did not fill the missing keys: %+v", doc)
	}
}

func TestTransaction_Signed(t *testing.T) {
	if got := expense("1", 5, BYN, "Еда", "2024-03-01").Signed(); !got.Equal(D(-5)) {
		t.Errorf("expense Signed() = %s, want -5", got)
	}
	if got := income("1", 5, BYN, "Зарплата", "2024-03-01").Signed(); !got.Equal(D(5)) {
		t.Errorf("income Signed() = %s, want 5", got)
	}
}

func TestParseCurrency(t *testing.T) {
	testCases := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"BYN", BYN, false},
		{"usd", USD, false},
		{" eur ", EUR, false},
		{"RUB", RUB, false},
		{"GBP", "", true},
		{"", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCurrency(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseCurrency(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseCurrency(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		amount float64
		cur    Currency
		want   string
	}{
		{1234.5, USD, "$1,234.50"},
		{-3.456, USD, "-$3.46"},
		{12.3, "XYZ", "12.30 XYZ"},
	}
	for _, tc := range testCases {
		if got := FormatMoney(D(tc.amount), tc.cur); got != tc.want {
			t.Errorf("FormatMoney(%v, %s) = %q, want %q", tc.amount, tc.cur, got, tc.want)
		}
	}
	if got := FormatSigned(D(0), USD); got != "-" {
		t.Errorf("FormatSigned(0) = %q, want \"-\"", got)
	}
	if got := FormatSigned(D(2), USD); got != "+$2.00" {
		t.Errorf("FormatSigned(2) = %q, want \"+$2.00\"", got)
	}
}
