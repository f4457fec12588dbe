package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// renderPartial renders a single template file.
func renderPartial(file string, data any) (string, error) {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(file).Funcs(funcs).Parse(string(content))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = tmpl.Execute(&b, data)
	return b.String(), err
}

func D(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// byn formats like the templates do.
func byn(v float64) string { return finance.FormatMoney(D(v), finance.BYN) }

func testDashboard(recent bool, saved float64) *finance.Dashboard {
	d := &finance.Dashboard{
		Date:     date.MustParse("2024-03-15"),
		Currency: finance.BYN,
		Balance:  D(3173.5),
		Month:    date.MustParseMonth("2024-03"),
		Income:   D(3270),
		Expense:  D(256.5),
		Saved:    D(saved),
	}
	if recent {
		d.Recent = []finance.Transaction{
			{ID: "2", Type: finance.Expense, Amount: D(30), Currency: finance.EUR, Category: "Еда", Description: "кафе", Date: date.MustParse("2024-03-12")},
			{ID: "1", Type: finance.Income, Amount: D(1000), Currency: finance.USD, Category: "Зарплата", Date: date.MustParse("2024-03-10")},
		}
	}
	return d
}

func testStatistics() *finance.Statistics {
	return &finance.Statistics{
		Period:   finance.PeriodQuarter,
		From:     date.MustParse("2024-01-01"),
		Date:     date.MustParse("2024-03-15"),
		Currency: finance.BYN,
		Categories: []finance.CategoryShare{
			{CategoryTotal: finance.CategoryTotal{Category: "Еда", Total: D(75)}, Percent: D(75)},
			{CategoryTotal: finance.CategoryTotal{Category: "Хобби", Total: D(25)}, Percent: D(25)},
		},
		Monthly: []finance.MonthTotals{
			{Month: date.MustParseMonth("2024-02"), Income: D(0), Expense: D(40)},
			{Month: date.MustParseMonth("2024-03"), Income: D(500), Expense: D(60)},
		},
		Income:         D(500),
		Expense:        D(100),
		Count:          3,
		AverageExpense: D(50),
	}
}

func TestTemplatePartials(t *testing.T) {
	testCases := []struct {
		name string // template file
		data any
		want string
	}{
		{
			name: "dashboard_title.md",
			data: testDashboard(false, 0),
			want: "# Dashboard on 2024-03-15\n\nBalance: **" + byn(3173.5) + "**\n",
		},
		{
			name: "dashboard_month.md",
			data: testDashboard(false, 0),
			want: "## March 2024\n\n| Flow | Amount |\n|:---|---:|\n" +
				"| Income | " + byn(3270) + " |\n" +
				"| Expense | " + byn(256.5) + " |\n",
		},
		{
			name: "dashboard_month.md",
			data: testDashboard(false, 200),
			want: "## March 2024\n\n| Flow | Amount |\n|:---|---:|\n" +
				"| Income | " + byn(3270) + " |\n" +
				"| Expense | " + byn(256.5) + " |\n" +
				"| Saved | " + byn(200) + " |\n",
		},
		{
			name: "dashboard_recent.md",
			data: testDashboard(true, 0),
			want: "## Recent transactions\n\n| Date | Category | Amount | Description |\n|:---|:---|---:|:---|\n" +
				fmt.Sprintf("| 2024-03-12 | 🍔 Еда | %s | кафе |\n", finance.FormatSigned(D(-30), finance.EUR)) +
				"| 2024-03-10 | 💰 Зарплата | +$1,000.00 |  |\n",
		},
		{
			name: "dashboard_recent.md",
			data: testDashboard(false, 0),
			want: "## Recent transactions\n\nNo transactions yet.\n",
		},
		{
			name: "statistics_title.md",
			data: testStatistics(),
			want: "# Statistics since 2024-01-01\n\n| Total | Amount |\n|:---|---:|\n" +
				"| Income | " + byn(500) + " |\n" +
				"| Expense | " + byn(100) + " |\n" +
				"| Transactions | 3 |\n" +
				"| Average expense | " + byn(50) + " |\n",
		},
		{
			name: "statistics_categories.md",
			data: testStatistics(),
			want: "## Expenses by category\n\n| Category | Amount | Share |\n|:---|---:|---:|\n" +
				"| 🍔 Еда | " + byn(75) + " | 75.0% |\n" +
				"| 📌 Хобби | " + byn(25) + " | 25.0% |\n",
		},
		{
			name: "statistics_monthly.md",
			data: testStatistics(),
			want: "## Monthly\n\n| Month | Income | Expense |\n|:---|---:|---:|\n" +
				"| 2024-02 | " + byn(0) + " | " + byn(40) + " |\n" +
				"| 2024-03 | " + byn(500) + " | " + byn(60) + " |\n",
		},
	}

	// --- Coverage Check ---
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		t.Fatalf("cannot list templates: %v", err)
	}
	tested := map[string]bool{"dashboard.md": true, "statistics.md": true} // main templates, see TestRender*
	for _, tc := range testCases {
		tested[tc.name] = true
	}
	for _, e := range entries {
		if !tested[e.Name()] {
			t.Errorf("untested template found: %s. Please add a test case to TestTemplatePartials.", e.Name())
		}
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := renderPartial(tc.name, tc.data)
			if err != nil {
				t.Fatalf("render %s: %v", tc.name, err)
			}
			if got != tc.want {
				t.Errorf("render %s =\n%s\nwant\n%s", tc.name, got, tc.want)
			}
		})
	}
}

// assertInOrder checks that every part appears in s, in order.
func assertInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	rest := s
	for _, p := range parts {
		i := strings.Index(rest, p)
		if i < 0 {
			t.Errorf("missing or out of order %q in:\n%s", p, s)
			return
		}
		rest = rest[i+len(p):]
	}
}

func TestRenderDashboard(t *testing.T) {
	got := RenderDashboard(testDashboard(true, 200))
	if strings.HasPrefix(got, "error") {
		t.Fatalf("RenderDashboard() = %s", got)
	}
	assertInOrder(t, got, "# Dashboard on 2024-03-15", "## March 2024", "| Saved |", "## Recent transactions", "кафе")
}

func TestRenderStatistics(t *testing.T) {
	got := RenderStatistics(testStatistics())
	if strings.HasPrefix(got, "error") {
		t.Fatalf("RenderStatistics() = %s", got)
	}
	assertInOrder(t, got, "# Statistics since 2024-01-01", "## Expenses by category", "Хобби", "## Monthly", "2024-03")
}

func TestBudgetsMarkdown(t *testing.T) {
	r := &finance.BudgetReport{
		Month:    date.MustParseMonth("2024-03"),
		Currency: finance.BYN,
		Budgets: []finance.BudgetStatus{
			{Category: "Еда", Budget: finance.Budget{Limit: D(100), Currency: finance.USD}, Spent: D(400), Limit: D(327), Percent: D(100), Level: finance.BudgetRed},
			{Category: "Одежда", Budget: finance.Budget{Limit: D(50), Currency: finance.BYN}, Spent: D(10), Limit: D(50), Percent: D(20), Level: finance.BudgetGreen},
		},
	}
	got := BudgetsMarkdown(r)
	assertInOrder(t, got, "# Budgets for 2024-03", "Еда", "$100.00", "██████████ 100.0%", "🔴 over", "Одежда", "██░░░░░░░░ 20.0%", "🟢")

	empty := BudgetsMarkdown(&finance.BudgetReport{Month: r.Month, Currency: finance.BYN})
	if !strings.Contains(empty, "No budget set") {
		t.Errorf("BudgetsMarkdown(empty) = %s", empty)
	}
}

func TestGauge(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "░░░░░░░░░░"},
		{44, "████░░░░░░"},
		{45, "█████░░░░░"},
		{100, "██████████"},
	}
	for _, tc := range testCases {
		if got := gauge(D(tc.in)); got != tc.want {
			t.Errorf("gauge(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSavingsMarkdown(t *testing.T) {
	s := &finance.SavingsSummary{
		Balance:    D(200),
		Currency:   finance.BYN,
		Equivalent: D(654),
		Savings: []finance.Saving{
			{ID: "s2", Type: finance.Withdraw, Amount: D(50), Note: "ремонт", Date: date.MustParse("2024-03-01")},
			{ID: "s1", Type: finance.Deposit, Amount: D(250), Date: date.MustParse("2024-02-01")},
		},
	}
	got := SavingsMarkdown(s)
	assertInOrder(t, got, "# Savings", "$200.00", byn(654), "## Entries", "2024-03-01", "-$50.00", "ремонт", "2024-02-01", "+$250.00")
}

func TestTransactionsMarkdown(t *testing.T) {
	txs := testDashboard(true, 0).Recent
	got := TransactionsMarkdown(MonthTitle(date.MustParseMonth("2024-03")), txs)
	assertInOrder(t, got, "# Transactions of March 2024", "2024-03-12", "🍔 Еда", "кафе", "2024-03-10", "+$1,000.00")

	if got := TransactionsMarkdown("List", nil); !strings.Contains(got, "No transactions.") {
		t.Errorf("TransactionsMarkdown(nil) = %s", got)
	}
}

func TestCategoriesMarkdown(t *testing.T) {
	got := CategoriesMarkdown(finance.Categories{
		finance.Expense: {"Еда", "Хобби"},
	})
	assertInOrder(t, got, "# Categories", "## Expense", "🍔 Еда", "📌 Хобби", "## Income", "None.")
}

func TestSettingsMarkdown(t *testing.T) {
	got := SettingsMarkdown(finance.Settings{
		Theme:           finance.ThemeDark,
		DefaultCurrency: finance.USD,
		ExchangeRates:   map[finance.Currency]decimal.Decimal{finance.USD: D(3.27)},
	})
	assertInOrder(t, got, "dark", "USD", "Exchange rates to BYN", "1 RUB", "not set", "1 USD", "3.27", "1 EUR", "not set")
}

func TestConversionMarkdown(t *testing.T) {
	n := finance.Normalizer{Reporting: finance.BYN, Rates: map[finance.Currency]decimal.Decimal{finance.USD: D(3.27), finance.EUR: D(3.55)}}
	got := ConversionMarkdown(D(100), finance.USD, finance.EUR, n)
	want := "100 USD = **92.11 EUR**\n\n1 USD = 0.9211 EUR\n"
	if got != want {
		t.Errorf("ConversionMarkdown() = %q, want %q", got, want)
	}
}
