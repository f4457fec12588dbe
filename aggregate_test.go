package finance

import (
	"testing"

	"github.com/etnz/finance/date"
)

func TestGroupByCategory(t *testing.T) {
	n := testNormalizer()
	txs := []Transaction{
		expense("1", 10, BYN, "Транспорт", "2024-03-01"),
		expense("2", 10, USD, "Еда", "2024-03-02"),
		expense("3", 5, BYN, "Транспорт", "2024-03-03"),
		expense("4", 2, EUR, "Еда", "2024-03-04"),
	}
	got := n.GroupByCategory(txs)
	want := []CategoryTotal{
		{"Транспорт", D(15)},
		{"Еда", D(39.8)},
	}
	if len(got) != len(want) {
		t.Fatalf("GroupByCategory() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].Total.Equal(want[i].Total) {
			t.Errorf("GroupByCategory()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := n.GroupByCategory(nil); len(got) != 0 {
		t.Errorf("GroupByCategory(nil) = %v, want empty", got)
	}
}

func TestGroupByMonth(t *testing.T) {
	n := testNormalizer()
	txs := []Transaction{
		income("1", 100, USD, "Зарплата", "2024-03-01"),
		expense("2", 20, BYN, "Еда", "2024-03-31"),
		expense("3", 10, EUR, "Еда", "2024-01-15"),
		expense("4", 99, BYN, "Еда", "2023-12-31"),
	}
	months := date.LastMonths(date.MustParseMonth("2024-03"), 3)
	got := n.GroupByMonth(txs, months)

	want := []struct {
		month           string
		income, expense float64
	}{
		{"2024-01", 0, 35.5},
		{"2024-02", 0, 0},
		{"2024-03", 327, 20},
	}
	if len(got) != len(want) {
		t.Fatalf("GroupByMonth() = %v, want %d months", got, len(want))
	}
	for i, w := range want {
		if got[i].Month.String() != w.month || !got[i].Income.Equal(D(w.income)) || !got[i].Expense.Equal(D(w.expense)) {
			t.Errorf("GroupByMonth()[%d] = {%s %s %s}, want %v", i, got[i].Month, got[i].Income, got[i].Expense, w)
		}
	}
}
