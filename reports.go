package finance

import (
	"cmp"
	"slices"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// RecentCount is the number of transactions listed on the dashboard.
const RecentCount = 5

// Dashboard summarizes the ledger on a given day.
//
// All amounts are in Currency.
type Dashboard struct {
	Date     date.Date
	Currency Currency
	// Balance is the all time incomes minus expenses.
	Balance decimal.Decimal
	Month   date.Month
	Income  decimal.Decimal
	// Expense excludes the expenses of SavedCategory, reported in Saved.
	Expense decimal.Decimal
	Saved   decimal.Decimal
	Recent  []Transaction
}

// NewDashboard computes the dashboard of doc on today.
func NewDashboard(doc *Document, today date.Date) *Dashboard {
	n := doc.Normalizer()
	d := &Dashboard{
		Date:     today,
		Currency: n.Reporting,
		Balance:  n.Balance(doc.Transactions),
		Month:    date.MonthOf(today),
		Income:   decimal.Zero,
		Expense:  decimal.Zero,
		Saved:    decimal.Zero,
	}
	for _, tx := range FilterByMonth(doc.Transactions, d.Month) {
		amount := n.Amount(tx)
		switch {
		case tx.Type == Income:
			d.Income = d.Income.Add(amount)
		case tx.Category == SavedCategory:
			d.Saved = d.Saved.Add(amount)
		default:
			d.Expense = d.Expense.Add(amount)
		}
	}
	d.Recent = slices.Clone(doc.Transactions[:min(RecentCount, len(doc.Transactions))])
	return d
}

// BudgetLevel grades how much of a budget is consumed.
type BudgetLevel string

const (
	BudgetGreen  BudgetLevel = "green"  // below 70%
	BudgetYellow BudgetLevel = "yellow" // below 90%
	BudgetRed    BudgetLevel = "red"
)

// BudgetStatus is the consumption of a category budget in the current month.
type BudgetStatus struct {
	Category string
	Budget   Budget
	// Spent and Limit are in the report currency.
	Spent decimal.Decimal
	Limit decimal.Decimal
	// Percent of the limit spent, capped at 100.
	Percent decimal.Decimal
	Level   BudgetLevel
}

// Over reports whether more than the limit was spent.
func (b BudgetStatus) Over() bool { return b.Spent.GreaterThan(b.Limit) }

// BudgetReport lists the budgets of a month, sorted by category.
type BudgetReport struct {
	Month    date.Month
	Currency Currency
	Budgets  []BudgetStatus
}

// NewBudgetReport computes the consumption of every budget of doc during the
// month of today. Only expenses count.
func NewBudgetReport(doc *Document, today date.Date) *BudgetReport {
	n := doc.Normalizer()
	month := date.MonthOf(today)
	expenses := FilterByType(FilterByMonth(doc.Transactions, month), Expense)
	spent := make(map[string]decimal.Decimal)
	for _, ct := range n.GroupByCategory(expenses) {
		spent[ct.Category] = ct.Total
	}

	r := &BudgetReport{Month: month, Currency: n.Reporting}
	hundred := decimal.NewFromInt(100)
	for category, budget := range doc.Budgets {
		s := BudgetStatus{
			Category: category,
			Budget:   budget,
			Spent:    decimal.Zero,
			Limit:    n.Normalize(budget.Limit, budget.Currency),
			Percent:  decimal.Zero,
		}
		if v, ok := spent[category]; ok {
			s.Spent = v
		}
		if s.Limit.IsPositive() {
			s.Percent = decimal.Min(s.Spent.Div(s.Limit).Mul(hundred), hundred)
		}
		switch {
		case s.Percent.LessThan(decimal.NewFromInt(70)):
			s.Level = BudgetGreen
		case s.Percent.LessThan(decimal.NewFromInt(90)):
			s.Level = BudgetYellow
		default:
			s.Level = BudgetRed
		}
		r.Budgets = append(r.Budgets, s)
	}
	slices.SortFunc(r.Budgets, func(a, b BudgetStatus) int { return cmp.Compare(a.Category, b.Category) })
	return r
}

// CategoryShare is a category total with its share of all expenses.
type CategoryShare struct {
	CategoryTotal
	// Percent of the total expense.
	Percent decimal.Decimal
}

// Statistics summarizes the transactions of a period.
type Statistics struct {
	Period   Period
	From     date.Date
	Date     date.Date
	Currency Currency

	// Expenses by category, in order of first appearance.
	Categories []CategoryShare
	// Monthly incomes and expenses of the months of the period, oldest first.
	Monthly []MonthTotals

	Income  decimal.Decimal
	Expense decimal.Decimal
	// Count is the number of transactions of the period.
	Count int
	// AverageExpense is the mean amount of an expense, zero without expense.
	AverageExpense decimal.Decimal
}

// NewStatistics computes the statistics of doc over the period ending today.
func NewStatistics(doc *Document, p Period, today date.Date) *Statistics {
	n := doc.Normalizer()
	txs := FilterByPeriod(doc.Transactions, p, today)
	expenses := FilterByType(txs, Expense)

	s := &Statistics{
		Period:         p,
		From:           p.Start(today),
		Date:           today,
		Currency:       n.Reporting,
		Monthly:        n.GroupByMonth(doc.Transactions, date.LastMonths(date.MonthOf(today), p.Months())),
		Income:         n.Total(FilterByType(txs, Income)),
		Expense:        n.Total(expenses),
		Count:          len(txs),
		AverageExpense: decimal.Zero,
	}
	for _, ct := range n.GroupByCategory(expenses) {
		share := CategoryShare{CategoryTotal: ct, Percent: decimal.Zero}
		if s.Expense.IsPositive() {
			share.Percent = ct.Total.Div(s.Expense).Mul(decimal.NewFromInt(100))
		}
		s.Categories = append(s.Categories, share)
	}
	if len(expenses) > 0 {
		s.AverageExpense = s.Expense.Div(decimal.NewFromInt(int64(len(expenses))))
	}
	return s
}

// SavingsSummary is the savings balance and its value in the reporting
// currency.
type SavingsSummary struct {
	Balance    decimal.Decimal // in SavingsCurrency
	Currency   Currency        // reporting currency
	Equivalent decimal.Decimal
	Savings    []Saving
}

// NewSavingsSummary computes the savings balance of doc.
func NewSavingsSummary(doc *Document) *SavingsSummary {
	n := doc.Normalizer()
	balance := SavingsBalance(doc.Savings)
	return &SavingsSummary{
		Balance:    balance,
		Currency:   n.Reporting,
		Equivalent: n.Normalize(balance, SavingsCurrency),
		Savings:    slices.Clone(doc.Savings),
	}
}
