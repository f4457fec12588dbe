package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// BudgetsMarkdown renders the budget consumption of a month.
func BudgetsMarkdown(r *finance.BudgetReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Budgets for %s", r.Month))
	if len(r.Budgets) == 0 {
		doc.PlainText("No budget set. Set one with `fin budget <category> <limit> [currency]`.")
		return doc.String()
	}

	rows := make([][]string, 0, len(r.Budgets))
	for _, b := range r.Budgets {
		rows = append(rows, []string{
			finance.CategoryIcon(b.Category) + " " + b.Category,
			finance.FormatMoney(b.Spent, r.Currency),
			finance.FormatMoney(b.Budget.Limit, b.Budget.Currency),
			gauge(b.Percent) + " " + percent(b.Percent),
			levelMark(b),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Spent", "Limit", "Used", "Status"},
		Rows:   rows,
	})
	return doc.String()
}

// gauge draws a 10 cells progress bar for a percentage in [0, 100].
func gauge(p decimal.Decimal) string {
	filled := int(p.Div(decimal.NewFromInt(10)).Round(0).IntPart())
	filled = max(0, min(10, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func levelMark(b finance.BudgetStatus) string {
	switch {
	case b.Over():
		return "🔴 over"
	case b.Level == finance.BudgetRed:
		return "🔴"
	case b.Level == finance.BudgetYellow:
		return "🟡"
	default:
		return "🟢"
	}
}

// SavingsMarkdown renders the savings balance and its entries.
func SavingsMarkdown(s *finance.SavingsSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Savings")
	doc.PlainText(fmt.Sprintf("Balance: **%s** (≈ %s)",
		finance.FormatMoney(s.Balance, finance.SavingsCurrency),
		finance.FormatMoney(s.Equivalent, s.Currency)))

	if len(s.Savings) == 0 {
		doc.PlainText("No savings yet. Add some with `fin deposit <amount>`.")
		return doc.String()
	}
	rows := make([][]string, 0, len(s.Savings))
	for _, e := range s.Savings {
		rows = append(rows, []string{
			e.Date.String(),
			string(e.Type),
			finance.FormatSigned(e.Signed(), finance.SavingsCurrency),
			e.Note,
			e.ID,
		})
	}
	doc.H2("Entries")
	doc.Table(md.TableSet{
		Header: []string{"Date", "Type", "Amount", "Note", "ID"},
		Rows:   rows,
	})
	return doc.String()
}

// TransactionsMarkdown renders a list of transactions.
func TransactionsMarkdown(title string, txs []finance.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.String(),
			finance.CategoryIcon(tx.Category) + " " + tx.Category,
			signedAmount(tx),
			tx.Description,
			tx.ID,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Category", "Amount", "Description", "ID"},
		Rows:   rows,
	})
	return doc.String()
}

// CategoriesMarkdown renders the category lists.
func CategoriesMarkdown(c finance.Categories) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Categories")
	for _, kind := range finance.TransactionTypes {
		doc.H2(strings.ToUpper(string(kind[:1])) + string(kind[1:]))
		names := c[kind]
		if len(names) == 0 {
			doc.PlainText("None.")
			continue
		}
		items := make([]string, 0, len(names))
		for _, n := range names {
			items = append(items, finance.CategoryIcon(n)+" "+n)
		}
		doc.BulletList(items...)
	}
	return doc.String()
}

// SettingsMarkdown renders the settings and the exchange rates.
func SettingsMarkdown(s finance.Settings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Settings")
	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"theme", string(s.Theme)},
			{"default currency", string(s.DefaultCurrency)},
		},
	})

	doc.H2(fmt.Sprintf("Exchange rates to %s", finance.ReportingCurrency))
	rows := [][]string{}
	for _, cur := range finance.Currencies {
		if cur == finance.ReportingCurrency {
			continue
		}
		rate := "not set, taken at 1"
		if r, ok := s.ExchangeRates[cur]; ok && !r.IsZero() {
			rate = r.String()
		}
		rows = append(rows, []string{"1 " + string(cur), rate})
	}
	doc.Table(md.TableSet{Header: []string{"Currency", string(finance.ReportingCurrency)}, Rows: rows})
	return doc.String()
}

// ConversionMarkdown renders a currency conversion with the rate it used,
// e.g. "1 USD = 0.9211 EUR".
func ConversionMarkdown(amount decimal.Decimal, from, to finance.Currency, n finance.Normalizer) string {
	converted := n.ConvertBetween(amount, from, to)
	rate := n.Rate(from, to)
	return fmt.Sprintf("%s %s = **%s %s**\n\n1 %s = %s %s\n",
		amount, from, converted.StringFixed(2), to,
		from, rate.Round(4), to)
}

// MonthTitle returns the list title of a month, e.g. "Transactions of March 2024".
func MonthTitle(m date.Month) string {
	return "Transactions of " + m.First().Format("January 2006")
}
