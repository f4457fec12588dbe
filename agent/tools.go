package agent

import (
	"context"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// accountantTools returns the functions reading the ledger of s. Every
// function answers with markdown.
func accountantTools(s *finance.Store) []Function {
	return []Function{
		noArgTool("Dashboard",
			`Dashboard returns the balance of all times, the incomes, expenses and savings of the current month, and the most recent transactions.`,
			func() (string, error) {
				return renderer.RenderDashboard(finance.NewDashboard(s.Document(), s.Today())), nil
			}),
		noArgTool("Budgets",
			`Budgets returns, for every budget of the current month, the amount spent, the limit and the percentage consumed.`,
			func() (string, error) {
				return renderer.BudgetsMarkdown(finance.NewBudgetReport(s.Document(), s.Today())), nil
			}),
		noArgTool("Savings",
			`Savings returns the savings balance in USD, its value in BYN and every deposit and withdrawal.`,
			func() (string, error) {
				return renderer.SavingsMarkdown(finance.NewSavingsSummary(s.Document())), nil
			}),
		noArgTool("Settings",
			`Settings returns the exchange rates to BYN, the default currency of new transactions and the theme.`,
			func() (string, error) {
				return renderer.SettingsMarkdown(s.Settings()), nil
			}),
		statisticsTool(s),
		transactionsTool(s),
		convertTool(s),
	}
}

// noArgTool declares a function without parameters.
func noArgTool(name, description string, render func() (string, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			out, err := render()
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, out)
		},
	}
}

func statisticsTool(s *finance.Store) *Func {
	const name = "Statistics"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Statistics returns, over a period ending today, the expenses by category with their share,
			the incomes and expenses of each month, the totals, the number of transactions and the average expense.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"period": {
						Type:        genai.TypeString,
						Enum:        []string{string(finance.PeriodMonth), string(finance.PeriodQuarter), string(finance.PeriodYear)},
						Description: "The period, month by default.",
					},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown report."},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			arg, err := stringArg(args, "period", string(finance.PeriodMonth))
			if err != nil {
				return errorResponse(id, name, err)
			}
			p, err := finance.ParsePeriod(arg)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.RenderStatistics(finance.NewStatistics(s.Document(), p, s.Today())))
		},
	}
}

func transactionsTool(s *finance.Store) *Func {
	const name = "Transactions"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Transactions lists the transactions of a month, newest first, optionally of a single type or category.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"month": {
						Type:        genai.TypeString,
						Description: "The month formatted YYYY-MM, the current month by default.",
					},
					"type": {
						Type:        genai.TypeString,
						Enum:        []string{string(finance.Expense), string(finance.Income)},
						Description: "Only list transactions of this type.",
					},
					"category": {
						Type:        genai.TypeString,
						Description: "Only list transactions of this category.",
					},
				},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of transactions."},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			sel, err := parseSelection(args, s.Today())
			if err != nil {
				return errorResponse(id, name, err)
			}
			txs := sel.Apply(s.Transactions())
			return outputResponse(id, name, renderer.TransactionsMarkdown(renderer.MonthTitle(sel.Month), txs))
		},
	}
}

func parseSelection(args map[string]any, today date.Date) (finance.Selection, error) {
	sel := finance.Selection{Month: date.MonthOf(today)}
	month, err := stringArg(args, "month", "")
	if err != nil {
		return sel, err
	}
	if month != "" {
		if sel.Month, err = date.ParseMonth(month); err != nil {
			return sel, err
		}
	}
	kind, err := stringArg(args, "type", "")
	if err != nil {
		return sel, err
	}
	if kind != "" {
		if sel.Type, err = finance.ParseTransactionType(kind); err != nil {
			return sel, err
		}
	}
	sel.Category, err = stringArg(args, "category", "")
	return sel, err
}

func convertTool(s *finance.Store) *Func {
	const name = "Convert"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Convert converts an amount between two currencies with the user's exchange rates, and gives the rate used.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {Type: genai.TypeNumber, Description: "The amount to convert."},
					"from":   {Type: genai.TypeString, Description: "The currency of the amount: BYN, RUB, USD or EUR."},
					"to":     {Type: genai.TypeString, Description: "The target currency: BYN, RUB, USD or EUR."},
				},
				Required: []string{"amount", "from", "to"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The converted amount and the rate."},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			amount, ok := args["amount"].(float64)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("argument \"amount\" is not a number as expected but %T", args["amount"]))
			}
			var curs [2]finance.Currency
			for i, key := range []string{"from", "to"} {
				arg, err := stringArg(args, key, "")
				if err != nil {
					return errorResponse(id, name, err)
				}
				if curs[i], err = finance.ParseCurrency(arg); err != nil {
					return errorResponse(id, name, err)
				}
			}
			out := renderer.ConversionMarkdown(decimal.NewFromFloat(amount), curs[0], curs[1], s.Normalizer())
			return outputResponse(id, name, out)
		},
	}
}
