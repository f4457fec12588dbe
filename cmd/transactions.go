package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// parseAmount parses a strictly positive amount.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", finance.ErrInvalidAmount, s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w %q, must be positive", finance.ErrInvalidAmount, s)
	}
	return amount, nil
}

// parseDay parses a date, today when empty.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return today(), nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return d, fmt.Errorf("%w: %w", finance.ErrInvalidDate, err)
	}
	return d, nil
}

// --- Add Command ---

// addCmd adds an income or an expense, depending on kind.
type addCmd struct {
	kind        finance.TransactionType
	date        string
	currency    string
	description string
}

func (c *addCmd) Name() string     { return string(c.kind) }
func (c *addCmd) Synopsis() string { return "record an " + string(c.kind) }
func (c *addCmd) Usage() string {
	return fmt.Sprintf(`fin %s [-d <date>] [-c <currency>] [-m <description>] <amount> <category>

  Records an %s. The currency defaults to the default currency of the settings.
  The category must be one of the %s categories, see 'fin category'.
`, c.kind, c.kind, c.kind)
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.currency, "c", "", "Currency (BYN, RUB, USD, EUR)")
	f.StringVar(&c.description, "m", "", "An optional description")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(f.Arg(0))
	if err != nil {
		return failf("%v", err)
	}
	day, err := parseDay(c.date)
	if err != nil {
		return failf("%v", err)
	}
	category := strings.Join(f.Args()[1:], " ")

	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		cur := s.Settings().DefaultCurrency
		if c.currency != "" {
			if cur, err = finance.ParseCurrency(c.currency); err != nil {
				return failf("%v", err)
			}
		}
		tx, err := s.AddTransaction(finance.Transaction{
			Type:        c.kind,
			Amount:      amount,
			Currency:    cur,
			Category:    category,
			Description: c.description,
			Date:        day,
		})
		if err != nil {
			return failf("could not add %s: %v", c.kind, err)
		}
		fmt.Fprintf(out, "Added %s %s on %s (%s)\n", tx.Category, finance.FormatSigned(tx.Signed(), tx.Currency), tx.Date, tx.ID)
		return subcommands.ExitSuccess
	})
}

// --- Edit Command ---

type editCmd struct {
	kind        string
	amount      string
	currency    string
	category    string
	description string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the fields of a transaction" }
func (*editCmd) Usage() string {
	return `fin edit [-type <type>] [-amount <amount>] [-c <currency>] [-category <category>] [-m <description>] [-d <date>] <id>

  Changes only the given fields of the transaction <id>.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "New type (income, expense)")
	f.StringVar(&c.amount, "amount", "", "New amount")
	f.StringVar(&c.currency, "c", "", "New currency")
	f.StringVar(&c.category, "category", "", "New category")
	f.StringVar(&c.description, "m", "", "New description")
	f.StringVar(&c.date, "d", "", "New date (YYYY-MM-DD)")
}

// patch builds the patch of the flags set in f.
func (c *editCmd) patch(f *flag.FlagSet) (finance.TransactionPatch, error) {
	var p finance.TransactionPatch
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "type":
			var v finance.TransactionType
			v, err = finance.ParseTransactionType(c.kind)
			p.Type = &v
		case "amount":
			var v decimal.Decimal
			v, err = parseAmount(c.amount)
			p.Amount = &v
		case "c":
			var v finance.Currency
			v, err = finance.ParseCurrency(c.currency)
			p.Currency = &v
		case "category":
			p.Category = &c.category
		case "m":
			p.Description = &c.description
		case "d":
			var v date.Date
			v, err = parseDay(c.date)
			p.Date = &v
		}
	})
	return p, err
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	patch, err := c.patch(f)
	if err != nil {
		return failf("%v", err)
	}
	if patch.IsEmpty() {
		return failf("nothing to change, see 'fin help edit'")
	}
	id := f.Arg(0)
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		found, err := s.UpdateTransaction(id, patch)
		if err != nil {
			return failf("could not update transaction %s: %v", id, err)
		}
		if !found {
			return failf("no transaction %s", id)
		}
		fmt.Fprintf(out, "Updated transaction %s\n", id)
		return subcommands.ExitSuccess
	})
}

// --- Remove Command ---

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove transactions" }
func (*rmCmd) Usage() string {
	return `fin rm <id>...

  Removes the transactions with the given IDs.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		status := subcommands.ExitSuccess
		for _, id := range f.Args() {
			removed, err := s.DeleteTransaction(id)
			switch {
			case err != nil:
				return failf("could not remove transaction %s: %v", id, err)
			case !removed:
				status = failf("no transaction %s", id)
			default:
				fmt.Fprintf(out, "Removed transaction %s\n", id)
			}
		}
		return status
	})
}

// --- List Command ---

type listCmd struct {
	month    string
	kind     string
	category string
	all      bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the transactions of a month" }
func (*listCmd) Usage() string {
	return `fin list [-month <YYYY-MM> | -all] [-type <type>] [-category <category>]

  Lists the transactions of the current month, or of the given month, newest first.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to list (YYYY-MM), defaults to the current month")
	f.StringVar(&c.kind, "type", "", "Only list transactions of this type (income, expense)")
	f.StringVar(&c.category, "category", "", "Only list transactions of this category")
	f.BoolVar(&c.all, "all", false, "List the transactions of every month")
}

func (c *listCmd) selection() (finance.Selection, string, error) {
	sel := finance.Selection{Category: c.category}
	var err error
	if c.kind != "" {
		if sel.Type, err = finance.ParseTransactionType(c.kind); err != nil {
			return sel, "", err
		}
	}
	if c.all {
		return sel, "All transactions", nil
	}
	sel.Month = date.MonthOf(today())
	if c.month != "" {
		if sel.Month, err = date.ParseMonth(c.month); err != nil {
			return sel, "", err
		}
	}
	return sel, renderer.MonthTitle(sel.Month), nil
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all && c.month != "" {
		fmt.Fprintln(f.Output(), "Error: -all and -month flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	sel, title, err := c.selection()
	if err != nil {
		return failf("%v", err)
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		printMarkdown(renderer.TransactionsMarkdown(title, sel.Apply(s.Transactions())))
		return subcommands.ExitSuccess
	})
}
