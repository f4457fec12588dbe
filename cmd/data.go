package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// --- Category Command ---

type categoryCmd struct {
	kind   string
	remove bool
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "list, add or remove categories" }
func (*categoryCmd) Usage() string {
	return `fin category [-type <type>] [-rm] [<name>]

  Without name, lists the categories. Otherwise adds the category <name> to the
  categories of the type, or removes it with -rm.
`
}

func (c *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", string(finance.Expense), "Type of the category (income, expense)")
	f.BoolVar(&c.remove, "rm", false, "Remove the category")
}

func (c *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := finance.ParseTransactionType(c.kind)
	if err != nil {
		return failf("%v", err)
	}
	name := strings.Join(f.Args(), " ")
	if name == "" && c.remove {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		switch {
		case name == "":
			printMarkdown(renderer.CategoriesMarkdown(s.Document().Categories))
		case c.remove:
			if err := s.RemoveCategory(kind, name); err != nil {
				return failf("could not remove category %q: %v", name, err)
			}
			fmt.Fprintf(out, "Removed %s category %q\n", kind, name)
			if s.CategoryInUse(name) {
				fmt.Fprintf(out, "Warning: transactions or budgets still use %q\n", name)
			}
		default:
			added, err := s.AddCategory(kind, name)
			if err != nil {
				return failf("could not add category %q: %v", name, err)
			}
			if !added {
				fmt.Fprintf(out, "%s category %q already exists\n", kind, name)
				break
			}
			fmt.Fprintf(out, "Added %s category %q\n", kind, name)
		}
		return subcommands.ExitSuccess
	})
}

// --- Budget Command ---

type budgetCmd struct {
	remove bool
}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "display or set the monthly budgets" }
func (*budgetCmd) Usage() string {
	return `fin budget [<category> <limit> [<currency>]]
fin budget -rm <category>

  Without argument, displays the budgets of the current month. Otherwise sets,
  or replaces, the monthly limit of a category. The currency defaults to the
  default currency of the settings.
`
}

func (c *budgetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.remove, "rm", false, "Remove the budget of the category")
}

func (c *budgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.remove && f.NArg() == 1:
		return withStore(func(s *finance.Store) subcommands.ExitStatus {
			if err := s.RemoveBudget(f.Arg(0)); err != nil {
				return failf("could not remove budget: %v", err)
			}
			fmt.Fprintf(out, "Removed budget of %q\n", f.Arg(0))
			return subcommands.ExitSuccess
		})
	case c.remove:
		f.Usage()
		return subcommands.ExitUsageError
	case f.NArg() == 0:
		return withStore(func(s *finance.Store) subcommands.ExitStatus {
			printMarkdown(renderer.BudgetsMarkdown(finance.NewBudgetReport(s.Document(), s.Today())))
			return subcommands.ExitSuccess
		})
	case f.NArg() > 3 || f.NArg() == 1:
		f.Usage()
		return subcommands.ExitUsageError
	}

	category := f.Arg(0)
	limit, err := parseAmount(f.Arg(1))
	if err != nil {
		return failf("%v", err)
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		cur := s.Settings().DefaultCurrency
		if f.NArg() == 3 {
			if cur, err = finance.ParseCurrency(f.Arg(2)); err != nil {
				return failf("%v", err)
			}
		}
		if err := s.SetBudget(category, limit, cur); err != nil {
			return failf("could not set budget: %v", err)
		}
		fmt.Fprintf(out, "Budget of %q set to %s a month\n", category, finance.FormatMoney(limit, cur))
		if !s.Document().Categories.Contains(finance.Expense, category) {
			fmt.Fprintf(out, "Warning: %q is not an expense category\n", category)
		}
		return subcommands.ExitSuccess
	})
}

// --- Settings Command ---

// rates collects repeated -rate CUR=value flags.
type rates map[finance.Currency]decimal.Decimal

func (r rates) String() string {
	var parts []string
	for _, cur := range finance.Currencies {
		if v, ok := r[cur]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", cur, v))
		}
	}
	return strings.Join(parts, ",")
}

func (r rates) Set(s string) error {
	code, value, found := strings.Cut(s, "=")
	if !found {
		return fmt.Errorf("invalid rate %q, want CUR=value", s)
	}
	cur, err := finance.ParseCurrency(code)
	if err != nil {
		return err
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", value, err)
	}
	r[cur] = rate
	return nil
}

type settingsCmd struct {
	theme    string
	currency string
	rates    rates
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display or change the settings" }
func (*settingsCmd) Usage() string {
	return `fin settings [-theme <theme>] [-currency <currency>] [-rate <CUR=value>]...

  Without flag, displays the settings. Exchange rates are the value of one unit
  of the currency in BYN.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	c.rates = rates{}
	f.StringVar(&c.theme, "theme", "", "Display theme (light, dark, auto)")
	f.StringVar(&c.currency, "currency", "", "Default currency of new transactions")
	f.Var(c.rates, "rate", "Exchange rate as CUR=value, can be repeated")
}

func (c *settingsCmd) patch() (finance.SettingsPatch, error) {
	var p finance.SettingsPatch
	if c.theme != "" {
		t, err := finance.ParseTheme(c.theme)
		if err != nil {
			return p, err
		}
		p.Theme = &t
	}
	if c.currency != "" {
		cur, err := finance.ParseCurrency(c.currency)
		if err != nil {
			return p, err
		}
		p.DefaultCurrency = &cur
	}
	return p, nil
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	patch, err := c.patch()
	if err != nil {
		return failf("%v", err)
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		if f.NFlag() == 0 {
			printMarkdown(renderer.SettingsMarkdown(s.Settings()))
			return subcommands.ExitSuccess
		}
		if err := s.UpdateSettings(patch); err != nil {
			return failf("could not update settings: %v", err)
		}
		for _, cur := range finance.Currencies {
			if rate, ok := c.rates[cur]; ok {
				if err := s.SetExchangeRate(cur, rate); err != nil {
					return failf("could not set the rate of %s: %v", cur, err)
				}
			}
		}
		fmt.Fprintln(out, "Settings updated")
		return subcommands.ExitSuccess
	})
}
