package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// --- Deposit and Withdraw Commands ---

// savingCmd records a savings entry of the given kind.
type savingCmd struct {
	kind finance.SavingType
	date string
	note string
}

func (c *savingCmd) Name() string { return string(c.kind) }
func (c *savingCmd) Synopsis() string {
	if c.kind == finance.Deposit {
		return "put dollars into savings"
	}
	return "take dollars out of savings"
}
func (c *savingCmd) Usage() string {
	return fmt.Sprintf(`fin %s [-d <date>] [-m <note>] <amount>

  Records a savings %s, the amount is in %s.
`, c.kind, c.kind, finance.SavingsCurrency)
}

func (c *savingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.note, "m", "", "An optional note")
}

func (c *savingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
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
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		e, err := s.AddSaving(finance.Saving{Type: c.kind, Amount: amount, Note: c.note, Date: day})
		if err != nil {
			return failf("could not add %s: %v", c.kind, err)
		}
		fmt.Fprintf(out, "Added %s %s on %s (%s), savings are now %s\n",
			c.kind, finance.FormatMoney(e.Amount, finance.SavingsCurrency), e.Date, e.ID,
			finance.FormatMoney(s.SavingsBalance(), finance.SavingsCurrency))
		return subcommands.ExitSuccess
	})
}

// --- Savings Command ---

type savingsCmd struct{}

func (*savingsCmd) Name() string     { return "savings" }
func (*savingsCmd) Synopsis() string { return "display the savings balance and entries" }
func (*savingsCmd) Usage() string {
	return `fin savings

  Displays the savings balance, its value in the reporting currency, and every entry.
`
}

func (*savingsCmd) SetFlags(*flag.FlagSet) {}

func (*savingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		printMarkdown(renderer.SavingsMarkdown(finance.NewSavingsSummary(s.Document())))
		return subcommands.ExitSuccess
	})
}

// --- Edit Saving Command ---

type editSavingCmd struct {
	kind   string
	amount string
	note   string
	date   string
}

func (*editSavingCmd) Name() string     { return "edit-saving" }
func (*editSavingCmd) Synopsis() string { return "change the fields of a savings entry" }
func (*editSavingCmd) Usage() string {
	return `fin edit-saving [-type <type>] [-amount <amount>] [-m <note>] [-d <date>] <id>

  Changes only the given fields of the savings entry <id>.
`
}

func (c *editSavingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "New type (deposit, withdraw)")
	f.StringVar(&c.amount, "amount", "", "New amount")
	f.StringVar(&c.note, "m", "", "New note")
	f.StringVar(&c.date, "d", "", "New date (YYYY-MM-DD)")
}

func (c *editSavingCmd) patch(f *flag.FlagSet) (finance.SavingPatch, error) {
	var p finance.SavingPatch
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "type":
			var v finance.SavingType
			v, err = finance.ParseSavingType(c.kind)
			p.Type = &v
		case "amount":
			var v decimal.Decimal
			v, err = parseAmount(c.amount)
			p.Amount = &v
		case "m":
			p.Note = &c.note
		case "d":
			var v date.Date
			v, err = parseDay(c.date)
			p.Date = &v
		}
	})
	return p, err
}

func (c *editSavingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	patch, err := c.patch(f)
	if err != nil {
		return failf("%v", err)
	}
	if patch.IsEmpty() {
		return failf("nothing to change, see 'fin help edit-saving'")
	}
	id := f.Arg(0)
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		found, err := s.UpdateSaving(id, patch)
		if err != nil {
			return failf("could not update savings entry %s: %v", id, err)
		}
		if !found {
			return failf("no savings entry %s", id)
		}
		fmt.Fprintf(out, "Updated savings entry %s\n", id)
		return subcommands.ExitSuccess
	})
}

// --- Remove Saving Command ---

type rmSavingCmd struct{}

func (*rmSavingCmd) Name() string     { return "rm-saving" }
func (*rmSavingCmd) Synopsis() string { return "remove savings entries" }
func (*rmSavingCmd) Usage() string {
	return `fin rm-saving <id>...

  Removes the savings entries with the given IDs.
`
}

func (*rmSavingCmd) SetFlags(*flag.FlagSet) {}

func (*rmSavingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		status := subcommands.ExitSuccess
		for _, id := range f.Args() {
			removed, err := s.DeleteSaving(id)
			switch {
			case err != nil:
				return failf("could not remove savings entry %s: %v", id, err)
			case !removed:
				status = failf("no savings entry %s", id)
			default:
				fmt.Fprintf(out, "Removed savings entry %s\n", id)
			}
		}
		return status
	})
}
