package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the balance, the current month and the recent transactions" }
func (*dashboardCmd) Usage() string {
	return `fin dashboard

  Displays the balance of all times, the incomes, expenses and savings of the
  current month, and the most recent transactions.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		printMarkdown(renderer.RenderDashboard(finance.NewDashboard(s.Document(), s.Today())))
		return subcommands.ExitSuccess
	})
}

type statsCmd struct {
	period string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display statistics over a month, a quarter or a year" }
func (*statsCmd) Usage() string {
	return `fin stats [-p <period>]

  Displays the expenses by category, the monthly incomes and expenses, and the
  totals over the period ending today.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", string(finance.PeriodMonth), "Period (month, quarter, year)")
}

func (c *statsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := finance.ParsePeriod(c.period)
	if err != nil {
		return failf("%v", err)
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		printMarkdown(renderer.RenderStatistics(finance.NewStatistics(s.Document(), p, s.Today())))
		return subcommands.ExitSuccess
	})
}

type convertCmd struct{}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount between currencies" }
func (*convertCmd) Usage() string {
	return `fin convert <amount> <from> <to>

  Converts an amount with the exchange rates of the settings, through BYN.
`
}

func (*convertCmd) SetFlags(*flag.FlagSet) {}

func (*convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(f.Arg(0))
	if err != nil {
		return failf("%v", err)
	}
	from, err := finance.ParseCurrency(f.Arg(1))
	if err != nil {
		return failf("%v", err)
	}
	to, err := finance.ParseCurrency(f.Arg(2))
	if err != nil {
		return failf("%v", err)
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		printMarkdown(renderer.ConversionMarkdown(amount, from, to, s.Normalizer()))
		return subcommands.ExitSuccess
	})
}
