package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the whole document to a backup file" }
func (*exportCmd) Usage() string {
	return `fin export [-o <file>]

  Writes the whole document as indented JSON. The file defaults to
  finance-backup-<date>.json, use '-o -' to write to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, - for the standard output")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		if c.output == "-" {
			if err := s.Export(out); err != nil {
				return failf("%v", err)
			}
			return subcommands.ExitSuccess
		}
		name := c.output
		if name == "" {
			name = finance.ExportFilename(s.Today())
		}
		var buf bytes.Buffer
		if err := s.Export(&buf); err != nil {
			return failf("%v", err)
		}
		if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
			return failf("could not write backup: %v", err)
		}
		fmt.Fprintf(out, "Exported to %s\n", name)
		return subcommands.ExitSuccess
	})
}

// --- Import Command ---

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the whole document with a backup file" }
func (*importCmd) Usage() string {
	return `fin import <file>

  Replaces the whole document with the content of a backup file. Invalid files
  are rejected and nothing changes.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return failf("could not read backup: %v", err)
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		if err := s.Import(data); err != nil {
			return failf("%v", err)
		}
		fmt.Fprintf(out, "Imported %d transactions and %d savings entries\n", len(s.Transactions()), len(s.Savings()))
		return subcommands.ExitSuccess
	})
}

// --- Reset Command ---

type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete everything and start from the defaults" }
func (*resetCmd) Usage() string {
	return `fin reset -yes

  Deletes every transaction, savings entry and budget, and restores the default
  categories and settings. Export a backup first.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(f.Output(), "Error: reset deletes everything, confirm with -yes.")
		return subcommands.ExitUsageError
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		if err := s.ResetAll(); err != nil {
			return failf("%v", err)
		}
		fmt.Fprintln(out, "Everything was reset")
		return subcommands.ExitSuccess
	})
}

// --- Query Command ---

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "read values of the document with a JSONPath" }
func (*queryCmd) Usage() string {
	return `fin query <jsonpath>

  Prints as JSON the values of the document selected by a JSONPath expression,
  for instance '$.settings.exchangeRates.USD' or '$.transactions[?(@.amount > 100)].id'.
`
}

func (*queryCmd) SetFlags(*flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		v, err := finance.Query(s.Document(), f.Arg(0))
		if err != nil {
			return failf("%v", err)
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return failf("%v", err)
		}
		fmt.Fprintln(out, string(data))
		return subcommands.ExitSuccess
	})
}
