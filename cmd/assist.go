package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }

func (*assistCmd) Usage() string {
	return `fin assist [<question>]

  Starts an interactive session with the AI assistant, asking the question
  first if any. The assistant reads the ledger but never changes it.
  GEMINI_API_KEY must be set, in the environment or in a .env file.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	return withStore(func(s *finance.Store) subcommands.ExitStatus {
		a := agent.New(out, os.Stdin, agent.NewAccountant(s), agent.NewAdvisor())
		a.Print = printMarkdown
		if err := a.Run(ctx, client, initialPrompt); err != nil {
			fmt.Fprintln(os.Stderr, "Agent failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
