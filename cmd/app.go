// Package cmd implements the fin command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/kv"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// Commands lists the fin subcommands with their group.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"transactions", &addCmd{kind: finance.Expense}},
	{"transactions", &addCmd{kind: finance.Income}},
	{"transactions", &editCmd{}},
	{"transactions", &rmCmd{}},
	{"transactions", &listCmd{}},
	{"transactions", &categoryCmd{}},

	{"savings", &savingCmd{kind: finance.Deposit}},
	{"savings", &savingCmd{kind: finance.Withdraw}},
	{"savings", &savingsCmd{}},
	{"savings", &editSavingCmd{}},
	{"savings", &rmSavingCmd{}},

	{"reports", &dashboardCmd{}},
	{"reports", &budgetCmd{}},
	{"reports", &statsCmd{}},
	{"reports", &convertCmd{}},

	{"data", &settingsCmd{}},
	{"data", &exportCmd{}},
	{"data", &importCmd{}},
	{"data", &resetCmd{}},
	{"data", &queryCmd{}},

	{"help", &topicCmd{}},
	{"help", &assistCmd{}},
}

const (
	EnvStore   = "FIN_STORE"
	EnvVerbose = "FIN_VERBOSE"
	EnvToday   = "FIN_TODAY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeFlag = flag.String("store", "", "Where the document is stored: a directory, sqlite:<file> or memory:. Defaults to $"+EnvStore+" or ~/.fin")
var verboseFlag = flag.Bool("v", false, "Verbose logging, defaults to $"+EnvVerbose)

// out is where commands print their reports.
var out io.Writer = os.Stdout

// theme is the display theme of the last opened store.
var theme = finance.ThemeAuto

// StoreLocation returns the storage location from the flag, the environment
// or the default ~/.fin directory, in that order.
func StoreLocation() string {
	if *storeFlag != "" {
		return *storeFlag
	}
	if env := os.Getenv(EnvStore); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fin"
	}
	return filepath.Join(home, ".fin")
}

// Verbose reports whether verbose logging was requested by flag or
// environment.
func Verbose() bool {
	if *verboseFlag {
		return true
	}
	v, _ := strconv.ParseBool(os.Getenv(EnvVerbose))
	return v
}

// SetupLogging installs the default logger on stderr.
func SetupLogging() {
	level := slog.LevelWarn
	if Verbose() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// today is the date of the day, unless pinned by the environment.
func today() date.Date {
	if env := os.Getenv(EnvToday); env != "" {
		if d, err := date.Parse(env); err == nil {
			return d
		}
		slog.Warn("ignoring invalid date", "env", EnvToday, "value", env)
	}
	return date.Today()
}

// openStore opens the ledger store at StoreLocation.
func openStore() (*finance.Store, error) {
	location := StoreLocation()
	medium, err := kv.Open(location)
	if err != nil {
		return nil, fmt.Errorf("could not open storage %q: %w", location, err)
	}
	s, err := finance.Open(medium, finance.WithLogger(slog.Default()), finance.WithClock(today))
	if err != nil {
		if c, ok := medium.(io.Closer); ok {
			c.Close()
		}
		return nil, fmt.Errorf("could not open ledger in %q: %w", location, err)
	}
	theme = s.Settings().Theme
	return s, nil
}

// withStore runs fn on the opened store and closes it.
func withStore(fn func(s *finance.Store) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Warn("could not close the store", "error", err)
		}
	}()
	return fn(s)
}

// printMarkdown prints md, rendered for the terminal when out is one.
func printMarkdown(md string) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, md)
		return
	}
	style := glamour.WithAutoStyle()
	switch theme {
	case finance.ThemeDark:
		style = glamour.WithStandardStyle("dark")
	case finance.ThemeLight:
		style = glamour.WithStandardStyle("light")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithEmoji())
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	rendered, err := r.Render(md)
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, rendered)
}

// failf reports a command failure on stderr.
func failf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
