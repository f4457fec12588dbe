package cmd

import (
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of fin: subcommands, their flags,
// and the values the ledger knows of, like categories and IDs.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"store": predict.Files("*"),
			"v":     predict.Nothing,
		},
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Command.Name(), flag.ContinueOnError)
		c.Command.SetFlags(f)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		f.VisitAll(func(fl *flag.Flag) {
			sub.Flags[fl.Name] = flagPredictor(c.Command.Name(), fl)
		})
		sub.Args = argsPredictor(c.Command.Name())
		root.Sub[c.Command.Name()] = sub
	}
	return root
}

func currencyNames() []string {
	names := make([]string, 0, len(finance.Currencies))
	for _, c := range finance.Currencies {
		names = append(names, string(c))
	}
	return names
}

func flagPredictor(command string, fl *flag.Flag) complete.Predictor {
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch fl.Name {
	case "c", "currency":
		return predict.Set(currencyNames())
	case "type":
		if command == "edit-saving" {
			return predict.Set{string(finance.Deposit), string(finance.Withdraw)}
		}
		return predict.Set{string(finance.Expense), string(finance.Income)}
	case "category":
		return categories(finance.Expense, finance.Income)
	case "p":
		return predict.Set{string(finance.PeriodMonth), string(finance.PeriodQuarter), string(finance.PeriodYear)}
	case "theme":
		return predict.Set{string(finance.ThemeLight), string(finance.ThemeDark), string(finance.ThemeAuto)}
	case "rate":
		return predict.Set{"USD=", "EUR=", "RUB="}
	case "o":
		return predict.Files("*.json")
	}
	return predict.Something
}

func argsPredictor(command string) complete.Predictor {
	switch command {
	case string(finance.Expense), "budget":
		return categories(finance.Expense)
	case string(finance.Income):
		return categories(finance.Income)
	case "convert":
		return predict.Set(currencyNames())
	case "import":
		return predict.Files("*.json")
	case "edit", "rm":
		return fromStore(func(s *finance.Store) []string {
			var ids []string
			for _, tx := range s.Transactions() {
				ids = append(ids, tx.ID)
			}
			return ids
		})
	case "edit-saving", "rm-saving":
		return fromStore(func(s *finance.Store) []string {
			var ids []string
			for _, e := range s.Savings() {
				ids = append(ids, e.ID)
			}
			return ids
		})
	case "topic":
		return complete.PredictFunc(func(string) []string {
			topics, _ := docs.GetAllTopics()
			return topics
		})
	}
	return predict.Nothing
}

// categories predicts the categories of the given types.
func categories(kinds ...finance.TransactionType) complete.Predictor {
	return fromStore(func(s *finance.Store) []string {
		var names []string
		for _, kind := range kinds {
			names = append(names, s.Categories(kind)...)
		}
		return names
	})
}

// fromStore predicts values read from the store, none when it cannot be
// opened.
func fromStore(values func(s *finance.Store) []string) complete.Predictor {
	return complete.PredictFunc(func(string) []string {
		s, err := openStore()
		if err != nil {
			return nil
		}
		defer s.Close()
		return values(s)
	})
}
