package agent

import (
	"context"

	"github.com/etnz/finance"
	"github.com/etnz/finance/docs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user keeps track of his incomes, expenses, savings and monthly budgets.
			He comes to understand where his money goes and how to spend less.
			If he is upset try to understand why, and seek for a clear user approval.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			Amounts are in Belarusian rubles (BYN) unless stated otherwise.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert grounded on Google Search, for general advice
// and current exchange rates.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a personal finance advisor,
		aware of budgeting methods, saving strategies and the current exchange rates
		of the Belarusian ruble.
		Ask the Advisor whenever you need general advice or recent information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in personal finance. You leverage Google Search to
			ground your assertions, in particular for exchange rates between BYN, RUB, USD and EUR.
			Keep your advice practical and short.
				`}}},
		},
	}
}

// NewAccountant returns the expert reading the user's ledger in s.
func NewAccountant(s *finance.Store) *Expert {
	lib := accountantTools(s)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's ledger:
		transactions, savings, budgets and settings.
		He computes the relevant figures about the user's incomes, expenses and savings.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's ledger.
				You know how to use the Tools to extract relevant information about the user's money.
				You are part of a team of experts, yours is everything about the user's ledger. They might ask
				you questions about it, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about
				  - the dashboard: balance and current month
				  - the budgets of the current month
				  - statistics over a month, a quarter or a year
				  - the transactions of a month
				  - the savings
				  - the exchange rates

				` + must(docs.GetTopic("dates")),
			}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
