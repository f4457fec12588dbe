// Package agent runs the "fin assist" chat: a facilitator model answers the
// user and hands ledger questions to the accountant, which reads the Store
// through function calls, and general finance questions to the advisor.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is one chat session on a terminal.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print displays an answer, which is markdown. Raw text on w when nil.
	Print func(markdown string)
}

// New returns an Agent reading questions from r and writing to w. Its
// facilitator knows every expert as a function it can call.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens a chat for each expert, then for the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("could not start %s: %w", e.Name, err)
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// quit lists the inputs that end the session.
var quit = []string{"bye", "exit", "quit"}

// Run chats until the user quits or closes the input. The questions are
// asked first, as if typed by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, questions ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.w, "Ask about your budgets, savings and spending. Type 'bye' to leave.")

	for {
		question, err := a.next(&questions)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if question == "" {
			continue
		}
		if isQuit(question) {
			return nil
		}
		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
		if err != nil {
			return err
		}
		a.say(answerText(answer))
	}
}

// next prompts for the next question, taken from queued before the input.
func (a *Agent) next(queued *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*queued) > 0 {
		q := strings.TrimSpace((*queued)[0])
		*queued = (*queued)[1:]
		fmt.Fprintln(a.w, q)
		return q, nil
	}
	line, err := a.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *Agent) say(markdown string) {
	if a.Print != nil {
		a.Print(markdown)
		return
	}
	fmt.Fprintln(a.w, markdown)
}

func isQuit(input string) bool {
	for _, q := range quit {
		if strings.EqualFold(input, q) {
			return true
		}
	}
	return false
}

// answerText joins the text parts of a model answer.
func answerText(c *genai.Content) string {
	if c == nil {
		return ""
	}
	var texts []string
	for _, p := range c.Parts {
		if p != nil && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
