package finance

import (
	"fmt"
	"strings"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// TransactionType tells whether a transaction brings money in or takes it out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TransactionTypes lists the transaction types in display order.
var TransactionTypes = []TransactionType{Expense, Income}

// ParseTransactionType parses "income" or "expense".
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w %q, want %q or %q", ErrInvalidType, s, Income, Expense)
	}
	return t, nil
}

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool { return t == Income || t == Expense }

// Transaction is an income or an expense.
//
// Amount is always strictly positive, the direction of the flow is given by
// Type.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        date.Date       `json:"date"`
}

// Signed returns the amount, negated for an expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// validate checks the fields every stored transaction must satisfy.
func (t Transaction) validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, t.Type)
	}
	if err := validateAmount(t.Amount); err != nil {
		return err
	}
	if !t.Currency.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCurrency, t.Currency)
	}
	return validateDate(t.Date)
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	return nil
}

func validateDate(d date.Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidDate)
	}
	return nil
}

// TransactionPatch holds the fields to change in a Transaction. Nil fields are
// left untouched.
type TransactionPatch struct {
	Type        *TransactionType
	Amount      *decimal.Decimal
	Currency    *Currency
	Category    *string
	Description *string
	Date        *date.Date
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool { return p == TransactionPatch{} }

// validate checks the fields the patch sets. Fields it leaves alone are
// kept as they are, even when a loaded document holds values the Store would
// not accept today, like a currency outside Currencies.
func (p TransactionPatch) validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, *p.Type)
	}
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Currency != nil && !p.Currency.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCurrency, *p.Currency)
	}
	if p.Date != nil {
		return validateDate(*p.Date)
	}
	return nil
}

// apply merges the patch into a copy of tx.
func (p TransactionPatch) apply(tx Transaction) Transaction {
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Currency != nil {
		tx.Currency = *p.Currency
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	return tx
}
