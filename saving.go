package finance

import (
	"fmt"
	"strings"

	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

// SavingType is the direction of a savings entry.
type SavingType string

const (
	Deposit  SavingType = "deposit"
	Withdraw SavingType = "withdraw"
)

// ParseSavingType parses "deposit" or "withdraw".
func ParseSavingType(s string) (SavingType, error) {
	t := SavingType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w %q, want %q or %q", ErrInvalidType, s, Deposit, Withdraw)
	}
	return t, nil
}

// Valid reports whether t is deposit or withdraw.
func (t SavingType) Valid() bool { return t == Deposit || t == Withdraw }

// Saving is a deposit to or a withdrawal from the savings, always in
// SavingsCurrency.
type Saving struct {
	ID     string          `json:"id"`
	Type   SavingType      `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
	Date   date.Date       `json:"date"`
}

// Signed returns the amount, negated for a withdrawal.
func (s Saving) Signed() decimal.Decimal {
	if s.Type == Withdraw {
		return s.Amount.Neg()
	}
	return s.Amount
}

func (s Saving) validate() error {
	if !s.Type.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, s.Type)
	}
	if err := validateAmount(s.Amount); err != nil {
		return err
	}
	return validateDate(s.Date)
}

// SavingsBalance returns the sum of deposits minus the sum of withdrawals.
func SavingsBalance(savings []Saving) decimal.Decimal {
	balance := decimal.Zero
	for _, s := range savings {
		balance = balance.Add(s.Signed())
	}
	return balance
}

// SavingPatch holds the fields to change in a Saving. Nil fields are left
// untouched.
type SavingPatch struct {
	Type   *SavingType
	Amount *decimal.Decimal
	Note   *string
	Date   *date.Date
}

// IsEmpty reports whether the patch changes nothing.
func (p SavingPatch) IsEmpty() bool { return p == SavingPatch{} }

// validate checks the fields the patch sets.
func (p SavingPatch) validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, *p.Type)
	}
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Date != nil {
		return validateDate(*p.Date)
	}
	return nil
}

func (p SavingPatch) apply(s Saving) Saving {
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Amount != nil {
		s.Amount = *p.Amount
	}
	if p.Note != nil {
		s.Note = *p.Note
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	return s
}
