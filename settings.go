package finance

import (
	"fmt"
	"maps"
	"strings"

	"github.com/shopspring/decimal"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ParseTheme parses "light", "dark" or "auto".
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w %q, want light, dark or auto", ErrInvalidTheme, s)
	}
	return t, nil
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark || t == ThemeAuto }

// Settings are the user preferences and the exchange rate snapshot.
//
// ExchangeRates holds, for each currency, the amount of ReportingCurrency one
// unit of that currency is worth. The reporting currency itself is implicitly
// at 1.
type Settings struct {
	Theme           Theme                        `json:"theme"`
	DefaultCurrency Currency                     `json:"defaultCurrency"`
	ExchangeRates   map[Currency]decimal.Decimal `json:"exchangeRates"`
}

func (s Settings) clone() Settings {
	s.ExchangeRates = maps.Clone(s.ExchangeRates)
	return s
}

func defaultSettings() Settings {
	return Settings{
		Theme:           ThemeAuto,
		DefaultCurrency: BYN,
		ExchangeRates: map[Currency]decimal.Decimal{
			USD: newDecimal(3.27),
			EUR: newDecimal(3.55),
			RUB: newDecimal(0.035),
		},
	}
}

// SettingsPatch holds the settings to change. Nil fields are left untouched,
// a non nil ExchangeRates replaces the whole rate snapshot.
type SettingsPatch struct {
	Theme           *Theme
	DefaultCurrency *Currency
	ExchangeRates   map[Currency]decimal.Decimal
}

func (p SettingsPatch) validate() error {
	if p.Theme != nil && !p.Theme.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidTheme, *p.Theme)
	}
	if p.DefaultCurrency != nil && !p.DefaultCurrency.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCurrency, *p.DefaultCurrency)
	}
	for cur, rate := range p.ExchangeRates {
		if err := validateRate(cur, rate); err != nil {
			return err
		}
	}
	return nil
}

func (p SettingsPatch) apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.DefaultCurrency != nil {
		s.DefaultCurrency = *p.DefaultCurrency
	}
	if p.ExchangeRates != nil {
		s.ExchangeRates = maps.Clone(p.ExchangeRates)
	}
	return s
}

func validateRate(cur Currency, rate decimal.Decimal) error {
	if !cur.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCurrency, cur)
	}
	if cur == ReportingCurrency {
		return fmt.Errorf("%w: %s is the reporting currency, its rate is always 1", ErrInvalidCurrency, cur)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: rate for %s got %s", ErrInvalidAmount, cur, rate)
	}
	return nil
}
