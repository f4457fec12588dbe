package date

import (
	"fmt"
	"strings"
	"time"
)

// MonthFormat is the layout of a month key, e.g. "2024-02".
const MonthFormat = "2006-01"

// Month is a calendar month of a given year.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month d belongs to.
func MonthOf(d Date) Month { return Month{d.Year(), d.Month()} }

// ParseMonth parses a month key in "YYYY-MM" format (a single digit month is accepted).
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse("2006-1", strings.TrimSpace(str))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return Month{on.Year(), on.Month()}, nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// First returns the first day of the month.
func (m Month) First() Date { return New(m.Year, m.Month, 1) }

// Last returns the last day of the month, leap years included.
func (m Month) Last() Date { return New(m.Year, m.Month+1, 0) }

// Range returns the inclusive range from the first to the last day of the month.
func (m Month) Range() Range { return Range{From: m.First(), To: m.Last()} }

// Add returns the month i months after m (before when i is negative).
func (m Month) Add(i int) Month { return MonthOf(New(m.Year, m.Month+time.Month(i), 1)) }

// String returns the month key, e.g. "2024-02".
func (m Month) String() string { return m.First().Format(MonthFormat) }

// LastMonths returns the n months ending with m, oldest first.
func LastMonths(m Month, n int) []Month {
	months := make([]Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, m.Add(-i))
	}
	return months
}
