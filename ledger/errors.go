package ledger

import (
	"fmt"
	"time"
)

// PatternError is returned when the assertion pattern does not compile or
// a match times out.
type PatternError struct {
	Pattern    string
	Underlying error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid assertion pattern %q: %v", e.Pattern, e.Underlying)
}

func (e *PatternError) Unwrap() error {
	return e.Underlying
}

// AssertionValueError is returned when the text the pattern matched in a
// description is not a number.
type AssertionValueError struct {
	Account     string
	Date        time.Time
	Description string
	Pattern     string
	Text        string
	Underlying  error
}

func (e *AssertionValueError) Error() string {
	location := "assertion"
	if e.Account != "" {
		location = fmt.Sprintf("%s: assertion in account '%s'", e.Date.Format(time.DateOnly), e.Account)
	}

	if e.Underlying == nil {
		return fmt.Sprintf("%s: pattern %q does not match description %q", location, e.Pattern, e.Description)
	}
	return fmt.Sprintf("%s: cannot parse %q from description %q as a number", location, e.Text, e.Description)
}

func (e *AssertionValueError) Unwrap() error {
	return e.Underlying
}

func (e *AssertionValueError) GetAccount() string {
	return e.Account
}

func (e *AssertionValueError) GetDate() time.Time {
	return e.Date
}

// BalanceMismatchError describes a failed balance assertion.
type BalanceMismatchError struct {
	Account  string
	Date     time.Time
	Expected string
	Actual   string
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("%s: Balance mismatch for %s:\n  Expected: %s\n  Actual:   %s",
		e.Date.Format(time.DateOnly), e.Account, e.Expected, e.Actual)
}

func (e *BalanceMismatchError) GetAccount() string {
	return e.Account
}

func (e *BalanceMismatchError) GetDate() time.Time {
	return e.Date
}
