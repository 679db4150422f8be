package ledger

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"
)

// AmountGroup is the name of the capture group that, when present in a
// pattern, holds the asserted amount.
const AmountGroup = "amount"

// DefaultMatchTimeout bounds a single match so a pathological pattern
// cannot hang the run.
const DefaultMatchTimeout = 5 * time.Second

// Matcher recognises balance assertions in transaction descriptions.
//
// Patterns use Perl/Python syntax, including look-arounds. The asserted
// amount is taken from the first match in a description: the "amount"
// group if the pattern names one, else the first capture group, else the
// whole match.
type Matcher struct {
	pattern string
	re      *regexp2.Regexp
}

// CompileMatcher compiles pattern into a Matcher.
func CompileMatcher(pattern string) (*Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Underlying: err}
	}
	re.MatchTimeout = DefaultMatchTimeout

	return &Matcher{pattern: pattern, re: re}, nil
}

// MustCompileMatcher is like CompileMatcher but panics on error.
func MustCompileMatcher(pattern string) *Matcher {
	m, err := CompileMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether the pattern occurs anywhere in description.
func (m *Matcher) Match(description string) (bool, error) {
	ok, err := m.re.MatchString(description)
	if err != nil {
		return false, &PatternError{Pattern: m.pattern, Underlying: err}
	}
	return ok, nil
}

// Extract parses the asserted amount out of description.
func (m *Matcher) Extract(description string) (decimal.Decimal, error) {
	match, err := m.re.FindStringMatch(description)
	if err != nil {
		return decimal.Zero, &PatternError{Pattern: m.pattern, Underlying: err}
	}
	if match == nil {
		return decimal.Zero, &AssertionValueError{Description: description, Pattern: m.pattern}
	}

	text := match.String()
	if g := match.GroupByName(AmountGroup); g != nil && len(g.Captures) > 0 {
		text = g.String()
	} else if groups := match.Groups(); len(groups) > 1 && len(groups[1].Captures) > 0 {
		text = groups[1].String()
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, &AssertionValueError{
			Description: description,
			Pattern:     m.pattern,
			Text:        text,
			Underlying:  err,
		}
	}
	return amount, nil
}

func (m *Matcher) String() string {
	return m.pattern
}
