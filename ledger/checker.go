package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/gncassert/gnucash"
	"github.com/robinvdvleuten/gncassert/logging"
	"github.com/robinvdvleuten/gncassert/telemetry"
)

// Assertion is a record whose description carries a balance assertion.
type Assertion struct {
	Record
	Expected decimal.Decimal
}

// Result is the outcome of checking one assertion.
type Result struct {
	Account     string
	Date        time.Time
	Description string
	Expected    decimal.Decimal
	Actual      decimal.Decimal
	Places      int32
}

// OK reports whether the rounded balance equals the asserted value
// exactly. Rounding is the only tolerance.
func (r Result) OK() bool {
	return r.Actual.Equal(r.Expected)
}

// Err returns a *BalanceMismatchError for a failed assertion, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &BalanceMismatchError{
		Account:  r.Account,
		Date:     r.Date,
		Expected: r.Expected.String(),
		Actual:   r.Actual.StringFixed(r.Places),
	}
}

// FindAssertions returns the records whose description matches m, sorted
// by date. Assertions on the same date keep their document order.
func FindAssertions(records []Record, m *Matcher) ([]Assertion, error) {
	var assertions []Assertion
	for _, r := range records {
		ok, err := m.Match(r.Description)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		expected, err := m.Extract(r.Description)
		if err != nil {
			var valueErr *AssertionValueError
			if errors.As(err, &valueErr) {
				valueErr.Date = r.Date
			}
			return nil, err
		}
		assertions = append(assertions, Assertion{Record: r, Expected: expected})
	}

	slices.SortStableFunc(assertions, func(a, b Assertion) int {
		return a.Date.Compare(b.Date)
	})

	return assertions, nil
}

// CheckAccount checks every assertion among an account's records. The
// balance for an assertion covers all of records dated on or before it,
// rounded half-to-even to places decimals.
func CheckAccount(account string, records []Record, m *Matcher, places int32) ([]Result, error) {
	assertions, err := FindAssertions(records, m)
	if err != nil {
		var valueErr *AssertionValueError
		if errors.As(err, &valueErr) {
			valueErr.Account = account
		}
		return nil, err
	}

	results := make([]Result, 0, len(assertions))
	for _, a := range assertions {
		results = append(results, Result{
			Account:     account,
			Date:        a.Date,
			Description: a.Description,
			Expected:    a.Expected,
			Actual:      BalanceAt(records, a.Date).RoundBank(places),
			Places:      places,
		})
	}
	return results, nil
}

// Visitor receives the results of a run as they are produced.
type Visitor interface {
	// Account is called once per account before its results.
	Account(name string, assertions int) error

	// Result is called for every checked assertion.
	Result(r Result) error
}

// Summary totals a run.
type Summary struct {
	Accounts   int
	Assertions int
	Errors     int
}

// Checker checks all accounts of a book.
type Checker struct {
	config  *Config
	matcher *Matcher
}

// NewChecker validates cfg and compiles its pattern.
func NewChecker(cfg *Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := CompileMatcher(cfg.Pattern)
	if err != nil {
		return nil, err
	}

	return &Checker{config: cfg, matcher: m}, nil
}

// Run checks every account of book in index order. Results already sent
// to v stay sent when a later account fails.
func (c *Checker) Run(ctx context.Context, book *gnucash.Book, v Visitor) (Summary, error) {
	log := logging.FromContext(ctx)
	ctx = c.config.WithContext(ctx)

	var summary Summary

	indexTimer := telemetry.StartTimer(ctx, "ledger.index")
	idx := NewAccountIndex(ctx, book)
	groups := GroupRecords(book)
	indexTimer.End()

	if log.GetLevel() <= zerolog.DebugLevel {
		logOrphans(ctx, book, groups)
	}

	checkTimer := telemetry.StartTimer(ctx, fmt.Sprintf("ledger.check (%d accounts)", idx.Len()))
	defer checkTimer.End()

	for _, name := range idx.Names() {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id, _ := idx.Lookup(name)
		results, err := CheckAccount(name, groups[id], c.matcher, c.config.Places)
		if err != nil {
			return summary, err
		}

		summary.Accounts++
		if err := v.Account(name, len(results)); err != nil {
			return summary, err
		}

		for _, r := range results {
			summary.Assertions++
			if !r.OK() {
				summary.Errors++
				log.Debug().Err(r.Err()).Msg("balance assertion failed")
			}
			if err := v.Result(r); err != nil {
				return summary, err
			}
		}
	}

	log.Info().
		Int("accounts", summary.Accounts).
		Int("assertions", summary.Assertions).
		Int("errors", summary.Errors).
		Msg("check finished")

	return summary, nil
}

// logOrphans logs splits that post to an account id the book does not
// define. Those splits count towards no balance.
func logOrphans(ctx context.Context, book *gnucash.Book, groups map[string][]Record) {
	log := logging.FromContext(ctx)
	for id, records := range groups {
		if book.Account(id) == nil {
			log.Debug().
				Str("account_id", id).
				Int("splits", len(records)).
				Msg("splits reference an unknown account")
		}
	}
}
