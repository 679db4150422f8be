// Package report prints the outcome of a balance assertion run.
//
// The output is line oriented and stable, so it can be diffed between
// runs:
//
//	found 1 assertions in account 'Checking':
//	    2020-01-15: checking value 150.00 against balance of 150.00...OK
//	found 0 errors!
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/gncassert/ledger"
	"github.com/robinvdvleuten/gncassert/output"
)

// Option configures a Reporter.
type Option func(*Reporter)

// WithStyles overrides the styles used for verdicts.
func WithStyles(styles *output.Styles) Option {
	return func(r *Reporter) {
		r.styles = styles
	}
}

// Reporter writes run results to a writer. It implements ledger.Visitor.
type Reporter struct {
	w      io.Writer
	places int32
	styles *output.Styles
}

var _ ledger.Visitor = (*Reporter)(nil)

// New creates a Reporter printing amounts with places decimals.
func New(w io.Writer, places int32, opts ...Option) *Reporter {
	r := &Reporter{w: w, places: places}
	for _, opt := range opts {
		opt(r)
	}
	if r.styles == nil {
		r.styles = output.NewStyles(w)
	}
	return r
}

// Account prints the header of an account section.
func (r *Reporter) Account(name string, assertions int) error {
	_, err := fmt.Fprintf(r.w, "found %d assertions in account '%s':\n", assertions, name)
	return err
}

// Result prints a single checked assertion.
func (r *Reporter) Result(res ledger.Result) error {
	_, err := fmt.Fprintf(r.w, "    %s: checking value %s against balance of %s...%s\n",
		res.Date.Format(time.DateOnly),
		r.formatAmount(res.Expected),
		r.formatAmount(res.Actual),
		r.styles.Verdict(res.OK()),
	)
	return err
}

// Summary prints the closing error count.
func (r *Reporter) Summary(s ledger.Summary) error {
	_, err := fmt.Fprintf(r.w, "found %d errors!\n", s.Errors)
	return err
}

// formatAmount pads d to the configured places. An asserted value written
// with more decimals than that is printed in full so a mismatch caused by
// the extra digits stays visible.
func (r *Reporter) formatAmount(d decimal.Decimal) string {
	if -d.Exponent() > r.places && !d.Round(r.places).Equal(d) {
		return d.String()
	}
	return d.StringFixed(r.places)
}
