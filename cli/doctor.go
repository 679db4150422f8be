package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/gncassert/ledger"
	"github.com/robinvdvleuten/gncassert/loader"
	"github.com/robinvdvleuten/gncassert/output"
)

// DoctorCmd provides doctor utilities for debugging GnuCash books.
type DoctorCmd struct {
	Accounts AccountsCmd `cmd:"" help:"List the accounts assertions are checked against."`
}

// AccountsCmd lists the account index of a book: every name that gets a
// section in the report, the id it resolves to, and its closing balance.
type AccountsCmd struct {
	File   FileOrStdin `help:"GnuCash book (use '-' for stdin)." arg:"" name:"gnucash-file"`
	Places int32       `help:"Decimal places balances are printed with." short:"d" default:"2"`
}

// Run executes the accounts command.
func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals, stdin io.Reader) error {
	runCtx, err := newRunContext(ctx, globals)
	if err != nil {
		return err
	}

	if err := cmd.File.EnsureContents(stdin); err != nil {
		return err
	}

	ldr := loader.New()
	book, err := cmd.File.LoadBook(runCtx, ldr)
	if err != nil {
		renderLoadError(runCtx, ctx.Stderr, &cmd.File, ldr, err)
		return NewCommandError(1)
	}

	idx := ledger.NewAccountIndex(runCtx, book)
	groups := ledger.GroupRecords(book)
	styles := output.NewStyles(ctx.Stdout)

	// Format: NAME  ID  N splits  BALANCE
	for _, name := range idx.Names() {
		id, _ := idx.Lookup(name)
		records := groups[id]

		balance := decimal.Zero
		for _, r := range records {
			balance = balance.Add(r.Amount)
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %s  %s  %s\n",
			styles.Account(name),
			styles.Dim(id),
			styles.Keyword(fmt.Sprintf("%d splits", len(records))),
			styles.Amount(balance.StringFixed(cmd.Places)),
		)
	}

	if dropped := len(book.Accounts) - idx.Len(); dropped > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr)
		printInfof(ctx.Stderr, "%d account(s) hidden by a later account with the same name", dropped)
	}

	return nil
}
