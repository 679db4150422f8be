// Package gnucash reads GnuCash XML books into plain Go values.
//
// Only the parts of a book needed to compute account balances are kept:
// the accounts, the transactions with their posted date and description,
// and the splits with the account they post to and their value.
//
// Elements are matched by their local name, so a document is accepted
// whether or not it declares the gnc, act, trn, split and ts namespaces.
package gnucash

import (
	"time"
)

// SupportedVersion is the only gnc:book version this package understands.
const SupportedVersion = "2.0.0"

// Book is a parsed GnuCash book.
type Book struct {
	Version      string
	Accounts     []*Account
	Transactions []*Transaction
}

// Account is a gnc:account element.
type Account struct {
	ID       string
	Name     string
	Type     string
	ParentID string
}

// Transaction is a gnc:transaction element.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Splits      []*Split

	// Line is the line of the transaction element in the source document.
	Line int
}

// Split is a single line-item of a transaction.
type Split struct {
	ID        string
	AccountID string
	Memo      string
	Value     Value
}

// Account returns the account with the given id, or nil.
func (b *Book) Account(id string) *Account {
	for _, acc := range b.Accounts {
		if acc.ID == id {
			return acc
		}
	}
	return nil
}
