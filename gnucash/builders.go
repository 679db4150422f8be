package gnucash

import (
	"fmt"
	"time"
)

// BookOption configures a book built with NewBook.
type BookOption func(*Book)

// NewBook creates a book of the supported version.
//
//	book := gnucash.NewBook(
//		gnucash.WithAccounts(gnucash.NewAccount("acc1", "Checking")),
//		gnucash.WithTransactions(
//			gnucash.NewTransaction("2020-01-01", "Deposit", gnucash.NewSplit("acc1", "10000/100")),
//		),
//	)
func NewBook(opts ...BookOption) *Book {
	b := &Book{Version: SupportedVersion}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithVersion overrides the book version.
func WithVersion(version string) BookOption {
	return func(b *Book) {
		b.Version = version
	}
}

// WithAccounts appends accounts to the book.
func WithAccounts(accounts ...*Account) BookOption {
	return func(b *Book) {
		b.Accounts = append(b.Accounts, accounts...)
	}
}

// WithTransactions appends transactions to the book.
func WithTransactions(txns ...*Transaction) BookOption {
	return func(b *Book) {
		b.Transactions = append(b.Transactions, txns...)
	}
}

// NewAccount creates an account.
func NewAccount(id, name string) *Account {
	return &Account{ID: id, Name: name, Type: "BANK"}
}

// NewTransaction creates a transaction posted on date (YYYY-MM-DD).
// It panics if date is not a valid date.
func NewTransaction(date, description string, splits ...*Split) *Transaction {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(fmt.Sprintf("gnucash: invalid transaction date %q: %v", date, err))
	}
	return &Transaction{
		Date:        d,
		Description: description,
		Splits:      splits,
	}
}

// NewSplit creates a split posting value ("num/denom") to accountID.
// It panics if value is not a valid num/denom pair.
func NewSplit(accountID, value string) *Split {
	return &Split{AccountID: accountID, Value: MustParseValue(value)}
}
