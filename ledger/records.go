package ledger

import (
	"time"

	"github.com/robinvdvleuten/gncassert/gnucash"
	"github.com/shopspring/decimal"
)

// Record is one split posted to an account, together with the date and
// description of its transaction.
type Record struct {
	AccountID   string
	Value       gnucash.Value
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

func newRecord(txn *gnucash.Transaction, split *gnucash.Split) Record {
	return Record{
		AccountID:   split.AccountID,
		Value:       split.Value,
		Amount:      split.Value.Decimal(),
		Date:        txn.Date,
		Description: txn.Description,
	}
}

// ExtractRecords returns the records of the splits posted to accountID,
// in document order of transactions and then splits.
func ExtractRecords(book *gnucash.Book, accountID string) []Record {
	var records []Record
	for _, txn := range book.Transactions {
		for _, split := range txn.Splits {
			if split.AccountID == accountID {
				records = append(records, newRecord(txn, split))
			}
		}
	}
	return records
}

// GroupRecords extracts the records of every account in a single pass.
// Each account's records are in the same order ExtractRecords yields.
func GroupRecords(book *gnucash.Book) map[string][]Record {
	groups := make(map[string][]Record)
	for _, txn := range book.Transactions {
		for _, split := range txn.Splits {
			groups[split.AccountID] = append(groups[split.AccountID], newRecord(txn, split))
		}
	}
	return groups
}

// BalanceAt sums the amounts of all records dated on or before date.
// records need not be sorted.
func BalanceAt(records []Record, date time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		if !r.Date.After(date) {
			sum = sum.Add(r.Amount)
		}
	}
	return sum
}
