package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/gncassert/gnucash"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func amounts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Amount.String()
	}
	return out
}

func recordsBook() *gnucash.Book {
	return gnucash.NewBook(
		gnucash.WithAccounts(
			gnucash.NewAccount("acc1", "Checking"),
			gnucash.NewAccount("acc2", "Income"),
		),
		gnucash.WithTransactions(
			gnucash.NewTransaction("2020-02-01", "Salary",
				gnucash.NewSplit("acc1", "10000/100"),
				gnucash.NewSplit("acc2", "-10000/100"),
			),
			gnucash.NewTransaction("2020-01-01", "Split twice",
				gnucash.NewSplit("acc1", "100/100"),
				gnucash.NewSplit("acc1", "250/100"),
				gnucash.NewSplit("acc2", "-350/100"),
			),
			gnucash.NewTransaction("2020-01-05", "Orphan",
				gnucash.NewSplit("gone", "999/1"),
			),
		),
	)
}

func TestExtractRecords(t *testing.T) {
	book := recordsBook()

	records := ExtractRecords(book, "acc1")
	assert.Equal(t, []string{"100", "1", "2.5"}, amounts(records))

	first := records[0]
	assert.Equal(t, "acc1", first.AccountID)
	assert.Equal(t, gnucash.Value{Num: 10000, Denom: 100}, first.Value)
	assert.Equal(t, date("2020-02-01"), first.Date)
	assert.Equal(t, "Salary", first.Description)

	assert.Equal(t, 0, len(ExtractRecords(book, "missing")))
}

func TestGroupRecordsMatchesExtractRecords(t *testing.T) {
	book := recordsBook()
	groups := GroupRecords(book)

	for _, id := range []string{"acc1", "acc2", "gone"} {
		assert.Equal(t, ExtractRecords(book, id), groups[id], "account %s", id)
	}
	assert.Equal(t, 3, len(groups))
}

func TestBalanceAt(t *testing.T) {
	records := []Record{
		{Date: date("2020-01-03"), Amount: decimal.RequireFromString("30")},
		{Date: date("2020-01-01"), Amount: decimal.RequireFromString("10")},
		{Date: date("2020-01-02"), Amount: decimal.RequireFromString("20")},
		{Date: date("2020-01-02"), Amount: decimal.RequireFromString("-5")},
	}

	tests := []struct {
		date string
		want string
	}{
		{"2019-12-31", "0"},
		{"2020-01-01", "10"},
		// Records dated exactly on the cutoff are included.
		{"2020-01-02", "25"},
		{"2020-01-03", "55"},
		{"2021-01-01", "55"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := BalanceAt(records, date(tt.date))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}
