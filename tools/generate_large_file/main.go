// Large GnuCash Book Generator
//
// This tool generates a large GnuCash book for performance testing and profiling.
// Every few days it posts a balance assertion on the checking account that
// holds, so a run over the output should report no errors.
//
// Usage:
//
//	go run main.go > large.gnucash.xml
//	go run main.go 200000 > large.gnucash.xml    # Specify number of transactions
//	go run main.go -z 200000 > large.gnucash     # gzip-compressed, like GnuCash saves it
//
// Check the result with:
//
//	gncassert large.gnucash 'Balance check (-?\d+\.\d+)'
package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/robinvdvleuten/gncassert/gnucash"
)

const (
	defaultTransactions = 100_000
	checkingID          = "acc-checking"
)

var (
	accounts = []string{
		"Checking",
		"Savings",
		"Credit Card",
		"Salary",
		"Groceries",
		"Restaurant",
		"Rent",
		"Utilities",
		"Transit",
		"Electronics",
		"Opening Balances",
	}

	narrations = []string{
		"Grocery shopping", "Fuel purchase", "Rent payment",
		"Salary deposit", "Utility bill", "Online purchase",
		"Restaurant dinner", "Coffee", "Monthly subscription",
		"Medical appointment", "Insurance premium", "Gift",
	}
)

func main() {
	args := os.Args[1:]

	compress := false
	if len(args) > 0 && args[0] == "-z" {
		compress = true
		args = args[1:]
	}

	count := defaultTransactions
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			count = n
		}
	}

	book := generateBook(count)

	out := bufio.NewWriter(os.Stdout)
	var w io.Writer = out
	var zw *gzip.Writer
	if compress {
		zw = gzip.NewWriter(out)
		w = zw
	}

	if err := gnucash.Encode(w, book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d accounts with %d transactions\n", len(book.Accounts), len(book.Transactions))
}

func generateBook(count int) *gnucash.Book {
	book := gnucash.NewBook()

	ids := make([]string, 0, len(accounts))
	for i, name := range accounts {
		id := fmt.Sprintf("acc-%d", i)
		if i == 0 {
			id = checkingID
		}
		ids = append(ids, id)
		book.Accounts = append(book.Accounts, gnucash.NewAccount(id, name))
	}

	currentDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	var checking int64

	for len(book.Transactions) < count {
		// 30% of the transactions touch the checking account
		from := ids[rand.Intn(len(ids)-1)+1]
		to := ids[rand.Intn(len(ids)-1)+1]
		if rand.Intn(10) < 3 {
			to = checkingID
		}

		cents := randCents(1000, 50000)
		if to == checkingID && rand.Intn(2) == 0 {
			cents = -cents
		}
		if to == checkingID {
			checking += cents
		}

		book.Transactions = append(book.Transactions, gnucash.NewTransaction(
			currentDate.Format(time.DateOnly),
			narrations[rand.Intn(len(narrations))],
			gnucash.NewSplit(to, formatValue(cents)),
			gnucash.NewSplit(from, formatValue(-cents)),
		))

		// Advance the date by 0-2 days, asserting the balance before each move.
		if days := rand.Intn(3); days > 0 {
			if rand.Intn(4) == 0 {
				book.Transactions = append(book.Transactions, gnucash.NewTransaction(
					currentDate.Format(time.DateOnly),
					fmt.Sprintf("Balance check %s", formatAmount(checking)),
					gnucash.NewSplit(checkingID, "0/100"),
				))
			}
			currentDate = currentDate.AddDate(0, 0, days)
		}
	}

	return book
}

// Helper functions

func randCents(min, max int64) int64 {
	return min + rand.Int63n(max-min)
}

func formatValue(cents int64) string {
	return fmt.Sprintf("%d/100", cents)
}

func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
