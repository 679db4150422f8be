// Package ledger checks balance assertions embedded in a GnuCash book.
//
// A balance assertion is a transaction whose description matches a
// user-supplied pattern, for example "Balance check 150.00". The numeral
// the pattern extracts from the description is the balance the account
// is expected to have, counting every split posted to it on or before the
// transaction's date.
//
// The check runs in three steps:
//
//   - NewAccountIndex maps account names to ids.
//   - GroupRecords flattens the book's splits into per-account records.
//   - CheckAccount finds the assertions among an account's records and
//     compares each asserted value with the rounded cumulative balance.
//
// Checker.Run drives these steps for every account and streams the
// results to a Visitor.
package ledger
