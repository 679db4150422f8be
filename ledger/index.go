package ledger

import (
	"context"

	"github.com/robinvdvleuten/gncassert/gnucash"
	"github.com/robinvdvleuten/gncassert/logging"
)

// AccountIndex maps account names to account ids.
//
// Names are kept in the order they first appear in the book. When two
// accounts share a name the later one wins: the name keeps its original
// position but resolves to the later account's id, and the earlier
// account is never reported.
type AccountIndex struct {
	names []string
	ids   map[string]string
}

// NewAccountIndex indexes the accounts of book by name.
func NewAccountIndex(ctx context.Context, book *gnucash.Book) *AccountIndex {
	log := logging.FromContext(ctx)

	idx := &AccountIndex{
		names: make([]string, 0, len(book.Accounts)),
		ids:   make(map[string]string, len(book.Accounts)),
	}

	for _, acc := range book.Accounts {
		if prev, ok := idx.ids[acc.Name]; ok {
			log.Warn().
				Str("account", acc.Name).
				Str("previous_id", prev).
				Str("id", acc.ID).
				Msg("duplicate account name, only the last account with this name is checked")
		} else {
			idx.names = append(idx.names, acc.Name)
		}
		idx.ids[acc.Name] = acc.ID
	}

	return idx
}

// Names returns the indexed names in first-seen order.
func (idx *AccountIndex) Names() []string {
	return idx.names
}

// Lookup returns the id the name resolves to.
func (idx *AccountIndex) Lookup(name string) (string, bool) {
	id, ok := idx.ids[name]
	return id, ok
}

// Len returns the number of distinct names.
func (idx *AccountIndex) Len() int {
	return len(idx.names)
}
