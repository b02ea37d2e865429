package payments

import (
	"iter"
	"maps"
	"slices"
)

// Ledger holds the accounts, indexed by client.
//
// Accounts are created on first reference and never removed.
type Ledger struct {
	accounts map[ClientID]*Account
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[ClientID]*Account)}
}

// GetOrCreate returns the account of client, creating a zero one if needed.
func (l *Ledger) GetOrCreate(client ClientID) *Account {
	acc, ok := l.accounts[client]
	if !ok {
		acc = newAccount(client)
		l.accounts[client] = acc
	}
	return acc
}

// Get returns the account of client, if it exists.
func (l *Ledger) Get(client ClientID) (*Account, bool) {
	acc, ok := l.accounts[client]
	return acc, ok
}

// Len returns the number of accounts.
func (l *Ledger) Len() int { return len(l.accounts) }

// Accounts iterates over all accounts in ascending client order.
func (l *Ledger) Accounts() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		clients := slices.Sorted(maps.Keys(l.accounts))
		for _, client := range clients {
			if !yield(l.accounts[client]) {
				return
			}
		}
	}
}
