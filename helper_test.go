package payments

import (
	"testing"
)

// amount is a helper for test to create an amount from a decimal literal.
func amount(t *testing.T, s string) Amount {
	t.Helper()
	a, err := ParseAmount(s)
	if err != nil {
		t.Fatalf("ParseAmount(%q) failed: %v", s, err)
	}
	return a
}

// assertAmount checks that got equals the decimal literal want, whatever the
// number of trailing zeros.
func assertAmount(t *testing.T, name, want string, got Amount) {
	t.Helper()
	if !got.Equal(amount(t, want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// assertBalances checks the balances of an account.
func assertBalances(t *testing.T, acc *Account, available, held, total string) {
	t.Helper()
	assertAmount(t, "available", available, acc.Available())
	assertAmount(t, "held", held, acc.Held())
	assertAmount(t, "total", total, acc.Total())
	if !acc.Balanced() {
		t.Errorf("client %d: total %s != available %s + held %s", acc.Client(), acc.Total(), acc.Available(), acc.Held())
	}
}

// mustApply applies all transactions and fails the test on the first error.
func mustApply(t *testing.T, p *Processor, txs ...Transaction) {
	t.Helper()
	for _, tx := range txs {
		if err := p.Apply(tx); err != nil {
			t.Fatalf("Apply(%s %d) error = %v", tx.What(), tx.ID(), err)
		}
	}
}

// mustAccount returns the account of client, failing the test if it does not exist.
func mustAccount(t *testing.T, p *Processor, client ClientID) *Account {
	t.Helper()
	acc, ok := p.Ledger().Get(client)
	if !ok {
		t.Fatalf("account %d does not exist", client)
	}
	return acc
}

// clients returns the client ids of the ledger, in order.
func clients(l *Ledger) []ClientID {
	var ids []ClientID
	for acc := range l.Accounts() {
		ids = append(ids, acc.Client())
	}
	return ids
}
