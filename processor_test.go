package payments

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
)

func TestApply_Deposit(t *testing.T) {
	p := NewProcessor(10)
	mustApply(t, p, NewDeposit(1, 1, A(20.1234)))

	assertBalances(t, mustAccount(t, p, 1), "20.1234", "0", "20.1234")
	if _, ok := p.Lookback().Find(1); !ok {
		t.Error("deposits must be remembered for disputes")
	}
}

func TestApply_Withdrawal(t *testing.T) {
	p := NewProcessor(10)
	mustApply(t, p,
		NewDeposit(1, 1, A(20.1234)),
		NewWithdrawal(1, 2, A(10.1234)),
	)
	acc := mustAccount(t, p, 1)
	assertBalances(t, acc, "10", "0", "10")

	if err := p.Apply(NewWithdrawal(1, 3, A(20.0))); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Apply(withdrawal 3) error = %v, want %v", err, ErrInsufficientFunds)
	}
	assertBalances(t, acc, "10", "0", "10")
	if _, ok := p.Lookback().Find(3); ok {
		t.Error("rejected withdrawals must not be remembered")
	}
}

func TestApply_WithdrawalFromNewAccount(t *testing.T) {
	p := NewProcessor(10)
	if err := p.Apply(NewWithdrawal(4, 1, A(1))); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Apply() error = %v, want %v", err, ErrInsufficientFunds)
	}

	// the account was referenced, so it exists and is reported.
	assertBalances(t, mustAccount(t, p, 4), "0", "0", "0")
}

func TestApply_WithdrawalOfEverything(t *testing.T) {
	p := NewProcessor(10)
	mustApply(t, p,
		NewDeposit(1, 1, A(3.5)),
		NewWithdrawal(1, 2, A(3.5)),
	)
	assertBalances(t, mustAccount(t, p, 1), "0", "0", "0")
}

// disputeSetup replays the two deposits used by the dispute scenarios.
func disputeSetup(t *testing.T) *Processor {
	t.Helper()
	p := NewProcessor(10)
	mustApply(t, p,
		NewDeposit(1, 1, A(20.1234)),
		NewDeposit(1, 2, A(10.0)),
	)
	return p
}

func TestApply_Dispute(t *testing.T) {
	p := disputeSetup(t)
	mustApply(t, p, NewDispute(1, 2))

	assertBalances(t, mustAccount(t, p, 1), "20.1234", "10", "30.1234")
	if !p.Disputes().Contains(2) {
		t.Error("tx 2 should be under dispute")
	}
}

func TestApply_Resolve(t *testing.T) {
	p := disputeSetup(t)
	mustApply(t, p, NewDispute(1, 2), NewResolve(1, 2))

	acc := mustAccount(t, p, 1)
	assertBalances(t, acc, "30.1234", "0", "30.1234")
	if acc.Locked() {
		t.Error("a resolve must not lock the account")
	}
	if p.Disputes().Contains(2) {
		t.Error("tx 2 should no longer be under dispute")
	}
}

func TestApply_Chargeback(t *testing.T) {
	p := disputeSetup(t)
	mustApply(t, p, NewDispute(1, 2), NewChargeback(1, 2))

	acc := mustAccount(t, p, 1)
	assertBalances(t, acc, "20.1234", "0", "20.1234")
	if !acc.Locked() {
		t.Error("a chargeback must lock the account")
	}
	if n := p.Disputes().Len(); n != 0 {
		t.Errorf("%d disputes left, want none", n)
	}
}

func TestApply_DisputeWithdrawal(t *testing.T) {
	p := NewProcessor(10)
	mustApply(t, p,
		NewDeposit(1, 1, A(10)),
		NewWithdrawal(1, 2, A(4)),
		NewDispute(1, 2),
	)
	assertBalances(t, mustAccount(t, p, 1), "2", "4", "6")

	mustApply(t, p, NewResolve(1, 2))
	assertBalances(t, mustAccount(t, p, 1), "6", "0", "6")
}

func TestApply_DisputeUsesTheDisputedAccount(t *testing.T) {
	p := NewProcessor(10)
	mustApply(t, p,
		NewDeposit(1, 1, A(5)),
		NewDeposit(2, 2, A(7)),
		// the client of the dispute record is not the owner of tx 2.
		NewDispute(1, 2),
	)
	assertBalances(t, mustAccount(t, p, 1), "5", "0", "5")
	assertBalances(t, mustAccount(t, p, 2), "0", "7", "7")
}

func TestApply_Rejections(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"dispute of unknown tx", NewDispute(1, 99), ErrUnknownTransaction},
		{"resolve without dispute", NewResolve(1, 1), ErrUnknownDispute},
		{"chargeback without dispute", NewChargeback(1, 1), ErrUnknownDispute},
		{"withdrawal above available", NewWithdrawal(1, 3, A(30.1235)), ErrInsufficientFunds},
		{"pointer variant", &Deposit{baseCmd: baseCmd{Command: CmdDeposit, Account: 1, Tx: 3}, Amount: A(1)}, ErrUnsupportedTransaction},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := disputeSetup(t)
			if err := p.Apply(tc.tx); !errors.Is(err, tc.want) {
				t.Errorf("Apply() error = %v, want %v", err, tc.want)
			}
			assertBalances(t, mustAccount(t, p, 1), "30.1234", "0", "30.1234")
			if p.Disputes().Len() != 0 || p.Ledger().Len() != 1 {
				t.Errorf("rejected transaction changed the state: %d disputes, %d accounts", p.Disputes().Len(), p.Ledger().Len())
			}
		})
	}
}

func TestApply_UnsupportedKind(t *testing.T) {
	err := NewProcessor(1).Apply(&Deposit{})
	if got := ErrorKind(err); got != "unsupported_transaction" {
		t.Errorf("ErrorKind(%v) = %q, want %q", err, got, "unsupported_transaction")
	}
}

func TestApply_DisputeOfInvalidTarget(t *testing.T) {
	ledger, lookback, disputes := NewLedger(), NewLookback(4), NewDisputes()
	ledger.GetOrCreate(1)
	// only settlements are pushed by Apply, but the lookback accepts any transaction.
	lookback.Push(NewResolve(1, 8))

	if err := Apply(NewDispute(1, 8), ledger, lookback, disputes); !errors.Is(err, ErrInvalidDisputeTarget) {
		t.Errorf("Apply() error = %v, want %v", err, ErrInvalidDisputeTarget)
	}
	if disputes.Len() != 0 {
		t.Error("a rejected dispute must not be registered")
	}
}

func TestApply_DisputeOfUnknownAccount(t *testing.T) {
	ledger, lookback, disputes := NewLedger(), NewLookback(4), NewDisputes()
	lookback.Push(NewDeposit(1, 8, A(1)))

	if err := Apply(NewDispute(1, 8), ledger, lookback, disputes); !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("Apply() error = %v, want %v", err, ErrUnknownAccount)
	}
	if disputes.Len() != 0 {
		t.Error("a rejected dispute must not be registered")
	}
}

func TestApply_ResolveOfUnknownAccount(t *testing.T) {
	ledger, lookback, disputes := NewLedger(), NewLookback(4), NewDisputes()
	disputes.Insert(8, NewDeposit(1, 8, A(1)))

	if err := Apply(NewResolve(1, 8), ledger, lookback, disputes); !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("Apply() error = %v, want %v", err, ErrUnknownAccount)
	}
	if !disputes.Contains(8) {
		t.Error("a rejected resolve must leave the dispute open")
	}
}

func TestApply_Rounding(t *testing.T) {
	p := NewProcessor(10)
	mustApply(t, p,
		NewDeposit(1, 1, A(20.1234)),
		NewDeposit(1, 2, A(1.0007)),
	)
	if got := mustAccount(t, p, 1).Total().Fixed(); got != "21.1241" {
		t.Errorf("total = %s, want 21.1241", got)
	}
}

func TestApply_DisputeOfEvictedTransaction(t *testing.T) {
	p := NewProcessor(2)
	mustApply(t, p,
		NewDeposit(1, 1, A(1)),
		NewDeposit(1, 2, A(2)),
		NewDeposit(1, 3, A(3)), // evicts tx 1
	)

	if err := p.Apply(NewDispute(1, 1)); !errors.Is(err, ErrUnknownTransaction) {
		t.Errorf("Apply() error = %v, want %v", err, ErrUnknownTransaction)
	}
	assertBalances(t, mustAccount(t, p, 1), "6", "0", "6")
}

func TestApply_ResolveAfterEviction(t *testing.T) {
	p := NewProcessor(2)
	mustApply(t, p,
		NewDeposit(1, 1, A(1)),
		NewDispute(1, 1),
		NewDeposit(1, 2, A(2)),
		NewDeposit(1, 3, A(3)), // evicts tx 1, still under dispute
	)
	if _, ok := p.Lookback().Find(1); ok {
		t.Fatal("tx 1 should have been evicted")
	}

	// resolve and chargeback only need the dispute.
	mustApply(t, p, NewChargeback(1, 1))
	acc := mustAccount(t, p, 1)
	assertBalances(t, acc, "5", "0", "5")
	if !acc.Locked() {
		t.Error("a chargeback must lock the account")
	}
}

func TestApply_LockedAccountStillAcceptsTransactions(t *testing.T) {
	p := disputeSetup(t)
	mustApply(t, p,
		NewDispute(1, 2),
		NewChargeback(1, 2),
		NewDeposit(1, 3, A(5)),
		NewWithdrawal(1, 4, A(1)),
		NewDispute(1, 3),
	)
	acc := mustAccount(t, p, 1)
	assertBalances(t, acc, "19.1234", "5", "24.1234")
	if !acc.Locked() {
		t.Error("a locked account stays locked")
	}
}

func TestApply_DoubleDispute(t *testing.T) {
	p := disputeSetup(t)
	mustApply(t, p, NewDispute(1, 2), NewDispute(1, 2))

	// the second dispute holds the funds again and overwrites the entry.
	assertBalances(t, mustAccount(t, p, 1), "10.1234", "20", "30.1234")
	if n := p.Disputes().Len(); n != 1 {
		t.Errorf("%d disputes, want 1", n)
	}

	mustApply(t, p, NewResolve(1, 2))
	assertBalances(t, mustAccount(t, p, 1), "20.1234", "10", "30.1234")
	if err := p.Apply(NewResolve(1, 2)); !errors.Is(err, ErrUnknownDispute) {
		t.Errorf("second resolve error = %v, want %v", err, ErrUnknownDispute)
	}
}

func TestApply_DisputeAfterResolve(t *testing.T) {
	p := disputeSetup(t)
	mustApply(t, p, NewDispute(1, 2), NewResolve(1, 2), NewDispute(1, 2))

	// the settlement is still in the lookback, so it can be disputed again.
	assertBalances(t, mustAccount(t, p, 1), "20.1234", "10", "30.1234")
}

// snapshot captures the state of all accounts.
func snapshot(l *Ledger) map[ClientID]Account {
	s := make(map[ClientID]Account)
	for acc := range l.Accounts() {
		s[acc.Client()] = *acc
	}
	return s
}

func sameAccount(a, b Account) bool {
	return a.available.Equal(b.available) && a.held.Equal(b.held) && a.total.Equal(b.total) && a.locked == b.locked
}

// TestApply_Invariants replays random transactions and checks that every
// account stays balanced, and that rejected transactions change nothing.
func TestApply_Invariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := NewProcessor(50)
	var next TxID

	randomTx := func() Transaction {
		client := ClientID(rng.IntN(5))
		value := A(decimal.New(rng.Int64N(1_000_000), -4))
		// dispute kinds target recent ids, some of which are unknown or evicted.
		target := TxID(0)
		if next > 0 {
			target = next - TxID(rng.IntN(int(min(next, 80))))
		}
		switch rng.IntN(6) {
		case 0, 1:
			next++
			return NewDeposit(client, next, value)
		case 2:
			next++
			return NewWithdrawal(client, next, value)
		case 3:
			return NewDispute(client, target)
		case 4:
			return NewResolve(client, target)
		default:
			return NewChargeback(client, target)
		}
	}

	for i := range 5000 {
		tx := randomTx()
		before := snapshot(p.Ledger())
		disputes := p.Disputes().Len()

		if err := p.Apply(tx); err != nil {
			after := snapshot(p.Ledger())
			for client, state := range before {
				if !sameAccount(state, after[client]) {
					t.Fatalf("step %d: rejected %s %d changed client %d", i, tx.What(), tx.ID(), client)
				}
			}
			if p.Disputes().Len() != disputes {
				t.Fatalf("step %d: rejected %s %d changed the disputes", i, tx.What(), tx.ID())
			}
			continue
		}

		for acc := range p.Ledger().Accounts() {
			if !acc.Balanced() {
				t.Fatalf("step %d: client %d is not balanced after %s %d", i, acc.Client(), tx.What(), tx.ID())
			}
		}
	}
}
