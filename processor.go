package payments

import (
	"fmt"
)

// Apply validates tx against the ledger, the lookback and the disputes, and
// applies it. It returns an error wrapping one of the package Err values
// when tx is rejected, in which case no balance nor dispute has changed.
//
// Deposits and withdrawals reference their account, creating it if needed,
// even when they end up rejected.
//
// Only the value variants built by NewDeposit, NewWithdrawal, NewDispute,
// NewResolve and NewChargeback are supported; any other Transaction, pointers
// included, is rejected with ErrUnsupportedTransaction.
func Apply(tx Transaction, ledger *Ledger, lookback *Lookback, disputes *Disputes) error {
	switch v := tx.(type) {
	case Deposit:
		acc := ledger.GetOrCreate(v.Account)
		acc.credit(v.Amount)
		lookback.Push(v)

	case Withdrawal:
		acc := ledger.GetOrCreate(v.Account)
		if acc.available.LessThan(v.Amount) {
			return fmt.Errorf("withdrawal %d: cannot withdraw %s from client %d, available is %s: %w", v.Tx, v.Amount, v.Account, acc.available, ErrInsufficientFunds)
		}
		acc.debit(v.Amount)
		lookback.Push(v)

	case Dispute:
		found, ok := lookback.Find(v.Tx)
		if !ok {
			return fmt.Errorf("dispute %d: %w", v.Tx, ErrUnknownTransaction)
		}
		// the funds are held on the account of the disputed transaction.
		acc, ok := ledger.Get(found.Client())
		if !ok {
			return fmt.Errorf("dispute %d: client %d: %w", v.Tx, found.Client(), ErrUnknownAccount)
		}
		disputed, ok := found.(Settlement)
		if !ok {
			return fmt.Errorf("dispute %d: cannot dispute a %s: %w", v.Tx, found.What(), ErrInvalidDisputeTarget)
		}
		acc.hold(disputed.Value())
		disputes.Insert(v.Tx, disputed)

	case Resolve:
		disputed, acc, err := lookupDispute(v, ledger, disputes)
		if err != nil {
			return err
		}
		acc.release(disputed.Value())
		disputes.Remove(v.Tx)

	case Chargeback:
		disputed, acc, err := lookupDispute(v, ledger, disputes)
		if err != nil {
			return err
		}
		acc.reverse(disputed.Value())
		disputes.Remove(v.Tx)

	default:
		return fmt.Errorf("%T: %w", tx, ErrUnsupportedTransaction)
	}
	return nil
}

// lookupDispute finds the active dispute closed by tx and its account.
func lookupDispute(tx Transaction, ledger *Ledger, disputes *Disputes) (Settlement, *Account, error) {
	disputed, ok := disputes.Get(tx.ID())
	if !ok {
		return nil, nil, fmt.Errorf("%s %d: %w", tx.What(), tx.ID(), ErrUnknownDispute)
	}
	acc, ok := ledger.Get(disputed.Client())
	if !ok {
		return nil, nil, fmt.Errorf("%s %d: client %d: %w", tx.What(), tx.ID(), disputed.Client(), ErrUnknownAccount)
	}
	return disputed, acc, nil
}

// Processor owns the state needed to replay transactions: the ledger, the
// lookback of recent settlements and the active disputes.
//
// A Processor is not safe for concurrent use; transactions must be applied
// one at a time, in input order.
type Processor struct {
	ledger   *Ledger
	lookback *Lookback
	disputes *Disputes
}

// NewProcessor creates a Processor that remembers up to capacity settlements
// for disputes.
func NewProcessor(capacity int) *Processor {
	return &Processor{
		ledger:   NewLedger(),
		lookback: NewLookback(capacity),
		disputes: NewDisputes(),
	}
}

// Apply applies a single transaction. See the package function Apply.
func (p *Processor) Apply(tx Transaction) error {
	return Apply(tx, p.ledger, p.lookback, p.disputes)
}

func (p *Processor) Ledger() *Ledger     { return p.ledger }
func (p *Processor) Lookback() *Lookback { return p.lookback }
func (p *Processor) Disputes() *Disputes { return p.disputes }
