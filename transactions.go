package payments

import (
	"fmt"
)

// ClientID identifies an account.
type ClientID uint16

// TxID identifies a transaction. Deposits and withdrawals have unique ids,
// dispute, resolve and chargeback reuse the id of the transaction they target.
type TxID uint32

// CommandType is a typed string for identifying transaction kinds.
type CommandType string

// Command types, as they appear in the input records.
const (
	CmdDeposit    CommandType = "deposit"
	CmdWithdrawal CommandType = "withdrawal"
	CmdDispute    CommandType = "dispute"
	CmdResolve    CommandType = "resolve"
	CmdChargeback CommandType = "chargeback"
)

// ParseCommandType parses a record type.
func ParseCommandType(s string) (CommandType, error) {
	switch c := CommandType(s); c {
	case CmdDeposit, CmdWithdrawal, CmdDispute, CmdResolve, CmdChargeback:
		return c, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction defines the common interface for all kinds of transactions
// replayed against the ledger.
type Transaction interface {
	What() CommandType // What returns the kind of the transaction (e.g., "deposit", "dispute").
	Client() ClientID  // Client returns the account the transaction refers to.
	ID() TxID          // ID returns the transaction id, or the targeted one for dispute kinds.
	Equal(Transaction) bool
}

// Settlement is a transaction that moves funds: Deposit or Withdrawal.
// Only settlements are remembered by the Lookback and can be disputed.
type Settlement interface {
	Transaction
	Value() Amount // Value returns the amount moved by the transaction.
}

type baseCmd struct {
	Command CommandType `json:"type"`   // Command specifies the kind of transaction.
	Account ClientID    `json:"client"` // Account is the client account.
	Tx      TxID        `json:"tx"`     // Tx is the transaction id.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// Client returns the account of the transaction.
func (t baseCmd) Client() ClientID { return t.Account }

// ID returns the transaction id.
func (t baseCmd) ID() TxID { return t.Tx }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Command)
	w.Append("client", t.Account)
	w.Append("tx", t.Tx)
	return w.MarshalJSON()
}

// Deposit credits an account.
type Deposit struct {
	baseCmd
	Amount Amount // Amount is the quantity credited.
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(client ClientID, tx TxID, amount Amount) Deposit {
	return Deposit{
		baseCmd: baseCmd{Command: CmdDeposit, Account: client, Tx: tx},
		Amount:  amount,
	}
}

func (t Deposit) Value() Amount { return t.Amount }

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// Withdrawal debits an account, provided enough funds are available.
type Withdrawal struct {
	baseCmd
	Amount Amount // Amount is the quantity debited.
}

// NewWithdrawal creates a new Withdrawal transaction.
func NewWithdrawal(client ClientID, tx TxID, amount Amount) Withdrawal {
	return Withdrawal{
		baseCmd: baseCmd{Command: CmdWithdrawal, Account: client, Tx: tx},
		Amount:  amount,
	}
}

func (t Withdrawal) Value() Amount { return t.Amount }

func (t Withdrawal) Equal(other Transaction) bool {
	o, ok := other.(Withdrawal)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Withdrawal.
func (t Withdrawal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// Dispute claims that a past settlement was erroneous. The disputed funds
// are held until the dispute is resolved or charged back.
//
// The Client of a dispute is informative only: the account that holds the
// funds is the one of the disputed settlement.
type Dispute struct {
	baseCmd
}

// NewDispute creates a new Dispute of the transaction tx.
func NewDispute(client ClientID, tx TxID) Dispute {
	return Dispute{baseCmd{Command: CmdDispute, Account: client, Tx: tx}}
}

func (t Dispute) Equal(other Transaction) bool {
	o, ok := other.(Dispute)
	return ok && t.baseCmd == o.baseCmd
}

// Resolve closes a dispute and releases the held funds.
type Resolve struct {
	baseCmd
}

// NewResolve creates a new Resolve of the dispute on tx.
func NewResolve(client ClientID, tx TxID) Resolve {
	return Resolve{baseCmd{Command: CmdResolve, Account: client, Tx: tx}}
}

func (t Resolve) Equal(other Transaction) bool {
	o, ok := other.(Resolve)
	return ok && t.baseCmd == o.baseCmd
}

// Chargeback closes a dispute by reversing the disputed settlement. The
// account is locked for good.
type Chargeback struct {
	baseCmd
}

// NewChargeback creates a new Chargeback of the dispute on tx.
func NewChargeback(client ClientID, tx TxID) Chargeback {
	return Chargeback{baseCmd{Command: CmdChargeback, Account: client, Tx: tx}}
}

func (t Chargeback) Equal(other Transaction) bool {
	o, ok := other.(Chargeback)
	return ok && t.baseCmd == o.baseCmd
}
