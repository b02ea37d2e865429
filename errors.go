package payments

import (
	"errors"
	"fmt"
)

// Errors reported when a transaction is rejected. None of them is fatal: the
// rejected transaction leaves the ledger untouched and the replay goes on.
var (
	ErrParse                = errors.New("malformed record")
	ErrMissingAmount        = errors.New("missing amount")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUnknownTransaction   = errors.New("unknown transaction")
	ErrInvalidDisputeTarget = errors.New("invalid dispute target")
	ErrUnknownDispute       = errors.New("unknown dispute")
	ErrUnknownAccount       = errors.New("unknown account")

	ErrUnsupportedTransaction = errors.New("unsupported transaction")
)

// ParseError reports a record that could not be decoded into a Transaction.
type ParseError struct {
	Line int   // Line is the 1-based line of the record in the input.
	Err  error // Err is the cause.
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v on line %d: %v", ErrParse, e.Line, e.Err)
}

// Unwrap makes both ErrParse and the cause visible to errors.Is.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// MissingAmountError reports a deposit or withdrawal record without amount.
// The record still references its client account.
type MissingAmountError struct {
	Command CommandType
	Client  ClientID
	Tx      TxID
}

func (e *MissingAmountError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Command, e.Tx, ErrMissingAmount)
}

func (e *MissingAmountError) Unwrap() error { return ErrMissingAmount }

// ErrorKind returns a short stable name for the rejection err, suitable as a
// metric or log key. It returns "other" for errors outside this package.
func ErrorKind(err error) string {
	switch {
	// ErrMissingAmount is also a ParseError, the more specific one wins.
	case errors.Is(err, ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(err, ErrInvalidDisputeTarget):
		return "invalid_dispute_target"
	case errors.Is(err, ErrUnknownDispute):
		return "unknown_dispute"
	case errors.Is(err, ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, ErrUnsupportedTransaction):
		return "unsupported_transaction"
	default:
		return "other"
	}
}
