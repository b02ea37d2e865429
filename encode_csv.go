package payments

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Column names of the transaction records.
const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"
)

// accountsHeader is the header of the accounts output.
var accountsHeader = []string{"client", "available", "held", "total", "locked"}

// DecodeTransactions decodes a CSV stream of transaction records.
//
// The first record is a header naming the columns "type", "client", "tx" and
// optionally "amount", in any order. Fields are trimmed, and the amount may be
// omitted on dispute, resolve and chargeback records, where it is ignored
// anyway.
//
// A record that cannot be decoded yields a *ParseError and iteration goes on.
// Any other error (missing header, I/O) is yielded once and ends the iteration.
func DecodeTransactions(r io.Reader) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // the amount is optional
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			yield(nil, fmt.Errorf("cannot read header: %w", err))
			return
		}
		columns, err := decodeHeader(header)
		if err != nil {
			yield(nil, err)
			return
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				var cerr *csv.ParseError
				if !errors.As(err, &cerr) {
					yield(nil, fmt.Errorf("cannot read transactions: %w", err))
					return
				}
				if !yield(nil, &ParseError{Line: cerr.Line, Err: cerr.Err}) {
					return
				}
				continue
			}

			line, _ := reader.FieldPos(0)
			tx, err := decodeRecord(columns, len(header), record)
			if err != nil {
				err = &ParseError{Line: line, Err: err}
			}
			if !yield(tx, err) {
				return
			}
		}
	}
}

// decodeHeader maps column names to their index.
func decodeHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colType, colClient, colTx} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("invalid header %q: missing column %q", strings.Join(header, ","), required)
		}
	}
	return columns, nil
}

// decodeRecord decodes a single transaction record.
func decodeRecord(columns map[string]int, width int, record []string) (Transaction, error) {
	if len(record) < 3 || len(record) > width {
		return nil, fmt.Errorf("expected between 3 and %d fields, got %d", width, len(record))
	}
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	cmd, err := ParseCommandType(field(colType))
	if err != nil {
		return nil, err
	}
	client, err := strconv.ParseUint(field(colClient), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid client %q: %w", field(colClient), err)
	}
	id, err := strconv.ParseUint(field(colTx), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid tx %q: %w", field(colTx), err)
	}

	switch cmd {
	case CmdDispute:
		return NewDispute(ClientID(client), TxID(id)), nil
	case CmdResolve:
		return NewResolve(ClientID(client), TxID(id)), nil
	case CmdChargeback:
		return NewChargeback(ClientID(client), TxID(id)), nil
	}

	// Deposits and withdrawals need an amount.
	raw := field(colAmount)
	if raw == "" {
		return nil, &MissingAmountError{Command: cmd, Client: ClientID(client), Tx: TxID(id)}
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("invalid amount %q: must not be negative", raw)
	}
	if cmd == CmdDeposit {
		return NewDeposit(ClientID(client), TxID(id), amount), nil
	}
	return NewWithdrawal(ClientID(client), TxID(id), amount), nil
}

// EncodeAccounts writes accounts as CSV, one record per account, with amounts
// rounded to Precision places.
func EncodeAccounts(w io.Writer, accounts iter.Seq[*Account]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(accountsHeader); err != nil {
		return fmt.Errorf("cannot write accounts header: %w", err)
	}
	for acc := range accounts {
		record := []string{
			strconv.FormatUint(uint64(acc.Client()), 10),
			acc.Available().Fixed(),
			acc.Held().Fixed(),
			acc.Total().Fixed(),
			strconv.FormatBool(acc.Locked()),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write account %d: %w", acc.Client(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}
