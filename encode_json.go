package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeAccountsJSONL writes accounts as JSONL, one object per line, with
// amounts rounded to Precision places.
func EncodeAccountsJSONL(w io.Writer, accounts iter.Seq[*Account]) error {
	for acc := range accounts {
		if err := EncodeJSONL(w, acc); err != nil {
			return fmt.Errorf("cannot encode account %d: %w", acc.Client(), err)
		}
	}
	return nil
}

// EncodeJSONL writes v as a single line of JSON.
func EncodeJSONL(w io.Writer, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = w.Write(line)
	return err
}
