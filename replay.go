package payments

import (
	"errors"
	"iter"
)

// Report summarizes a replay.
type Report struct {
	Applied    int            // Applied counts transactions that changed the ledger.
	Rejected   int            // Rejected counts valid records refused by the processor.
	Malformed  int            // Malformed counts records that could not be decoded.
	Rejections map[string]int // Rejections counts rejected and malformed records by ErrorKind.
}

func (r *Report) reject(err error) {
	if r.Rejections == nil {
		r.Rejections = make(map[string]int)
	}
	r.Rejections[ErrorKind(err)]++
}

// Replay applies records in order.
//
// Malformed records and rejected transactions are passed to reject, when not
// nil, and skipped: tx is nil for malformed records. A deposit or withdrawal
// record without amount is malformed, but its client account is referenced
// nonetheless. Any other error from
// records stops the replay and is returned along with the report so far.
func (p *Processor) Replay(records iter.Seq2[Transaction, error], reject func(tx Transaction, err error)) (Report, error) {
	var report Report
	for tx, err := range records {
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				return report, err
			}
			var missing *MissingAmountError
			if errors.As(err, &missing) {
				p.ledger.GetOrCreate(missing.Client)
			}
			report.Malformed++
			report.reject(err)
			if reject != nil {
				reject(nil, err)
			}
			continue
		}

		if err := p.Apply(tx); err != nil {
			report.Rejected++
			report.reject(err)
			if reject != nil {
				reject(tx, err)
			}
			continue
		}
		report.Applied++
	}
	return report, nil
}
