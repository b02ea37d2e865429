package payments

import "github.com/shopspring/decimal"

// Precision is the number of decimal places kept when an amount is reported.
const Precision int32 = 4

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	default:
		panic("unsupported type")
	}
}

// Amount is a quantity of the single asset handled by the ledger.
//
// Amounts are exact: arithmetic never rounds. Rounding to Precision only
// happens when the amount is reported.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount from a numeric value.
func A[T float64 | int | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string, e.g. "1.5" or "20.1234".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount    { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount    { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Equal(b Amount) bool    { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool { return a.value.LessThan(b.value) }
func (a Amount) IsNegative() bool       { return a.value.IsNegative() }
func (a Amount) String() string         { return a.value.String() }

// Fixed returns the amount rounded half away from zero to Precision places,
// always printed with exactly Precision digits after the point.
func (a Amount) Fixed() string {
	return a.value.StringFixed(Precision)
}

// MarshalJSON writes the rounded amount.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.Round(Precision).MarshalJSON()
}
