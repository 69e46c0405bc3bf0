package money

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with two decimal places. It stores and
// compares like a decimal but always renders both places in JSON: 12 comes
// out as "12.00", never "12".
type Money struct{ decimal.Decimal }

func New(d decimal.Decimal) Money { return Money{d} }

func Zero() Money { return Money{decimal.Zero} }

func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// RequireFromString panics on a malformed amount; for literals.
func RequireFromString(s string) Money {
	return Money{decimal.RequireFromString(s)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// MulInt scales the amount by a quantity.
func (m Money) MulInt(n int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}
