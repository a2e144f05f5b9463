package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the café's single currency.
// The zero value is 0.
type Money struct {
	d decimal.Decimal
}

var Zero = Money{}

func New(d decimal.Decimal) Money { return Money{d: d} }

// FromCents builds an amount from an integer number of cents.
func FromCents(cents int64) Money { return Money{d: decimal.New(cents, -2)} }

// FromFloat converts a float coming from a JSON payload or a form. The value
// is rounded to cents so binary representation noise never enters a total.
func FromFloat(f float64) Money { return Money{d: decimal.NewFromFloat(f).Round(2)} }

// Parse reads a decimal string such as "3.50".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Mul(qty int) Money { return Money{d: m.d.Mul(decimal.NewFromInt(int64(qty)))} }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) IsZero() bool { return m.d.IsZero() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) Decimal() decimal.Decimal { return m.d }

// String renders the amount with two decimals, e.g. "8.25".
func (m Money) String() string { return m.d.StringFixed(2) }

// Display renders the amount the way the storefront shows prices, e.g. "$8.25".
func (m Money) Display() string { return "$" + m.String() }

// MarshalJSON writes the amount as a bare JSON number, matching the remote API.
// At least two decimals are written and none are dropped, so decoding the
// output yields the same amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(max(2, -m.d.Exponent()))), nil
}

// UnmarshalJSON accepts both numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	m.d = d
	return nil
}
