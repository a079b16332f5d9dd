package bookshelf

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
//
// The value is kept with full precision, rounding only happens in String.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
	mixed bool // sum of different currencies, cur is "".
}

// M returns a Money from a value and a currency code (case insensitive).
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Money{value: v, cur: currency}
	case float64:
		return Money{value: decimal.NewFromFloat(v), cur: currency}
	case int:
		return Money{value: decimal.NewFromInt(int64(v)), cur: currency}
	case int64:
		return Money{value: decimal.NewFromInt(v), cur: currency}
	}
	panic("unsupported type")
}

// Value returns the exact decimal value.
func (m Money) Value() decimal.Decimal { return m.value }

// Currency returns the currency code as it was given, possibly "".
func (m Money) Currency() string { return m.cur }

func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) Equal(n Money) bool {
	return m.value.Equal(n.value) && strings.EqualFold(m.cur, n.cur) && m.mixed == n.mixed
}
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur, mixed: m.mixed} }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur, mixed: m.mixed} }
func (m Money) LessThan(n decimal.Decimal) bool { return m.value.LessThan(n) }

// binary operators.
func (m Money) Add(n Money) Money { return combine(m, n, m.value.Add(n.value)) }
func (m Money) Sub(n Money) Money { return combine(m, n, m.value.Sub(n.value)) }

// Mixed reports whether the value sums different currencies.
func (m Money) Mixed() bool { return m.mixed }

// combine returns value in the currency of A and B.
//
// The "" currency is totally weak, unless it comes from mixing two different
// currencies: such a sum is still computed, it is just no longer tied to a
// currency, whatever is added to it afterwards.
func combine(A, B Money, value decimal.Decimal) Money {
	switch {
	case A.mixed || B.mixed:
		return Money{value: value, mixed: true}
	case A.cur == "":
		return Money{value: value, cur: B.cur}
	case B.cur == "":
		return Money{value: value, cur: A.cur}
	case !strings.EqualFold(A.cur, B.cur):
		return Money{value: value, mixed: true}
	}
	return Money{value: value, cur: A.cur}
}

// currency returns the go-money currency, or nil if the code is unknown.
func (m Money) currency() *money.Currency {
	if m.cur == "" {
		return nil
	}
	return money.GetCurrency(strings.ToUpper(m.cur))
}

// String returns the value rounded to the currency fraction and formatted
// with its symbol. Unknown currencies are rounded to 2 digits.
func (m Money) String() string {
	c := m.currency()
	if c == nil {
		return m.value.StringFixed(2)
	}
	fraction := int32(c.Fraction)
	dec := m.value.Round(fraction).Shift(fraction)
	return c.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
