package stocks

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money of the given value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// ParseMoney parses an amount like "1.57", "$1.57" or "-0.25" in currency.
//
// The currency symbol, when present, must be the one of currency.
func ParseMoney(s, currency string) (Money, error) {
	txt := strings.TrimSpace(s)
	neg := false
	if rest, ok := strings.CutPrefix(txt, "-"); ok {
		neg, txt = true, rest
	}
	if c := money.GetCurrency(currency); c != nil && c.Grapheme != "" {
		txt = strings.TrimPrefix(txt, c.Grapheme)
	}
	// the symbol can also be written before the sign: $-1.00
	if rest, ok := strings.CutPrefix(txt, "-"); ok && !neg {
		neg, txt = true, rest
	}
	if strings.HasPrefix(txt, "-") || strings.HasPrefix(txt, "+") {
		return Money{}, fmt.Errorf("invalid amount %q: misplaced sign", s)
	}
	txt = strings.ReplaceAll(txt, ",", "")
	d, err := decimal.NewFromString(txt)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return Money{value: d, cur: currency}, nil
}

// currency returns the money's currency definition, or nil if unknown.
func (m Money) currency() *money.Currency { return money.GetCurrency(m.cur) }

// String returns the string representation of the money value, like $1.57.
func (m Money) String() string {
	cur := m.currency()
	if cur == nil {
		return m.value.StringFixed(2)
	}
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul returns the amount for n units priced at m.
func (m Money) Mul(n int) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(n))), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}
