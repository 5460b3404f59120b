package tzero

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// The engine quotes everything in yuan. Positions from other markets still
// settle in CNY through the broker, so there is no currency dimension here.
const currencyCode = "CNY"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Price is a per-share quote. Arithmetic stays in decimal all the way
// through; nothing is rounded before the rendering or export boundary.
type Price struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Price {
	return Price{value: newDecimal(value)}
}

// Amount returns the cash value of volume shares at this price.
func (p Price) Amount(volume int64) Money {
	return Money{value: p.value.Mul(decimal.NewFromInt(volume))}
}

func (p Price) Add(q Price) Price          { return Price{value: p.value.Add(q.value)} }
func (p Price) Sub(q Price) Price          { return Price{value: p.value.Sub(q.value)} }
func (p Price) Equal(q Price) bool         { return p.value.Equal(q.value) }
func (p Price) LessThan(q Price) bool      { return p.value.LessThan(q.value) }
func (p Price) GreaterThan(q Price) bool   { return p.value.GreaterThan(q.value) }
func (p Price) IsZero() bool               { return p.value.IsZero() }
func (p Price) IsPositive() bool           { return p.value.IsPositive() }
func (p Price) IsNegative() bool           { return p.value.IsNegative() }
func (p Price) Decimal() decimal.Decimal   { return p.value }
func (p Price) String() string             { return p.value.String() }

func (p Price) MarshalJSON() ([]byte, error)  { return p.value.MarshalJSON() }
func (p *Price) UnmarshalJSON(b []byte) error { return p.value.UnmarshalJSON(b) }

// Money is an amount of cash in yuan.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func (m Money) Add(n Money) Money          { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money          { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money                 { return Money{value: m.value.Neg()} }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool      { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) Decimal() decimal.Decimal   { return m.value }

// MulFactor scales the amount by a bare decimal factor, such as an
// adjustment factor from a corporate action.
func (m Money) MulFactor(f decimal.Decimal) Money {
	return Money{value: m.value.Mul(f)}
}

// PerShare spreads the amount over volume shares. volume must be positive;
// callers guard this, a zero volume is a programming error.
func (m Money) PerShare(volume int64) Price {
	return Price{value: m.value.Div(decimal.NewFromInt(volume))}
}

// Over returns m as a percentage of base. A zero base yields a zero percent
// rather than a division error.
func (m Money) Over(base Money) Percent {
	if base.IsZero() {
		return 0
	}
	return Percent(m.value.Div(base.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// String formats the amount as yuan, rounded to the currency fraction. This
// is a rendering operation only; the underlying value keeps all digits.
func (m Money) String() string {
	cur := *money.New(0, currencyCode).Currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.Round(0).IntPart())
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

func (m Money) MarshalJSON() ([]byte, error)  { return m.value.MarshalJSON() }
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }
