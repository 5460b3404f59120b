package tzero

import "fmt"

// T0Type is the direction of a same-day round trip.
type T0Type int

const (
	// SellFirst opens the round trip by selling held shares, closing with a buy back.
	SellFirst T0Type = iota
	// BuyFirst opens by buying extra shares, closing with a sell of old inventory.
	BuyFirst
)

func (t T0Type) String() string {
	switch t {
	case SellFirst:
		return "SELL_FIRST"
	case BuyFirst:
		return "BUY_FIRST"
	default:
		return "unknown"
	}
}

// ParseT0Type parses a string into a T0Type.
func ParseT0Type(s string) (T0Type, error) {
	switch s {
	case "SELL_FIRST":
		return SellFirst, nil
	case "BUY_FIRST":
		return BuyFirst, nil
	default:
		return 0, fmt.Errorf("unknown t0 type: %q", s)
	}
}
