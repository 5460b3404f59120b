package tzero

import "fmt"

// OrderSide is the direction of an order, in the broker's one-letter coding.
type OrderSide int

const (
	// Buy orders take shares in.
	Buy OrderSide = iota
	// Sell orders give shares out.
	Sell
)

func (s OrderSide) String() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return "unknown"
	}
}

// ParseOrderSide parses a string into an OrderSide.
func ParseOrderSide(s string) (OrderSide, error) {
	switch s {
	case "B":
		return Buy, nil
	case "S":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown order side: %q", s)
	}
}

// PriceType is how the broker should price the order, in the terminal's
// one-digit coding.
type PriceType int

const (
	// Limit orders carry their own price.
	Limit PriceType = iota
	// MarketPrice takes whatever the market gives.
	MarketPrice
	// BestFive sweeps the five best opposite levels, rest cancelled.
	BestFive
	// Counterparty pegs to the best opposite quote.
	Counterparty
	// OwnSide pegs to the best same-side quote.
	OwnSide
)

func (t PriceType) String() string {
	switch t {
	case Limit:
		return "1"
	case MarketPrice:
		return "2"
	case BestFive:
		return "3"
	case Counterparty:
		return "4"
	case OwnSide:
		return "5"
	default:
		return "unknown"
	}
}

// ParsePriceType parses a string into a PriceType.
func ParsePriceType(s string) (PriceType, error) {
	switch s {
	case "1":
		return Limit, nil
	case "2":
		return MarketPrice, nil
	case "3":
		return BestFive, nil
	case "4":
		return Counterparty, nil
	case "5":
		return OwnSide, nil
	default:
		return 0, fmt.Errorf("unknown price type: %q", s)
	}
}
