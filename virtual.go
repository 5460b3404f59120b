package tzero

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VirtualPosition is a same-day round trip the engine tracks on its own
// books, separate from the broker-reported holding. It opens once, closes in
// one or more partial fills, and ends CLOSED for good.
type VirtualPosition struct {
	PositionID string
	StockCode  string
	AccountID  string
	Type       T0Type

	OpenVolume int64
	OpenPrice  Price
	OpenTime   time.Time

	ClosedVolume int64
	ClosePrice   Price
	CloseTime    time.Time

	ProfitLoss Money
	ProfitRate Percent

	Status PositionStatus
}

// NewVirtualPosition returns a fresh, unopened virtual position for the pair.
func NewVirtualPosition(accountID, stockCode string) *VirtualPosition {
	return &VirtualPosition{
		PositionID: fmt.Sprintf("T0-%s-%s-%s", accountID, stockCode, uuid.NewString()[:8]),
		StockCode:  stockCode,
		AccountID:  accountID,
		Status:     Active,
	}
}

// Open records the opening leg. A position opens exactly once; a second call,
// or a non-positive volume, is a contract violation.
func (v *VirtualPosition) Open(volume int64, price Price, t T0Type) error {
	if v.OpenVolume != 0 {
		return fmt.Errorf("virtual position %s already open", v.PositionID)
	}
	if volume <= 0 {
		return fmt.Errorf("virtual position %s: open volume must be positive, got %d", v.PositionID, volume)
	}
	v.Type = t
	v.OpenVolume = volume
	v.OpenPrice = price
	v.OpenTime = time.Now()
	return nil
}

// RemainingVolume returns the still-open part of the round trip.
func (v *VirtualPosition) RemainingVolume() int64 { return v.OpenVolume - v.ClosedVolume }

// ClosePartial closes volume shares at price and returns the profit of that
// fill. A volume outside (0, remaining] is a no-op returning zero. Profit is
// (open−close)×v for a sell-first trip and the inverse for buy-first; the
// cumulative profit rate is recomputed against the full opening amount.
func (v *VirtualPosition) ClosePartial(volume int64, price Price) Money {
	if volume <= 0 || volume > v.RemainingVolume() || v.Status == Closed {
		return M(0)
	}
	var profit Money
	switch v.Type {
	case SellFirst:
		profit = v.OpenPrice.Sub(price).Amount(volume)
	default:
		profit = price.Sub(v.OpenPrice).Amount(volume)
	}
	v.ClosedVolume += volume
	v.ClosePrice = price
	v.CloseTime = time.Now()
	v.ProfitLoss = v.ProfitLoss.Add(profit)
	v.ProfitRate = v.ProfitLoss.Over(v.OpenPrice.Amount(v.OpenVolume))
	if v.RemainingVolume() == 0 {
		v.Status = Closed
	}
	return profit
}

// CloseAll closes whatever is still open at price.
func (v *VirtualPosition) CloseAll(price Price) Money {
	return v.ClosePartial(v.RemainingVolume(), price)
}
