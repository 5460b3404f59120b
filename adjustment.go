package tzero

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yxtq/tzero/date"
)

// AdjustmentEvent is one corporate action on one stock. Events are recorded
// once and never edited; the per-stock history is append-only.
type AdjustmentEvent struct {
	TradeDate   date.Date
	StockCode   string
	Type        AdjustmentType
	Factor      decimal.Decimal
	Amount      Money
	Volume      int64
	Description string
	RecordTime  time.Time
}

// EffectiveFactor returns the event factor, treating an unset (zero) factor
// as the identity so an amount-only event does not zero the ledger.
func (e AdjustmentEvent) EffectiveFactor() decimal.Decimal {
	if e.Factor.IsZero() {
		return decimal.NewFromInt(1)
	}
	return e.Factor
}

// AdjustmentFactor composes the multiplicative factor for a trading day from
// the usual corporate-action terms. Each term contributes only when its
// inputs make sense:
//
//	bonus b shares per share      ×1/(1+b)
//	rights r at price Pr, quote P ×(P+Pr×r)/((1+r)×P)
//	split s-for-1                 ×1/s
//
// Cash dividends never appear here; they flow through AdjustmentAmount.
func AdjustmentFactor(dividendPerShare, rightsRatio, rightsPrice, bonusRatio, splitRatio, currentPrice decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	f := one

	if bonusRatio.IsPositive() {
		f = f.Mul(one.Div(one.Add(bonusRatio)))
	}
	// A zero rights price is a free allotment; the term degenerates to
	// 1/(1+r), so only the ratio and the quote are required.
	if rightsRatio.IsPositive() && currentPrice.IsPositive() {
		exRights := currentPrice.Add(rightsPrice.Mul(rightsRatio))
		f = f.Mul(exRights.Div(one.Add(rightsRatio).Mul(currentPrice)))
	}
	if splitRatio.IsPositive() && !splitRatio.Equal(one) {
		f = f.Mul(one.Div(splitRatio))
	}
	return f
}

// AdjustmentAmount returns the additive cash term for a trading day: the
// dividend across the held shares plus any special adjustment.
func AdjustmentAmount(dividendPerShare decimal.Decimal, totalShares int64, special Money) Money {
	div := M(dividendPerShare.Mul(decimal.NewFromInt(totalShares)))
	return div.Add(special)
}

// CompositeFactor multiplies the factors of a day's events together.
func CompositeFactor(events []AdjustmentEvent) decimal.Decimal {
	f := decimal.NewFromInt(1)
	for _, e := range events {
		f = f.Mul(e.EffectiveFactor())
	}
	return f
}

// CompositeAmount sums the cash terms of a day's events.
func CompositeAmount(events []AdjustmentEvent) Money {
	total := M(0)
	for _, e := range events {
		total = total.Add(e.Amount)
	}
	return total
}
