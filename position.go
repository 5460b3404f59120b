package tzero

import "time"

// RealPosition is a holding as the broker reports it, identified by the
// (AccountID, StockCode) pair. Volumes are shares; the available and frozen
// parts never exceed the total.
//
// Monetary fields derived from the volumes (cost amount, market value, profit
// and loss) are computed on read rather than stored, so they can never drift
// from the volumes and prices they are derived from.
type RealPosition struct {
	StockCode string
	StockName string
	AccountID string
	MarketID  string

	TotalVolume     int64
	AvailableVolume int64
	FrozenVolume    int64
	YesterdayVolume int64
	TodayVolume     int64

	CostPrice    Price
	CurrentPrice Price

	Status     PositionStatus
	UpdateTime time.Time
}

// CostAmount returns the total acquisition cost of the holding.
func (p *RealPosition) CostAmount() Money { return p.CostPrice.Amount(p.TotalVolume) }

// MarketValue returns the holding valued at the current price.
func (p *RealPosition) MarketValue() Money { return p.CurrentPrice.Amount(p.TotalVolume) }

// ProfitLoss returns the unrealized gain, market value minus cost.
func (p *RealPosition) ProfitLoss() Money { return p.MarketValue().Sub(p.CostAmount()) }

// SellableVolume returns the volume that can be sold right now. A frozen
// position is never sellable, whatever its available volume says.
func (p *RealPosition) SellableVolume() int64 {
	if p.Status == Frozen {
		return 0
	}
	return p.AvailableVolume
}

// Freeze moves volume from available to frozen. It returns false and leaves
// the position untouched when volume is not in (0, available].
func (p *RealPosition) Freeze(volume int64) bool {
	if volume <= 0 || volume > p.AvailableVolume {
		return false
	}
	p.AvailableVolume -= volume
	p.FrozenVolume += volume
	p.UpdateTime = time.Now()
	return true
}

// Unfreeze moves volume from frozen back to available. It returns false and
// leaves the position untouched when volume is not in (0, frozen].
func (p *RealPosition) Unfreeze(volume int64) bool {
	if volume <= 0 || volume > p.FrozenVolume {
		return false
	}
	p.FrozenVolume -= volume
	p.AvailableVolume += volume
	p.UpdateTime = time.Now()
	return true
}

// Reduce takes volume out of the position, as a sell fill does. Both the
// total and the available volume shrink. It returns false and leaves the
// position untouched when volume is not in (0, available].
func (p *RealPosition) Reduce(volume int64) bool {
	if volume <= 0 || volume > p.AvailableVolume {
		return false
	}
	p.TotalVolume -= volume
	p.AvailableVolume -= volume
	p.UpdateTime = time.Now()
	return true
}

// Increase adds volume bought at price. The cost price is re-based to the
// weighted average of the old holding and the new shares. Shares bought today
// settle T+1, so the available volume is deliberately not raised; the new
// shares land in TotalVolume and TodayVolume only.
func (p *RealPosition) Increase(volume int64, price Price) bool {
	if volume <= 0 {
		return false
	}
	newTotal := p.TotalVolume + volume
	p.CostPrice = p.CostAmount().Add(price.Amount(volume)).PerShare(newTotal)
	p.TotalVolume = newTotal
	p.TodayVolume += volume
	p.UpdateTime = time.Now()
	return true
}

// UpdatePrice records a fresh market quote.
func (p *RealPosition) UpdatePrice(price Price) {
	p.CurrentPrice = price
	p.UpdateTime = time.Now()
}
