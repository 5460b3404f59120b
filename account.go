package tzero

import "sort"

// AccountPosition gathers everything the engine knows about one account: its
// broker-reported holdings by stock code and its virtual round trips by
// position id.
type AccountPosition struct {
	AccountID string
	positions map[string]*RealPosition
	virtuals  map[string]*VirtualPosition
}

// AccountSummary is a point-in-time view of an account, computed on demand.
type AccountSummary struct {
	AccountID        string
	PositionCount    int
	TotalMarketValue Money
	TotalCost        Money
	TotalProfitLoss  Money
	T0ProfitLoss     Money
	ActiveT0Count    int
}

// NewAccountPosition returns an empty account.
func NewAccountPosition(accountID string) *AccountPosition {
	return &AccountPosition{
		AccountID: accountID,
		positions: make(map[string]*RealPosition),
		virtuals:  make(map[string]*VirtualPosition),
	}
}

// Position returns the holding for stockCode, or nil.
func (a *AccountPosition) Position(stockCode string) *RealPosition {
	return a.positions[stockCode]
}

// AddPosition stores p under its stock code, replacing any previous holding.
func (a *AccountPosition) AddPosition(p *RealPosition) {
	a.positions[p.StockCode] = p
}

// RemovePosition drops the holding for stockCode, if any.
func (a *AccountPosition) RemovePosition(stockCode string) {
	delete(a.positions, stockCode)
}

// Positions returns the holdings sorted by stock code.
func (a *AccountPosition) Positions() []*RealPosition {
	list := make([]*RealPosition, 0, len(a.positions))
	for _, p := range a.positions {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StockCode < list[j].StockCode })
	return list
}

// AddVirtualPosition stores v under its position id.
func (a *AccountPosition) AddVirtualPosition(v *VirtualPosition) {
	a.virtuals[v.PositionID] = v
}

// VirtualPosition returns the round trip with that id, or nil.
func (a *AccountPosition) VirtualPosition(positionID string) *VirtualPosition {
	return a.virtuals[positionID]
}

// VirtualPositionsFor returns the round trips on stockCode, oldest first.
func (a *AccountPosition) VirtualPositionsFor(stockCode string) []*VirtualPosition {
	var list []*VirtualPosition
	for _, v := range a.virtuals {
		if v.StockCode == stockCode {
			list = append(list, v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OpenTime.Before(list[j].OpenTime) })
	return list
}

// VirtualPositions returns all round trips, oldest first.
func (a *AccountPosition) VirtualPositions() []*VirtualPosition {
	list := make([]*VirtualPosition, 0, len(a.virtuals))
	for _, v := range a.virtuals {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OpenTime.Before(list[j].OpenTime) })
	return list
}

// TotalMarketValue sums the market value of all holdings.
func (a *AccountPosition) TotalMarketValue() Money {
	total := M(0)
	for _, p := range a.positions {
		total = total.Add(p.MarketValue())
	}
	return total
}

// TotalCost sums the cost amount of all holdings.
func (a *AccountPosition) TotalCost() Money {
	total := M(0)
	for _, p := range a.positions {
		total = total.Add(p.CostAmount())
	}
	return total
}

// TotalProfitLoss sums the unrealized gain of all holdings.
func (a *AccountPosition) TotalProfitLoss() Money {
	total := M(0)
	for _, p := range a.positions {
		total = total.Add(p.ProfitLoss())
	}
	return total
}

// T0ProfitLoss sums the realized profit of all round trips, open and closed.
func (a *AccountPosition) T0ProfitLoss() Money {
	total := M(0)
	for _, v := range a.virtuals {
		total = total.Add(v.ProfitLoss)
	}
	return total
}

// ActiveT0Count counts the round trips not yet fully closed.
func (a *AccountPosition) ActiveT0Count() int {
	n := 0
	for _, v := range a.virtuals {
		if v.Status != Closed {
			n++
		}
	}
	return n
}

// Summary computes the account view.
func (a *AccountPosition) Summary() AccountSummary {
	return AccountSummary{
		AccountID:        a.AccountID,
		PositionCount:    len(a.positions),
		TotalMarketValue: a.TotalMarketValue(),
		TotalCost:        a.TotalCost(),
		TotalProfitLoss:  a.TotalProfitLoss(),
		T0ProfitLoss:     a.T0ProfitLoss(),
		ActiveT0Count:    a.ActiveT0Count(),
	}
}
