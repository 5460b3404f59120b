package tzero

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// PositionManager is the desk-wide position engine. It owns every account and
// composes the multi-step T0 protocols so callers never see a half-applied
// round trip.
//
// A single RWMutex guards the whole desk. Loads, price updates and the
// compound T0 sequences take the write lock; queries take the read lock.
type PositionManager struct {
	mu         sync.RWMutex
	accounts   map[string]*AccountPosition
	updateTime time.Time
}

// DeskSummary aggregates every account the manager knows.
type DeskSummary struct {
	AccountCount     int
	PositionCount    int
	TotalMarketValue Money
	TotalProfitLoss  Money
	T0ProfitLoss     Money
	ActiveT0Count    int
	UpdateTime       time.Time
	Accounts         []AccountSummary
}

// NewPositionManager returns an empty desk.
func NewPositionManager() *PositionManager {
	return &PositionManager{accounts: make(map[string]*AccountPosition)}
}

// account returns the account, creating it on first touch. Callers hold mu.
func (m *PositionManager) account(accountID string) *AccountPosition {
	a, ok := m.accounts[accountID]
	if !ok {
		a = NewAccountPosition(accountID)
		m.accounts[accountID] = a
	}
	return a
}

// Load replaces holdings from a fresh feed. The first record touching an
// account in this load clears that account's real positions, so the feed is
// authoritative for what it covers; virtual positions survive, they are the
// engine's own books. Invalid records are skipped and reported together; the
// count of loaded records is returned either way.
func (m *PositionManager) Load(records []PositionRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	touched := make(map[string]bool)
	var errs []error
	loaded := 0
	for i, r := range records {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		a := m.account(r.AccountID)
		if !touched[r.AccountID] {
			a.positions = make(map[string]*RealPosition)
			touched[r.AccountID] = true
		}
		p := r.Position()
		p.UpdateTime = time.Now()
		a.AddPosition(p)
		loaded++
	}
	m.updateTime = time.Now()
	return loaded, errors.Join(errs...)
}

// Position returns the holding for the pair, or nil.
func (m *PositionManager) Position(accountID, stockCode string) *RealPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return nil
	}
	return a.Position(stockCode)
}

// SellableVolume returns what the pair can sell right now, zero for unknown pairs.
func (m *PositionManager) SellableVolume(accountID, stockCode string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return 0
	}
	p := a.Position(stockCode)
	if p == nil {
		return 0
	}
	return p.SellableVolume()
}

// UpdatePrice pushes a quote to every account holding the stock.
func (m *PositionManager) UpdatePrice(stockCode string, price Price) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.accounts {
		if p := a.Position(stockCode); p != nil {
			p.UpdatePrice(price)
			n++
		}
	}
	if n > 0 {
		m.updateTime = time.Now()
	}
	return n
}

// ExecuteT0SellFirst runs a complete sell-first round trip: sell volume held
// shares at sellPrice, buy them back at buyPrice. The real position sheds the
// sold shares and re-absorbs the bought ones at the weighted-average cost;
// its total volume ends where it started, with today's buy locked until T+1.
//
// The second return is false, with nothing mutated, when the pair is unknown
// or cannot sell volume shares.
func (m *PositionManager) ExecuteT0SellFirst(accountID, stockCode string, volume int64, sellPrice, buyPrice Price) (*VirtualPosition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[accountID]
	if !ok {
		return nil, false
	}
	p := a.Position(stockCode)
	if p == nil || volume <= 0 || volume > p.SellableVolume() {
		return nil, false
	}

	v := NewVirtualPosition(accountID, stockCode)
	if err := v.Open(volume, sellPrice, SellFirst); err != nil {
		return nil, false
	}
	if !p.Reduce(volume) {
		return nil, false
	}
	v.CloseAll(buyPrice)
	p.Increase(volume, buyPrice)
	a.AddVirtualPosition(v)
	m.updateTime = time.Now()
	return v, true
}

// ExecuteT0BuyFirst runs a buy-first round trip: buy volume extra shares at
// buyPrice, sell the same volume of old inventory at sellPrice. Only the
// virtual books move; the broker position nets out to where it started, so it
// is deliberately left untouched. The account must already hold the stock,
// since the closing leg sells old inventory.
func (m *PositionManager) ExecuteT0BuyFirst(accountID, stockCode string, volume int64, buyPrice, sellPrice Price) (*VirtualPosition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[accountID]
	if !ok || volume <= 0 {
		return nil, false
	}
	if a.Position(stockCode) == nil {
		return nil, false
	}

	v := NewVirtualPosition(accountID, stockCode)
	if err := v.Open(volume, buyPrice, BuyFirst); err != nil {
		return nil, false
	}
	v.CloseAll(sellPrice)
	a.AddVirtualPosition(v)
	m.updateTime = time.Now()
	return v, true
}

// Account returns the account, or nil.
func (m *PositionManager) Account(accountID string) *AccountPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts[accountID]
}

// AccountIDs returns the known accounts, sorted.
func (m *PositionManager) AccountIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.accounts))
	for id := range m.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllPositions returns every holding on the desk, sorted by account then stock.
func (m *PositionManager) AllPositions() []*RealPosition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var list []*RealPosition
	for _, a := range m.accounts {
		list = append(list, a.Positions()...)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AccountID != list[j].AccountID {
			return list[i].AccountID < list[j].AccountID
		}
		return list[i].StockCode < list[j].StockCode
	})
	return list
}

// Summary aggregates the whole desk, accounts sorted by id.
func (m *PositionManager) Summary() DeskSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := DeskSummary{
		AccountCount:     len(m.accounts),
		TotalMarketValue: M(0),
		TotalProfitLoss:  M(0),
		T0ProfitLoss:     M(0),
		UpdateTime:       m.updateTime,
	}
	for _, id := range sortedKeys(m.accounts) {
		as := m.accounts[id].Summary()
		s.PositionCount += as.PositionCount
		s.TotalMarketValue = s.TotalMarketValue.Add(as.TotalMarketValue)
		s.TotalProfitLoss = s.TotalProfitLoss.Add(as.TotalProfitLoss)
		s.T0ProfitLoss = s.T0ProfitLoss.Add(as.T0ProfitLoss)
		s.ActiveT0Count += as.ActiveT0Count
		s.Accounts = append(s.Accounts, as)
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
