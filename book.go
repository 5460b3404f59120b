package tzero

import (
	"sort"
	"sync"
	"time"

	"github.com/yxtq/tzero/date"
)

// LedgerRecord is one holding frozen into the daily ledger book.
type LedgerRecord struct {
	TradeDate date.Date
	AccountID string
	StockCode string
	StockName string
	MarketID  string

	TotalVolume     int64
	AvailableVolume int64
	FrozenVolume    int64

	CostPrice    Price
	CurrentPrice Price
	CostAmount   Money
	MarketValue  Money
	ProfitLoss   Money
	ProfitRate   Percent

	RecordTime time.Time
}

// BookSummary aggregates one day of the book.
type BookSummary struct {
	TradeDate   date.Date
	Records     int
	Accounts    int
	MarketValue Money
	CostAmount  Money
	ProfitLoss  Money
}

// LedgerBook accumulates daily ledger records snapshotted from the position
// engine. Records are append-only; a second snapshot of the same day adds a
// new batch rather than editing the old one.
type LedgerBook struct {
	mu      sync.RWMutex
	records []LedgerRecord
}

// NewLedgerBook returns an empty book.
func NewLedgerBook() *LedgerBook {
	return &LedgerBook{}
}

// Snapshot freezes every holding of the desk into the book under the given
// trade date and returns how many records were written.
func (b *LedgerBook) Snapshot(m *PositionManager, on date.Date) int {
	positions := m.AllPositions()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range positions {
		b.records = append(b.records, LedgerRecord{
			TradeDate:       on,
			AccountID:       p.AccountID,
			StockCode:       p.StockCode,
			StockName:       p.StockName,
			MarketID:        p.MarketID,
			TotalVolume:     p.TotalVolume,
			AvailableVolume: p.AvailableVolume,
			FrozenVolume:    p.FrozenVolume,
			CostPrice:       p.CostPrice,
			CurrentPrice:    p.CurrentPrice,
			CostAmount:      p.CostAmount(),
			MarketValue:     p.MarketValue(),
			ProfitLoss:      p.ProfitLoss(),
			ProfitRate:      p.ProfitLoss().Over(p.CostAmount()),
			RecordTime:      time.Now(),
		})
	}
	return len(positions)
}

// Add appends a record built elsewhere.
func (b *LedgerBook) Add(r LedgerRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, r)
}

// Records returns a copy of the whole book, in recording order.
func (b *LedgerBook) Records() []LedgerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]LedgerRecord(nil), b.records...)
}

// ByAccount returns the records of one account, in recording order.
func (b *LedgerBook) ByAccount(accountID string) []LedgerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var list []LedgerRecord
	for _, r := range b.records {
		if r.AccountID == accountID {
			list = append(list, r)
		}
	}
	return list
}

// ByStock returns the records of one stock, in recording order.
func (b *LedgerBook) ByStock(stockCode string) []LedgerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var list []LedgerRecord
	for _, r := range b.records {
		if r.StockCode == stockCode {
			list = append(list, r)
		}
	}
	return list
}

// OnDate returns the records of one trade date, in recording order.
func (b *LedgerBook) OnDate(on date.Date) []LedgerRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var list []LedgerRecord
	for _, r := range b.records {
		if r.TradeDate.Equal(on) {
			list = append(list, r)
		}
	}
	return list
}

// Summary aggregates the records of one trade date.
func (b *LedgerBook) Summary(on date.Date) BookSummary {
	s := BookSummary{
		TradeDate:   on,
		MarketValue: M(0),
		CostAmount:  M(0),
		ProfitLoss:  M(0),
	}
	accounts := make(map[string]bool)
	for _, r := range b.OnDate(on) {
		s.Records++
		accounts[r.AccountID] = true
		s.MarketValue = s.MarketValue.Add(r.MarketValue)
		s.CostAmount = s.CostAmount.Add(r.CostAmount)
		s.ProfitLoss = s.ProfitLoss.Add(r.ProfitLoss)
	}
	s.Accounts = len(accounts)
	return s
}

// Dates returns the distinct trade dates in the book, oldest first.
func (b *LedgerBook) Dates() []date.Date {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := make(map[date.Date]bool)
	var dates []date.Date
	for _, r := range b.records {
		if !seen[r.TradeDate] {
			seen[r.TradeDate] = true
			dates = append(dates, r.TradeDate)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Clear drops every record.
func (b *LedgerBook) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = nil
}
