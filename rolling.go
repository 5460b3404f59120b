package tzero

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yxtq/tzero/date"
)

// LedgerKey identifies one rolling ledger: one instrument in one account.
type LedgerKey struct {
	AccountID string
	StockCode string
}

func (k LedgerKey) String() string { return k.AccountID + "/" + k.StockCode }

// LedgerRollingState is the live state of one ledger. After every roll it
// satisfies current = previous × factor + amount for the latest day.
//
// initialized distinguishes a ledger that has genuinely rolled (or been
// seeded) from a fresh zero one: only an initialized ledger shifts its
// current value into previous on the next roll. A first roll never
// manufactures a phantom previous day, and a ledger legitimately rolled to
// zero still shifts.
type LedgerRollingState struct {
	AccountID string
	StockCode string
	StockName string

	PreviousLedger Money
	CurrentLedger  Money
	Factor         decimal.Decimal
	Amount         Money

	PreviousDate date.Date
	CurrentDate  date.Date

	initialized bool
	UpdateTime  time.Time
}

// Key returns the ledger identity.
func (s *LedgerRollingState) Key() LedgerKey {
	return LedgerKey{AccountID: s.AccountID, StockCode: s.StockCode}
}

// Initialized reports whether the ledger has been seeded or rolled at least once.
func (s *LedgerRollingState) Initialized() bool { return s.initialized }

// CalculationRecord is one line of the append-only audit trail: the inputs
// and output of a single roll, with the arithmetic spelled out.
type CalculationRecord struct {
	AccountID      string
	StockCode      string
	TradeDate      date.Date
	PreviousLedger Money
	Factor         decimal.Decimal
	Amount         Money
	CurrentLedger  Money
	Calculation    string
	RecordTime     time.Time
}

// Roll is the input of one rolling step. A zero Factor means "not supplied":
// the calculator derives it from Events, or defaults to the identity.
type Roll struct {
	AccountID string
	StockCode string
	StockName string
	Factor    decimal.Decimal
	Amount    Money
	TradeDate date.Date
	Events    []AdjustmentEvent
}

// LedgerRollingCalculator rolls per-key ledgers across trading days and keeps
// the full calculation and corporate-action history. Safe for concurrent use.
type LedgerRollingCalculator struct {
	mu          sync.RWMutex
	states      map[LedgerKey]*LedgerRollingState
	history     map[LedgerKey][]CalculationRecord
	adjustments map[string][]AdjustmentEvent
}

// NewLedgerRollingCalculator returns an empty calculator.
func NewLedgerRollingCalculator() *LedgerRollingCalculator {
	return &LedgerRollingCalculator{
		states:      make(map[LedgerKey]*LedgerRollingState),
		history:     make(map[LedgerKey][]CalculationRecord),
		adjustments: make(map[string][]AdjustmentEvent),
	}
}

// state returns the ledger for key, creating a fresh one. Callers hold mu.
func (c *LedgerRollingCalculator) state(key LedgerKey, stockName string) *LedgerRollingState {
	s, ok := c.states[key]
	if !ok {
		s = &LedgerRollingState{
			AccountID:      key.AccountID,
			StockCode:      key.StockCode,
			PreviousLedger: M(0),
			CurrentLedger:  M(0),
			Factor:         decimal.NewFromInt(1),
			Amount:         M(0),
		}
		c.states[key] = s
	}
	if stockName != "" {
		s.StockName = stockName
	}
	return s
}

// Roll advances the ledger for (r.AccountID, r.StockCode) by one trading day:
//
//	current = previous × factor + amount
//
// where previous is the ledger's current value if it has ever been seeded or
// rolled, zero otherwise. The factor comes from r.Factor when set, else from
// the product of r.Events, else 1. Empty identifiers are a contract violation
// and return an error with nothing recorded.
func (c *LedgerRollingCalculator) Roll(r Roll) (Money, error) {
	if r.AccountID == "" {
		return M(0), fmt.Errorf("roll: empty account id for stock %q", r.StockCode)
	}
	if r.StockCode == "" {
		return M(0), fmt.Errorf("roll: empty stock code for account %q", r.AccountID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := LedgerKey{AccountID: r.AccountID, StockCode: r.StockCode}
	s := c.state(key, r.StockName)

	if s.initialized {
		s.PreviousLedger = s.CurrentLedger
		s.PreviousDate = s.CurrentDate
	}

	// Events only drive the factor. Cash amounts always come in explicitly
	// through r.Amount; CompositeAmount is for callers that want the sum.
	factor := r.Factor
	if factor.IsZero() {
		factor = CompositeFactor(r.Events)
	}
	amount := r.Amount

	s.CurrentLedger = s.PreviousLedger.MulFactor(factor).Add(amount)
	s.Factor = factor
	s.Amount = amount
	s.CurrentDate = r.TradeDate
	s.initialized = true
	s.UpdateTime = time.Now()

	c.history[key] = append(c.history[key], CalculationRecord{
		AccountID:      r.AccountID,
		StockCode:      r.StockCode,
		TradeDate:      r.TradeDate,
		PreviousLedger: s.PreviousLedger,
		Factor:         factor,
		Amount:         amount,
		CurrentLedger:  s.CurrentLedger,
		Calculation: fmt.Sprintf("%s × %s + %s = %s",
			s.PreviousLedger.Decimal(), factor, amount.Decimal(), s.CurrentLedger.Decimal()),
		RecordTime: time.Now(),
	})
	return s.CurrentLedger, nil
}

// InitializeLedger seeds the ledger with an opening value, so the next Roll
// shifts from it. Empty identifiers are rejected as in Roll.
func (c *LedgerRollingCalculator) InitializeLedger(accountID, stockCode, stockName string, seed Money, on date.Date) error {
	if accountID == "" || stockCode == "" {
		return fmt.Errorf("initialize: empty identifier account=%q stock=%q", accountID, stockCode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := LedgerKey{AccountID: accountID, StockCode: stockCode}
	s := c.state(key, stockName)
	s.PreviousLedger = seed
	s.CurrentLedger = seed
	s.Factor = decimal.NewFromInt(1)
	s.Amount = M(0)
	s.PreviousDate = on
	s.CurrentDate = on
	s.initialized = true
	s.UpdateTime = time.Now()
	return nil
}

// Reset zeroes the ledger values of key but keeps the identity and the
// recorded history. The ledger reverts to uninitialized, as if never rolled.
func (c *LedgerRollingCalculator) Reset(key LedgerKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.states[key]
	if !ok {
		return false
	}
	s.PreviousLedger = M(0)
	s.CurrentLedger = M(0)
	s.Factor = decimal.NewFromInt(1)
	s.Amount = M(0)
	s.PreviousDate = date.Date{}
	s.CurrentDate = date.Date{}
	s.initialized = false
	s.UpdateTime = time.Now()
	return true
}

// Clear drops every ledger, every calculation record and every event.
func (c *LedgerRollingCalculator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states = make(map[LedgerKey]*LedgerRollingState)
	c.history = make(map[LedgerKey][]CalculationRecord)
	c.adjustments = make(map[string][]AdjustmentEvent)
}

// State returns a copy of the ledger state for key.
func (c *LedgerRollingCalculator) State(key LedgerKey) (LedgerRollingState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.states[key]
	if !ok {
		return LedgerRollingState{}, false
	}
	return *s, true
}

// CurrentLedger returns the latest ledger value for key, zero for unknown keys.
func (c *LedgerRollingCalculator) CurrentLedger(key LedgerKey) Money {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.states[key]
	if !ok {
		return M(0)
	}
	return s.CurrentLedger
}

// AllStates returns a copy of every ledger, sorted by account then stock.
func (c *LedgerRollingCalculator) AllStates() []LedgerRollingState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]LedgerRollingState, 0, len(c.states))
	for _, s := range c.states {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AccountID != list[j].AccountID {
			return list[i].AccountID < list[j].AccountID
		}
		return list[i].StockCode < list[j].StockCode
	})
	return list
}

// CalculationHistory returns the audit trail for key, oldest first.
func (c *LedgerRollingCalculator) CalculationHistory(key LedgerKey) []CalculationRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]CalculationRecord(nil), c.history[key]...)
}

// AddAdjustmentEvent appends a corporate action to the stock's history.
func (c *LedgerRollingCalculator) AddAdjustmentEvent(e AdjustmentEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.RecordTime.IsZero() {
		e.RecordTime = time.Now()
	}
	c.adjustments[e.StockCode] = append(c.adjustments[e.StockCode], e)
}

// AdjustmentHistory returns the recorded corporate actions for stockCode,
// oldest first.
func (c *LedgerRollingCalculator) AdjustmentHistory(stockCode string) []AdjustmentEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]AdjustmentEvent(nil), c.adjustments[stockCode]...)
}
