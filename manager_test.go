package tzero

import (
	"testing"
)

// setupDesk loads a manager with two accounts holding three stocks.
func setupDesk(t *testing.T) *PositionManager {
	t.Helper()
	m := NewPositionManager()
	n, err := m.Load([]PositionRecord{
		record("A001", "600000", 10000, 8000, 10.50, 11.20),
		record("A001", "000001", 5000, 5000, 12.00, 11.80),
		record("A002", "600000", 2000, 2000, 10.00, 11.20),
	})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("Load() = %d records, want 3", n)
	}
	return m
}

func TestPositionManager_LoadSkipsInvalid(t *testing.T) {
	m := NewPositionManager()
	n, err := m.Load([]PositionRecord{
		record("A001", "600000", 1000, 800, 10, 10),
		{StockCode: "000001", AccountID: "A001"}, // missing market id
		record("A001", "", 1000, 800, 10, 10),    // missing stock code
	})
	if err == nil {
		t.Fatal("Load() with invalid records returned nil error")
	}
	if n != 1 {
		t.Errorf("Load() = %d, want 1 valid record loaded", n)
	}
	if m.Position("A001", "600000") == nil {
		t.Error("valid record was not loaded")
	}
}

func TestPositionManager_ReloadReplacesHoldings(t *testing.T) {
	m := setupDesk(t)

	// A second load is authoritative for the accounts it covers.
	if _, err := m.Load([]PositionRecord{record("A001", "600519", 100, 100, 1500, 1520)}); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if m.Position("A001", "600000") != nil {
		t.Error("stale holding survived reload of its account")
	}
	if m.Position("A001", "600519") == nil {
		t.Error("reloaded holding missing")
	}
	if m.Position("A002", "600000") == nil {
		t.Error("untouched account lost its holding")
	}
}

func TestPositionManager_UpdatePriceBroadcast(t *testing.T) {
	m := setupDesk(t)
	if got := m.UpdatePrice("600000", P(11.50)); got != 2 {
		t.Fatalf("UpdatePrice() touched %d positions, want 2", got)
	}
	for _, accountID := range []string{"A001", "A002"} {
		if got := m.Position(accountID, "600000").CurrentPrice; !got.Equal(P(11.50)) {
			t.Errorf("%s/600000 CurrentPrice = %v, want 11.50", accountID, got)
		}
	}
}

func TestPositionManager_ExecuteT0SellFirst(t *testing.T) {
	m := setupDesk(t)
	p := m.Position("A001", "600000")
	totalBefore := p.TotalVolume
	availableBefore := p.AvailableVolume

	v, ok := m.ExecuteT0SellFirst("A001", "600000", 3000, P(11.20), P(11.00))
	if !ok {
		t.Fatal("ExecuteT0SellFirst() = false, want true")
	}

	// The round trip realized (11.20-11.00)×3000.
	if got, want := v.ProfitLoss, M(600); !got.Equal(want) {
		t.Errorf("ProfitLoss = %v, want %v", got, want)
	}
	if v.Status != Closed {
		t.Errorf("Status = %v, want %v", v.Status, Closed)
	}

	// Total volume is conserved; the buy-back settles T+1.
	if p.TotalVolume != totalBefore {
		t.Errorf("TotalVolume = %d, want %d conserved", p.TotalVolume, totalBefore)
	}
	if got, want := p.AvailableVolume, availableBefore-3000; got != want {
		t.Errorf("AvailableVolume = %d, want %d", got, want)
	}
	if p.TodayVolume != 3000 {
		t.Errorf("TodayVolume = %d, want 3000", p.TodayVolume)
	}

	// Cost re-based: (10000-3000)×10.50 + 3000×11.00 over 10000.
	wantCost := M(7000 * 10.50).Add(M(3000 * 11.00)).PerShare(10000)
	if got := p.CostPrice; !got.Equal(wantCost) {
		t.Errorf("CostPrice = %v, want %v", got, wantCost)
	}

	if got := m.Account("A001").T0ProfitLoss(); !got.Equal(M(600)) {
		t.Errorf("account T0ProfitLoss = %v, want 600", got)
	}
}

func TestPositionManager_ExecuteT0SellFirst_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		accountID string
		stockCode string
		volume    int64
	}{
		{"unknown account", "A999", "600000", 100},
		{"unknown stock", "A001", "999999", 100},
		{"over sellable", "A001", "600000", 8001},
		{"zero volume", "A001", "600000", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := setupDesk(t)
			if _, ok := m.ExecuteT0SellFirst(tc.accountID, tc.stockCode, tc.volume, P(11.20), P(11.00)); ok {
				t.Fatal("ExecuteT0SellFirst() = true, want false")
			}
			// Nothing moved.
			if p := m.Position("A001", "600000"); p.TotalVolume != 10000 || p.AvailableVolume != 8000 {
				t.Errorf("rejected trade mutated position: total=%d available=%d", p.TotalVolume, p.AvailableVolume)
			}
			if got := m.Summary().ActiveT0Count; got != 0 {
				t.Errorf("ActiveT0Count = %d, want 0", got)
			}
		})
	}
}

func TestPositionManager_ExecuteT0BuyFirst(t *testing.T) {
	m := setupDesk(t)
	v, ok := m.ExecuteT0BuyFirst("A001", "600000", 2000, P(11.00), P(11.30))
	if !ok {
		t.Fatal("ExecuteT0BuyFirst() = false, want true")
	}
	if got, want := v.ProfitLoss, M(600); !got.Equal(want) {
		t.Errorf("ProfitLoss = %v, want %v", got, want)
	}

	// The buy and the sell net out on the broker side; the holding stays put.
	p := m.Position("A001", "600000")
	if p.TotalVolume != 10000 || p.AvailableVolume != 8000 || p.TodayVolume != 0 {
		t.Errorf("buy-first mutated the real position: total=%d available=%d today=%d",
			p.TotalVolume, p.AvailableVolume, p.TodayVolume)
	}

	if _, ok := m.ExecuteT0BuyFirst("A999", "600000", 100, P(11), P(11.1)); ok {
		t.Error("ExecuteT0BuyFirst() on unknown account = true, want false")
	}
}

func TestPositionManager_ExecuteT0BuyFirst_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		accountID string
		stockCode string
		volume    int64
	}{
		{"unknown account", "A999", "600000", 100},
		{"stock not held", "A001", "999999", 100},
		{"zero volume", "A001", "600000", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := setupDesk(t)
			v, ok := m.ExecuteT0BuyFirst(tc.accountID, tc.stockCode, tc.volume, P(11.00), P(11.30))
			if ok || v != nil {
				t.Fatalf("ExecuteT0BuyFirst() = %v, %v, want nil, false", v, ok)
			}
			if got := m.Summary().T0ProfitLoss; !got.IsZero() {
				t.Errorf("rejected trade booked T0 profit %v", got)
			}
			if got := len(m.Account("A001").VirtualPositions()); got != 0 {
				t.Errorf("rejected trade left %d virtual positions", got)
			}
		})
	}
}

func TestPositionManager_Summary(t *testing.T) {
	m := setupDesk(t)
	m.ExecuteT0SellFirst("A001", "600000", 1000, P(11.20), P(11.00))

	s := m.Summary()
	if s.AccountCount != 2 {
		t.Errorf("AccountCount = %d, want 2", s.AccountCount)
	}
	if s.PositionCount != 3 {
		t.Errorf("PositionCount = %d, want 3", s.PositionCount)
	}
	if got, want := s.T0ProfitLoss, M(200); !got.Equal(want) {
		t.Errorf("T0ProfitLoss = %v, want %v", got, want)
	}
	if len(s.Accounts) != 2 || s.Accounts[0].AccountID != "A001" {
		t.Errorf("Accounts not sorted by id: %+v", s.Accounts)
	}
}
