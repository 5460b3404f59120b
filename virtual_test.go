package tzero

import (
	"strings"
	"testing"
)

func TestVirtualPosition_OpenOnce(t *testing.T) {
	v := NewVirtualPosition("A001", "600000")
	if !strings.HasPrefix(v.PositionID, "T0-A001-600000-") {
		t.Errorf("PositionID = %q, want T0-A001-600000- prefix", v.PositionID)
	}

	if err := v.Open(1000, P(10.50), SellFirst); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := v.Open(500, P(10.60), SellFirst); err == nil {
		t.Error("second Open() succeeded, want error")
	}

	fresh := NewVirtualPosition("A001", "600000")
	if err := fresh.Open(0, P(10), SellFirst); err == nil {
		t.Error("Open(0) succeeded, want error")
	}
}

func TestVirtualPosition_SellFirstProfit(t *testing.T) {
	// Sold at 10.50, bought back lower: profit is the drop times the volume.
	v := NewVirtualPosition("A001", "600000")
	if err := v.Open(1000, P(10.50), SellFirst); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if got, want := v.ClosePartial(400, P(10.20)), M(120); !got.Equal(want) {
		t.Errorf("ClosePartial(400, 10.20) = %v, want %v", got, want)
	}
	if v.Status != Active {
		t.Errorf("Status = %v after partial close, want %v", v.Status, Active)
	}
	if got := v.RemainingVolume(); got != 600 {
		t.Errorf("RemainingVolume() = %d, want 600", got)
	}
	if got, want := v.ProfitRate, Percent(120.0/10500.0*100); !got.Equal(want) {
		t.Errorf("ProfitRate = %v, want %v", got, want)
	}

	if got, want := v.CloseAll(P(10.00)), M(300); !got.Equal(want) {
		t.Errorf("CloseAll(10.00) = %v, want %v", got, want)
	}
	if v.Status != Closed {
		t.Errorf("Status = %v after full close, want %v", v.Status, Closed)
	}
	if got, want := v.ProfitLoss, M(420); !got.Equal(want) {
		t.Errorf("cumulative ProfitLoss = %v, want %v", got, want)
	}
	if got, want := v.ProfitRate, Percent(4.0); !got.Equal(want) {
		t.Errorf("ProfitRate = %v, want %v", got, want)
	}
}

func TestVirtualPosition_BuyFirstProfit(t *testing.T) {
	// Bought at 10.00, sold higher: profit is the rise times the volume.
	v := NewVirtualPosition("A001", "600000")
	if err := v.Open(1000, P(10.00), BuyFirst); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if got, want := v.CloseAll(P(10.30)), M(300); !got.Equal(want) {
		t.Errorf("CloseAll(10.30) = %v, want %v", got, want)
	}
	if got, want := v.ProfitRate, Percent(3.0); !got.Equal(want) {
		t.Errorf("ProfitRate = %v, want %v", got, want)
	}
}

func TestVirtualPosition_ClosePartialRejections(t *testing.T) {
	v := NewVirtualPosition("A001", "600000")
	if err := v.Open(1000, P(10), SellFirst); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	testCases := []struct {
		name   string
		volume int64
	}{
		{"zero volume", 0},
		{"negative volume", -100},
		{"over remaining", 1001},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ClosePartial(tc.volume, P(9)); !got.IsZero() {
				t.Errorf("ClosePartial(%d) = %v, want zero", tc.volume, got)
			}
			if v.ClosedVolume != 0 {
				t.Errorf("rejected close mutated ClosedVolume to %d", v.ClosedVolume)
			}
		})
	}

	v.CloseAll(P(9))
	if got := v.ClosePartial(1, P(9)); !got.IsZero() {
		t.Errorf("ClosePartial on closed position = %v, want zero", got)
	}
}

func TestVirtualPosition_LossRate(t *testing.T) {
	v := NewVirtualPosition("A001", "600000")
	if err := v.Open(1000, P(10.00), SellFirst); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	// Bought back above the sell price: a loss.
	if got, want := v.CloseAll(P(10.50)), M(-500); !got.Equal(want) {
		t.Errorf("CloseAll(10.50) = %v, want %v", got, want)
	}
	if got, want := v.ProfitRate, Percent(-5.0); !got.Equal(want) {
		t.Errorf("ProfitRate = %v, want %v", got, want)
	}
}
