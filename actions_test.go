package tzero

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const adjustmentFeed = `{
  "data": {
    "items": [
      {"date": "2026-06-30", "code": "600000", "type": "dividend", "amount": 4100.0, "volume": 10000, "note": "2025 annual dividend"},
      {"date": "20260715", "code": "600000", "type": "split", "factor": 0.5}
    ]
  }
}`

func TestParseAdjustmentFeed(t *testing.T) {
	events, err := ParseAdjustmentFeed(strings.NewReader(adjustmentFeed))
	if err != nil {
		t.Fatalf("ParseAdjustmentFeed() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	div := events[0]
	if div.Type != Dividend || div.StockCode != "600000" {
		t.Errorf("event 0 = %v %s, want dividend 600000", div.Type, div.StockCode)
	}
	if !div.Amount.Equal(M(4100)) || div.Volume != 10000 {
		t.Errorf("event 0 amount/volume = %v/%d, want 4100/10000", div.Amount, div.Volume)
	}
	if div.TradeDate.String() != "2026-06-30" {
		t.Errorf("event 0 date = %v, want 2026-06-30", div.TradeDate)
	}
	if !div.EffectiveFactor().Equal(decimal.NewFromInt(1)) {
		t.Errorf("dividend factor = %v, want identity", div.EffectiveFactor())
	}

	split := events[1]
	if split.Type != Split || !split.Factor.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("event 1 = %v factor %v, want split 0.5", split.Type, split.Factor)
	}
	if split.TradeDate.String() != "2026-07-15" {
		t.Errorf("event 1 date = %v, want 2026-07-15 from compact form", split.TradeDate)
	}
}

func TestParseAdjustmentFeed_Errors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"not json", "not json"},
		{"missing items", `{"data": {}}`},
		{"unknown type", `{"data": {"items": [{"date": "2026-06-30", "code": "600000", "type": "merger"}]}}`},
		{"missing code", `{"data": {"items": [{"date": "2026-06-30", "type": "dividend"}]}}`},
		{"bad date", `{"data": {"items": [{"date": "June 30", "code": "600000", "type": "dividend"}]}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseAdjustmentFeed(strings.NewReader(tc.in)); err == nil {
				t.Errorf("ParseAdjustmentFeed(%q) succeeded, want error", tc.in)
			}
		})
	}
}
