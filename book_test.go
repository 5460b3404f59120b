package tzero

import (
	"strings"
	"testing"
	"time"

	"github.com/yxtq/tzero/date"
)

func TestLedgerBook_SnapshotAndQueries(t *testing.T) {
	m := setupDesk(t)
	b := NewLedgerBook()
	day1 := date.New(2026, time.March, 2)

	if got := b.Snapshot(m, day1); got != 3 {
		t.Fatalf("Snapshot() = %d, want 3", got)
	}
	if got := len(b.ByAccount("A001")); got != 2 {
		t.Errorf("ByAccount(A001) has %d records, want 2", got)
	}
	if got := len(b.ByStock("600000")); got != 2 {
		t.Errorf("ByStock(600000) has %d records, want 2", got)
	}

	s := b.Summary(day1)
	if s.Records != 3 || s.Accounts != 2 {
		t.Errorf("Summary = %d records / %d accounts, want 3/2", s.Records, s.Accounts)
	}
	// 10000×11.20 + 5000×11.80 + 2000×11.20
	if want := M(112000).Add(M(59000)).Add(M(22400)); !s.MarketValue.Equal(want) {
		t.Errorf("MarketValue = %v, want %v", s.MarketValue, want)
	}
	if want := s.MarketValue.Sub(s.CostAmount); !s.ProfitLoss.Equal(want) {
		t.Errorf("ProfitLoss = %v, want %v", s.ProfitLoss, want)
	}

	// A second day stacks on top without touching day one.
	m.UpdatePrice("600000", P(11.50))
	day2 := day1.Add(1)
	b.Snapshot(m, day2)
	if got := len(b.OnDate(day1)); got != 3 {
		t.Errorf("OnDate(day1) has %d records after second snapshot, want 3", got)
	}
	if got := len(b.Dates()); got != 2 {
		t.Errorf("Dates() has %d entries, want 2", got)
	}

	b.Clear()
	if got := len(b.Records()); got != 0 {
		t.Errorf("Records() has %d entries after Clear, want 0", got)
	}
}

func TestExportLedgerBook(t *testing.T) {
	m := setupDesk(t)
	b := NewLedgerBook()
	b.Snapshot(m, date.New(2026, time.March, 2))

	var sb strings.Builder
	if err := ExportLedgerBook(&sb, b); err != nil {
		t.Fatalf("ExportLedgerBook() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("export has %d lines, want header + 3 records", len(lines))
	}
	if !strings.HasPrefix(lines[0], "trade_date,account_id,stock_code") {
		t.Errorf("header = %q", lines[0])
	}
	// Prices carry 4 decimals, amounts 2.
	if !strings.Contains(lines[1], "12.0000") || !strings.Contains(lines[1], "60000.00") {
		t.Errorf("record not rounded for export: %q", lines[1])
	}
}
