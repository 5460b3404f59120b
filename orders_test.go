package tzero

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/yxtq/tzero/date"
)

// limitOrder is a helper for tests to build a valid limit order from const.
func limitOrder(side OrderSide, volume int64, price float64) Order {
	return Order{
		AccountID: "A001",
		MarketID:  "1",
		StockCode: "600000",
		StockName: "浦发银行",
		Side:      side,
		PriceType: Limit,
		Price:     P(price),
		Volume:    volume,
		OrderDate: date.New(2026, time.March, 2),
		OrderTime: "09:31:00",
		Source:    "T0",
	}
}

func TestOrder_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Order)
		wantErr bool
	}{
		{"valid buy", func(o *Order) {}, false},
		{"odd lot sell is fine", func(o *Order) { o.Side = Sell; o.Volume = 123 }, false},
		{"odd lot buy", func(o *Order) { o.Volume = 150 }, true},
		{"zero volume", func(o *Order) { o.Volume = 0 }, true},
		{"limit without price", func(o *Order) { o.Price = P(0) }, true},
		{"market without price is fine", func(o *Order) { o.PriceType = MarketPrice; o.Price = P(0) }, false},
		{"missing account", func(o *Order) { o.AccountID = "" }, true},
		{"missing stock", func(o *Order) { o.StockCode = "" }, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := limitOrder(Buy, 1000, 10.50)
			tc.mutate(&o)
			if err := o.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestOrderBatch_AddAndSummary(t *testing.T) {
	b := NewOrderBatch()
	if err := b.Add(limitOrder(Sell, 3000, 11.20)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := b.Add(limitOrder(Buy, 3000, 11.00)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := b.Add(limitOrder(Buy, 0, 11.00)); err == nil {
		t.Fatal("Add() accepted an invalid order")
	}

	orders := b.Orders()
	if len(orders) != 2 {
		t.Fatalf("batch has %d orders, want 2", len(orders))
	}
	if orders[0].BatchNo != b.BatchID || orders[0].OrderNo != 1 || orders[1].OrderNo != 2 {
		t.Errorf("batch stamping wrong: %+v", orders)
	}

	s := b.Summary()
	if s.BuyOrders != 1 || s.SellOrders != 1 {
		t.Errorf("Summary = %d buys / %d sells, want 1/1", s.BuyOrders, s.SellOrders)
	}
	if !s.SellAmount.Equal(M(33600)) || !s.BuyAmount.Equal(M(33000)) {
		t.Errorf("amounts = %v/%v, want 33600/33000", s.SellAmount, s.BuyAmount)
	}
}

func TestGenerateT0Orders(t *testing.T) {
	v := NewVirtualPosition("A001", "600000")
	if err := v.Open(3000, P(11.20), SellFirst); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	orders := GenerateT0Orders(v, "1", "浦发银行", P(11.00), date.New(2026, time.March, 2))
	if len(orders) != 2 {
		t.Fatalf("GenerateT0Orders() = %d orders, want 2", len(orders))
	}
	open, counter := orders[0], orders[1]
	if open.Side != Sell || !open.Price.Equal(P(11.20)) || open.Volume != 3000 {
		t.Errorf("open leg = %v %v ×%d, want S 11.20 ×3000", open.Side, open.Price, open.Volume)
	}
	if counter.Side != Buy || !counter.Price.Equal(P(11.00)) {
		t.Errorf("counter leg = %v %v, want B 11.00", counter.Side, counter.Price)
	}
	if open.RefID != v.PositionID || counter.RefID != v.PositionID {
		t.Error("orders not linked to the round trip")
	}
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			t.Errorf("generated order invalid: %v", err)
		}
	}
}

func TestExportOrdersCSV(t *testing.T) {
	b := NewOrderBatch()
	if err := b.Add(limitOrder(Sell, 3000, 11.20)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	var sb strings.Builder
	if err := ExportOrdersCSV(&sb, b); err != nil {
		t.Fatalf("ExportOrdersCSV() failed: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "\xEF\xBB\xBF") {
		t.Error("export misses the UTF-8 byte order mark")
	}
	if !strings.Contains(out, "资金账号") || !strings.Contains(out, "委托价格") {
		t.Error("export misses the Chinese headers")
	}
	if !strings.Contains(out, "11.2000") {
		t.Error("price not exported with 4 decimals")
	}
}

func TestExportOrdersDBF(t *testing.T) {
	b := NewOrderBatch()
	if err := b.Add(limitOrder(Sell, 3000, 11.20)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := b.Add(limitOrder(Buy, 3000, 11.00)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportOrdersDBF(&buf, b); err != nil {
		t.Fatalf("ExportOrdersDBF() failed: %v", err)
	}
	out := buf.Bytes()

	if out[0] != 0x03 {
		t.Errorf("version byte = %#x, want 0x03", out[0])
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != 2 {
		t.Errorf("record count = %d, want 2", got)
	}
	headerSize := int(binary.LittleEndian.Uint16(out[8:10]))
	recordSize := int(binary.LittleEndian.Uint16(out[10:12]))
	if want := 32 + 32*len(dbfLayout) + 1; headerSize != want {
		t.Errorf("header size = %d, want %d", headerSize, want)
	}
	if out[headerSize-1] != 0x0D {
		t.Errorf("header terminator = %#x, want 0x0D", out[headerSize-1])
	}
	if want := headerSize + 2*recordSize + 1; len(out) != want {
		t.Errorf("file size = %d, want %d", len(out), want)
	}
	if out[len(out)-1] != 0x1A {
		t.Errorf("EOF byte = %#x, want 0x1A", out[len(out)-1])
	}

	// First record: not deleted, stock code in its slot.
	record := out[headerSize : headerSize+recordSize]
	if record[0] != 0x20 {
		t.Errorf("deletion flag = %#x, want 0x20", record[0])
	}
	if !bytes.Contains(record, []byte("600000")) {
		t.Error("record misses the stock code")
	}
}

func TestDBFCell_Overflow(t *testing.T) {
	if _, err := dbfCell(strings.Repeat("x", 9), dbfField{"STOCKCODE", 'C', 8, 0}); err == nil {
		t.Error("dbfCell() accepted an oversized value")
	}
}
