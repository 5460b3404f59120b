package tzero

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yxtq/tzero/date"
)

// boardLot is the exchange's buy increment: buys go in multiples of 100
// shares, sells may carry odd lots from corporate actions.
const boardLot = 100

// Order is one pre-filed instruction in the terminal's batch layout. The
// field set mirrors the columns of the DBF batch file the terminal imports.
type Order struct {
	BatchNo     string
	OrderNo     int
	AccountID   string
	AccountType string
	MarketID    string
	StockCode   string
	StockName   string

	Side      OrderSide
	PriceType PriceType
	Price     Price
	Volume    int64

	// ProtectPrice caps a market order; the terminal requires it on
	// market-priced instructions for ChiNext boards.
	ProtectPrice Price

	OrderDate date.Date
	OrderTime string
	Source    string
	RefID     string
	Note      string
}

// Validate checks the order against the terminal's import rules, reporting
// every problem at once.
func (o Order) Validate() error {
	var errs []error
	if o.AccountID == "" {
		errs = append(errs, errors.New("missing account id"))
	}
	if o.StockCode == "" {
		errs = append(errs, errors.New("missing stock code"))
	}
	if o.Volume <= 0 {
		errs = append(errs, fmt.Errorf("volume %d must be positive", o.Volume))
	}
	if o.Side == Buy && o.Volume%boardLot != 0 {
		errs = append(errs, fmt.Errorf("buy volume %d must be a multiple of %d", o.Volume, boardLot))
	}
	if o.PriceType == Limit && !o.Price.IsPositive() {
		errs = append(errs, errors.New("limit order misses a price"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("order %s/%s: %w", o.AccountID, o.StockCode, errors.Join(errs...))
}

// Amount returns the cash the order represents, zero for unpriced orders.
func (o Order) Amount() Money { return o.Price.Amount(o.Volume) }

// OrderBatch collects orders headed for one batch file.
type OrderBatch struct {
	BatchID    string
	CreateTime time.Time
	orders     []Order
}

// BatchSummary aggregates a batch for review before export.
type BatchSummary struct {
	BatchID    string
	Orders     int
	BuyOrders  int
	SellOrders int
	BuyVolume  int64
	SellVolume int64
	BuyAmount  Money
	SellAmount Money
}

// NewOrderBatch returns an empty batch with a fresh id.
func NewOrderBatch() *OrderBatch {
	return &OrderBatch{
		BatchID:    uuid.NewString()[:8],
		CreateTime: time.Now(),
	}
}

// Add validates the order, stamps it with the batch identity and appends it.
func (b *OrderBatch) Add(o Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.BatchNo = b.BatchID
	o.OrderNo = len(b.orders) + 1
	b.orders = append(b.orders, o)
	return nil
}

// Orders returns the batch content in filing order.
func (b *OrderBatch) Orders() []Order {
	return append([]Order(nil), b.orders...)
}

// Summary aggregates the batch.
func (b *OrderBatch) Summary() BatchSummary {
	s := BatchSummary{
		BatchID:    b.BatchID,
		Orders:     len(b.orders),
		BuyAmount:  M(0),
		SellAmount: M(0),
	}
	for _, o := range b.orders {
		switch o.Side {
		case Buy:
			s.BuyOrders++
			s.BuyVolume += o.Volume
			s.BuyAmount = s.BuyAmount.Add(o.Amount())
		case Sell:
			s.SellOrders++
			s.SellVolume += o.Volume
			s.SellAmount = s.SellAmount.Add(o.Amount())
		}
	}
	return s
}

// GenerateT0Orders turns a planned round trip into its two limit orders. The
// opening leg comes first; for a sell-first trip that is the sell.
func GenerateT0Orders(v *VirtualPosition, marketID, stockName string, closePrice Price, on date.Date) []Order {
	open := Order{
		AccountID: v.AccountID,
		MarketID:  marketID,
		StockCode: v.StockCode,
		StockName: stockName,
		PriceType: Limit,
		Price:     v.OpenPrice,
		Volume:    v.OpenVolume,
		OrderDate: on,
		OrderTime: time.Now().Format("15:04:05"),
		Source:    "T0",
		RefID:     v.PositionID,
	}
	counter := open
	counter.Price = closePrice

	switch v.Type {
	case SellFirst:
		open.Side = Sell
		counter.Side = Buy
	default:
		open.Side = Buy
		counter.Side = Sell
	}
	return []Order{open, counter}
}
