package tzero

import (
	"errors"
	"fmt"

	"github.com/yxtq/tzero/date"
)

// PositionRecord is the neutral feed record every holdings producer (the CCTJ
// parser, tests, future adapters) hands to PositionManager.Load. It carries
// raw broker fields; Validate is the single gate that decides whether a
// record may enter the engine.
type PositionRecord struct {
	StockCode string
	StockName string
	AccountID string
	MarketID  string

	TotalVolume     int64
	AvailableVolume int64
	FrozenVolume    int64
	YesterdayVolume int64
	TodayVolume     int64

	CostPrice    Price
	CurrentPrice Price

	TradeDate date.Date
}

// Validate reports every problem with the record at once, so a rejected feed
// line can be fixed in one pass.
func (r PositionRecord) Validate() error {
	var errs []error
	if r.StockCode == "" {
		errs = append(errs, errors.New("missing stock code"))
	}
	if r.AccountID == "" {
		errs = append(errs, errors.New("missing account id"))
	}
	if r.MarketID == "" {
		errs = append(errs, errors.New("missing market id"))
	}
	if r.TotalVolume < 0 || r.AvailableVolume < 0 || r.FrozenVolume < 0 {
		errs = append(errs, fmt.Errorf("negative volume: total=%d available=%d frozen=%d",
			r.TotalVolume, r.AvailableVolume, r.FrozenVolume))
	}
	if r.YesterdayVolume < 0 || r.TodayVolume < 0 {
		errs = append(errs, fmt.Errorf("negative volume: yesterday=%d today=%d",
			r.YesterdayVolume, r.TodayVolume))
	}
	if r.AvailableVolume+r.FrozenVolume > r.TotalVolume {
		errs = append(errs, fmt.Errorf("available %d + frozen %d exceeds total %d",
			r.AvailableVolume, r.FrozenVolume, r.TotalVolume))
	}
	if r.CostPrice.IsNegative() {
		errs = append(errs, fmt.Errorf("negative cost price %s", r.CostPrice))
	}
	if r.CurrentPrice.IsNegative() {
		errs = append(errs, fmt.Errorf("negative current price %s", r.CurrentPrice))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("record %s/%s: %w", r.AccountID, r.StockCode, errors.Join(errs...))
}

// Position builds the engine holding from the record. The record must have
// passed Validate.
func (r PositionRecord) Position() *RealPosition {
	return &RealPosition{
		StockCode:       r.StockCode,
		StockName:       r.StockName,
		AccountID:       r.AccountID,
		MarketID:        r.MarketID,
		TotalVolume:     r.TotalVolume,
		AvailableVolume: r.AvailableVolume,
		FrozenVolume:    r.FrozenVolume,
		YesterdayVolume: r.YesterdayVolume,
		TodayVolume:     r.TodayVolume,
		CostPrice:       r.CostPrice,
		CurrentPrice:    r.CurrentPrice,
		Status:          Active,
	}
}
