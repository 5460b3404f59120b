package tzero

import (
	"encoding/csv"
	"fmt"
	"io"
)

// this file contains the export formats. Exports are the one place values
// leave full precision: prices round to 4 decimals, amounts to 2, rates to 4.

// ExportLedgerBook writes the book to w as CSV, one line per record.
func ExportLedgerBook(w io.Writer, b *LedgerBook) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"trade_date", "account_id", "stock_code", "stock_name", "market_id",
		"total_volume", "available_volume", "frozen_volume",
		"cost_price", "current_price", "cost_amount", "market_value",
		"profit_loss", "profit_rate",
	}); err != nil {
		return err
	}
	for _, r := range b.Records() {
		if err := cw.Write([]string{
			r.TradeDate.String(),
			r.AccountID,
			r.StockCode,
			r.StockName,
			r.MarketID,
			fmt.Sprintf("%d", r.TotalVolume),
			fmt.Sprintf("%d", r.AvailableVolume),
			fmt.Sprintf("%d", r.FrozenVolume),
			r.CostPrice.Decimal().StringFixed(4),
			r.CurrentPrice.Decimal().StringFixed(4),
			r.CostAmount.Decimal().StringFixed(2),
			r.MarketValue.Decimal().StringFixed(2),
			r.ProfitLoss.Decimal().StringFixed(2),
			fmt.Sprintf("%.4f", float64(r.ProfitRate)),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCalculationHistory writes the audit trail of one ledger to w as CSV.
func ExportCalculationHistory(w io.Writer, c *LedgerRollingCalculator, key LedgerKey) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"trade_date", "account_id", "stock_code",
		"previous_ledger", "factor", "amount", "current_ledger", "calculation",
	}); err != nil {
		return err
	}
	for _, r := range c.CalculationHistory(key) {
		if err := cw.Write([]string{
			r.TradeDate.String(),
			r.AccountID,
			r.StockCode,
			r.PreviousLedger.Decimal().StringFixed(2),
			r.Factor.String(),
			r.Amount.Decimal().StringFixed(2),
			r.CurrentLedger.Decimal().StringFixed(2),
			r.Calculation,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
