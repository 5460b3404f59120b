package tzero

// record is a helper for tests to build a valid feed record from const.
func record(accountID, stockCode string, total, available int64, cost, current float64) PositionRecord {
	return PositionRecord{
		StockCode:       stockCode,
		StockName:       "测试股份",
		AccountID:       accountID,
		MarketID:        "1",
		TotalVolume:     total,
		AvailableVolume: available,
		YesterdayVolume: total,
		CostPrice:       P(cost),
		CurrentPrice:    P(current),
	}
}

// holding is a helper for tests to build a real position directly.
func holding(accountID, stockCode string, total, available int64, cost, current float64) *RealPosition {
	return record(accountID, stockCode, total, available, cost, current).Position()
}
