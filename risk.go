package tzero

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// RiskAlert is one finding of the risk checker. The code identifies the rule,
// the level says whether it blocks trading.
//
// Codes: PL001 position limit, CS001 cash ratio, CC001 single-stock
// concentration, CC002 top-3, CC003 top-5, TF001 T0 count, TF002 T0 volume
// ratio, SL001/SL002 single-stock stop loss, DL001 daily loss, PD001 order
// price deviation.
type RiskAlert struct {
	Code      string
	Level     RiskLevel
	AccountID string
	StockCode string
	Message   string
	Time      time.Time
}

// RiskParams holds the thresholds of every rule. Ratios are fractions of the
// account's total asset unless said otherwise.
type RiskParams struct {
	MaxPositionRatio float64 // market value over total asset
	MinCashRatio     float64 // cash over total asset

	MaxSingleRatio float64 // one stock over total asset
	MaxTop3Ratio   float64
	MaxTop5Ratio   float64

	MaxT0DailyCount  int     // round trips per account per day
	MaxT0VolumeRatio float64 // T0 traded volume over the holding
	MaxT0PerStock    int     // round trips per stock per day

	StopLossWarning  float64 // single-stock loss rate, warning
	StopLossCritical float64 // single-stock loss rate, blocking
	MaxDailyLossRate float64 // account loss over total asset, blocking

	MaxPriceDeviation float64 // order price against market price
}

// DefaultRiskParams returns the desk's standard thresholds.
func DefaultRiskParams() RiskParams {
	return RiskParams{
		MaxPositionRatio:  0.95,
		MinCashRatio:      0.05,
		MaxSingleRatio:    0.30,
		MaxTop3Ratio:      0.60,
		MaxTop5Ratio:      0.80,
		MaxT0DailyCount:   10,
		MaxT0VolumeRatio:  2.0,
		MaxT0PerStock:     5,
		StopLossWarning:   -0.05,
		StopLossCritical:  -0.10,
		MaxDailyLossRate:  -0.02,
		MaxPriceDeviation: 0.10,
	}
}

// t0Activity counts today's round trips for one (account, stock) pair.
type t0Activity struct {
	count  int
	volume int64
}

// RiskChecker evaluates the desk against RiskParams. Checks never mutate the
// positions they read; the only state the checker keeps is its own count of
// T0 activity, fed through RecordT0Trade.
type RiskChecker struct {
	params RiskParams

	mu       sync.RWMutex
	activity map[LedgerKey]t0Activity
}

// NewRiskChecker returns a checker with the given thresholds.
func NewRiskChecker(params RiskParams) *RiskChecker {
	return &RiskChecker{params: params, activity: make(map[LedgerKey]t0Activity)}
}

// RecordT0Trade counts one executed round trip towards the frequency rules.
func (c *RiskChecker) RecordT0Trade(accountID, stockCode string, volume int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := LedgerKey{AccountID: accountID, StockCode: stockCode}
	a := c.activity[key]
	a.count++
	a.volume += volume
	c.activity[key] = a
}

// ResetDay clears the T0 activity counters, at the start of a trading day.
func (c *RiskChecker) ResetDay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activity = make(map[LedgerKey]t0Activity)
}

func alert(code string, level RiskLevel, accountID, stockCode, format string, args ...any) RiskAlert {
	return RiskAlert{
		Code:      code,
		Level:     level,
		AccountID: accountID,
		StockCode: stockCode,
		Message:   fmt.Sprintf(format, args...),
		Time:      time.Now(),
	}
}

// CheckPositionLimit flags an account too fully invested (PL001) or short of
// cash (CS001). totalAsset is the account's cash plus market value.
func (c *RiskChecker) CheckPositionLimit(a *AccountPosition, totalAsset Money) []RiskAlert {
	if !totalAsset.IsPositive() {
		return nil
	}
	var alerts []RiskAlert
	ratio := float64(a.TotalMarketValue().Over(totalAsset)) / 100
	if ratio > c.params.MaxPositionRatio {
		alerts = append(alerts, alert("PL001", RiskError, a.AccountID, "",
			"position ratio %.2f%% exceeds limit %.2f%%", ratio*100, c.params.MaxPositionRatio*100))
	}
	if cash := 1 - ratio; cash < c.params.MinCashRatio {
		alerts = append(alerts, alert("CS001", RiskWarning, a.AccountID, "",
			"cash ratio %.2f%% below minimum %.2f%%", cash*100, c.params.MinCashRatio*100))
	}
	return alerts
}

// CheckConcentration flags a single stock (CC001), the top 3 (CC002) or the
// top 5 (CC003) taking too large a share of the account.
func (c *RiskChecker) CheckConcentration(a *AccountPosition, totalAsset Money) []RiskAlert {
	if !totalAsset.IsPositive() {
		return nil
	}
	positions := a.Positions()
	ratios := make([]float64, 0, len(positions))
	var alerts []RiskAlert
	for _, p := range positions {
		r := float64(p.MarketValue().Over(totalAsset)) / 100
		ratios = append(ratios, r)
		if r > c.params.MaxSingleRatio {
			alerts = append(alerts, alert("CC001", RiskWarning, a.AccountID, p.StockCode,
				"%s takes %.2f%% of the account, limit %.2f%%", p.StockCode, r*100, c.params.MaxSingleRatio*100))
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ratios)))
	if top := sum(ratios, 3); top > c.params.MaxTop3Ratio {
		alerts = append(alerts, alert("CC002", RiskWarning, a.AccountID, "",
			"top 3 stocks take %.2f%%, limit %.2f%%", top*100, c.params.MaxTop3Ratio*100))
	}
	if top := sum(ratios, 5); top > c.params.MaxTop5Ratio {
		alerts = append(alerts, alert("CC003", RiskWarning, a.AccountID, "",
			"top 5 stocks take %.2f%%, limit %.2f%%", top*100, c.params.MaxTop5Ratio*100))
	}
	return alerts
}

func sum(ratios []float64, n int) float64 {
	total := 0.0
	for i, r := range ratios {
		if i >= n {
			break
		}
		total += r
	}
	return total
}

// CheckT0Frequency flags a pair trading too often (TF001) or churning more
// volume than the rules allow against its holding (TF002).
func (c *RiskChecker) CheckT0Frequency(accountID, stockCode string, holding int64) []RiskAlert {
	c.mu.RLock()
	a := c.activity[LedgerKey{AccountID: accountID, StockCode: stockCode}]
	c.mu.RUnlock()

	var alerts []RiskAlert
	if a.count > c.params.MaxT0PerStock {
		alerts = append(alerts, alert("TF001", RiskWarning, accountID, stockCode,
			"%d round trips today, limit %d per stock", a.count, c.params.MaxT0PerStock))
	}
	if holding > 0 {
		if ratio := float64(a.volume) / float64(holding); ratio > c.params.MaxT0VolumeRatio {
			alerts = append(alerts, alert("TF002", RiskWarning, accountID, stockCode,
				"T0 volume is %.1f× the holding, limit %.1f×", ratio, c.params.MaxT0VolumeRatio))
		}
	}
	return alerts
}

// CheckT0AccountFrequency flags an account over its daily round-trip budget (TF001).
func (c *RiskChecker) CheckT0AccountFrequency(accountID string) []RiskAlert {
	c.mu.RLock()
	total := 0
	for key, a := range c.activity {
		if key.AccountID == accountID {
			total += a.count
		}
	}
	c.mu.RUnlock()

	if total > c.params.MaxT0DailyCount {
		return []RiskAlert{alert("TF001", RiskError, accountID, "",
			"%d round trips today, account limit %d", total, c.params.MaxT0DailyCount)}
	}
	return nil
}

// CheckStopLoss flags holdings past the warning (SL001) or blocking (SL002)
// loss rate.
func (c *RiskChecker) CheckStopLoss(a *AccountPosition) []RiskAlert {
	var alerts []RiskAlert
	for _, p := range a.Positions() {
		rate := float64(p.ProfitLoss().Over(p.CostAmount())) / 100
		switch {
		case rate <= c.params.StopLossCritical:
			alerts = append(alerts, alert("SL002", RiskError, a.AccountID, p.StockCode,
				"%s is down %.2f%%, past the stop at %.2f%%", p.StockCode, rate*100, c.params.StopLossCritical*100))
		case rate <= c.params.StopLossWarning:
			alerts = append(alerts, alert("SL001", RiskWarning, a.AccountID, p.StockCode,
				"%s is down %.2f%%, warning at %.2f%%", p.StockCode, rate*100, c.params.StopLossWarning*100))
		}
	}
	return alerts
}

// CheckDailyLoss flags an account whose combined unrealized and T0 result for
// the day breaches the loss budget (DL001).
func (c *RiskChecker) CheckDailyLoss(a *AccountPosition, totalAsset Money) []RiskAlert {
	if !totalAsset.IsPositive() {
		return nil
	}
	loss := a.TotalProfitLoss().Add(a.T0ProfitLoss())
	if rate := float64(loss.Over(totalAsset)) / 100; rate <= c.params.MaxDailyLossRate {
		return []RiskAlert{alert("DL001", RiskError, a.AccountID, "",
			"day result %.2f%% breaches the loss budget %.2f%%", rate*100, c.params.MaxDailyLossRate*100)}
	}
	return nil
}

// CheckPriceDeviation flags an order priced too far from the market (PD001).
func (c *RiskChecker) CheckPriceDeviation(accountID, stockCode string, orderPrice, marketPrice Price) []RiskAlert {
	if !marketPrice.IsPositive() {
		return nil
	}
	dev := orderPrice.Sub(marketPrice).Amount(1).Over(marketPrice.Amount(1))
	rate := float64(dev) / 100
	if rate < 0 {
		rate = -rate
	}
	if rate > c.params.MaxPriceDeviation {
		return []RiskAlert{alert("PD001", RiskError, accountID, stockCode,
			"order price %s deviates %.2f%% from market %s, limit %.2f%%",
			orderPrice, rate*100, marketPrice, c.params.MaxPriceDeviation*100)}
	}
	return nil
}

// CheckAccount runs every per-account rule.
func (c *RiskChecker) CheckAccount(a *AccountPosition, totalAsset Money) []RiskAlert {
	var alerts []RiskAlert
	alerts = append(alerts, c.CheckPositionLimit(a, totalAsset)...)
	alerts = append(alerts, c.CheckConcentration(a, totalAsset)...)
	alerts = append(alerts, c.CheckStopLoss(a)...)
	alerts = append(alerts, c.CheckDailyLoss(a, totalAsset)...)
	alerts = append(alerts, c.CheckT0AccountFrequency(a.AccountID)...)
	for _, p := range a.Positions() {
		alerts = append(alerts, c.CheckT0Frequency(a.AccountID, p.StockCode, p.TotalVolume)...)
	}
	return alerts
}

// CanTrade reports whether the alerts allow further trading: any ERROR blocks.
func CanTrade(alerts []RiskAlert) bool { return !HasError(alerts) }

// HasError reports whether any alert is blocking.
func HasError(alerts []RiskAlert) bool {
	for _, a := range alerts {
		if a.Level == RiskError {
			return true
		}
	}
	return false
}

// HasWarning reports whether any alert is a warning.
func HasWarning(alerts []RiskAlert) bool {
	for _, a := range alerts {
		if a.Level == RiskWarning {
			return true
		}
	}
	return false
}
