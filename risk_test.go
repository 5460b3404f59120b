package tzero

import "testing"

func TestRiskChecker_PositionLimit(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	a := NewAccountPosition("A001")
	a.AddPosition(holding("A001", "600000", 10000, 10000, 10, 10))

	// 100000 market value over a 102000 asset is 98%, past both limits.
	alerts := c.CheckPositionLimit(a, M(102000))
	if !HasError(alerts) {
		t.Fatalf("CheckPositionLimit() = %v, want PL001 error", alerts)
	}
	if got := alerts[0].Code; got != "PL001" {
		t.Errorf("code = %q, want PL001", got)
	}
	if !HasWarning(alerts) {
		t.Errorf("CheckPositionLimit() = %v, want CS001 warning too", alerts)
	}

	// Plenty of cash: no findings.
	if alerts := c.CheckPositionLimit(a, M(200000)); len(alerts) != 0 {
		t.Errorf("CheckPositionLimit() with ample cash = %v, want none", alerts)
	}
}

func TestRiskChecker_Concentration(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	a := NewAccountPosition("A001")
	a.AddPosition(holding("A001", "600000", 4000, 4000, 10, 10)) // 40000

	alerts := c.CheckConcentration(a, M(100000))
	if len(alerts) != 1 || alerts[0].Code != "CC001" {
		t.Fatalf("CheckConcentration() = %v, want one CC001", alerts)
	}
	if alerts[0].StockCode != "600000" {
		t.Errorf("StockCode = %q, want 600000", alerts[0].StockCode)
	}

	// Three stocks at 25% each break the top-3 limit but not the single one.
	b := NewAccountPosition("A002")
	for _, code := range []string{"600000", "600001", "600002"} {
		b.AddPosition(holding("A002", code, 2500, 2500, 10, 10))
	}
	alerts = c.CheckConcentration(b, M(100000))
	if len(alerts) != 1 || alerts[0].Code != "CC002" {
		t.Fatalf("CheckConcentration() = %v, want one CC002", alerts)
	}
}

func TestRiskChecker_T0Frequency(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	for range 6 {
		c.RecordT0Trade("A001", "600000", 3000)
	}

	alerts := c.CheckT0Frequency("A001", "600000", 5000)
	codes := map[string]bool{}
	for _, a := range alerts {
		codes[a.Code] = true
	}
	if !codes["TF001"] {
		t.Errorf("CheckT0Frequency() = %v, want TF001 for 6 trips", alerts)
	}
	// 18000 traded over a 5000 holding is 3.6×, past 2×.
	if !codes["TF002"] {
		t.Errorf("CheckT0Frequency() = %v, want TF002 for volume churn", alerts)
	}

	c.ResetDay()
	if alerts := c.CheckT0Frequency("A001", "600000", 5000); len(alerts) != 0 {
		t.Errorf("CheckT0Frequency() after ResetDay = %v, want none", alerts)
	}
}

func TestRiskChecker_AccountFrequency(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	for i, code := range []string{"600000", "600001", "600002"} {
		for range 4 {
			c.RecordT0Trade("A001", code, int64(1000*(i+1)))
		}
	}
	alerts := c.CheckT0AccountFrequency("A001")
	if len(alerts) != 1 || alerts[0].Level != RiskError {
		t.Fatalf("CheckT0AccountFrequency() = %v, want one blocking alert for 12 trips", alerts)
	}
	if len(c.CheckT0AccountFrequency("A002")) != 0 {
		t.Error("CheckT0AccountFrequency() flagged an idle account")
	}
}

func TestRiskChecker_StopLoss(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	a := NewAccountPosition("A001")
	a.AddPosition(holding("A001", "600000", 1000, 1000, 10.00, 9.30)) // -7%
	a.AddPosition(holding("A001", "600001", 1000, 1000, 10.00, 8.50)) // -15%
	a.AddPosition(holding("A001", "600002", 1000, 1000, 10.00, 9.90)) // -1%

	alerts := c.CheckStopLoss(a)
	if len(alerts) != 2 {
		t.Fatalf("CheckStopLoss() = %v, want SL001 and SL002", alerts)
	}
	if alerts[0].Code != "SL001" || alerts[1].Code != "SL002" {
		t.Errorf("codes = %q/%q, want SL001/SL002", alerts[0].Code, alerts[1].Code)
	}
	if CanTrade(alerts) {
		t.Error("CanTrade() = true with a blocking stop loss")
	}
}

func TestRiskChecker_DailyLoss(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	a := NewAccountPosition("A001")
	a.AddPosition(holding("A001", "600000", 10000, 10000, 10.00, 9.70)) // -3000

	alerts := c.CheckDailyLoss(a, M(100000))
	if len(alerts) != 1 || alerts[0].Code != "DL001" {
		t.Fatalf("CheckDailyLoss() = %v, want one DL001", alerts)
	}
	if len(c.CheckDailyLoss(a, M(200000))) != 0 {
		t.Error("CheckDailyLoss() flagged a -1.5% day against a -2% budget")
	}
}

func TestRiskChecker_PriceDeviation(t *testing.T) {
	c := NewRiskChecker(DefaultRiskParams())
	if alerts := c.CheckPriceDeviation("A001", "600000", P(11.20), P(10.00)); len(alerts) != 1 {
		t.Errorf("CheckPriceDeviation(+12%%) = %v, want PD001", alerts)
	}
	if alerts := c.CheckPriceDeviation("A001", "600000", P(8.80), P(10.00)); len(alerts) != 1 {
		t.Errorf("CheckPriceDeviation(-12%%) = %v, want PD001", alerts)
	}
	if alerts := c.CheckPriceDeviation("A001", "600000", P(10.50), P(10.00)); len(alerts) != 0 {
		t.Errorf("CheckPriceDeviation(+5%%) = %v, want none", alerts)
	}
	if alerts := c.CheckPriceDeviation("A001", "600000", P(10.50), P(0)); len(alerts) != 0 {
		t.Errorf("CheckPriceDeviation() without a quote = %v, want none", alerts)
	}
}
