package tzero

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const cctjPinyin = `zqdm	zqmc	zjzh	sc	zsl	ksl	djsl	cbj	zxj	jyrq
600000	浦发银行	A001	1	10000	8000	2000	10.50	11.20	20260302
000001	平安银行	A001	2	5000	5000	0	12.00	11.80	20260302
`

const cctjChinese = `证券代码,证券名称,资金账号,市场,证券数量,可用数量,成本价,最新价,交易日期
600000,浦发银行,A001,1,10000,8000,10.50,11.20,2026-03-02
`

func TestParseCCTJ_PinyinTabDialect(t *testing.T) {
	res, err := ParseCCTJ(strings.NewReader(cctjPinyin))
	if err != nil {
		t.Fatalf("ParseCCTJ() failed: %v", err)
	}
	if res.Total != 2 || res.Valid != 2 || res.Invalid != 0 {
		t.Fatalf("stats = %d/%d/%d, want 2/2/0", res.Total, res.Valid, res.Invalid)
	}
	r := res.Records[0]
	if r.StockCode != "600000" || r.AccountID != "A001" || r.StockName != "浦发银行" {
		t.Errorf("identity = %s/%s/%s", r.AccountID, r.StockCode, r.StockName)
	}
	if r.TotalVolume != 10000 || r.AvailableVolume != 8000 || r.FrozenVolume != 2000 {
		t.Errorf("volumes = %d/%d/%d, want 10000/8000/2000", r.TotalVolume, r.AvailableVolume, r.FrozenVolume)
	}
	if !r.CostPrice.Equal(P(10.50)) || !r.CurrentPrice.Equal(P(11.20)) {
		t.Errorf("prices = %v/%v, want 10.50/11.20", r.CostPrice, r.CurrentPrice)
	}
	if res.TradeDate.String() != "2026-03-02" {
		t.Errorf("TradeDate = %v, want 2026-03-02", res.TradeDate)
	}
}

func TestParseCCTJ_ChineseCommaDialect(t *testing.T) {
	res, err := ParseCCTJ(strings.NewReader(cctjChinese))
	if err != nil {
		t.Fatalf("ParseCCTJ() failed: %v", err)
	}
	if res.Valid != 1 {
		t.Fatalf("Valid = %d, want 1", res.Valid)
	}
	r := res.Records[0]
	if r.StockCode != "600000" || r.AccountID != "A001" || r.TotalVolume != 10000 {
		t.Errorf("record = %+v, want aliased Chinese headers mapped", r)
	}
	if r.TradeDate.String() != "2026-03-02" {
		t.Errorf("TradeDate = %v, want 2026-03-02 from ISO form", r.TradeDate)
	}
}

func TestParseCCTJ_GBKEncoding(t *testing.T) {
	gbk, _, err := transform.String(simplifiedchinese.GBK.NewEncoder(), cctjPinyin)
	if err != nil {
		t.Fatalf("cannot build GBK fixture: %v", err)
	}
	res, err := ParseCCTJ(strings.NewReader(gbk))
	if err != nil {
		t.Fatalf("ParseCCTJ() on GBK failed: %v", err)
	}
	if res.Valid != 2 {
		t.Fatalf("Valid = %d, want 2", res.Valid)
	}
	if got := res.Records[0].StockName; got != "浦发银行" {
		t.Errorf("StockName = %q, want 浦发银行 decoded from GBK", got)
	}
}

func TestParseCCTJ_SkipsInvalidLines(t *testing.T) {
	in := `zqdm	zjzh	sc	zsl	ksl
600000	A001	1	1000	800
600001	A001	1	1000	2000
600002	A001	1	abc	800
`
	res, err := ParseCCTJ(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCCTJ() failed: %v", err)
	}
	if res.Valid != 1 || res.Invalid != 2 {
		t.Fatalf("stats = %d valid %d invalid, want 1/2", res.Valid, res.Invalid)
	}
	if len(res.Errors) != 2 {
		t.Errorf("Errors has %d entries, want 2", len(res.Errors))
	}
}

func TestParseCCTJ_HeaderErrors(t *testing.T) {
	if _, err := ParseCCTJ(strings.NewReader("")); err == nil {
		t.Error("ParseCCTJ(empty) succeeded, want error")
	}
	if _, err := ParseCCTJ(strings.NewReader("zqmc,sc\nx,y\n")); err == nil {
		t.Error("ParseCCTJ() without stock code column succeeded, want error")
	}
}

func TestParseCCTJ_FeedsManager(t *testing.T) {
	res, err := ParseCCTJ(strings.NewReader(cctjPinyin))
	if err != nil {
		t.Fatalf("ParseCCTJ() failed: %v", err)
	}
	m := NewPositionManager()
	n, err := m.Load(res.Records)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("Load() = %d, want 2", n)
	}
	if got := m.SellableVolume("A001", "600000"); got != 8000 {
		t.Errorf("SellableVolume = %d, want 8000", got)
	}
}
