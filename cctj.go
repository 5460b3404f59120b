package tzero

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/yxtq/tzero/date"
)

// this file reads CCTJ holdings files, the broker's end-of-day position dump.
// The files come in two dialects (tab or comma separated), two encodings
// (GBK from the terminal, UTF-8 from newer exports) and with either the
// terse pinyin column names or the full Chinese ones.

// CCTJResult is the outcome of parsing one holdings file.
type CCTJResult struct {
	Records   []PositionRecord
	Path      string
	TradeDate date.Date
	ParseTime time.Time
	Total     int
	Valid     int
	Invalid   int
	Errors    []string
}

// cctjColumns maps every known header spelling to the canonical field name.
var cctjColumns = map[string]string{
	"zqdm": "stock_code", "证券代码": "stock_code", "stock_code": "stock_code",
	"zqmc": "stock_name", "证券名称": "stock_name", "stock_name": "stock_name",
	"zjzh": "account_id", "资金账号": "account_id", "资金账户": "account_id", "account_id": "account_id",
	"sc": "market_id", "市场": "market_id", "市场代码": "market_id", "market_id": "market_id",
	"zsl": "total_volume", "证券数量": "total_volume", "持仓数量": "total_volume",
	"ksl": "available_volume", "可用数量": "available_volume", "可卖数量": "available_volume",
	"djsl": "frozen_volume", "冻结数量": "frozen_volume",
	"zrhj": "yesterday_volume", "昨日持仓": "yesterday_volume",
	"jrhj": "today_volume", "今日持仓": "today_volume",
	"cbj": "cost_price", "成本价": "cost_price", "成本价格": "cost_price",
	"zxj": "current_price", "zxp": "current_price", "最新价": "current_price", "最新价格": "current_price",
	"jyrq": "trade_date", "交易日期": "trade_date",
}

// ParseCCTJFile parses the holdings file at path.
func ParseCCTJFile(path string) (*CCTJResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open holdings file: %w", err)
	}
	defer f.Close()
	res, err := ParseCCTJ(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse holdings file %q: %w", path, err)
	}
	res.Path = path
	return res, nil
}

// ParseCCTJ parses a holdings dump from r. Lines that fail validation are
// skipped and reported in the result, not returned as an error: one bad line
// must not take the whole desk feed down.
func ParseCCTJ(r io.Reader) (*CCTJResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		// Terminal exports are GBK.
		raw, _, err = transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("cannot decode GBK content: %w", err)
		}
	}

	res := &CCTJResult{ParseTime: time.Now()}
	scanner := bufio.NewScanner(strings.NewReader(string(raw)))

	var fields []string
	var sep string
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if text == "" {
			continue
		}
		if fields == nil {
			fields, sep, err = parseCCTJHeader(text)
			if err != nil {
				return nil, err
			}
			continue
		}

		res.Total++
		record, err := parseCCTJLine(fields, strings.Split(text, sep))
		if err == nil {
			err = record.Validate()
		}
		if err != nil {
			res.Invalid++
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		res.Valid++
		res.Records = append(res.Records, record)
		if res.TradeDate.IsZero() {
			res.TradeDate = record.TradeDate
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("empty holdings file")
	}
	return res, nil
}

// parseCCTJHeader sniffs the delimiter and maps every column to its
// canonical name. Stock code and account id columns are mandatory.
func parseCCTJHeader(text string) (fields []string, sep string, err error) {
	sep = ","
	if strings.Count(text, "\t") > strings.Count(text, ",") {
		sep = "\t"
	}
	for _, col := range strings.Split(text, sep) {
		name := strings.ToLower(strings.TrimSpace(col))
		fields = append(fields, cctjColumns[name])
	}
	for _, required := range []string{"stock_code", "account_id"} {
		found := false
		for _, f := range fields {
			found = found || f == required
		}
		if !found {
			return nil, "", fmt.Errorf("header misses a %s column: %q", required, text)
		}
	}
	return fields, sep, nil
}

func parseCCTJLine(fields, cells []string) (PositionRecord, error) {
	var r PositionRecord
	for i, cell := range cells {
		if i >= len(fields) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		var err error
		switch fields[i] {
		case "stock_code":
			r.StockCode = cell
		case "stock_name":
			r.StockName = cell
		case "account_id":
			r.AccountID = cell
		case "market_id":
			r.MarketID = cell
		case "total_volume":
			r.TotalVolume, err = parseCCTJInt(cell)
		case "available_volume":
			r.AvailableVolume, err = parseCCTJInt(cell)
		case "frozen_volume":
			r.FrozenVolume, err = parseCCTJInt(cell)
		case "yesterday_volume":
			r.YesterdayVolume, err = parseCCTJInt(cell)
		case "today_volume":
			r.TodayVolume, err = parseCCTJInt(cell)
		case "cost_price":
			r.CostPrice, err = parseCCTJPrice(cell)
		case "current_price":
			r.CurrentPrice, err = parseCCTJPrice(cell)
		case "trade_date":
			r.TradeDate, err = date.Parse(cell)
		}
		if err != nil {
			return r, fmt.Errorf("column %d: %w", i+1, err)
		}
	}
	return r, nil
}

// parseCCTJInt reads a volume cell. Broker exports group digits with commas
// and sometimes write volumes as "1000.00".
func parseCCTJInt(cell string) (int64, error) {
	cell = strings.ReplaceAll(cell, ",", "")
	if i := strings.IndexByte(cell, '.'); i >= 0 {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid volume %q", cell)
		}
		return int64(f), nil
	}
	v, err := strconv.ParseInt(cell, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid volume %q", cell)
	}
	return v, nil
}

func parseCCTJPrice(cell string) (Price, error) {
	cell = strings.ReplaceAll(cell, ",", "")
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q", cell)
	}
	return P(f), nil
}
