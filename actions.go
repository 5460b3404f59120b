package tzero

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/yxtq/tzero/date"
)

/*
	{
	    "data": {
	        "items": [
	            {
	                "date": "2026-06-30",
	                "code": "600000",
	                "type": "dividend",
	                "factor": 1.0,
	                "amount": 4100.0,
	                "volume": 10000,
	                "note": "2025 annual dividend"
	            }
	        ]
	    }
	}
*/

// ParseAdjustmentFeed reads corporate actions from the vendor's JSON feed.
// One malformed item fails the whole feed: a partially applied action day is
// worse than none.
func ParseAdjustmentFeed(r io.Reader) ([]AdjustmentEvent, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode adjustment feed: %w", err)
	}

	path := "$.data.items[*]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot read adjustment feed: %q %w", path, err)
	}
	jitems, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("adjustment feed %q is not a list", path)
	}

	var events []AdjustmentEvent
	for i, jitem := range jitems {
		item, ok := jitem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("adjustment feed item %d is not an object", i)
		}
		e, err := parseAdjustmentItem(item)
		if err != nil {
			return nil, fmt.Errorf("adjustment feed item %d: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseAdjustmentItem(item map[string]any) (AdjustmentEvent, error) {
	var e AdjustmentEvent

	code, ok := item["code"].(string)
	if !ok || code == "" {
		return e, fmt.Errorf("missing code in %v", item)
	}
	e.StockCode = code

	kind, ok := item["type"].(string)
	if !ok {
		return e, fmt.Errorf("missing type in %v", item)
	}
	t, err := ParseAdjustmentType(kind)
	if err != nil {
		return e, err
	}
	e.Type = t

	day, ok := item["date"].(string)
	if !ok {
		return e, fmt.Errorf("missing date in %v", item)
	}
	e.TradeDate, err = date.Parse(day)
	if err != nil {
		return e, err
	}

	if f, ok := item["factor"].(float64); ok {
		e.Factor = decimal.NewFromFloat(f)
	}
	if a, ok := item["amount"].(float64); ok {
		e.Amount = M(a)
	} else {
		e.Amount = M(0)
	}
	if v, ok := item["volume"].(float64); ok {
		e.Volume = int64(v)
	}
	if note, ok := item["note"].(string); ok {
		e.Description = note
	}
	e.RecordTime = time.Now()
	return e, nil
}
