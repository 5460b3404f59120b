// Package date provides a day-granularity date for trading-day bookkeeping.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the ISO-8601 form used everywhere a date is shown to a person.
const Format = "2006-01-02"

// CompactFormat is the form used by broker files (JYRQ columns) and ledgers.
const CompactFormat = "20060102"

// Date represents a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Parse reads a date in either the ISO or the compact broker form.
func Parse(s string) (Date, error) {
	for _, layout := range []string{Format, CompactFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: want %s or %s", s, Format, CompactFormat)
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero reports whether the date is the zero value, used as "not set".
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

func (d Date) Equal(x Date) bool { return d == x }

// Add returns the date n days later (or earlier for negative n).
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Format)
}

// Compact returns the date in the broker file form, or "" for the zero date.
func (d Date) Compact() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(CompactFormat)
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
