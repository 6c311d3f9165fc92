package domain

import (
	"fmt"
	"time"
)

// timestampLayout mirrors the millisecond ISO-8601 form used by the
// persisted records, always in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Day is a civil calendar date.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Next is the following calendar day. Noon UTC keeps the arithmetic clear of
// daylight-saving shifts.
func (d Day) Next() Day {
	y, m, dd := time.Date(d.Year, d.Month, d.Day+1, 12, 0, 0, 0, time.UTC).Date()
	return Day{Year: y, Month: m, Day: dd}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBefore is now moved back n calendar days in loc, keeping the wall clock.
func DaysBefore(now time.Time, loc *time.Location, n int) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return now.AddDate(0, 0, -n)
}
