package util

import (
	"math"
	"strconv"
	"time"
)

const daysPerMonth = 30

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime tries RFC3339, RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02", and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// MonthsBetween approximates the months from earlier to later as round(days/30).
// Calendar months are not used, so results near fiscal boundaries may be off by one.
func MonthsBetween(later, earlier time.Time) int {
	days := later.Sub(earlier).Hours() / 24
	return int(math.Round(days / daysPerMonth))
}
