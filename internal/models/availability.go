package models

import (
	"time"
)

// parseClock parses an "HH:MM" time-of-day into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// InWindow reports whether now's local time-of-day falls inside the
// product's availability window. A product with no window is always in
// window. A malformed window bound is ignored rather than blocking sales.
// Windows may wrap past midnight (e.g. 20:00-02:00).
func (p *Product) InWindow(now time.Time) bool {
	if p.AvailableFrom == "" && p.AvailableUntil == "" {
		return true
	}

	minute := now.Hour()*60 + now.Minute()

	from, fromOK := parseClock(p.AvailableFrom)
	until, untilOK := parseClock(p.AvailableUntil)

	switch {
	case fromOK && untilOK:
		if from <= until {
			return minute >= from && minute < until
		}
		return minute >= from || minute < until
	case fromOK:
		return minute >= from
	case untilOK:
		return minute < until
	default:
		return true
	}
}
