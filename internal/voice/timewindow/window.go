// Package timewindow turns a spoken time hint into a date predicate.
//
// Windows compare calendar fields only: a due date stored as midnight UTC
// and a clock in local time are compared by year, month and day.
package timewindow

import "time"

type Period string

const (
	Day           Period = "day"
	Week          Period = "week"
	Month         Period = "month"
	SpecificMonth Period = "specific_month"
	Year          Period = "year"
	All           Period = "all"
)

// WeekDays is the length of the rolling week in calendar days, today
// included: now-6 through now.
const WeekDays = 7

// Window is a date predicate anchored at a fixed "now".
type Window struct {
	Period Period
	// Month is the named month, 0 for January. Nil means the current month.
	Month *int
	now   time.Time
}

// New builds a window. The clock is injected so evaluation stays deterministic.
func New(period Period, month *int, now time.Time) Window {
	if period == "" {
		period = All
	}
	var m *int
	if month != nil {
		v := *month
		m = &v
	}
	return Window{Period: period, Month: m, now: now}
}

// Contains reports whether date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	switch w.Period {
	case Day:
		return sameDay(date, w.now)
	case Week:
		diff := daysBetween(date, w.now)
		return diff >= 0 && diff < WeekDays
	case Month, SpecificMonth:
		if w.Month != nil {
			return int(date.Month())-1 == *w.Month
		}
		return date.Year() == w.now.Year() && date.Month() == w.now.Month()
	case Year:
		return date.Year() == w.now.Year()
	default:
		return true
	}
}

// IsAll reports whether the window applies no filter.
func (w Window) IsAll() bool {
	switch w.Period {
	case Day, Week, Month, SpecificMonth, Year:
		return false
	default:
		return true
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts calendar days from a to b.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
