package entity

import "time"

// RangeToken is a named date window selectable in the dashboard.
type RangeToken string

const (
	RangeAll         RangeToken = "all"
	RangeToday       RangeToken = "today"
	RangeWeek        RangeToken = "week"
	RangeMonth       RangeToken = "month"
	RangeThreeMonths RangeToken = "3months"
	RangeYear        RangeToken = "year"
	RangeCustom      RangeToken = "custom"
)

var validRangeTokens = map[RangeToken]bool{
	RangeAll:         true,
	RangeToday:       true,
	RangeWeek:        true,
	RangeMonth:       true,
	RangeThreeMonths: true,
	RangeYear:        true,
	RangeCustom:      true,
}

func IsValidRangeToken(token string) bool {
	return validRangeTokens[RangeToken(token)]
}

// PeriodDays is the nominal window length used for the prior-period
// growth comparison. Custom and all-time windows have no nominal length
// and skip the comparison.
func (rt RangeToken) PeriodDays() int {
	switch rt {
	case RangeToday:
		return 1
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	case RangeThreeMonths:
		return 90
	case RangeYear:
		return 365
	default:
		return 0
	}
}

// TimeRange is a concrete [From, To] window. A zero bound means
// unbounded on that side; the zero TimeRange matches everything.
type TimeRange struct {
	From time.Time
	To   time.Time
}

func (tr TimeRange) IsZero() bool {
	return tr.From.IsZero() && tr.To.IsZero()
}

// Contains reports whether t falls within the window, inclusive of both
// bounds.
func (tr TimeRange) Contains(t time.Time) bool {
	if !tr.From.IsZero() && t.Before(tr.From) {
		return false
	}
	if !tr.To.IsZero() && t.After(tr.To) {
		return false
	}
	return true
}
