package analytics

import (
	"time"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

// ResolveRange maps a named range token to concrete bounds against the
// injected now. Passing now explicitly keeps the resolution deterministic
// and testable; nothing in this package reads the wall clock.
//
// An invalid custom range (either bound missing, or end before start)
// resolves to the unbounded range rather than an error.
func ResolveRange(token entity.RangeToken, now time.Time, custom *entity.TimeRange) entity.TimeRange {
	now = now.UTC()

	switch token {
	case entity.RangeToday:
		return entity.TimeRange{
			From: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			To:   now,
		}
	case entity.RangeWeek:
		return entity.TimeRange{
			From: now.Add(-7 * 24 * time.Hour),
			To:   now,
		}
	case entity.RangeMonth:
		return entity.TimeRange{
			From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
			To:   now,
		}
	case entity.RangeThreeMonths:
		return entity.TimeRange{
			From: time.Date(now.Year(), now.Month()-3, 1, 0, 0, 0, 0, time.UTC),
			To:   now,
		}
	case entity.RangeYear:
		return entity.TimeRange{
			From: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			To:   now,
		}
	case entity.RangeCustom:
		if custom != nil && !custom.From.IsZero() && !custom.To.IsZero() && !custom.To.Before(custom.From) {
			return entity.TimeRange{From: custom.From.UTC(), To: custom.To.UTC()}
		}
		return entity.TimeRange{}
	default:
		return entity.TimeRange{}
	}
}
