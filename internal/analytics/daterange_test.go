package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

func TestResolveRangeToday(t *testing.T) {
	rng := ResolveRange(entity.RangeToday, testNow, nil)

	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), rng.From)
	assert.Equal(t, testNow, rng.To)
}

func TestResolveRangeWeek(t *testing.T) {
	rng := ResolveRange(entity.RangeWeek, testNow, nil)

	assert.Equal(t, testNow.Add(-7*24*time.Hour), rng.From)
	assert.Equal(t, testNow, rng.To)
}

func TestResolveRangeMonth(t *testing.T) {
	rng := ResolveRange(entity.RangeMonth, testNow, nil)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), rng.From)
}

func TestResolveRangeThreeMonthsCrossesYear(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC)

	rng := ResolveRange(entity.RangeThreeMonths, feb, nil)

	// Month arithmetic normalizes across the year boundary.
	assert.Equal(t, time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC), rng.From)
}

func TestResolveRangeYear(t *testing.T) {
	rng := ResolveRange(entity.RangeYear, testNow, nil)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), rng.From)
	assert.Equal(t, testNow, rng.To)
}

func TestResolveRangeAllIsUnbounded(t *testing.T) {
	rng := ResolveRange(entity.RangeAll, testNow, nil)

	assert.True(t, rng.IsZero())
	assert.True(t, rng.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestResolveRangeCustom(t *testing.T) {
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC)

	rng := ResolveRange(entity.RangeCustom, testNow, &entity.TimeRange{From: from, To: to})
	assert.Equal(t, from, rng.From)
	assert.Equal(t, to, rng.To)

	// Inverted or incomplete bounds degrade to the unbounded range.
	assert.True(t, ResolveRange(entity.RangeCustom, testNow, &entity.TimeRange{From: to, To: from}).IsZero())
	assert.True(t, ResolveRange(entity.RangeCustom, testNow, &entity.TimeRange{From: from}).IsZero())
	assert.True(t, ResolveRange(entity.RangeCustom, testNow, nil).IsZero())
}

func TestResolveRangeDeterministic(t *testing.T) {
	for _, token := range []entity.RangeToken{
		entity.RangeToday, entity.RangeWeek, entity.RangeMonth,
		entity.RangeThreeMonths, entity.RangeYear, entity.RangeAll,
	} {
		first := ResolveRange(token, testNow, nil)
		second := ResolveRange(token, testNow, nil)
		assert.Equal(t, first, second, "token %s", token)
	}
}

func TestResolveRangeNormalizesToUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	local := time.Date(2024, time.June, 15, 22, 0, 0, 0, est) // June 16 03:00 UTC

	rng := ResolveRange(entity.RangeToday, local, nil)

	assert.Equal(t, time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), rng.From)
}
