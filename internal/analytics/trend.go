package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

// BuildTrend produces the chronological revenue/order series for the
// chart. The today view gets 24 fixed hourly buckets labeled
// "0:00".."23:00"; every other range gets one bucket per calendar day
// from the range start through its end, inclusive. Empty buckets stay in
// the output with zero values so the chart has no gaps.
//
// rng is the already-resolved window for token (see ResolveRange). For
// the unbounded range the series starts at the earliest order date; with
// no orders at all there is nothing to chart and the result is empty.
func BuildTrend(orders []entity.Order, token entity.RangeToken, rng entity.TimeRange, now time.Time) []entity.TrendBucket {
	now = now.UTC()
	if token == entity.RangeToday {
		return hourlyTrend(orders)
	}

	start := rng.From
	if start.IsZero() {
		earliest := earliestOrderDate(orders)
		if earliest.IsZero() {
			return nil
		}
		start = earliest
	}
	end := rng.To
	if end.IsZero() {
		end = now
	}
	return dailyTrend(orders, start.UTC(), end.UTC())
}

func hourlyTrend(orders []entity.Order) []entity.TrendBucket {
	buckets := make([]entity.TrendBucket, 24)
	for h := range buckets {
		buckets[h] = entity.TrendBucket{Label: fmt.Sprintf("%d:00", h), Revenue: decimal.Zero}
	}
	for i := range orders {
		o := &orders[i]
		if o.OrderDate.IsZero() {
			continue
		}
		h := o.OrderDate.UTC().Hour()
		buckets[h].Revenue = buckets[h].Revenue.Add(o.TotalAmount)
		buckets[h].Orders++
	}
	return buckets
}

func dailyTrend(orders []entity.Order, start, end time.Time) []entity.TrendBucket {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if last.Before(first) {
		return nil
	}

	days := int(last.Sub(first).Hours()/24) + 1
	buckets := make([]entity.TrendBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := first.AddDate(0, 0, i).Format(dayKeyLayout)
		buckets[i] = entity.TrendBucket{Label: key, Revenue: decimal.Zero}
		index[key] = i
	}

	for i := range orders {
		o := &orders[i]
		if o.OrderDate.IsZero() {
			continue
		}
		if idx, ok := index[o.OrderDate.UTC().Format(dayKeyLayout)]; ok {
			buckets[idx].Revenue = buckets[idx].Revenue.Add(o.TotalAmount)
			buckets[idx].Orders++
		}
	}
	return buckets
}

func earliestOrderDate(orders []entity.Order) time.Time {
	var earliest time.Time
	for i := range orders {
		d := orders[i].OrderDate
		if d.IsZero() {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
	}
	return earliest
}
