package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

// DefaultHeatmapSpanDays is the GitHub-style year grid.
const DefaultHeatmapSpanDays = 365

const dayKeyLayout = "2006-01-02"

// BuildHeatmap buckets orders into a gap-free daily grid of exactly
// spanDays entries ending today (per the injected now). Days without
// orders are present with zero counts. Each day's activity level is
// relative to the busiest day of the span: 0 for none, then quartile
// thresholds of the maximum single-day order count. The scale is
// recomputed from scratch on every call, so it shifts as the underlying
// order set changes.
func BuildHeatmap(orders []entity.Order, now time.Time, spanDays int) []entity.HeatmapDay {
	if spanDays <= 0 {
		spanDays = DefaultHeatmapSpanDays
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(spanDays - 1))

	grid := make([]entity.HeatmapDay, spanDays)
	index := make(map[string]int, spanDays)
	for i := 0; i < spanDays; i++ {
		key := start.AddDate(0, 0, i).Format(dayKeyLayout)
		grid[i] = entity.HeatmapDay{Date: key, Revenue: decimal.Zero}
		index[key] = i
	}

	customersByDay := make(map[int]map[string]struct{})
	for i := range orders {
		o := &orders[i]
		if o.OrderDate.IsZero() {
			continue
		}
		idx, ok := index[o.OrderDate.UTC().Format(dayKeyLayout)]
		if !ok {
			continue
		}
		grid[idx].Orders++
		grid[idx].Revenue = grid[idx].Revenue.Add(o.TotalAmount)
		if key := customerKey(o); key != "" {
			set, ok := customersByDay[idx]
			if !ok {
				set = make(map[string]struct{})
				customersByDay[idx] = set
			}
			set[key] = struct{}{}
		}
	}

	maxOrders := 0
	for i := range grid {
		grid[i].Customers = len(customersByDay[i])
		if grid[i].Orders > maxOrders {
			maxOrders = grid[i].Orders
		}
	}

	if maxOrders > 0 {
		for i := range grid {
			grid[i].Level = activityLevel(grid[i].Orders, maxOrders)
		}
	}
	return grid
}

func activityLevel(orders, maxOrders int) int {
	if orders == 0 {
		return 0
	}
	ratio := float64(orders) / float64(maxOrders)
	switch {
	case ratio < 0.25:
		return 1
	case ratio < 0.5:
		return 2
	case ratio < 0.75:
		return 3
	default:
		return 4
	}
}
