package analytics

import (
	"slices"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

const (
	topProductsLimit  = 8
	topCustomersLimit = 8
	recentOrdersLimit = 5
	lowStockLimit     = 5
)

// Aggregate reduces the filtered order view into the dashboard rollup.
// The full product catalog feeds the low-stock alert, and the full
// (unfiltered) order book feeds the prior-period growth comparison. Every
// division is zero-guarded; an empty input yields zero-valued stats
// rather than an error, so empty states always render.
func Aggregate(filtered []entity.Order, products []entity.Product, token entity.RangeToken, all []entity.Order, now time.Time) entity.AggregateStats {
	stats := entity.AggregateStats{
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
		TotalOrders:   len(filtered),
		TotalProducts: len(products),
	}

	for _, o := range filtered {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
	}

	customers := customerSpendByKey(filtered)
	stats.TotalCustomers = len(customers)
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalOrders)))
	}

	stats.GrowthRate = growthRate(stats.TotalRevenue, token, all, now)

	sales := productSales(filtered)
	stats.TopProducts = topProducts(sales)
	stats.TopCustomers = topCustomers(customers)
	stats.CategoryRevenue = categoryRevenue(sales)
	stats.StatusCounts = statusCounts(filtered)
	stats.RecentOrders = recentOrders(filtered)
	stats.LowStockProducts = lowStockProducts(products)

	grid := BuildHeatmap(filtered, now, DefaultHeatmapSpanDays)
	for i := range grid {
		stats.TotalActivity += grid[i].Orders
		if grid[i].Orders > 0 && (stats.PeakDay == nil || grid[i].Orders > stats.PeakDay.Orders) {
			day := grid[i]
			stats.PeakDay = &day
		}
	}

	stats.Conversion = conversionMetrics(customers, stats.TotalRevenue, stats.TotalOrders)
	return stats
}

// customerKey is the distinct-customer identifier: a syntactically valid
// email wins, otherwise the customer name. Rows with neither are excluded
// from customer counts, not from the order list.
func customerKey(o *entity.Order) string {
	email := strings.TrimSpace(o.CustomerEmail)
	if email != "" && govalidator.IsEmail(email) {
		return strings.ToLower(email)
	}
	if name := strings.TrimSpace(o.CustomerName); name != "" {
		return name
	}
	return ""
}

func customerSpendByKey(orders []entity.Order) map[string]*entity.CustomerSpend {
	byKey := make(map[string]*entity.CustomerSpend)
	for i := range orders {
		o := &orders[i]
		key := customerKey(o)
		if key == "" {
			continue
		}
		c, ok := byKey[key]
		if !ok {
			c = &entity.CustomerSpend{
				Name:       o.CustomerName,
				Email:      key,
				TotalSpent: decimal.Zero,
				FirstOrder: o.OrderDate,
				LastOrder:  o.OrderDate,
			}
			byKey[key] = c
		}
		c.TotalSpent = c.TotalSpent.Add(o.TotalAmount)
		c.TotalOrders++
		if o.OrderDate.Before(c.FirstOrder) {
			c.FirstOrder = o.OrderDate
		}
		if o.OrderDate.After(c.LastOrder) {
			c.LastOrder = o.OrderDate
		}
		c.Repeat = c.TotalOrders > 1
	}
	return byKey
}

// growthRate compares filtered revenue against the immediately preceding
// window of equal nominal length over the full order book. Tokens without
// a nominal length (all, custom) skip the comparison. A previous period
// with no revenue reads as +100% when the current one has any, 0%
// otherwise.
func growthRate(current decimal.Decimal, token entity.RangeToken, all []entity.Order, now time.Time) float64 {
	days := token.PeriodDays()
	if days == 0 {
		return 0
	}
	now = now.UTC()
	prev := entity.TimeRange{
		From: now.AddDate(0, 0, -2*days),
		To:   now.AddDate(0, 0, -days),
	}

	previous := decimal.Zero
	for _, o := range all {
		if prev.Contains(o.OrderDate.UTC()) {
			previous = previous.Add(o.TotalAmount)
		}
	}

	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}
	rate, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}

func productSales(orders []entity.Order) map[int]*entity.ProductSales {
	byID := make(map[int]*entity.ProductSales)
	for i := range orders {
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			if item.ProductID == 0 {
				continue
			}
			ps, ok := byID[item.ProductID]
			if !ok {
				ps = &entity.ProductSales{
					ProductID: item.ProductID,
					Name:      item.ProductName,
					Category:  item.Category,
					Price:     item.UnitPrice(),
					Revenue:   decimal.Zero,
				}
				byID[item.ProductID] = ps
			}
			ps.Quantity += item.Quantity
			ps.Revenue = ps.Revenue.Add(item.Revenue())
			ps.Orders++
		}
	}
	return byID
}

func topProducts(sales map[int]*entity.ProductSales) []entity.ProductSales {
	ranked := make([]entity.ProductSales, 0, len(sales))
	for _, ps := range sales {
		ranked = append(ranked, *ps)
	}
	slices.SortStableFunc(ranked, func(a, b entity.ProductSales) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return a.ProductID - b.ProductID
	})
	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	return ranked
}

func topCustomers(customers map[string]*entity.CustomerSpend) []entity.CustomerSpend {
	ranked := make([]entity.CustomerSpend, 0, len(customers))
	for _, c := range customers {
		ranked = append(ranked, *c)
	}
	slices.SortStableFunc(ranked, func(a, b entity.CustomerSpend) int {
		if c := b.TotalSpent.Cmp(a.TotalSpent); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})
	if len(ranked) > topCustomersLimit {
		ranked = ranked[:topCustomersLimit]
	}
	return ranked
}

func categoryRevenue(sales map[int]*entity.ProductSales) []entity.CategoryRevenue {
	byCategory := make(map[string]decimal.Decimal)
	for _, ps := range sales {
		cat := ps.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		byCategory[cat] = byCategory[cat].Add(ps.Revenue)
	}

	out := make([]entity.CategoryRevenue, 0, len(byCategory))
	for cat, rev := range byCategory {
		out = append(out, entity.CategoryRevenue{Category: cat, Revenue: rev})
	}
	slices.SortStableFunc(out, func(a, b entity.CategoryRevenue) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

func statusCounts(orders []entity.Order) []entity.StatusCount {
	byStatus := make(map[string]int)
	for _, o := range orders {
		byStatus[o.Status.Label()]++
	}

	out := make([]entity.StatusCount, 0, len(byStatus))
	for status, count := range byStatus {
		out = append(out, entity.StatusCount{Status: status, Count: count})
	}
	slices.SortStableFunc(out, func(a, b entity.StatusCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Status, b.Status)
	})
	return out
}

func recentOrders(orders []entity.Order) []entity.Order {
	recent := SortOrders(orders, entity.SortSpec{Field: entity.SortByOrderDate, Order: entity.Descending})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	return recent
}

func lowStockProducts(products []entity.Product) []entity.Product {
	low := make([]entity.Product, 0, lowStockLimit)
	for _, p := range products {
		if p.StockQuantity < entity.LowStockThreshold {
			low = append(low, p)
		}
	}
	slices.SortStableFunc(low, func(a, b entity.Product) int {
		return a.StockQuantity - b.StockQuantity
	})
	if len(low) > lowStockLimit {
		low = low[:lowStockLimit]
	}
	return low
}

func conversionMetrics(customers map[string]*entity.CustomerSpend, revenue decimal.Decimal, orders int) entity.ConversionMetrics {
	m := entity.ConversionMetrics{CustomerLifetimeValue: decimal.Zero}
	for _, c := range customers {
		if c.Repeat {
			m.RepeatCustomers++
		}
	}
	if len(customers) > 0 {
		m.AvgOrdersPerCustomer = float64(orders) / float64(len(customers))
		m.CustomerLifetimeValue = revenue.Div(decimal.NewFromInt(int64(len(customers))))
	}
	return m
}
