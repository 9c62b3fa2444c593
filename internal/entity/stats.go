package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateStats is the derived dashboard rollup, recomputed in full on
// every filter change. It owns its output and never aliases the input
// collections.
type AggregateStats struct {
	TotalRevenue   decimal.Decimal
	TotalOrders    int
	TotalProducts  int
	TotalCustomers int
	AvgOrderValue  decimal.Decimal
	GrowthRate     float64

	TopProducts      []ProductSales
	TopCustomers     []CustomerSpend
	CategoryRevenue  []CategoryRevenue
	StatusCounts     []StatusCount
	RecentOrders     []Order
	LowStockProducts []Product

	PeakDay       *HeatmapDay
	TotalActivity int
	Conversion    ConversionMetrics
}

// ProductSales accumulates the sales of one product across the filtered
// orders.
type ProductSales struct {
	ProductID int
	Name      string
	Category  string
	Price     decimal.Decimal
	Quantity  int
	Revenue   decimal.Decimal
	Orders    int
}

// CustomerSpend accumulates one customer's orders. Repeat is set when the
// customer placed more than one order in the window.
type CustomerSpend struct {
	Name        string
	Email       string
	TotalSpent  decimal.Decimal
	TotalOrders int
	FirstOrder  time.Time
	LastOrder   time.Time
	Repeat      bool
}

type CategoryRevenue struct {
	Category string
	Revenue  decimal.Decimal
}

type StatusCount struct {
	Status string
	Count  int
}

type ConversionMetrics struct {
	RepeatCustomers       int
	AvgOrdersPerCustomer  float64
	CustomerLifetimeValue decimal.Decimal
}

// HeatmapDay is one cell of the activity grid. Level is a relative 0-4
// scale against the busiest day of the span.
type HeatmapDay struct {
	Date      string
	Orders    int
	Revenue   decimal.Decimal
	Customers int
	Level     int
}

// TrendBucket is one point of the revenue trend series. Label is an hour
// mark ("0:00".."23:00") on the today view and a calendar date otherwise.
type TrendBucket struct {
	Label   string
	Revenue decimal.Decimal
	Orders  int
}
