package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

// API response shapes. Money travels as decimal strings, dates as
// RFC 3339 UTC.

type ProductResponse struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

type OrderItemResponse struct {
	ProductID       int             `json:"productId"`
	ProductName     string          `json:"productName,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

type OrderResponse struct {
	ID              int                 `json:"id"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	ShippingAddress string              `json:"shippingAddress,omitempty"`
	TrackingNumber  string              `json:"trackingNumber,omitempty"`
	OrderDate       string              `json:"orderDate"`
	Status          string              `json:"status"`
	StatusLabel     string              `json:"statusLabel"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Items           []OrderItemResponse `json:"orderItems"`
}

type ProductSalesResponse struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Orders    int             `json:"orders"`
}

type CustomerSpendResponse struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	TotalOrders int             `json:"totalOrders"`
	Repeat      bool            `json:"repeat"`
}

type CategoryRevenueResponse struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ConversionMetricsResponse struct {
	RepeatCustomers       int             `json:"repeatCustomers"`
	AvgOrdersPerCustomer  float64         `json:"avgOrdersPerCustomer"`
	CustomerLifetimeValue decimal.Decimal `json:"customerLifetimeValue"`
}

type HeatmapDayResponse struct {
	Date      string          `json:"date"`
	Orders    int             `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	Customers int             `json:"customers"`
	Level     int             `json:"level"`
}

type TrendBucketResponse struct {
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type AggregateStatsResponse struct {
	TotalRevenue     decimal.Decimal           `json:"totalRevenue"`
	TotalOrders      int                       `json:"totalOrders"`
	TotalProducts    int                       `json:"totalProducts"`
	TotalCustomers   int                       `json:"totalCustomers"`
	AvgOrderValue    decimal.Decimal           `json:"avgOrderValue"`
	GrowthRate       float64                   `json:"growthRate"`
	TopProducts      []ProductSalesResponse    `json:"topProducts"`
	TopCustomers     []CustomerSpendResponse   `json:"topCustomers"`
	CategoryRevenue  []CategoryRevenueResponse `json:"categoryRevenue"`
	StatusCounts     []StatusCountResponse     `json:"statusCounts"`
	RecentOrders     []OrderResponse           `json:"recentOrders"`
	LowStockProducts []ProductResponse         `json:"lowStockProducts"`
	PeakDay          *HeatmapDayResponse       `json:"peakDay,omitempty"`
	TotalActivity    int                       `json:"totalActivity"`
	Conversion       ConversionMetricsResponse `json:"conversionMetrics"`
}

func ConvertProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.PriceDecimal(),
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}

func ConvertProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ConvertProduct(&products[i]))
	}
	return out
}

func ConvertOrder(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.UnitPrice(),
		})
	}

	date := ""
	if !o.OrderDate.IsZero() {
		date = o.OrderDate.UTC().Format(time.RFC3339)
	}

	return OrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		TrackingNumber:  o.TrackingNumber,
		OrderDate:       date,
		Status:          string(o.Status),
		StatusLabel:     o.Status.Label(),
		TotalAmount:     o.TotalAmountDecimal(),
		Items:           items,
	}
}

func ConvertOrders(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ConvertOrder(&orders[i]))
	}
	return out
}

func ConvertHeatmapDay(d *entity.HeatmapDay) HeatmapDayResponse {
	return HeatmapDayResponse{
		Date:      d.Date,
		Orders:    d.Orders,
		Revenue:   d.Revenue.Round(2),
		Customers: d.Customers,
		Level:     d.Level,
	}
}

func ConvertHeatmap(grid []entity.HeatmapDay) []HeatmapDayResponse {
	out := make([]HeatmapDayResponse, 0, len(grid))
	for i := range grid {
		out = append(out, ConvertHeatmapDay(&grid[i]))
	}
	return out
}

func ConvertTrend(buckets []entity.TrendBucket) []TrendBucketResponse {
	out := make([]TrendBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TrendBucketResponse{
			Label:   b.Label,
			Revenue: b.Revenue.Round(2),
			Orders:  b.Orders,
		})
	}
	return out
}

func ConvertAggregateStats(s *entity.AggregateStats) AggregateStatsResponse {
	resp := AggregateStatsResponse{
		TotalRevenue:   s.TotalRevenue.Round(2),
		TotalOrders:    s.TotalOrders,
		TotalProducts:  s.TotalProducts,
		TotalCustomers: s.TotalCustomers,
		AvgOrderValue:  s.AvgOrderValue.Round(2),
		GrowthRate:     s.GrowthRate,
		RecentOrders:   ConvertOrders(s.RecentOrders),
		TotalActivity:  s.TotalActivity,
		Conversion: ConversionMetricsResponse{
			RepeatCustomers:       s.Conversion.RepeatCustomers,
			AvgOrdersPerCustomer:  s.Conversion.AvgOrdersPerCustomer,
			CustomerLifetimeValue: s.Conversion.CustomerLifetimeValue.Round(2),
		},
	}

	resp.TopProducts = make([]ProductSalesResponse, 0, len(s.TopProducts))
	for _, ps := range s.TopProducts {
		resp.TopProducts = append(resp.TopProducts, ProductSalesResponse{
			ProductID: ps.ProductID,
			Name:      ps.Name,
			Category:  ps.Category,
			Quantity:  ps.Quantity,
			Revenue:   ps.Revenue.Round(2),
			Orders:    ps.Orders,
		})
	}

	resp.TopCustomers = make([]CustomerSpendResponse, 0, len(s.TopCustomers))
	for _, c := range s.TopCustomers {
		resp.TopCustomers = append(resp.TopCustomers, CustomerSpendResponse{
			Name:        c.Name,
			Email:       c.Email,
			TotalSpent:  c.TotalSpent.Round(2),
			TotalOrders: c.TotalOrders,
			Repeat:      c.Repeat,
		})
	}

	resp.CategoryRevenue = make([]CategoryRevenueResponse, 0, len(s.CategoryRevenue))
	for _, cr := range s.CategoryRevenue {
		resp.CategoryRevenue = append(resp.CategoryRevenue, CategoryRevenueResponse{
			Category: cr.Category,
			Revenue:  cr.Revenue.Round(2),
		})
	}

	resp.StatusCounts = make([]StatusCountResponse, 0, len(s.StatusCounts))
	for _, sc := range s.StatusCounts {
		resp.StatusCounts = append(resp.StatusCounts, StatusCountResponse{
			Status: sc.Status,
			Count:  sc.Count,
		})
	}

	resp.LowStockProducts = ConvertProducts(s.LowStockProducts)

	if s.PeakDay != nil {
		peak := ConvertHeatmapDay(s.PeakDay)
		resp.PeakDay = &peak
	}
	return resp
}
