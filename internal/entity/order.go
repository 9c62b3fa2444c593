package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	Pending   OrderStatus = "PENDING"
	Shipped   OrderStatus = "SHIPPED"
	Delivered OrderStatus = "DELIVERED"
	Cancelled OrderStatus = "CANCELLED"
	// Processing is no longer assigned by the upstream but historical
	// orders still carry it.
	Processing OrderStatus = "PROCESSING"
)

var validOrderStatuses = map[OrderStatus]bool{
	Pending:    true,
	Shipped:    true,
	Delivered:  true,
	Cancelled:  true,
	Processing: true,
}

func IsValidOrderStatus(status string) bool {
	return validOrderStatuses[OrderStatus(strings.ToUpper(status))]
}

// Label returns the display form of the status, e.g. "Pending".
func (s OrderStatus) Label() string {
	str := string(s)
	if str == "" {
		return "Unknown"
	}
	return strings.ToUpper(str[:1]) + strings.ToLower(str[1:])
}

// OrderItem is a purchased line within an order. PriceAtPurchase is the
// unit price snapshot taken when the order was placed and does not follow
// later catalog price changes. ProductPrice is the live catalog price at
// normalization time, kept as a fallback for legacy rows that predate
// price snapshots.
type OrderItem struct {
	ProductID       int
	ProductName     string
	Category        string
	Quantity        int
	PriceAtPurchase decimal.Decimal
	ProductPrice    decimal.Decimal
}

// UnitPrice prefers the price-at-purchase snapshot over the live catalog
// price.
func (oi *OrderItem) UnitPrice() decimal.Decimal {
	if oi.PriceAtPurchase.GreaterThan(decimal.Zero) {
		return oi.PriceAtPurchase.Round(2)
	}
	return oi.ProductPrice.Round(2)
}

// Revenue is quantity times unit price.
func (oi *OrderItem) Revenue() decimal.Decimal {
	return oi.UnitPrice().Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

type Order struct {
	ID              int
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	TrackingNumber  string
	OrderDate       time.Time
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	Items           []OrderItem
}

func (o *Order) TotalAmountDecimal() decimal.Decimal {
	return o.TotalAmount.Round(2)
}
