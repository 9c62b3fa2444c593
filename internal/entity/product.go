package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog row as delivered by the upstream snapshot. The
// transformation core treats it as immutable; a fresh copy arrives with
// every snapshot.
type Product struct {
	ID            int
	Name          string
	Description   string
	Category      string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      string
}

func (p *Product) PriceDecimal() decimal.Decimal {
	return p.Price.Round(2)
}

// LowStockThreshold is the stock level under which a product shows up in
// the low stock alert.
const LowStockThreshold = 20
