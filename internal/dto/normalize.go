// Package dto normalizes the loose JSON the upstream API emits into typed
// entities. Upstream rows arrived from several backend generations, so the
// same value can live under different keys (totalAmount vs total vs
// amount). All of that duck typing is resolved here, exactly once per
// fetched snapshot; downstream code only ever sees entity types.
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

type RawProduct struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         json.RawMessage `json:"price"`
	StockQuantity *int            `json:"stockQuantity"`
	Stock         *int            `json:"stock"`
	Quantity      *int            `json:"quantity"`
	ImageURL      string          `json:"imageUrl"`
}

type RawOrderItem struct {
	ProductID       int             `json:"productId"`
	ProductIDAlt    int             `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase json.RawMessage `json:"priceAtPurchase"`
	Price           json.RawMessage `json:"price"`
	Product         *RawProduct     `json:"product"`
}

type RawOrder struct {
	ID               int             `json:"id"`
	CustomerName     string          `json:"customerName"`
	CustomerNameAlt  string          `json:"customer_name"`
	Name             string          `json:"name"`
	CustomerEmail    string          `json:"customerEmail"`
	CustomerEmailAlt string          `json:"customer_email"`
	Email            string          `json:"email"`
	ShippingAddress  string          `json:"shippingAddress"`
	ShippingAddrAlt  string          `json:"shipping_address"`
	TrackingNumber   string          `json:"trackingNumber"`
	TrackingAlt      string          `json:"tracking_number"`
	OrderDate        string          `json:"orderDate"`
	CreatedAt        string          `json:"createdAt"`
	CreatedAtAlt     string          `json:"created_at"`
	Date             string          `json:"date"`
	Status           string          `json:"status"`
	StatusAlt        string          `json:"order_status"`
	TotalAmount      json.RawMessage `json:"totalAmount"`
	Total            json.RawMessage `json:"total"`
	Amount           json.RawMessage `json:"amount"`
	OrderItems       []RawOrderItem  `json:"orderItems"`
	Items            []RawOrderItem  `json:"items"`
	Products         []RawOrderItem  `json:"products"`
}

func NormalizeProducts(raw []RawProduct) []entity.Product {
	out := make([]entity.Product, 0, len(raw))
	for i := range raw {
		out = append(out, normalizeProduct(&raw[i]))
	}
	return out
}

func NormalizeOrders(raw []RawOrder) []entity.Order {
	out := make([]entity.Order, 0, len(raw))
	for i := range raw {
		out = append(out, normalizeOrder(&raw[i]))
	}
	return out
}

func normalizeProduct(rp *RawProduct) entity.Product {
	return entity.Product{
		ID:            rp.ID,
		Name:          firstNonEmpty(rp.Name, rp.Title),
		Description:   rp.Description,
		Category:      rp.Category,
		Price:         decimalFromRaw(rp.Price),
		StockQuantity: firstInt(rp.StockQuantity, rp.Stock, rp.Quantity),
		ImageURL:      rp.ImageURL,
	}
}

func normalizeOrder(ro *RawOrder) entity.Order {
	items := ro.OrderItems
	if len(items) == 0 {
		items = ro.Items
	}
	if len(items) == 0 {
		items = ro.Products
	}

	o := entity.Order{
		ID:              ro.ID,
		CustomerName:    firstNonEmpty(ro.CustomerName, ro.CustomerNameAlt, ro.Name),
		CustomerEmail:   pickEmail(ro.CustomerEmail, ro.CustomerEmailAlt, ro.Email),
		ShippingAddress: firstNonEmpty(ro.ShippingAddress, ro.ShippingAddrAlt),
		TrackingNumber:  firstNonEmpty(ro.TrackingNumber, ro.TrackingAlt),
		OrderDate:       firstDate(ro.OrderDate, ro.CreatedAt, ro.CreatedAtAlt, ro.Date),
		Status:          entity.OrderStatus(strings.ToUpper(firstNonEmpty(ro.Status, ro.StatusAlt))),
		TotalAmount:     firstDecimal(ro.TotalAmount, ro.Total, ro.Amount),
		Items:           make([]entity.OrderItem, 0, len(items)),
	}

	for i := range items {
		o.Items = append(o.Items, normalizeItem(&items[i]))
	}

	// Legacy rows may ship without a precomputed total; derive it from
	// the line items then.
	if o.TotalAmount.IsZero() && len(o.Items) > 0 {
		for i := range o.Items {
			o.TotalAmount = o.TotalAmount.Add(o.Items[i].Revenue())
		}
	}
	return o
}

func normalizeItem(ri *RawOrderItem) entity.OrderItem {
	item := entity.OrderItem{
		ProductID:       ri.ProductID,
		Quantity:        ri.Quantity,
		PriceAtPurchase: firstDecimal(ri.PriceAtPurchase, ri.Price),
		ProductPrice:    decimal.Zero,
	}
	if item.ProductID == 0 {
		item.ProductID = ri.ProductIDAlt
	}
	if ri.Product != nil {
		p := normalizeProduct(ri.Product)
		if item.ProductID == 0 {
			item.ProductID = p.ID
		}
		item.ProductName = p.Name
		item.Category = p.Category
		item.ProductPrice = p.Price
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return item
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// pickEmail prefers the first candidate that is a syntactically valid
// address; failing that, the first non-empty one still serves as an
// opaque customer identifier.
func pickEmail(candidates ...string) string {
	for _, c := range candidates {
		if govalidator.IsEmail(strings.TrimSpace(c)) {
			return strings.TrimSpace(c)
		}
	}
	return firstNonEmpty(candidates...)
}

func firstInt(candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func firstDecimal(candidates ...json.RawMessage) decimal.Decimal {
	for _, c := range candidates {
		if d := decimalFromRaw(c); !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

// decimalFromRaw accepts a JSON number, a quoted numeric string, or
// anything else, which parses to zero. Malformed money never errors.
func decimalFromRaw(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func firstDate(candidates ...string) time.Time {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}
