package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

// FilterOrders returns the orders satisfying every specified criterion in
// f. Unspecified criteria are vacuously true, so the zero filter returns
// the input unchanged (as a fresh slice). Rows with missing fields simply
// fail the criteria that need them; nothing errors.
func FilterOrders(orders []entity.Order, f entity.OrderFilter, now time.Time) []entity.Order {
	rng := ResolveRange(f.Range, now, f.Custom)
	term := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.ToUpper(strings.TrimSpace(f.Status))

	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if !orderMatchesSearch(&o, term) {
			continue
		}
		if status != "" && status != "ALL" && string(o.Status) != status {
			continue
		}
		if !rng.IsZero() && !rng.Contains(o.OrderDate.UTC()) {
			continue
		}
		if !f.Amount.Contains(o.TotalAmount) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// FilterProducts applies text search over name/description and the
// case-insensitive category prefix match.
func FilterProducts(products []entity.Product, f entity.ProductFilter) []entity.Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	prefix := strings.ToLower(strings.TrimSpace(f.Category))

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(p.Category), prefix) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Text search hits when the term appears in any of: customer name, email,
// order id, shipping address, tracking number.
func orderMatchesSearch(o *entity.Order, term string) bool {
	if term == "" {
		return true
	}
	fields := []string{
		o.CustomerName,
		o.CustomerEmail,
		strconv.Itoa(o.ID),
		o.ShippingAddress,
		o.TrackingNumber,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
