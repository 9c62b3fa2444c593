package analytics

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

// SortProducts returns a stably sorted copy of products. The input is
// never mutated. An unknown field is a programmer error and panics with
// the field name; user input must be validated with
// entity.IsValidProductSortField before reaching here.
func SortProducts(products []entity.Product, spec entity.SortSpec) []entity.Product {
	// Collators are not safe for concurrent use, so each call gets its own.
	col := collate.New(language.English, collate.IgnoreCase)

	var cmp func(a, b entity.Product) int
	switch spec.Field {
	case entity.SortByName:
		cmp = func(a, b entity.Product) int { return col.CompareString(a.Name, b.Name) }
	case entity.SortByPrice:
		cmp = func(a, b entity.Product) int { return a.Price.Cmp(b.Price) }
	case entity.SortByStock:
		cmp = func(a, b entity.Product) int { return a.StockQuantity - b.StockQuantity }
	default:
		panic(fmt.Sprintf("analytics: unknown product sort field %q", spec.Field))
	}

	out := slices.Clone(products)
	slices.SortStableFunc(out, directed(cmp, spec.Order))
	return out
}

// SortOrders returns a stably sorted copy of orders, same contract as
// SortProducts.
func SortOrders(orders []entity.Order, spec entity.SortSpec) []entity.Order {
	col := collate.New(language.English, collate.IgnoreCase)

	var cmp func(a, b entity.Order) int
	switch spec.Field {
	case entity.SortByOrderDate:
		cmp = func(a, b entity.Order) int { return a.OrderDate.Compare(b.OrderDate) }
	case entity.SortByTotalAmount:
		cmp = func(a, b entity.Order) int { return a.TotalAmount.Cmp(b.TotalAmount) }
	case entity.SortByCustomerName:
		cmp = func(a, b entity.Order) int { return col.CompareString(a.CustomerName, b.CustomerName) }
	default:
		panic(fmt.Sprintf("analytics: unknown order sort field %q", spec.Field))
	}

	out := slices.Clone(orders)
	slices.SortStableFunc(out, directed(cmp, spec.Order))
	return out
}

// directed flips the comparator for descending order. Equal keys still
// compare equal, so stability holds in both directions.
func directed[T any](cmp func(a, b T) int, order entity.OrderFactor) func(a, b T) int {
	if order != entity.Descending {
		return cmp
	}
	return func(a, b T) int { return -cmp(a, b) }
}
