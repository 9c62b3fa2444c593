package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jekabolt/storefront-insights/internal/entity"
)

func TestSortProductsByNameLocaleAware(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Name: "banana stand"},
		{ID: 2, Name: "Apple peeler"},
		{ID: 3, Name: "cherry pitter"},
	}

	got := SortProducts(products, entity.SortSpec{Field: entity.SortByName, Order: entity.Ascending})

	// Case does not decide the order.
	assert.Equal(t, []int{2, 1, 3}, productIDs(got))

	desc := SortProducts(products, entity.SortSpec{Field: entity.SortByName, Order: entity.Descending})
	assert.Equal(t, []int{3, 1, 2}, productIDs(desc))
}

func TestSortProductsInputUntouched(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Name: "b"},
		{ID: 2, Name: "a"},
	}

	SortProducts(products, entity.SortSpec{Field: entity.SortByName, Order: entity.Ascending})

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 2, products[1].ID)
}

func TestSortProductsByPriceAndStock(t *testing.T) {
	products := []entity.Product{
		{ID: 1, Price: decimal.NewFromInt(30), StockQuantity: 5},
		{ID: 2, Price: decimal.NewFromInt(10), StockQuantity: 50},
		{ID: 3, Price: decimal.NewFromInt(20), StockQuantity: 2},
	}

	byPrice := SortProducts(products, entity.SortSpec{Field: entity.SortByPrice, Order: entity.Ascending})
	assert.Equal(t, []int{2, 3, 1}, productIDs(byPrice))

	byStock := SortProducts(products, entity.SortSpec{Field: entity.SortByStock, Order: entity.Descending})
	assert.Equal(t, []int{2, 1, 3}, productIDs(byStock))
}

func TestSortOrdersStable(t *testing.T) {
	date := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		order(1, "x", "", date, 100, entity.Pending),
		order(2, "y", "", date, 100, entity.Pending),
		order(3, "z", "", date, 100, entity.Pending),
	}

	got := SortOrders(orders, entity.SortSpec{Field: entity.SortByTotalAmount, Order: entity.Ascending})

	// Equal keys keep their input order.
	assert.Equal(t, []int{1, 2, 3}, orderIDs(got))

	// Sorting the already-sorted result changes nothing.
	again := SortOrders(got, entity.SortSpec{Field: entity.SortByTotalAmount, Order: entity.Ascending})
	assert.Equal(t, got, again)
}

func TestSortOrdersByDateAndAmount(t *testing.T) {
	orders := testOrders()

	newest := SortOrders(orders, entity.SortSpec{Field: entity.SortByOrderDate, Order: entity.Descending})
	assert.Equal(t, []int{1, 2, 3, 4}, orderIDs(newest))

	byAmount := SortOrders(orders, entity.SortSpec{Field: entity.SortByTotalAmount, Order: entity.Ascending})
	assert.Equal(t, []int{4, 1, 2, 3}, orderIDs(byAmount))
}

func TestSortOrdersByCustomerName(t *testing.T) {
	orders := []entity.Order{
		order(1, "charlie", "", testNow, 1, entity.Pending),
		order(2, "Alice", "", testNow, 1, entity.Pending),
		order(3, "bob", "", testNow, 1, entity.Pending),
	}

	got := SortOrders(orders, entity.SortSpec{Field: entity.SortByCustomerName, Order: entity.Ascending})
	assert.Equal(t, []int{2, 3, 1}, orderIDs(got))
}

func TestSortUnknownFieldPanics(t *testing.T) {
	assert.Panics(t, func() {
		SortOrders(testOrders(), entity.SortSpec{Field: "bogus", Order: entity.Ascending})
	})
	assert.Panics(t, func() {
		SortProducts(nil, entity.SortSpec{Field: "bogus", Order: entity.Ascending})
	})
}

func productIDs(products []entity.Product) []int {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func orderIDs(orders []entity.Order) []int {
	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
