package entity

import "github.com/shopspring/decimal"

type OrderFactor string

const (
	Ascending  OrderFactor = "ASC"
	Descending OrderFactor = "DESC"
)

func (of *OrderFactor) String() string {
	if of != nil {
		if *of == Descending {
			return "DESC"
		}
	}
	return "ASC"
}

type SortField string

const (
	SortByName         SortField = "name"
	SortByPrice        SortField = "price"
	SortByStock        SortField = "stockQuantity"
	SortByOrderDate    SortField = "orderDate"
	SortByTotalAmount  SortField = "totalAmount"
	SortByCustomerName SortField = "customerName"
)

var productSortFields = map[SortField]bool{
	SortByName:  true,
	SortByPrice: true,
	SortByStock: true,
}

var orderSortFields = map[SortField]bool{
	SortByOrderDate:    true,
	SortByTotalAmount:  true,
	SortByCustomerName: true,
}

func IsValidProductSortField(field string) bool {
	return productSortFields[SortField(field)]
}

func IsValidOrderSortField(field string) bool {
	return orderSortFields[SortField(field)]
}

type SortSpec struct {
	Field SortField
	Order OrderFactor
}

// AmountBucket buckets an order total for coarse filtering.
type AmountBucket string

const (
	AmountAny    AmountBucket = "ALL"
	AmountLow    AmountBucket = "LOW"
	AmountMedium AmountBucket = "MEDIUM"
	AmountHigh   AmountBucket = "HIGH"
)

var (
	amountLowCeil  = decimal.NewFromInt(500)
	amountHighFlor = decimal.NewFromInt(1500)
)

var amountBuckets = map[AmountBucket]bool{
	AmountAny:    true,
	AmountLow:    true,
	AmountMedium: true,
	AmountHigh:   true,
}

func IsValidAmountBucket(bucket string) bool {
	return amountBuckets[AmountBucket(bucket)]
}

// Contains reports whether amount falls in the bucket. LOW is below 500,
// MEDIUM is [500, 1500), HIGH is 1500 and up. The empty bucket and ALL
// match everything.
func (b AmountBucket) Contains(amount decimal.Decimal) bool {
	switch b {
	case AmountLow:
		return amount.LessThan(amountLowCeil)
	case AmountMedium:
		return amount.GreaterThanOrEqual(amountLowCeil) && amount.LessThan(amountHighFlor)
	case AmountHigh:
		return amount.GreaterThanOrEqual(amountHighFlor)
	default:
		return true
	}
}

// OrderFilter is the conjunction of criteria applied to the order list.
// Zero-valued fields impose no constraint.
type OrderFilter struct {
	Search string
	Status string
	Range  RangeToken
	Custom *TimeRange
	Amount AmountBucket
}

// ProductFilter is the conjunction of criteria applied to the catalog.
// Category matches by case-insensitive prefix, not substring.
type ProductFilter struct {
	Search   string
	Category string
}
