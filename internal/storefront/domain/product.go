package domain

import (
	"math"
	"sort"
)

// Defaults applied when the upstream catalog record omits a field.
// The storefront is a single-collection landing page, so the placeholders
// describe the flagship product line.
const (
	DefaultProductName   = "প্রিমিয়াম পার্টি শাড়ি"
	DefaultColor         = "কালো"
	FallbackImagePath    = "/fallback-product.jpg"
	DefaultPrice         = 1650
	DefaultOriginalPrice = 2200

	// DefaultOrderNumber sorts records without an explicit position last.
	DefaultOrderNumber = 9999
)

// Product is an immutable catalog entry. Instances are created once per
// successful catalog fetch and replaced wholesale on refetch, never mutated.
type Product struct {
	ID            string
	Name          string
	OrderNumber   int
	Color         string
	Image         string
	Price         float64
	OriginalPrice float64
	IsActive      bool
}

// Discounted reports whether the product carries a real markdown.
func (p Product) Discounted() bool {
	return p.OriginalPrice > p.Price
}

// DiscountPercent returns the rounded markdown percentage, 0 when there is
// no real discount.
func (p Product) DiscountPercent() int {
	if !p.Discounted() {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// SaveAmount returns the absolute markdown, 0 when there is no real discount.
func (p Product) SaveAmount() float64 {
	if !p.Discounted() {
		return 0
	}
	return p.OriginalPrice - p.Price
}

// SortByDisplayOrder returns a new slice ordered ascending by OrderNumber.
// The sort is stable: records sharing an order number keep their fetch order.
// The input slice is left untouched.
func SortByDisplayOrder(products []Product) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderNumber < sorted[j].OrderNumber
	})
	return sorted
}
