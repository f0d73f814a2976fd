// Package pricing implements the cart totals calculation shared by the cart
// store and the checkout handlers.
package pricing

import "github.com/mygiftflora/storefront/internal/domain"

const (
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold = 500.0
	// FlatShippingFee is charged on any non-empty cart below the threshold.
	FlatShippingFee = 50.0
)

// Totals is the full price breakdown for a cart.
type Totals struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

// ItemCount sums the quantities across all lines.
func ItemCount(lines []domain.CartLine) int {
	count := 0
	for _, line := range lines {
		if line.Quantity > 0 {
			count += line.Quantity
		}
	}
	return count
}

// Subtotal sums price times quantity across all lines.
func Subtotal(lines []domain.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		if line.Quantity > 0 {
			total += line.Price * float64(line.Quantity)
		}
	}
	return total
}

// ShippingCost returns the shipping charge for the given subtotal. Empty carts
// ship for nothing, and orders strictly above the free shipping threshold
// qualify for free delivery.
func ShippingCost(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Compute derives the full totals breakdown for the given lines and discount
// amount. The grand total never drops below zero even when the discount
// exceeds the subtotal plus shipping.
func Compute(lines []domain.CartLine, discount float64) Totals {
	if discount < 0 {
		discount = 0
	}

	subtotal := Subtotal(lines)
	shipping := ShippingCost(subtotal)
	total := subtotal - discount + shipping
	if total < 0 {
		total = 0
	}

	return Totals{
		ItemCount: ItemCount(lines),
		Subtotal:  subtotal,
		Discount:  discount,
		Shipping:  shipping,
		Total:     total,
	}
}
