package shop

import "fmt"

// Subtotal sums the cart lines' total prices. The backend computes each
// line's totalPrice; this is the only client-side arithmetic in the app.
func Subtotal(items []CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.TotalPrice
	}
	return sum
}

// FormatPrice renders an amount the way the storefront displays money.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
