// Package pricing computes checkout totals from a cart snapshot.
// All computations are pure: no error states, no side effects.
package pricing

import "github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"

// DefaultShippingFee is the flat delivery fee in UZS sums.
const DefaultShippingFee int64 = 30000

// Engine applies one configuration-driven shipping rule: the flat fee
// is charged only when delivery is selected. The cart and quick-order
// checkout paths always select delivery, which keeps their historical
// always-charged behavior.
type Engine struct {
	shippingFee int64
}

func NewEngine(shippingFee int64) *Engine {
	return &Engine{shippingFee: shippingFee}
}

// ComputeTotals derives subtotal/shipping/discount/total from the
// snapshot. Total is clamped to zero so an oversized discount can never
// produce a negative amount.
func (e *Engine) ComputeTotals(snapshot domain.CartSnapshot, deliverySelected bool, discount int64) domain.PricingSnapshot {
	var subtotal int64
	for _, item := range snapshot.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	var shipping int64
	if deliverySelected {
		shipping = e.shippingFee
	}

	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}

	return domain.PricingSnapshot{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}

// ComputeQuickOrder prices a single product line that bypasses the cart.
func (e *Engine) ComputeQuickOrder(unitPrice int64, quantity int, deliverySelected bool, discount int64) domain.PricingSnapshot {
	snapshot := domain.CartSnapshot{
		Items: []domain.CartItem{{UnitPrice: unitPrice, Quantity: quantity}},
	}
	return e.ComputeTotals(snapshot, deliverySelected, discount)
}
