package pricing

import (
	"testing"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func snapshotWith(items ...domain.CartItem) domain.CartSnapshot {
	return domain.CartSnapshot{Items: items}
}

func TestComputeTotals_WithShipping(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeTotals(snapshotWith(
		domain.CartItem{ProductID: "1", UnitPrice: 470000, Quantity: 1},
	), true, 0)

	assert.Equal(t, int64(470000), result.Subtotal)
	assert.Equal(t, int64(30000), result.Shipping)
	assert.Equal(t, int64(500000), result.Total)
}

func TestComputeTotals_NoDeliverySelected(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeTotals(snapshotWith(
		domain.CartItem{ProductID: "1", UnitPrice: 150000, Quantity: 2},
	), false, 0)

	assert.Equal(t, int64(300000), result.Subtotal)
	assert.Equal(t, int64(0), result.Shipping)
	assert.Equal(t, int64(300000), result.Total)
}

func TestComputeTotals_MultipleLines(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeTotals(snapshotWith(
		domain.CartItem{ProductID: "a", UnitPrice: 100000, Quantity: 2},
		domain.CartItem{ProductID: "b", UnitPrice: 50000, Quantity: 1},
	), true, 0)

	assert.Equal(t, int64(250000), result.Subtotal)
	assert.Equal(t, int64(280000), result.Total)
}

func TestComputeTotals_DiscountApplied(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeTotals(snapshotWith(
		domain.CartItem{ProductID: "1", UnitPrice: 100000, Quantity: 1},
	), true, 20000)

	assert.Equal(t, int64(20000), result.Discount)
	assert.Equal(t, int64(110000), result.Total)
}

func TestComputeTotals_TotalClampedToZero(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeTotals(snapshotWith(
		domain.CartItem{ProductID: "1", UnitPrice: 10000, Quantity: 1},
	), false, 999999)

	assert.Equal(t, int64(0), result.Total)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeTotals(domain.CartSnapshot{}, false, 0)

	assert.Equal(t, int64(0), result.Subtotal)
	assert.Equal(t, int64(0), result.Total)
}

func TestComputeQuickOrder(t *testing.T) {
	e := NewEngine(30000)

	result := e.ComputeQuickOrder(220000, 2, true, 0)

	assert.Equal(t, int64(440000), result.Subtotal)
	assert.Equal(t, int64(30000), result.Shipping)
	assert.Equal(t, int64(470000), result.Total)
}
