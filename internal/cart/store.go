// Package cart implements the per-session cart store. A Store is owned
// by exactly one session and passed by handle to its consumers; it is
// not safe for concurrent callers. The session manager serializes
// access to it.
package cart

import "github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"

// Store owns the cart line items of one session. Lines keep insertion
// order and are unique by product ID. Every mutation is atomic and
// self-contained, so no rollback is ever needed.
type Store struct {
	items []domain.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Restore builds a store from persisted lines, dropping any line whose
// quantity degraded to zero or below.
func Restore(items []domain.CartItem) *Store {
	s := &Store{items: make([]domain.CartItem, 0, len(items))}
	for _, item := range items {
		if item.Quantity > 0 {
			s.items = append(s.items, item)
		}
	}
	return s
}

// AddItem merges into an existing line with the same product ID by
// incrementing its quantity, otherwise appends a new line. A repeat-add
// keeps the line's original customization; this matches the storefront
// behavior of merging by product ID alone.
func (s *Store) AddItem(item domain.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			return
		}
	}
	s.items = append(s.items, item)
}

// UpdateQuantity sets the line's quantity; a quantity of zero or below
// removes the line. Absent product IDs are a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		return
	}
}

// RemoveItem deletes the line if present, no-op otherwise.
func (s *Store) RemoveItem(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Invoked after a successful full-cart order.
func (s *Store) Clear() {
	s.items = nil
}

// ItemCount is the sum of line quantities, recomputed on every call.
func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subtotal is Σ(unitPrice × quantity) over the lines.
func (s *Store) Subtotal() int64 {
	var subtotal int64
	for _, item := range s.items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}

func (s *Store) IsEmpty() bool {
	return len(s.items) == 0
}

// Snapshot returns an immutable copy of the lines plus derived totals,
// suitable for pricing, checkout and persistence.
func (s *Store) Snapshot() domain.CartSnapshot {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return domain.CartSnapshot{
		Items:     items,
		ItemCount: s.ItemCount(),
		Subtotal:  s.Subtotal(),
	}
}
