package domain

import "time"

// Customization holds the optional per-line personalization options
// (engraving text, size/material variant).
type Customization struct {
	Engraving string `json:"engraving,omitempty" bson:"engraving,omitempty"`
	Variant   string `json:"variant,omitempty" bson:"variant,omitempty"`
}

// CartItem is one product line in a session's cart. UnitPrice is in the
// smallest whole currency unit (UZS sums). Quantity is always >= 1 while
// the line exists; a mutation that would drive it to zero removes the
// line instead.
type CartItem struct {
	ProductID     string            `json:"product_id" bson:"product_id"`
	Name          map[string]string `json:"name" bson:"name"`
	UnitPrice     int64             `json:"unit_price" bson:"unit_price"`
	ImageURL      string            `json:"image_url" bson:"image_url"`
	Quantity      int               `json:"quantity" bson:"quantity"`
	Customization *Customization    `json:"customization,omitempty" bson:"customization,omitempty"`
}

// Cart is the persisted shape of a session's cart. Items keep insertion
// order for display; product IDs are unique within Items.
type Cart struct {
	SessionID string     `json:"session_id" bson:"session_id"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// CartSnapshot is an immutable copy of the cart taken for pricing and
// checkout. Derived totals are computed at capture time.
type CartSnapshot struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  int64      `json:"subtotal"`
}
