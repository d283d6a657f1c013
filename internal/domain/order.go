package domain

import "time"

type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryPickup  DeliveryMethod = "pickup"
)

func (d DeliveryMethod) IsValid() bool {
	return d == DeliveryCourier || d == DeliveryPickup
}

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

func (p PaymentMethod) IsValid() bool {
	return p == PaymentCard || p == PaymentCash
}

// OrderDraft is the checkout form as the customer fills it in. A fresh
// draft is created each time the checkout surface opens and discarded
// on cancel or success. The payment method is a label only, there is no
// gateway behind it.
type OrderDraft struct {
	FullName       string         `json:"full_name"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Region         string         `json:"region,omitempty"`
	PostalCode     string         `json:"postal_code,omitempty"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	Note           string         `json:"note,omitempty"`
	AcceptTerms    bool           `json:"accept_terms"`
}

// NewOrderDraft returns a draft with the storefront's defaults.
func NewOrderDraft() OrderDraft {
	return OrderDraft{
		DeliveryMethod: DeliveryCourier,
		PaymentMethod:  PaymentCard,
	}
}

// OrderItem is the product reference shape the order service accepts.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order is a confirmed order as returned by the order service, immutable
// once created. ID is the opaque orderId the confirmation view is keyed by.
type Order struct {
	ID         string     `json:"order_id"`
	Items      []CartItem `json:"items"`
	TotalPrice int64      `json:"total_price"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PricingSnapshot is the output of a totals computation. Total is
// clamped to >= 0.
type PricingSnapshot struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}
