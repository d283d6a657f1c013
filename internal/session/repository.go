package session

import (
	"context"
	"errors"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists session carts. The in-memory store is
// authoritative for a live session; the repository only has to replay
// the last written state when a session comes back.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}
