package session

import (
	"context"
	"errors"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// CartCache sits in front of the repository for session resume.
type CartCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
