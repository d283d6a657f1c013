package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func sampleCart(sessionID string) *domain.Cart {
	return &domain.Cart{
		SessionID: sessionID,
		Items: []domain.CartItem{
			{ProductID: "1", Name: map[string]string{"uz": "Quti"}, UnitPrice: 150000, Quantity: 2},
			{ProductID: "2", UnitPrice: 220000, Quantity: 1,
				Customization: &domain.Customization{Engraving: "Aziza"}},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestRedisCache_GetHit(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	want := sampleCart("sess-1")
	data, err := json.Marshal(want)
	require.NoError(t, err)
	mr.Set(cacheKey("sess-1"), string(data))

	got, err := cache.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, want.SessionID, got.SessionID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Aziza", got.Items[1].Customization.Engraving)
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_GetCorruptPayload(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Set(cacheKey("sess-1"), "{not json")

	_, err := cache.Get(context.Background(), "sess-1")
	assert.Error(t, err)
}

func TestRedisCache_SetRoundTrip(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sess-1", sampleCart("sess-1")))

	got, err := cache.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)

	// TTL must sit within base + jitter bounds.
	ttl := mr.TTL(cacheKey("sess-1"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sess-1", sampleCart("sess-1")))
	require.NoError(t, cache.Delete(ctx, "sess-1"))

	_, err := cache.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_DeleteMissingIsNoError(t *testing.T) {
	cache, _ := setupTestRedis(t)

	assert.NoError(t, cache.Delete(context.Background(), "missing"))
}
