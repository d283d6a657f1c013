// Package session binds HTTP sessions to their cart stores. Each
// session owns exactly one cart.Store; the manager serializes access to
// it and write-throughs mutations to the repository with a cache in
// front for session resume.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/cart"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type Manager struct {
	repo  CartRepository
	cache CartCache
	sfg   singleflight.Group // collapses concurrent loads of one session

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu    sync.Mutex
	store *cart.Store
}

func NewManager(repo CartRepository, cache CartCache) *Manager {
	return &Manager{
		repo:    repo,
		cache:   cache,
		entries: make(map[string]*sessionEntry),
	}
}

// NewSessionID mints the opaque identifier carried by the session cookie.
func NewSessionID() string {
	return uuid.NewString()
}

// WithCart runs fn against the session's cart store under the session
// lock, persists the result and returns the post-mutation snapshot.
// Persistence failures are logged, not surfaced: the in-memory store is
// authoritative and the cart must stay usable after a storage hiccup.
func (m *Manager) WithCart(ctx context.Context, sessionID string, fn func(store *cart.Store)) (domain.CartSnapshot, error) {
	entry, err := m.entry(ctx, sessionID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	fn(entry.store)
	snapshot := entry.store.Snapshot()

	m.persist(ctx, sessionID, snapshot)
	return snapshot, nil
}

// Snapshot returns the current cart state without mutating it.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (domain.CartSnapshot, error) {
	entry, err := m.entry(ctx, sessionID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.store.Snapshot(), nil
}

func (m *Manager) entry(ctx context.Context, sessionID string) (*sessionEntry, error) {
	m.mu.Lock()
	if e, ok := m.entries[sessionID]; ok {
		m.mu.Unlock()
		return e, nil
	}
	m.mu.Unlock()

	// Load outside the map lock; singleflight keeps concurrent requests
	// for the same session from hitting storage twice.
	v, err, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		store, err := m.load(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &sessionEntry{store: store}, nil
	})
	if err != nil {
		return nil, err
	}

	loaded := v.(*sessionEntry)

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[sessionID]; ok {
		return e, nil
	}
	m.entries[sessionID] = loaded
	return loaded, nil
}

func (m *Manager) load(ctx context.Context, sessionID string) (*cart.Store, error) {
	cached, err := m.cache.Get(ctx, sessionID)
	if err == nil {
		return cart.Restore(cached.Items), nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("cache get error: %v", err) // log cache error but continue
	}

	persisted, errGet := m.repo.GetCart(ctx, sessionID)
	if errGet != nil {
		if errors.Is(errGet, ErrCartNotFound) {
			return cart.NewStore(), nil // session starts with an empty cart
		}
		return nil, errGet
	}

	go func() {
		if errSet := m.cache.Set(context.Background(), sessionID, persisted); errSet != nil {
			log.Printf("cache set error: %v", errSet)
		}
	}()

	return cart.Restore(persisted.Items), nil
}

// persist writes through the mutated cart and drops the cache entry so
// the next cold load sees fresh state. An empty cart deletes the
// document instead of storing an empty one.
func (m *Manager) persist(ctx context.Context, sessionID string, snapshot domain.CartSnapshot) {
	if len(snapshot.Items) == 0 {
		if err := m.repo.DeleteCart(ctx, sessionID); err != nil && !errors.Is(err, ErrCartNotFound) {
			log.Printf("repo delete cart error: %v", err)
		}
	} else {
		doc := &domain.Cart{SessionID: sessionID, Items: snapshot.Items}
		if err := m.repo.UpsertCart(ctx, doc); err != nil {
			log.Printf("repo upsert cart error: %v", err)
		}
	}

	invalidateCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.cache.Delete(invalidateCtx, sessionID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
