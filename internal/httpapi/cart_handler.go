package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/cart"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/catalog"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/session"
	"github.com/go-chi/chi/v5"
)

// ProductGetter is the slice of the catalog client the cart handler
// needs to resolve product ids into priced lines.
type ProductGetter interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CartHandler struct {
	sessions *session.Manager
	catalog  ProductGetter
	timeout  time.Duration
}

func NewCartHandler(sessions *session.Manager, catalog ProductGetter, timeout time.Duration) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalog,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID     string                `json:"product_id"`
	Quantity      int                   `json:"quantity"`
	Customization *domain.Customization `json:"customization,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot, err := h.sessions.Snapshot(ctx, sessionIDFromContext(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	// Resolve the product so the line carries a server-side price, not
	// whatever the client claims.
	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to look up product")
		return
	}
	if !product.InStock {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}

	item := domain.CartItem{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.Price,
		ImageURL:      product.ImageURL,
		Quantity:      req.Quantity,
		Customization: req.Customization,
	}

	snapshot, err := h.sessions.WithCart(ctx, sessionIDFromContext(r.Context()), func(s *cart.Store) {
		s.AddItem(item)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusCreated, snapshot)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero and negative quantities remove the line.
	snapshot, err := h.sessions.WithCart(ctx, sessionIDFromContext(r.Context()), func(s *cart.Store) {
		s.UpdateQuantity(productID, req.Quantity)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	snapshot, err := h.sessions.WithCart(ctx, sessionIDFromContext(r.Context()), func(s *cart.Store) {
		s.RemoveItem(productID)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot, err := h.sessions.WithCart(ctx, sessionIDFromContext(r.Context()), func(s *cart.Store) {
		s.Clear()
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}
