package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/catalog"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/checkout"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/orders"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/session"
	"github.com/go-chi/chi/v5"
)

// ConfirmationFetcher backs the confirmation view.
type ConfirmationFetcher interface {
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
}

type CheckoutHandler struct {
	sessions      *session.Manager
	coordinator   *checkout.Coordinator
	catalog       ProductGetter
	confirmations ConfirmationFetcher
	timeout       time.Duration
}

func NewCheckoutHandler(
	sessions *session.Manager,
	coordinator *checkout.Coordinator,
	catalog ProductGetter,
	confirmations ConfirmationFetcher,
	timeout time.Duration,
) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:      sessions,
		coordinator:   coordinator,
		catalog:       catalog,
		confirmations: confirmations,
		timeout:       timeout,
	}
}

type QuickOrderRequestDTO struct {
	ProductID     string                `json:"product_id"`
	Quantity      int                   `json:"quantity"`
	Customization *domain.Customization `json:"customization,omitempty"`
	Draft         domain.OrderDraft     `json:"draft"`
}

// Submit runs the full-cart checkout attempt for the session.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var draft domain.OrderDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	snapshot, err := h.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}
	if len(snapshot.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	workflow := h.coordinator.Instance(sessionID)
	result, err := workflow.Submit(ctx, draft, snapshot)
	if err != nil {
		handleWorkflowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Cancel discards the session's live checkout attempt. A submission
// response still in flight is dropped, never applied.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.coordinator.Discard(sessionIDFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// QuickOrder submits a single product without touching the cart.
func (h *CheckoutHandler) QuickOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req QuickOrderRequestDTO
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

	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to look up product")
		return
	}

	snapshot := domain.CartSnapshot{
		Items: []domain.CartItem{{
			ProductID:     product.ID,
			Name:          product.Name,
			UnitPrice:     product.Price,
			ImageURL:      product.ImageURL,
			Quantity:      req.Quantity,
			Customization: req.Customization,
		}},
		ItemCount: req.Quantity,
		Subtotal:  product.Price * int64(req.Quantity),
	}

	result, err := h.coordinator.QuickOrder().Submit(ctx, req.Draft, snapshot)
	if err != nil {
		handleWorkflowError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Confirmation renders the archived order behind the confirmation view.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")
	order, err := h.confirmations.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func handleWorkflowError(w http.ResponseWriter, err error) {
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		fields := make(map[string]string, len(vErr.Fields))
		for field, kind := range vErr.Fields {
			fields[field] = string(kind)
		}
		respondFieldErrors(w, fields)
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, "submission_in_flight", "a submission is already being processed")
	case errors.Is(err, checkout.ErrInstanceDiscarded):
		respondError(w, http.StatusConflict, "checkout_cancelled", "checkout was cancelled")
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "already_completed", "checkout already completed")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "order service timed out")
	default:
		respondError(w, http.StatusBadGateway, "submission_failed", "order submission failed")
	}
}
