// Package checkout runs the order-submission workflow: validate the
// draft, submit to the order service, and settle in SUCCESS or back in
// FORM. One Workflow value is one checkout attempt.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/orders"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/pricing"
	"github.com/Abdulla-1107/lazermarkaz-backend/internal/validation"
)

var (
	// ErrSubmissionInFlight marks a re-entrant submit while PROCESSING.
	// Exactly one order-service call per in-flight submission.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrInstanceDiscarded  = errors.New("workflow instance discarded")
	ErrIllegalTransition  = errors.New("illegal transition of submission status")
)

// ValidationError carries the per-field rejections of a failed submit.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("order form invalid: %d field(s) rejected", len(e.Fields))
}

// OrderSubmitter is the slice of the order service client the workflow
// uses.
type OrderSubmitter interface {
	Submit(ctx context.Context, order orders.SubmitRequest) (*orders.SubmitResponse, error)
}

// ConfirmationArchiver stores the confirmed order for the confirmation
// view. Archiving is best effort: the order already exists upstream.
type ConfirmationArchiver interface {
	Archive(ctx context.Context, order *domain.Order) error
}

// EventPublisher announces confirmed orders downstream.
type EventPublisher interface {
	OrderConfirmed(ctx context.Context, order *domain.Order) error
}

// Deps are the collaborators a workflow instance needs. Archive and
// Events may be nil; ClearCart is set only on the full-cart path.
type Deps struct {
	Submitter OrderSubmitter
	Pricing   *pricing.Engine
	Archive   ConfirmationArchiver
	Events    EventPublisher
	Timeout   time.Duration
}

// Result is the outcome of a successful submission.
type Result struct {
	OrderID string                 `json:"order_id"`
	Pricing domain.PricingSnapshot `json:"pricing"`
}

type Workflow struct {
	deps      Deps
	clearCart func(ctx context.Context) error // nil on the quick-order path

	mu        sync.Mutex
	status    Status
	fieldErrs validation.Errors
	orderID   string
	discarded bool
}

func NewWorkflow(deps Deps, clearCart func(ctx context.Context) error) *Workflow {
	if deps.Timeout <= 0 {
		deps.Timeout = 15 * time.Second
	}
	return &Workflow{
		deps:      deps,
		clearCart: clearCart,
		status:    StatusForm,
	}
}

func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// FieldErrors returns the rejections of the last failed submit attempt.
func (w *Workflow) FieldErrors() validation.Errors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fieldErrs
}

func (w *Workflow) OrderID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orderID
}

// Discard drops the instance. A submission response that arrives after
// Discard is silently ignored; no state of the discarded instance
// changes and the cart is left untouched.
func (w *Workflow) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.discarded = true
}

// Submit drives one submission attempt against the given cart snapshot.
// Validation failure keeps FORM and returns a *ValidationError; a
// service failure reverts PROCESSING → FORM and returns the wrapped
// cause; success settles in SUCCESS with the captured order id.
func (w *Workflow) Submit(ctx context.Context, draft domain.OrderDraft, snapshot domain.CartSnapshot) (*Result, error) {
	w.mu.Lock()
	if w.discarded {
		w.mu.Unlock()
		return nil, ErrInstanceDiscarded
	}
	if w.status == StatusProcessing {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	errs := validation.ValidateOrderDraft(draft)
	if !errs.Valid() {
		w.fieldErrs = errs
		w.mu.Unlock()
		return nil, &ValidationError{Fields: errs}
	}

	if !CanTransitionTo(w.status, StatusProcessing) {
		w.mu.Unlock()
		return nil, ErrIllegalTransition
	}
	w.status = StatusProcessing
	w.fieldErrs = nil
	w.mu.Unlock()

	totals := w.deps.Pricing.ComputeTotals(snapshot, true, 0)
	request := buildRequest(draft, snapshot, totals.Total)

	callCtx, cancel := context.WithTimeout(ctx, w.deps.Timeout)
	resp, submitErr := w.deps.Submitter.Submit(callCtx, request)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()

	// The response belongs to this instance; if the instance was
	// discarded while the call was in flight, drop it on the floor.
	if w.discarded {
		return nil, ErrInstanceDiscarded
	}

	if submitErr != nil {
		w.status = StatusForm
		return nil, fmt.Errorf("order submission failed: %w", submitErr)
	}

	w.status = StatusSuccess
	w.orderID = resp.OrderID

	order := confirmedOrder(resp.OrderID, draft, snapshot, totals.Total)
	w.settle(ctx, order)

	return &Result{OrderID: resp.OrderID, Pricing: totals}, nil
}

// settle applies the success side effects: clear the cart (full-cart
// path only), archive the confirmation and publish the event. All best
// effort, the order is already confirmed upstream.
func (w *Workflow) settle(ctx context.Context, order *domain.Order) {
	if w.clearCart != nil {
		if err := w.clearCart(ctx); err != nil {
			log.Printf("clear cart after order %s: %v", order.ID, err)
		}
	}
	if w.deps.Archive != nil {
		if err := w.deps.Archive.Archive(ctx, order); err != nil {
			log.Printf("archive order %s: %v", order.ID, err)
		}
	}
	if w.deps.Events != nil {
		if err := w.deps.Events.OrderConfirmed(ctx, order); err != nil {
			log.Printf("publish order %s: %v", order.ID, err)
		}
	}
}

func buildRequest(draft domain.OrderDraft, snapshot domain.CartSnapshot, total int64) orders.SubmitRequest {
	items := make([]orders.SubmitItem, len(snapshot.Items))
	for i, item := range snapshot.Items {
		items[i] = orders.SubmitItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return orders.SubmitRequest{
		FullName:      draft.FullName,
		Phone:         draft.Phone,
		Address:       draft.Address,
		Email:         draft.Email,
		AcceptedTerms: draft.AcceptTerms,
		TotalPrice:    total,
		Items:         items,
	}
}

func confirmedOrder(orderID string, draft domain.OrderDraft, snapshot domain.CartSnapshot, total int64) *domain.Order {
	return &domain.Order{
		ID:         orderID,
		Items:      snapshot.Items,
		TotalPrice: total,
		FullName:   draft.FullName,
		Phone:      draft.Phone,
		Email:      draft.Email,
		Address:    draft.Address,
		City:       draft.City,
		CreatedAt:  time.Now(),
	}
}
