package checkout

import (
	"context"
	"sync"
)

// Coordinator hands out the active workflow instance per session. A
// session has at most one live full-cart checkout attempt; quick-order
// attempts are one-shot instances that never register.
type Coordinator struct {
	deps      Deps
	clearCart func(ctx context.Context, sessionID string) error

	mu     sync.Mutex
	active map[string]*Workflow
}

func NewCoordinator(deps Deps, clearCart func(ctx context.Context, sessionID string) error) *Coordinator {
	return &Coordinator{
		deps:      deps,
		clearCart: clearCart,
		active:    make(map[string]*Workflow),
	}
}

// Instance returns the session's live checkout attempt, creating one if
// the previous attempt finished or none exists.
func (c *Coordinator) Instance(sessionID string) *Workflow {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w, ok := c.active[sessionID]; ok && !w.Status().IsTerminal() {
		return w
	}

	w := NewWorkflow(c.deps, func(ctx context.Context) error {
		return c.clearCart(ctx, sessionID)
	})
	c.active[sessionID] = w
	return w
}

// Discard drops the session's live attempt, if any. A submission
// response still in flight for it will be ignored.
func (c *Coordinator) Discard(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w, ok := c.active[sessionID]; ok {
		w.Discard()
		delete(c.active, sessionID)
	}
}

// QuickOrder builds a one-shot instance for the single-product path;
// the cart is left untouched on success.
func (c *Coordinator) QuickOrder() *Workflow {
	return NewWorkflow(c.deps, nil)
}
