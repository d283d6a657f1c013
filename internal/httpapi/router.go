// Package httpapi exposes the storefront core over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	RequestTimeout time.Duration
}

// NewRouter assembles the API surface. Handlers are constructed by the
// caller so tests can wire mocks behind the same routes.
func NewRouter(
	cfg RouterConfig,
	carts *CartHandler,
	checkouts *CheckoutHandler,
	products *CatalogHandler,
	contacts *ContactHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{id}", products.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{product_id}", carts.UpdateQuantity)
			r.Delete("/items/{product_id}", carts.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkouts.Submit)
			r.Delete("/", checkouts.Cancel)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/quick", checkouts.QuickOrder)
			r.Get("/{order_id}", checkouts.Confirmation)
		})

		r.Post("/contact", contacts.Submit)
	})

	return r
}
