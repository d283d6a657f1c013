package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/catalog"
	"github.com/go-chi/chi/v5"
)

// ProductLister is the listing slice of the catalog client.
type ProductLister interface {
	List(ctx context.Context, filter catalog.Filter) (*catalog.ListResult, error)
}

type CatalogHandler struct {
	lister  ProductLister
	getter  ProductGetter
	timeout time.Duration
}

func NewCatalogHandler(lister ProductLister, getter ProductGetter, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		lister:  lister,
		getter:  getter,
		timeout: timeout,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	filter := catalog.Filter{CategoryID: q.Get("categoryId")}
	if v, err := strconv.ParseInt(q.Get("minPrice"), 10, 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseInt(q.Get("maxPrice"), 10, 64); err == nil {
		filter.MaxPrice = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}

	result, err := h.lister.List(ctx, filter)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.getter.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}
