package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SendsFilterParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ListResult{
			Items: []domain.Product{{ID: "1", Name: map[string]string{"uz": "Quti"}, Price: 150000, InStock: true}},
			Pages: 3,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	result, err := c.List(context.Background(), Filter{
		CategoryID: "boxes",
		MinPrice:   100000,
		Page:       2,
		Limit:      12,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Pages)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Quti", result.Items[0].Name["uz"])

	assert.Contains(t, gotQuery, "categoryId=boxes")
	assert.Contains(t, gotQuery, "minPrice=100000")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=12")
	assert.NotContains(t, gotQuery, "maxPrice")
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.List(context.Background(), Filter{})
	assert.Error(t, err)
}

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Product{
			ID:      "42",
			Name:    map[string]string{"uz": "Yozuv taxta", "en": "Wall Sign"},
			Price:   220000,
			InStock: true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	p, err := c.Get(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, int64(220000), p.Price)
	assert.Equal(t, "Wall Sign", p.LocalizedName("en"))
	assert.Equal(t, "Yozuv taxta", p.LocalizedName("ru")) // falls back to uz
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGet_ConcurrentLookupsCollapse(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		json.NewEncoder(w).Encode(domain.Product{ID: "1", Price: 100})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.Get(context.Background(), "1")
			assert.NoError(t, err)
			assert.Equal(t, "1", p.ID)
		}()
	}

	// Give the goroutines time to pile onto the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
