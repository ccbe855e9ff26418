package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obstetra/fetal-health-service/internal/api/middleware"
)

type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := c.store[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.store[key] = value
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

func TestCacheMiddleware_CachesStaticRoutes(t *testing.T) {
	cache := newMemoryCache()
	fetches := 0
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetches++
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true}`))
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/sample", nil))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, fetches)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/sample", nil))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, `{"ok":true}`, w.Body.String())
}

func TestCacheMiddleware_NeverCachesPredictions(t *testing.T) {
	cache := newMemoryCache()
	fetches := 0
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetches++
			w.Write([]byte(`{"prediction":"NORMAL"}`))
		}),
	)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/predict", nil))
		assert.Empty(t, w.Header().Get("X-Cache"))
	}

	assert.Equal(t, 2, fetches)
	assert.Empty(t, cache.store)
}

func TestCacheMiddleware_SkipsErrorResponses(t *testing.T) {
	cache := newMemoryCache()
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/features", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, cache.store)
}
