package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/Lelo88/inventory-api-golang/internal/httpx"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Delete("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := requestsTotal.WithLabelValues(http.MethodDelete, "/items/{id}", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodDelete, "/items/"+id, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMiddleware_UnmatchedPathsShareOneLabel(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := requestsTotal.WithLabelValues(http.MethodGet, httpx.UnmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	paths := []string{"/scan-1", "/scan-2", "/.env", "/admin/login"}
	for _, path := range paths {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, before+float64(len(paths)), testutil.ToFloat64(counter))
	for _, path := range paths {
		require.Zero(t, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, path, "404")))
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	requestsTotal.WithLabelValues(http.MethodGet, "/items", "200").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}
