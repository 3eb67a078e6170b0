package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/tair/stockledger/pkg/metrics"
)

func TestMiddlewares(t *testing.T) {
	// Setup
	router := mux.NewRouter()
	cfg := DefaultMiddlewareConfig()
	cfg.EnableTracing = false
	RegisterMiddlewares(router, cfg)
	router.HandleFunc("/ok/{id}", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, Response{Success: true})
	}).Methods("GET")
	router.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}).Methods("GET")
	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GET", "/ok/{id}", "200"))

	t.Run("request id and security headers", func(t *testing.T) {
		// Execute
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok/1", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GET", "/ok/{id}", "200")))
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		// Setup
		req := httptest.NewRequest(http.MethodGet, "/ok/2", nil)
		req.Header.Set("X-Request-ID", "abc")

		// Execute
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	})

	t.Run("recovers panics", func(t *testing.T) {
		// Execute
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
