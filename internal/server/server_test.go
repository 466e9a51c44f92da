package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"arari/internal/config"
	"arari/internal/service/aggregator"
	"arari/internal/service/calculator"
	memstore "arari/internal/service/store"
)

func newTestServer() *Server {
	cfg := config.DefaultConfig()
	cfg.Server.DevMode = true
	agg := aggregator.New(calculator.NewCalculator(calculator.DefaultRates()), aggregator.DefaultOptions(), nil)
	return NewServer(cfg, memstore.NewMemoryStore(), agg, nil)
}

func TestServer_Healthz(t *testing.T) {
	s := newTestServer()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_NoRoute(t *testing.T) {
	s := newTestServer()

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}
