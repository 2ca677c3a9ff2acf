package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/adanyl0v/go-task-store/internal/config"
	"github.com/adanyl0v/go-task-store/internal/metrics"
)

func TestRegisterRoutes_Metrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	router := gin.New()
	registerRoutes(router, cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "taskstore_http_request_duration_seconds") {
		t.Fatalf("expected http metrics to be exposed")
	}
}

func TestRegisterRoutes_MetricsDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	registerRoutes(router, &config.Config{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with metrics disabled, got %d", w.Code)
	}
}

func TestNewCORS_Preflight(t *testing.T) {
	handler := newCORS(config.HTTPConfig{AllowedOrigins: []string{"https://example.com"}}).
		Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
	if w.Code == http.StatusTeapot {
		t.Fatalf("expected preflight to be answered by cors")
	}
}

func TestRegisterRoutes_PanicIsRecoveredAndCounted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	router := gin.New()
	registerRoutes(router, cfg)
	router.GET("/explode", func(c *gin.Context) {
		panic("boom")
	})

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id on recovered response")
	}
	if after := testutil.CollectAndCount(metrics.HTTPRequestDuration); after != before+1 {
		t.Fatalf("expected a new series for the panicking route, got %d -> %d", before, after)
	}
}
