package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/samjsmart/gig-int-garden-api/internal/http/handlers"
)

func TestNewServerRoutesAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(RouterConfig{
		HealthHandler: httpH.NewHealthHandler(),
	})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestNewServerOmitsUnconfiguredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer(RouterConfig{})

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unwired route should 404, got %d", w.Code)
	}
}
