package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/mechgenz/mechgenz-backend/internal/http/handlers"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

func TestServerServesHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	store, err := storage.NewLocalStore(log, t.TempDir(), "")
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	srv := NewServer(RouterConfig{
		Log:           log,
		UploadsDir:    store.Dir(),
		HealthHandler: httpH.NewHealthHandler(nil, store, false),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	srv.Engine.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"status":"healthy"`) {
		t.Fatalf("unexpected health body: %s", body)
	}
	if !strings.Contains(body, `"database":"not_configured"`) {
		t.Fatalf("degraded mode not reported: %s", body)
	}
}
