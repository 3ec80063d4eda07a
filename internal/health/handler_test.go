package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedback-service/common/logger"
	"feedback-service/common/metrics"
	"feedback-service/internal/health"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(p health.Pinger, path string) *httptest.ResponseRecorder {
		router := gin.New()
		health.NewHandler(p, metrics.NewMock().Health, logger.Discard()).RegisterRoutes(router)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("Health", func(t *testing.T) {
		w := serve(down, "/health")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("ReadyUp", func(t *testing.T) {
		w := serve(up, "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	t.Run("ReadyDown", func(t *testing.T) {
		w := serve(down, "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
