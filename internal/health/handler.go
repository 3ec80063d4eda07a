package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"feedback-service/common/metrics"

	"github.com/gin-gonic/gin"
)

const (
	dependencyPostgres = "postgres"
	readyTimeout       = 2 * time.Second
)

// Pinger is satisfied by *bun.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	metrics *metrics.HealthMetrics
	logger  *slog.Logger
}

func NewHandler(db Pinger, m *metrics.HealthMetrics, logger *slog.Logger) *Handler {
	return &Handler{
		db:      db,
		metrics: m,
		logger:  logger,
	}
}

// Dependencies lists what Ready checks, for metrics registration.
func Dependencies() []string {
	return []string{dependencyPostgres}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready reports 503 while the database is unreachable.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	h.metrics.RecordDependencyCheck(ctx, dependencyPostgres, time.Since(start), err)

	if err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "dependency", dependencyPostgres, "error", err)
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ready"})
}
