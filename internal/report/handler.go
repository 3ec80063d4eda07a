package report

import (
	"log/slog"
	"net/http"

	"feedback-service/common/httputil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes expects router to be behind auth.RequireRole(auth.RoleAdmin).
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/feedback", h.ListAllFeedback)
}

func (h *Handler) ListAllFeedback(c *gin.Context) {
	rows, err := h.service.ListAllFeedback(c.Request.Context())
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, rows)
}
