package feedback

import (
	"log/slog"
	"net/http"

	"feedback-service/common/httputil"
	"feedback-service/internal/auth"

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

// RegisterRoutes expects router to be behind auth.RequireRole(auth.RoleStudent).
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/feedback", h.SubmitFeedback)
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok || id.Role != auth.RoleStudent {
		httputil.RespondWithError(c, http.StatusUnauthorized, "Please log in to continue.")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("failed to decode request", "error", err)
		httputil.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.StudentID = id.ID

	feedbackID, err := h.service.SubmitFeedback(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, SubmitResponse{FeedbackID: feedbackID})
}
