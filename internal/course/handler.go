package course

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

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/courses", h.ListCourses)
}

// ListCourses backs the course picker of the feedback form.
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, courses)
}
