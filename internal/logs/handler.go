package logs

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"feedback-service/common/httputil"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Handler serves the service's own rotating log file to admins.
type Handler struct {
	path    string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandler(path string, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		path:    path,
		metrics: m,
		logger:  logger,
	}
}

// RegisterRoutes expects router to be behind auth.RequireRole(auth.RoleAdmin).
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/logs", h.Download)
}

func (h *Handler) Download(c *gin.Context) {
	info, err := h.stat()
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	h.metrics.RecordLogDownloaded(c.Request.Context())
	h.logger.InfoContext(c.Request.Context(), "log file downloaded", "file", h.path, "size_bytes", info.Size())
	c.FileAttachment(h.path, filepath.Base(h.path))
}

func (h *Handler) stat() (fs.FileInfo, error) {
	if h.path == "" {
		return nil, apperrors.New(apperrors.ErrLogFileMissing, "Log file not found.")
	}
	info, err := os.Stat(h.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, apperrors.Wrap(apperrors.ErrLogFileMissing, "Log file not found.", err)
	case err != nil:
		return nil, err
	case info.IsDir():
		return nil, apperrors.New(apperrors.ErrLogFileMissing, "Log file not found.")
	}
	return info, nil
}
