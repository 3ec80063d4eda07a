package auth

import (
	"log/slog"
	"net/http"

	"feedback-service/common/httputil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	tokens  *TokenIssuer
	cookies CookieOptions
	logger  *slog.Logger
}

func NewHandler(service *Service, tokens *TokenIssuer, cookies CookieOptions, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		cookies: cookies,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", h.Logout)
	router.POST("/admin/login", h.AdminLogin)
}

// RegisterStudentRoutes expects router to be behind RequireRole(RoleStudent).
func (h *Handler) RegisterStudentRoutes(router gin.IRouter) {
	router.GET("/me", h.Me)
}

// Register creates a new student account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("failed to decode request", "error", err)
		httputil.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusCreated, created)
}

// Login authenticates a student
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("failed to decode request", "error", err)
		httputil.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.AuthenticateStudent(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	h.logger.Info("student logged in", "student_id", id.ID, "email", id.Email)
	h.startSession(c, id)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("failed to decode request", "error", err)
		httputil.RespondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.AuthenticateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	h.logger.Info("admin logged in", "admin_id", id.ID, "username", id.Username)
	h.startSession(c, id)
}

// Me returns the profile of the logged-in student
func (h *Handler) Me(c *gin.Context) {
	id, _ := IdentityFromContext(c.Request.Context())
	st, err := h.service.CurrentStudent(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	httputil.RespondWithJSON(c, http.StatusOK, st)
}

// Logout ends both the student and the admin session
func (h *Handler) Logout(c *gin.Context) {
	ClearAuthCookie(c, h.cookies, RoleStudent)
	ClearAuthCookie(c, h.cookies, RoleAdmin)

	h.logger.Info("session cleared")
	c.Status(http.StatusNoContent)
}

func (h *Handler) startSession(c *gin.Context, id *Identity) {
	token, expiresAt, err := h.tokens.Issue(id)
	if err != nil {
		httputil.RespondWithServiceError(c, h.logger, err)
		return
	}

	if h.cookies.SingleRole {
		other := RoleAdmin
		if id.Role == RoleAdmin {
			other = RoleStudent
		}
		ClearAuthCookie(c, h.cookies, other)
	}
	SetAuthCookie(c, h.cookies, id.Role, token, h.tokens.TTL())

	httputil.RespondWithJSON(c, http.StatusOK, SessionResponse{
		Identity:  id,
		ExpiresAt: expiresAt.Unix(),
	})
}
