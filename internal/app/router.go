package app

import (
	"log/slog"

	commonmetrics "feedback-service/common/metrics"
	"feedback-service/internal/admin"
	"feedback-service/internal/auth"
	"feedback-service/internal/config"
	"feedback-service/internal/course"
	"feedback-service/internal/feedback"
	"feedback-service/internal/health"
	"feedback-service/internal/logs"
	"feedback-service/internal/metrics"
	"feedback-service/internal/middleware"
	"feedback-service/internal/report"
	"feedback-service/internal/student"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
)

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Config        *config.Config
	DB            *bun.DB
	Publisher     feedback.Publisher
	Metrics       *commonmetrics.Metrics
	DomainMetrics *metrics.Metrics
	Logger        *slog.Logger
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	log := deps.Logger

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	studentRepo := student.NewRepository(deps.DB, deps.Metrics)
	adminRepo := admin.NewRepository(deps.DB, deps.Metrics)
	courseRepo := course.NewRepository(deps.DB, deps.Metrics)
	feedbackRepo := feedback.NewRepository(deps.DB, deps.Metrics)
	reportRepo := report.NewRepository(deps.DB, deps.Metrics)

	authService := auth.NewService(studentRepo, adminRepo, hasher, deps.DomainMetrics, log)
	courseService := course.NewService(courseRepo)
	feedbackService := feedback.NewService(feedbackRepo, deps.Publisher, deps.DomainMetrics, log)
	reportService := report.NewService(reportRepo, deps.DomainMetrics, log)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log), middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	health.NewHandler(deps.DB, deps.Metrics.Health, log).RegisterRoutes(router)

	cookies := auth.CookieOptions{Env: cfg.Env, SingleRole: cfg.Auth.SingleRoleSession}
	authHandler := auth.NewHandler(authService, tokens, cookies, log)
	authHandler.RegisterRoutes(router)

	// Student area
	api := router.Group("/api", auth.RequireRole(tokens, auth.RoleStudent, log))
	authHandler.RegisterStudentRoutes(api)
	course.NewHandler(courseService, log).RegisterRoutes(api)
	feedback.NewHandler(feedbackService, log).RegisterRoutes(api)

	// Admin area; /admin/login is registered above without the gate.
	adminArea := router.Group("/admin", auth.RequireRole(tokens, auth.RoleAdmin, log))
	report.NewHandler(reportService, log).RegisterRoutes(adminArea)
	logs.NewHandler(cfg.Log.File, deps.DomainMetrics, log).RegisterRoutes(adminArea)

	return router, nil
}
