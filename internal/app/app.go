package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"feedback-service/common/logger"
	"feedback-service/common/telemetry"
	"feedback-service/internal/admin"
	"feedback-service/internal/config"
	"feedback-service/internal/course"
	"feedback-service/internal/db"
	"feedback-service/internal/feedback"
	"feedback-service/internal/health"
	"feedback-service/internal/kafka"
	"feedback-service/internal/messaging"
	"feedback-service/internal/metrics"
	"feedback-service/internal/student"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Models in creation order; referenced tables first.
func Models() []interface{} {
	return []interface{}{
		(*student.Student)(nil),
		(*admin.Admin)(nil),
		(*course.Course)(nil),
		(*feedback.Feedback)(nil),
	}
}

type App struct {
	config       *config.Config
	server       *http.Server
	grpcServer   *grpc.Server
	healthServer *grpchealth.Server
	db           *bun.DB
	producer     messaging.Producer
	telemetry    *telemetry.Telemetry
	logger       *slog.Logger
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := logger.NewWithServiceContext(ServiceName, Version, logger.Options{
		Env:        cfg.Env,
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	// Set as default logger so slog.Info() uses the same handlers
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application", "env", cfg.Env, "commit", GitCommit, "build_time", BuildTime)

	if cfg.Env != "prod" && cfg.Env != "production" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tel, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    ServiceName,
		ServiceVersion: Version,
		Env:            cfg.Env,
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
	}, slogLogger)
	if err != nil {
		return nil, err
	}

	meter := otel.Meter(ServiceName)
	domainMetrics, err := metrics.New(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize domain metrics: %w", err)
	}

	database, err := db.New(ctx, cfg.Database, slogLogger)
	if err != nil {
		return nil, err
	}

	if err := tel.Metrics.Database.RegisterDB(database.DB, meter); err != nil {
		slogLogger.Warn("failed to register db pool metrics", "error", err)
	}
	if err := tel.Metrics.Health.RegisterDependencies(ctx, meter, health.Dependencies()); err != nil {
		slogLogger.Warn("failed to register dependency metrics", "error", err)
	}

	if err := db.RunMigrations(ctx, database, slogLogger, Models()...); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	producer := newProducer(cfg.Messaging, tel, slogLogger)

	router, err := NewRouter(Dependencies{
		Config:        cfg,
		DB:            database,
		Publisher:     producer,
		Metrics:       tel.Metrics,
		DomainMetrics: domainMetrics,
		Logger:        slogLogger,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	// gRPC health for orchestrator probes
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(tel.Metrics.Grpc.UnaryServerInterceptor()))
	healthServer := grpchealth.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	slogLogger.Info("application initialized successfully")

	return &App{
		config: cfg,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
		grpcServer:   grpcServer,
		healthServer: healthServer,
		db:           database,
		producer:     producer,
		telemetry:    tel,
		logger:       slogLogger,
	}, nil
}

// newProducer falls back to dropping events when the broker is unreachable at startup.
func newProducer(cfg config.MessagingConfig, tel *telemetry.Telemetry, logger *slog.Logger) messaging.Producer {
	switch cfg.Driver {
	case "nats":
		p, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, tel.Metrics.Messaging, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer, events disabled", "error", err)
			return messaging.NoopProducer{}
		}
		return p
	case "kafka":
		p, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, tel.Metrics.Messaging, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer, events disabled", "error", err)
			return messaging.NoopProducer{}
		}
		return p
	default:
		return messaging.NoopProducer{}
	}
}

// Run serves HTTP and gRPC until Shutdown or a listener fails.
func (a *App) Run() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", a.config.Grpc.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("gRPC server starting", "port", a.config.Grpc.Port)
		errCh <- a.grpcServer.Serve(lis)
	}()
	go func() {
		a.logger.Info("server starting", "port", a.config.Server.Port)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	return <-errCh
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	a.healthServer.Shutdown()
	httpErr := a.server.Shutdown(ctx)
	a.grpcServer.GracefulStop()

	if err := a.producer.Close(); err != nil {
		a.logger.Error("producer close error", "error", err)
	}
	db.Close(a.db)

	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		a.logger.Error("telemetry shutdown error", "error", err)
	}
	return httpErr
}
