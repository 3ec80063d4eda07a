package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feedback-service/common/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultEndpoint = "otel-collector.infra.svc.cluster.local:4317"

type Options struct {
	ServiceName    string
	ServiceVersion string
	Env            string
	// Enabled=false keeps the global no-op meter provider; instruments still work.
	Enabled  bool
	Endpoint string
}

func InitMeterProvider(ctx context.Context, opts Options, logger *slog.Logger) (*metric.MeterProvider, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	logger.Info("initializing OTel metrics", "endpoint", endpoint)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.ServiceVersion),
			semconv.DeploymentEnvironment(opts.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter,
			metric.WithInterval(10*time.Second))),
	)

	otel.SetMeterProvider(meterProvider)
	logger.Info("OTel metrics initialized successfully")

	return meterProvider, nil
}

type Telemetry struct {
	// MeterProvider is nil when telemetry is disabled.
	MeterProvider *metric.MeterProvider
	Metrics       *metrics.Metrics
}

func Init(ctx context.Context, opts Options, logger *slog.Logger) (*Telemetry, error) {
	var meterProvider *metric.MeterProvider
	if opts.Enabled {
		mp, err := InitMeterProvider(ctx, opts, logger)
		if err != nil {
			return nil, err
		}
		meterProvider = mp
	} else {
		logger.Info("OTel metrics export disabled")
	}

	m, err := metrics.New(ctx, opts.ServiceName, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	meter := otel.Meter(opts.ServiceName)
	if err := m.Health.RegisterServiceInfo(ctx, meter, opts.ServiceName, opts.ServiceVersion, opts.Env); err != nil {
		logger.Warn("failed to register service info", "error", err)
	}

	return &Telemetry{
		MeterProvider: meterProvider,
		Metrics:       m,
	}, nil
}

func (t *Telemetry) Shutdown(ctx context.Context, logger *slog.Logger) error {
	if t == nil || t.MeterProvider == nil {
		return nil
	}
	logger.Info("shutting down OTel meter provider")
	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
