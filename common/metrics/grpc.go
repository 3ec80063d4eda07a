package metrics

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GrpcMetrics covers the golden signals of the gRPC listener (health probes today).
type GrpcMetrics struct {
	requestDuration metric.Float64Histogram
	requestsTotal   metric.Int64Counter
	errorsTotal     metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

func NewGrpcMetrics(meter metric.Meter) (*GrpcMetrics, error) {
	gm := &GrpcMetrics{}

	var err error

	gm.requestDuration, err = meter.Float64Histogram(
		"grpc.server.request_duration",
		metric.WithDescription("gRPC request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(queryBuckets...),
	)
	if err != nil {
		return nil, err
	}

	gm.requestsTotal, err = meter.Int64Counter(
		"grpc.server.requests_total",
		metric.WithDescription("Total number of gRPC requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	gm.errorsTotal, err = meter.Int64Counter(
		"grpc.server.errors_total",
		metric.WithDescription("Total number of gRPC errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	gm.activeRequests, err = meter.Int64UpDownCounter(
		"grpc.server.active_requests",
		metric.WithDescription("Number of active gRPC requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return gm, nil
}

func (gm *GrpcMetrics) RecordRequest(ctx context.Context, service, method string, duration time.Duration, code codes.Code) {
	if gm == nil || gm.requestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("grpc_service", service),
		attribute.String("grpc_method", method),
		attribute.String("grpc_code", code.String()),
	)

	gm.requestDuration.Record(ctx, duration.Seconds(), attrs)
	gm.requestsTotal.Add(ctx, 1, attrs)
	if code != codes.OK {
		gm.errorsTotal.Add(ctx, 1, attrs)
	}
}

func (gm *GrpcMetrics) track(ctx context.Context, service, method string, delta int64) {
	if gm == nil || gm.activeRequests == nil {
		return
	}
	gm.activeRequests.Add(ctx, delta, metric.WithAttributes(
		attribute.String("grpc_service", service),
		attribute.String("grpc_method", method),
	))
}

// UnaryServerInterceptor returns a gRPC interceptor that records golden signals
func (gm *GrpcMetrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		service, method := splitMethodName(info.FullMethod)

		gm.track(ctx, service, method, 1)
		defer gm.track(ctx, service, method, -1)

		start := time.Now()
		resp, err := handler(ctx, req)

		code := codes.OK
		if err != nil {
			code = status.Code(err)
		}
		gm.RecordRequest(ctx, service, method, time.Since(start), code)

		return resp, err
	}
}

// splitMethodName splits "/package.Service/Method" into service and method
func splitMethodName(fullMethod string) (string, string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[:i], fullMethod[i+1:]
	}
	return "unknown", fullMethod
}
