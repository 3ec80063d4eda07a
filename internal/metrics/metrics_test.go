package metrics_test

import (
	"context"
	"testing"

	"feedback-service/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	return totals
}

func TestMetrics_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := metrics.New(provider.Meter("feedback-service"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordStudentRegistration(ctx)
	m.RecordLogin(ctx, "student", true)
	m.RecordLogin(ctx, "admin", false)
	m.RecordLogin(ctx, "student", false)
	m.RecordFeedbackSubmitted(ctx)
	m.RecordDuplicateRejected(ctx)
	m.RecordReportViewed(ctx)
	m.RecordLogDownloaded(ctx)

	totals := collect(t, reader)
	assert.Equal(t, int64(1), totals["feedback_service.students.registered"])
	assert.Equal(t, int64(1), totals["feedback_service.logins.succeeded"])
	assert.Equal(t, int64(2), totals["feedback_service.logins.failed"])
	assert.Equal(t, int64(1), totals["feedback_service.feedback.submitted"])
	assert.Equal(t, int64(1), totals["feedback_service.feedback.duplicates_rejected"])
	assert.Equal(t, int64(1), totals["feedback_service.reports.viewed"])
	assert.Equal(t, int64(1), totals["feedback_service.logs.downloaded"])
}

func TestMetrics_NilAndMockAreNoops(t *testing.T) {
	ctx := context.Background()
	var nilMetrics *metrics.Metrics

	assert.NotPanics(t, func() {
		nilMetrics.RecordFeedbackSubmitted(ctx)
		nilMetrics.RecordLogin(ctx, "student", true)
		metrics.NewMock().RecordDuplicateRejected(ctx)
		metrics.NewMock().RecordLogin(ctx, "admin", false)
	})
}
