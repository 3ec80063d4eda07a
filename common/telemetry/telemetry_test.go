package telemetry_test

import (
	"context"
	"testing"
	"time"

	"feedback-service/common/logger"
	"feedback-service/common/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()
	tel, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName:    "feedback-service",
		ServiceVersion: "test",
		Env:            "unittest",
	}, logger.Discard())
	require.NoError(t, err)

	assert.Nil(t, tel.MeterProvider)
	require.NotNil(t, tel.Metrics)

	// Instruments on the no-op provider accept records.
	tel.Metrics.Database.RecordQuery(ctx, "select", "feedback", time.Millisecond, nil)
	assert.NoError(t, tel.Shutdown(ctx, logger.Discard()))
}
