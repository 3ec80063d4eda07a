package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type MessagingMetrics struct {
	messagesPublished metric.Int64Counter
	messageErrors     metric.Int64Counter
	publishDuration   metric.Float64Histogram
}

func NewMessagingMetrics(meter metric.Meter) (*MessagingMetrics, error) {
	mm := &MessagingMetrics{}

	var err error

	mm.messagesPublished, err = meter.Int64Counter(
		"messaging.messages.published",
		metric.WithDescription("Total number of messages published"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	mm.messageErrors, err = meter.Int64Counter(
		"messaging.messages.errors",
		metric.WithDescription("Total number of messages that failed to publish"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	mm.publishDuration, err = meter.Float64Histogram(
		"messaging.publish.duration",
		metric.WithDescription("Time spent publishing a message"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(queryBuckets...),
	)
	if err != nil {
		return nil, err
	}

	return mm, nil
}

// RecordPublish records one publish attempt to the given subject or topic.
func (mm *MessagingMetrics) RecordPublish(ctx context.Context, destination string, duration time.Duration, err error) {
	if mm == nil || mm.messagesPublished == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("destination", destination))

	mm.messagesPublished.Add(ctx, 1, attrs)
	mm.publishDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		mm.messageErrors.Add(ctx, 1, attrs)
	}
}
