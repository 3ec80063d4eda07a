package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"feedback-service/common/metrics"

	"github.com/nats-io/nats.go"
)

// KeyHeader carries the partitioning key on NATS messages.
const KeyHeader = "Feedback-Key"

// Producer publishes domain events (NATS/Kafka)
type Producer interface {
	SendMessage(ctx context.Context, key string, value interface{}) error
	Close() error
}

type NATSProducer struct {
	conn    *nats.Conn
	subject string
	metrics *metrics.MessagingMetrics
	logger  *slog.Logger
}

func NewProducer(url string, subject string, m *metrics.MessagingMetrics, logger *slog.Logger) (*NATSProducer, error) {
	nc, err := nats.Connect(url,
		nats.Name("feedback-service"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &NATSProducer{
		conn:    nc,
		subject: subject,
		metrics: m,
		logger:  logger,
	}, nil
}

func (p *NATSProducer) SendMessage(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueBytes, err := json.Marshal(value)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal message", "error", err)
		return err
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = valueBytes
	if key != "" {
		msg.Header.Set(KeyHeader, key)
	}

	start := time.Now()
	err = p.conn.PublishMsg(msg)
	p.metrics.RecordPublish(ctx, p.subject, time.Since(start), err)

	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send message to NATS", "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "message sent to NATS", "subject", p.subject, "key", key)
	return nil
}

func (p *NATSProducer) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NoopProducer drops every message; used when messaging.driver is "none".
type NoopProducer struct{}

func (NoopProducer) SendMessage(context.Context, string, interface{}) error { return nil }

func (NoopProducer) Close() error { return nil }
