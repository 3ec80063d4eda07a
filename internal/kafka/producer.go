package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"feedback-service/common/metrics"

	"github.com/IBM/sarama"
)

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.MessagingMetrics
	logger   *slog.Logger
}

func NewConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "feedback-service"
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	return config
}

func NewProducer(brokers []string, topic string, m *metrics.MessagingMetrics, logger *slog.Logger) (*Producer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewConfig())
	if err != nil {
		return nil, err
	}

	logger.Info("kafka producer initialized", "brokers", brokers, "topic", topic)
	return NewProducerWith(producer, topic, m, logger), nil
}

// NewProducerWith wraps an existing SyncProducer, e.g. sarama/mocks in tests.
func NewProducerWith(producer sarama.SyncProducer, topic string, m *metrics.MessagingMetrics, logger *slog.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		metrics:  m,
		logger:   logger,
	}
}

// SendMessage keys the record so one student's events stay on one partition.
func (p *Producer) SendMessage(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueBytes, err := json.Marshal(value)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal message", "error", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(valueBytes),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	p.metrics.RecordPublish(ctx, p.topic, time.Since(start), err)

	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send message to kafka", "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "message sent to kafka", "topic", p.topic, "partition", partition, "offset", offset, "key", key)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
