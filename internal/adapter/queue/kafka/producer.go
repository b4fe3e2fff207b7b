// Package kafka publishes analytics metric events to a Kafka-compatible
// broker (Redpanda in deployment).
package kafka

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"

	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// Producer implements domain.MetricSink. Metric events are fire-and-forget
// analytics data, so delivery is best-effort without transactions.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer connects to the given brokers and publishes to topic.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}
	tracing := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer()))
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(5),
		kgo.AllowAutoTopicCreation(),
		kgo.WithHooks(tracing.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=kafka.producer: %w", err)
	}
	slog.Info("metric producer created", slog.Any("brokers", brokers), slog.String("topic", topic))
	return &Producer{client: client, topic: topic}, nil
}

// Publish sends one metric event, keyed by session id so per-session events
// stay ordered within a partition.
func (p *Producer) Publish(ctx domain.Context, ev domain.MetricEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("op=kafka.publish: %w", err)
	}
	rec := &kgo.Record{Topic: p.topic, Key: []byte(ev.SessionID), Value: b}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("op=kafka.publish: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying client.
func (p *Producer) Close() error {
	p.client.Close()
	return nil
}
