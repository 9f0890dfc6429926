package events

import (
	"context"
	"fmt"
	"time"

	"stockstores-be/internal/logger"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// Publisher delivers order events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e OrderEvent) error
	Close()
}

// ProducerClient is the part of *kgo.Client the publisher uses.
type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type KafkaPublisher struct {
	cl    ProducerClient
	topic string
}

// NewKafkaPublisher connects a producer to brokers. Records go to topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return NewKafkaPublisherWithClient(cl, topic), nil
}

func NewKafkaPublisherWithClient(cl ProducerClient, topic string) *KafkaPublisher {
	return &KafkaPublisher{cl: cl, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := Encode(e)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	r := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(e.StoreID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(e.Type)},
		},
	}

	if err := p.cl.ProduceSync(ctx, r).FirstErr(); err != nil {
		return fmt.Errorf("produce order event: %w", err)
	}

	logger.FromCtx(ctx).Debug("order event published",
		zap.String("type", string(e.Type)),
		zap.String("order_id", e.OrderID),
		zap.String("topic", p.topic),
	)
	return nil
}

func (p *KafkaPublisher) Close() {
	logger.L().Info("closing kafka producer")
	p.cl.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

func (NopPublisher) Close() {}
