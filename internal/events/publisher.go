package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/atlascene/layer-composer/internal/logger"
	"github.com/atlascene/layer-composer/internal/observability"
)

// Publisher writes scene events to Kafka. Publishing is best effort at the
// call site: the HTTP handler logs a failed publish and still reports the
// submission as successful.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zerolog.Logger
}

func NewPublisher(brokers, topic string, log *zerolog.Logger) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	var bs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			bs = append(bs, b)
		}
	}
	p, err := sarama.NewSyncProducer(bs, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &Publisher{producer: p, topic: topic, log: log}, nil
}

// newWithProducer is the seam for tests.
func newWithProducer(p sarama.SyncProducer, topic string, log *zerolog.Logger) *Publisher {
	return &Publisher{producer: p, topic: topic, log: log}
}

func (p *Publisher) Publish(ctx context.Context, e Event) error {
	if err := e.Validate(); err != nil {
		observability.IncSceneEvent("invalid")
		return fmt.Errorf("invalid event: %w", err)
	}
	b, err := json.Marshal(e)
	if err != nil {
		observability.IncSceneEvent("invalid")
		return fmt.Errorf("encode event: %w", err)
	}

	// keyed by scene so per-scene ordering holds
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.Scene),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		observability.IncSceneEvent("error")
		return fmt.Errorf("publish event: %w", err)
	}
	observability.IncSceneEvent("ok")
	logger.FromContext(ctx, p.log).Debug().
		Int32("partition", partition).
		Int64("offset", offset).
		Str("op", e.Op).
		Int("cells", len(e.H3Cells)).
		Msg("scene event published")
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
