package events

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
)

func newMockPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	mp := mocks.NewSyncProducer(t, cfg)
	zl := zerolog.New(io.Discard)
	return newWithProducer(mp, "scene-events", &zl), mp
}

func validEvent() Event {
	return Event{
		Version: 1,
		Op:      OpLayerCreated,
		Scene:   "scene-1",
		Layer:   "pts",
		Format:  "csv",
		TS:      time.Now(),
	}
}

func TestPublish_SendsKeyedJSON(t *testing.T) {
	p, mp := newMockPublisher(t)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(b []byte) error {
		var e Event
		return json.Unmarshal(b, &e)
	})

	if err := p.Publish(context.Background(), validEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPublish_ValidatesFirst(t *testing.T) {
	p, _ := newMockPublisher(t)

	e := validEvent()
	e.Scene = ""
	if err := p.Publish(context.Background(), e); err == nil {
		t.Fatal("expected validation error")
	}

	e = validEvent()
	e.Op = "layer.deleted"
	if err := p.Publish(context.Background(), e); err == nil {
		t.Fatal("expected validation error for op")
	}
}

func TestPublish_BrokerErrorSurfaces(t *testing.T) {
	p, mp := newMockPublisher(t)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := p.Publish(context.Background(), validEvent()); err == nil {
		t.Fatal("expected publish error")
	}
}
