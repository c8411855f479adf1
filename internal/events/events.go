package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"

	"github.com/shareit/shareit-service/internal/model"
)

type Type string

const (
	BookingCreated  Type = "booking_created"
	BookingApproved Type = "booking_approved"
	BookingRejected Type = "booking_rejected"
)

type BookingEvent struct {
	Type      Type                `json:"type"`
	BookingID int64               `json:"bookingId"`
	ItemID    int64               `json:"itemId"`
	BookerID  int64               `json:"bookerId"`
	Status    model.BookingStatus `json:"status"`
	At        time.Time           `json:"at"`
}

// Publisher emits booking lifecycle events. Publishing happens inline
// with the request; failures must not fail the request itself, so the
// caller only logs returned errors.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *KafkaPublisher) Publish(_ context.Context, event BookingEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal booking event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.BookingID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return errors.Wrap(err, "send booking event")
	}
	return nil
}

// Noop is wired when kafka is disabled by config.
type Noop struct{}

func (Noop) Publish(context.Context, BookingEvent) error { return nil }
