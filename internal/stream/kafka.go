// Package stream publishes domain events to Kafka for downstream consumers.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

// messageWriter is the subset of kafka-go's Writer used by the sink.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces domain events to a Kafka topic.
// It implements service.EventPublisher.
type Writer struct {
	writer messageWriter
	clock  clockwork.Clock
	logger *logrus.Logger
}

var _ service.EventPublisher = (*Writer)(nil)

// NewWriter creates an asynchronous Kafka producer. Delivery failures are
// reported through the logger rather than blocking the ingestion path.
func NewWriter(brokers []string, topic string, logger *logrus.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				logger.WithError(err).WithField("messages", len(messages)).Warn("Failed to deliver events to Kafka")
			}
		},
	}
	return &Writer{writer: w, clock: clockwork.NewRealClock(), logger: logger}
}

// Publish serializes and enqueues a single event.
func (w *Writer) Publish(ctx context.Context, event models.Event) error {
	msg, err := serializeToMessage(event, w.clock.Now().UTC())
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an event into a Kafka message keyed by the
// incident id, so every update of one incident lands in one partition.
func serializeToMessage(event models.Event, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s event: %w", event.Type, err)
	}
	return kafkago.Message{
		Key:   eventKey(event),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "escalated", Value: []byte(strconv.FormatBool(event.Escalated))},
			{Key: "published_at", Value: []byte(publishedAt.Format(time.RFC3339))},
		},
	}, nil
}

func eventKey(event models.Event) []byte {
	switch v := event.Data.(type) {
	case *models.Incident:
		return []byte("incident-" + strconv.FormatInt(v.ID, 10))
	case *models.Report:
		if v.IncidentID != nil {
			return []byte("incident-" + strconv.FormatInt(*v.IncidentID, 10))
		}
		return []byte("report-" + strconv.FormatInt(v.ID, 10))
	}
	return nil
}
