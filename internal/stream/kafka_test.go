package stream

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 10, 1, 15, 10, 0, 0, time.UTC)
	event := models.Event{Type: models.EventIncidentUpdated, Data: &models.Incident{ID: 12, WitnessCount: 3}, Escalated: true}

	msg, err := serializeToMessage(event, now)
	require.NoError(t, err)

	assert.Equal(t, []byte("incident-12"), msg.Key)
	assert.Contains(t, string(msg.Value), `"type":"incident_updated"`)
	assert.Contains(t, string(msg.Value), `"witness_count":3`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("incident_updated"), msg.Headers[0].Value)
	assert.Equal(t, []byte("true"), msg.Headers[1].Value)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestEventKey(t *testing.T) {
	incidentID := int64(4)
	assert.Equal(t, []byte("incident-4"), eventKey(models.Event{Data: &models.Report{ID: 9, IncidentID: &incidentID}}))
	assert.Equal(t, []byte("report-9"), eventKey(models.Event{Data: &models.Report{ID: 9}}))
	assert.Nil(t, eventKey(models.Event{Data: "other"}))
}

func TestWriter_Publish(t *testing.T) {
	rec := &recordingWriter{}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	w := &Writer{writer: rec, clock: clockwork.NewFakeClock(), logger: logger}

	require.NoError(t, w.Publish(context.Background(), models.Event{Type: models.EventNewReport, Data: &models.Report{ID: 1}}))
	require.Len(t, rec.messages, 1)
	assert.Equal(t, []byte("report-1"), rec.messages[0].Key)

	rec.err = errors.New("broker down")
	assert.Error(t, w.Publish(context.Background(), models.Event{Type: models.EventNewReport, Data: &models.Report{ID: 2}}))

	require.NoError(t, w.Close())
	assert.True(t, rec.closed)
}
