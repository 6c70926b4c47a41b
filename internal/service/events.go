package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/sirupsen/logrus"
)

// EventSink - именованный получатель доменных событий
type EventSink struct {
	Name      string
	Publisher EventPublisher
}

type fanoutPublisher struct {
	sinks   []EventSink
	metrics *observability.Metrics
	logger  *logrus.Logger
}

// NewFanoutPublisher рассылает каждое событие во все sinks по порядку.
// Сбой одного получателя не мешает остальным.
func NewFanoutPublisher(logger *logrus.Logger, metrics *observability.Metrics, sinks ...EventSink) EventPublisher {
	return &fanoutPublisher{sinks: sinks, metrics: metrics, logger: logger}
}

func (p *fanoutPublisher) Publish(ctx context.Context, event models.Event) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publisher.Publish(ctx, event); err != nil {
			p.metrics.EventsPublished.WithLabelValues(sink.Name, "error").Inc()
			p.logger.WithFields(logrus.Fields{
				"sink":       sink.Name,
				"event_type": event.Type,
			}).WithError(err).Warn("Failed to publish event")
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
			continue
		}
		p.metrics.EventsPublished.WithLabelValues(sink.Name, "ok").Inc()
	}
	return errors.Join(errs...)
}
