package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/shenikar/crisisflow/internal/geo"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/sirupsen/logrus"
)

const maxImageBytes = 10 << 20

// ingestOutcome - результат транзакции поиска-или-создания
type ingestOutcome struct {
	report    *models.Report
	incident  *models.Incident
	created   bool
	escalated bool
}

// Ingest принимает сырое сообщение: извлечение полей, геокодирование, кластеризация,
// атомарное сохранение сообщения вместе с привязкой к инциденту и рассылка событий после фиксации.
func (s *reportService) Ingest(ctx context.Context, req IngestRequest) (*models.Report, error) {
	text := strings.TrimSpace(req.RawText)
	if text == "" {
		return nil, fmt.Errorf("%w: raw_text is required", ErrValidation)
	}

	source := req.Source
	if source == "" {
		source = models.SourceWeb
	}
	switch source {
	case models.SourceWeb, models.SourceSMS, models.SourceSocial:
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrValidation, source)
	}

	image, contentType, err := decodeImage(req.ImageBase64)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "Ingest",
		"source":   source,
		"provider": req.Provider,
	})

	var imageKey *string
	if image != nil && s.images != nil {
		key, err := s.images.Save(ctx, image, contentType)
		if err != nil {
			// без изображения сообщение все равно принимается
			log.WithError(err).Warn("Failed to store report image")
		} else {
			imageKey = &key
		}
	}

	fields := normalizeFields(s.extractor.Extract(ctx, req.Provider, text, image))
	if fields.Fallback {
		log.Debug("Extraction served by rule-based fallback")
	}
	if fields.Latitude == nil || fields.Longitude == nil {
		coords := s.geocoder.Resolve(ctx, fields.Location)
		fields.Latitude, fields.Longitude = validCoordinates(coords.Latitude, coords.Longitude)
	}

	base := models.Report{
		RawText:         text,
		Location:        cloneString(fields.Location),
		Latitude:        cloneFloat(fields.Latitude),
		Longitude:       cloneFloat(fields.Longitude),
		HazardType:      cloneString(fields.HazardType),
		Severity:        cloneSeverity(fields.Severity),
		ConfidenceScore: cloneFloat(fields.ConfidenceScore),
		Source:          source,
		ImageKey:        imageKey,
		Timestamp:       s.clock.Now().UTC(),
		UserID:          req.UserID,
	}

	outcome, err := s.clusterAndStore(ctx, base, fields)
	if errors.Is(err, ErrRaceLost) {
		s.metrics.ClusterRetries.Inc()
		log.WithError(err).Info("Incident race lost, retrying find-or-create once")
		outcome, err = s.clusterAndStore(ctx, base, fields)
	}
	if err != nil {
		s.metrics.IngestFailures.Inc()
		log.WithError(err).Error("Failed to persist report")
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("service: could not ingest report: %w", err)
	}

	s.metrics.ReportsIngested.WithLabelValues(source).Inc()
	log = log.WithFields(logrus.Fields{
		"report_id":   outcome.report.ID,
		"incident_id": outcome.incident.ID,
		"created":     outcome.created,
	})

	// дальше только побочные эффекты после фиксации, отмена запроса их не прерывает
	notifyCtx := context.WithoutCancel(ctx)
	if outcome.created {
		s.metrics.IncidentsCreated.Inc()
		s.publish(notifyCtx, log, models.Event{Type: models.EventNewIncident, Data: outcome.incident})
	} else {
		s.metrics.IncidentsAttached.Inc()
		if err := s.cache.InvalidateIncidentCache(notifyCtx, outcome.incident.ID); err != nil {
			log.WithError(err).Warn("Failed to invalidate incident cache")
		}
		s.publish(notifyCtx, log, models.Event{
			Type:      models.EventIncidentUpdated,
			Data:      outcome.incident,
			Escalated: outcome.escalated,
		})
	}
	s.publish(notifyCtx, log, models.Event{Type: models.EventNewReport, Data: outcome.report})

	log.Info("Report ingested")
	return outcome.report, nil
}

// clusterAndStore выполняет поиск-или-создание инцидента и сохранение сообщения в одной транзакции
func (s *reportService) clusterAndStore(ctx context.Context, base models.Report, fields models.ExtractedFields) (*ingestOutcome, error) {
	hazard := models.UnknownHazard
	if fields.HazardType != nil {
		hazard = *fields.HazardType
	}
	keys := s.engine.LockKeys(hazard, fields.Latitude, fields.Longitude)

	var outcome *ingestOutcome
	err := s.store.WithinClusterLock(ctx, keys, func(tx ClusterTx) error {
		result := &ingestOutcome{}
		report := base

		incident, err := s.engine.FindNearbyIncident(ctx, tx, fields.Latitude, fields.Longitude, hazard, 0)
		if err != nil {
			return err
		}

		if incident != nil {
			before := models.SeverityRank(incident.Severity)
			s.engine.AttachReport(incident, fields)
			result.escalated = models.SeverityRank(incident.Severity) > before
			if err := tx.UpdateIncident(ctx, incident); err != nil {
				return fmt.Errorf("service: could not update incident %d: %w", incident.ID, err)
			}
		} else {
			incident, err = s.engine.CreateIncident(ctx, tx, fields)
			if err != nil {
				return err
			}
			result.created = true
		}

		incidentID := incident.ID
		report.IncidentID = &incidentID
		if err := tx.CreateReport(ctx, &report); err != nil {
			return fmt.Errorf("service: could not create report: %w", err)
		}

		result.report = &report
		result.incident = incident
		outcome = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *reportService) publish(ctx context.Context, log *logrus.Entry, event models.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event_type", event.Type).Warn("Some event sinks failed")
	}
}

// normalizeFields приводит результат извлечения к инвариантам: тип опасности всегда задан,
// координаты либо обе и в допустимых пределах, либо ни одной, уверенность в пределах 0..1
func normalizeFields(fields models.ExtractedFields) models.ExtractedFields {
	if fields.HazardType == nil || strings.TrimSpace(*fields.HazardType) == "" {
		hazard := models.UnknownHazard
		fields.HazardType = &hazard
	}
	fields.Latitude, fields.Longitude = validCoordinates(fields.Latitude, fields.Longitude)
	if fields.ConfidenceScore != nil && math.IsNaN(*fields.ConfidenceScore) {
		fields.ConfidenceScore = nil
	}
	if fields.ConfidenceScore != nil {
		c := *fields.ConfidenceScore
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		fields.ConfidenceScore = &c
	}
	if fields.Severity != nil && fields.Severity.Rank() == 0 {
		fields.Severity = nil
	}
	return fields
}

// validCoordinates отбрасывает обе координаты, если одной нет или точка вне WGS-84
func validCoordinates(lat, lon *float64) (*float64, *float64) {
	if lat == nil || lon == nil || !geo.ValidCoordinates(*lat, *lon) {
		return nil, nil
	}
	return lat, lon
}

// decodeImage разбирает base64, в том числе в форме data URL
func decodeImage(encoded string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, "", nil
	}
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("%w: malformed image data URL", ErrValidation)
		}
		encoded = encoded[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("%w: image_base64 is not valid base64: %v", ErrValidation, err)
	}
	if len(data) == 0 {
		return nil, "", nil
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("%w: image exceeds %d bytes", ErrValidation, maxImageBytes)
	}
	return data, http.DetectContentType(data), nil
}
