package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

// IncidentCache определяет контракт кэша инцидентов.
// Каждая инвалидация увеличивает версию инцидента. SetIncidentCache записывает значение,
// только если версия не изменилась с момента IncidentCacheVersion.
type IncidentCache interface {
	GetIncidentFromCache(ctx context.Context, id int64) (*models.Incident, error)
	IncidentCacheVersion(ctx context.Context, id int64) (int64, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident, version int64) error
	InvalidateIncidentCache(ctx context.Context, id int64) error
}

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	ListActive(ctx context.Context, skip, limit int) ([]*models.Incident, error)
	ListAllActive(ctx context.Context) ([]*models.Incident, error)
	FindActiveNear(ctx context.Context, lat, lon, radiusMeters float64, hazardType *string) ([]*models.Incident, error)
	Deactivate(ctx context.Context, id int64) error
	IncidentCache
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	GetIncident(ctx context.Context, id int64) (*models.Incident, error)
	ListIncidents(ctx context.Context, skip, limit int) ([]*models.Incident, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, hazardType *string) ([]*models.Incident, error)
	DeactivateIncident(ctx context.Context, id int64) error
}

type incidentService struct {
	repo    IncidentRepository
	reports ReportRepository
	radius  float64
	logger  *logrus.Logger
}

func NewIncidentService(repo IncidentRepository, reports ReportRepository, radiusMeters float64, logger *logrus.Logger) IncidentService {
	if radiusMeters <= 0 {
		radiusMeters = DefaultClusterRadiusMeters
	}
	return &incidentService{
		repo:    repo,
		reports: reports,
		radius:  radiusMeters,
		logger:  logger,
	}
}

// GetIncident получает инцидент по ID вместе с его сообщениями. Сначала проверяется кэш.
func (s *incidentService) GetIncident(ctx context.Context, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Debug("Fetching incident by ID")

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		// Ошибка кэша не мешает чтению из бд
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	// версию читаем до бд: инвалидация после этого момента отменит запись в кэш
	version, versionErr := s.repo.IncidentCacheVersion(ctx, id)
	if versionErr != nil {
		log.WithError(versionErr).Warn("Failed to read incident cache version")
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident %d: %w", id, err)
	}

	reports, err := s.reports.ListByIncident(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list incident reports")
		return nil, fmt.Errorf("service: could not list reports of incident %d: %w", id, err)
	}
	incident.Reports = reports

	if versionErr == nil {
		if err := s.repo.SetIncidentCache(ctx, incident, version); err != nil {
			log.WithError(err).Warn("Failed to cache incident")
		}
	}

	log.Debug("Incident fetched successfully")
	return incident, nil
}

// ListIncidents возвращает активные инциденты с пагинацией
func (s *incidentService) ListIncidents(ctx context.Context, skip, limit int) ([]*models.Incident, error) {
	skip, limit = normalizePage(skip, limit)

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"skip":    skip,
		"limit":   limit,
	})

	incidents, err := s.repo.ListActive(ctx, skip, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Debug("Incidents listed successfully")
	return incidents, nil
}

// FindNearby находит активные инциденты в радиусе от точки
func (s *incidentService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, hazardType *string) ([]*models.Incident, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	if radiusMeters <= 0 {
		radiusMeters = s.radius
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "FindNearby",
		"radius":  radiusMeters,
	})

	incidents, err := s.repo.FindActiveNear(ctx, lat, lon, radiusMeters, hazardType)
	if err != nil {
		log.WithError(err).Error("Failed to find active incidents by location")
		return nil, fmt.Errorf("service: failed to find active incidents: %w", err)
	}
	log.WithField("count", len(incidents)).Debug("Nearby incidents found")
	return incidents, nil
}

// DeactivateIncident деактивирует инцидент. Это административное действие, обратного перехода нет.
func (s *incidentService) DeactivateIncident(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeactivateIncident",
		"incident_id": id,
	})
	log.Info("Attempting to deactivate incident")

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Attempted to deactivate a non-existent incident")
		} else {
			log.WithError(err).Error("Failed to deactivate incident in repository")
		}
		return fmt.Errorf("service: could not deactivate incident %d: %w", id, err)
	}

	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log.Info("Incident deactivated successfully")
	return nil
}

// normalizePage приводит параметры пагинации к допустимым значениям
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	return skip, limit
}
