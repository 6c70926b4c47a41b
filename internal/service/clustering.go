package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/geo"
	"github.com/shenikar/crisisflow/internal/models"
)

//go:generate mockgen -source=clustering.go -destination=mocks/mock_clustering.go -package=mocks

// DefaultClusterRadiusMeters - радиус, в пределах которого сообщения считаются одним инцидентом
const DefaultClusterRadiusMeters = 500.0

// ClusterTx - операции хранилища внутри одной транзакции поиска-или-создания инцидента
type ClusterTx interface {
	// FindActiveCandidates возвращает активные инциденты данного типа с координатами рядом с точкой.
	// Выборка может быть шире радиуса: точная проверка расстояния выполняется движком.
	FindActiveCandidates(ctx context.Context, hazardType string, lat, lon, radiusMeters float64) ([]*models.Incident, error)
	CreateIncident(ctx context.Context, incident *models.Incident) error
	UpdateIncident(ctx context.Context, incident *models.Incident) error
	CreateReport(ctx context.Context, report *models.Report) error
}

// ClusterStore выполняет fn в транзакции, удерживая блокировки на ключах lockKeys.
// Все записи fn фиксируются вместе либо не фиксируются вовсе.
type ClusterStore interface {
	WithinClusterLock(ctx context.Context, lockKeys []string, fn func(tx ClusterTx) error) error
}

// ClusteringEngine решает, присоединить сообщение к активному инциденту или создать новый
type ClusteringEngine struct {
	radius float64
	clock  clockwork.Clock
}

// NewClusteringEngine создает движок кластеризации
func NewClusteringEngine(radiusMeters float64, clock clockwork.Clock) *ClusteringEngine {
	if radiusMeters <= 0 {
		radiusMeters = DefaultClusterRadiusMeters
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ClusteringEngine{radius: radiusMeters, clock: clock}
}

// Radius возвращает радиус кластеризации по умолчанию
func (e *ClusteringEngine) Radius() float64 {
	return e.radius
}

// LockKeys возвращает ключи пространственных ячеек, которые нужно заблокировать
// перед поиском инцидента. Сообщения без координат никогда не объединяются и блокировок не требуют.
func (e *ClusteringEngine) LockKeys(hazardType string, lat, lon *float64) []string {
	if lat == nil || lon == nil {
		return nil
	}
	return geo.Cells(hazardType, *lat, *lon, e.radius)
}

// FindNearbyIncident возвращает активный инцидент того же типа в пределах радиуса.
// Если подходят несколько, выбирается инцидент с наименьшим id. radiusMeters <= 0 означает радиус движка.
func (e *ClusteringEngine) FindNearbyIncident(ctx context.Context, tx ClusterTx, lat, lon *float64, hazardType string, radiusMeters float64) (*models.Incident, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	if radiusMeters <= 0 {
		radiusMeters = e.radius
	}

	candidates, err := tx.FindActiveCandidates(ctx, hazardType, *lat, *lon, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("service: could not load incident candidates: %w", err)
	}

	var best *models.Incident
	for _, candidate := range candidates {
		if !candidate.IsActive || candidate.HazardType == nil || *candidate.HazardType != hazardType {
			continue
		}
		if geo.Distance(candidate.Latitude, candidate.Longitude, lat, lon) > radiusMeters {
			continue
		}
		if best == nil || candidate.ID < best.ID {
			best = candidate
		}
	}
	return best, nil
}

// AttachReport применяет правило слияния к инциденту. Уровень опасности и уверенность только растут.
func (e *ClusteringEngine) AttachReport(incident *models.Incident, fields models.ExtractedFields) {
	incident.WitnessCount++

	if fields.ConfidenceScore != nil {
		if incident.ConfidenceScore == nil || *fields.ConfidenceScore > *incident.ConfidenceScore {
			confidence := *fields.ConfidenceScore
			incident.ConfidenceScore = &confidence
		}
	}

	if fields.Severity != nil && fields.Severity.Rank() > models.SeverityRank(incident.Severity) {
		severity := *fields.Severity
		incident.Severity = &severity
	}

	incident.UpdatedAt = e.clock.Now().UTC()
}

// CreateIncident сохраняет новый инцидент, точкой привязки которого становятся координаты сообщения
func (e *ClusteringEngine) CreateIncident(ctx context.Context, tx ClusterTx, fields models.ExtractedFields) (*models.Incident, error) {
	now := e.clock.Now().UTC()
	incident := &models.Incident{
		Location:        cloneString(fields.Location),
		Latitude:        cloneFloat(fields.Latitude),
		Longitude:       cloneFloat(fields.Longitude),
		HazardType:      cloneString(fields.HazardType),
		Severity:        cloneSeverity(fields.Severity),
		ConfidenceScore: cloneFloat(fields.ConfidenceScore),
		WitnessCount:    1,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := tx.CreateIncident(ctx, incident); err != nil {
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}
	return incident, nil
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneSeverity(v *models.Severity) *models.Severity {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
