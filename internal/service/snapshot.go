package service

import (
	"context"
	"fmt"

	"github.com/shenikar/crisisflow/internal/models"
)

// DefaultSnapshotReports - сколько последних сообщений получает новый наблюдатель
const DefaultSnapshotReports = 50

// SnapshotService собирает начальное состояние для нового наблюдателя
type SnapshotService struct {
	reports   ReportRepository
	incidents IncidentRepository
	limit     int
}

func NewSnapshotService(reports ReportRepository, incidents IncidentRepository, limit int) *SnapshotService {
	if limit <= 0 {
		limit = DefaultSnapshotReports
	}
	return &SnapshotService{reports: reports, incidents: incidents, limit: limit}
}

// Snapshot возвращает последние сообщения и все активные инциденты
func (s *SnapshotService) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	reports, err := s.reports.ListRecent(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("service: could not load recent reports: %w", err)
	}
	incidents, err := s.incidents.ListAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not load active incidents: %w", err)
	}
	return &models.Snapshot{
		Type:      models.EventInitialData,
		Reports:   reports,
		Incidents: incidents,
	}, nil
}
