package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

// AnalyticsRepository - выборки только для чтения для аналитики
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) service.AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// ReportsSince возвращает сообщения начиная с since, опционально одного типа опасности
func (r *AnalyticsRepository) ReportsSince(ctx context.Context, since time.Time, hazardType *string) ([]*models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE timestamp >= $1 AND ($2::text IS NULL OR hazard_type = $2)
		ORDER BY timestamp;
	`
	rows, err := r.db.Query(ctx, query, since, hazardType)
	if err != nil {
		return nil, storeError("reports since", err)
	}
	reports, err := collectReports(rows)
	if err != nil {
		return nil, storeError("scan reports since", err)
	}
	return reports, nil
}

// IncidentsSince возвращает инциденты, созданные начиная с since
func (r *AnalyticsRepository) IncidentsSince(ctx context.Context, since time.Time) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE created_at >= $1
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, storeError("incidents since", err)
	}
	incidents, err := collectIncidents(rows)
	if err != nil {
		return nil, storeError("scan incidents since", err)
	}
	return incidents, nil
}

// ResourcesSince возвращает ресурсы, созданные начиная с since
func (r *AnalyticsRepository) ResourcesSince(ctx context.Context, since time.Time) ([]*models.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE created_at >= $1
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, storeError("resources since", err)
	}
	resources, err := collectResources(rows)
	if err != nil {
		return nil, storeError("scan resources since", err)
	}
	return resources, nil
}

// DashboardCounts считает общие счетчики и активность начиная с since одним запросом
func (r *AnalyticsRepository) DashboardCounts(ctx context.Context, since time.Time) (*models.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM reports),
			(SELECT COUNT(*) FROM incidents WHERE is_active),
			(SELECT COUNT(*) FROM resources WHERE status = 'needed'),
			(SELECT COUNT(*) FROM resources WHERE status = 'available'),
			(SELECT COUNT(*) FROM reports WHERE timestamp >= $1),
			(SELECT COUNT(*) FROM incidents WHERE created_at >= $1);
	`
	counts := &models.DashboardCounts{}
	err := r.db.QueryRow(ctx, query, since).Scan(
		&counts.TotalReports,
		&counts.ActiveIncidents,
		&counts.ResourcesNeeded,
		&counts.ResourcesAvailable,
		&counts.RecentReports,
		&counts.RecentIncidents,
	)
	if err != nil {
		return nil, storeError("dashboard counts", err)
	}
	return counts, nil
}
