package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

const reportColumns = `
	id,
	raw_text,
	location,
	latitude,
	longitude,
	hazard_type,
	severity,
	confidence_score,
	source,
	image_key,
	timestamp,
	is_verified,
	incident_id,
	user_id`

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) service.ReportRepository {
	return &ReportRepository{db: db}
}

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	var severity *string
	err := row.Scan(
		&report.ID,
		&report.RawText,
		&report.Location,
		&report.Latitude,
		&report.Longitude,
		&report.HazardType,
		&severity,
		&report.ConfidenceScore,
		&report.Source,
		&report.ImageKey,
		&report.Timestamp,
		&report.IsVerified,
		&report.IncidentID,
		&report.UserID,
	)
	if err != nil {
		return nil, err
	}
	report.Severity = severityValue(severity)
	report.Timestamp = report.Timestamp.UTC()
	return report, nil
}

func collectReports(rows pgx.Rows) ([]*models.Report, error) {
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

// insertReport сохраняет сообщение, id выдается базой
func insertReport(ctx context.Context, q querier, report *models.Report) error {
	query := `
		INSERT INTO reports (raw_text, location, latitude, longitude, hazard_type, severity, confidence_score,
			source, image_key, timestamp, is_verified, incident_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id;
	`
	err := q.QueryRow(ctx, query,
		report.RawText,
		report.Location,
		report.Latitude,
		report.Longitude,
		report.HazardType,
		severityArg(report.Severity),
		report.ConfidenceScore,
		report.Source,
		report.ImageKey,
		report.Timestamp,
		report.IsVerified,
		report.IncidentID,
		report.UserID,
	).Scan(&report.ID)
	if err != nil {
		return storeError("create report", err)
	}
	return nil
}

// GetByID возвращает сообщение по id
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1;`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeError(fmt.Sprintf("get report %d", id), err)
	}
	return report, nil
}

// List возвращает сообщения с пагинацией, новые первыми
func (r *ReportRepository) List(ctx context.Context, skip, limit int) ([]*models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		ORDER BY timestamp DESC, id DESC
		LIMIT $1 OFFSET $2;
	`
	return r.query(ctx, "list reports", query, limit, skip)
}

// ListRecent возвращает последние limit сообщений
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*models.Report, error) {
	return r.List(ctx, 0, limit)
}

// ListByIncident возвращает сообщения инцидента в порядке поступления
func (r *ReportRepository) ListByIncident(ctx context.Context, incidentID int64) ([]*models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE incident_id = $1
		ORDER BY timestamp, id;
	`
	return r.query(ctx, "list incident reports", query, incidentID)
}

// SetVerified меняет флаг проверки сообщения
func (r *ReportRepository) SetVerified(ctx context.Context, id int64, verified bool) (*models.Report, error) {
	query := `
		UPDATE reports SET is_verified = $1
		WHERE id = $2
		RETURNING ` + reportColumns + `;
	`
	report, err := scanReport(r.db.QueryRow(ctx, query, verified, id))
	if err != nil {
		return nil, storeError(fmt.Sprintf("verify report %d", id), err)
	}
	return report, nil
}

func (r *ReportRepository) query(ctx context.Context, op, query string, args ...any) ([]*models.Report, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	reports, err := collectReports(rows)
	if err != nil {
		return nil, storeError(op, err)
	}
	return reports, nil
}
