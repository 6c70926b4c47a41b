package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

const (
	incidentCacheTTL = 5 * time.Minute
	// версия живет дольше закэшированного значения
	incidentVersionTTL = 2 * incidentCacheTTL
)

var errStaleCacheFill = errors.New("incident changed since it was read")

const incidentColumns = `
	id,
	location,
	latitude,
	longitude,
	hazard_type,
	severity,
	confidence_score,
	witness_count,
	is_active,
	created_at,
	updated_at`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var severity *string
	err := row.Scan(
		&incident.ID,
		&incident.Location,
		&incident.Latitude,
		&incident.Longitude,
		&incident.HazardType,
		&severity,
		&incident.ConfidenceScore,
		&incident.WitnessCount,
		&incident.IsActive,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	incident.Severity = severityValue(severity)
	incident.CreatedAt = incident.CreatedAt.UTC()
	incident.UpdatedAt = incident.UpdatedAt.UTC()
	return incident, nil
}

func collectIncidents(rows pgx.Rows) ([]*models.Incident, error) {
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return incidents, nil
}

// insertIncident создает запись об инциденте, id выдается базой
func insertIncident(ctx context.Context, q querier, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (location, latitude, longitude, hazard_type, severity, confidence_score,
			witness_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err := q.QueryRow(ctx, query,
		incident.Location,
		incident.Latitude,
		incident.Longitude,
		incident.HazardType,
		severityArg(incident.Severity),
		incident.ConfidenceScore,
		incident.WitnessCount,
		incident.IsActive,
		incident.CreatedAt,
		incident.UpdatedAt,
	).Scan(&incident.ID)
	if err != nil {
		return storeError("create incident", err)
	}
	return nil
}

// updateIncident сохраняет изменяемые поля инцидента. Точка привязки не меняется.
func updateIncident(ctx context.Context, q querier, incident *models.Incident) error {
	query := `
		UPDATE incidents SET
			severity = $1,
			confidence_score = $2,
			witness_count = $3,
			is_active = $4,
			updated_at = $5
		WHERE id = $6;
	`
	cmdTag, err := q.Exec(ctx, query,
		severityArg(incident.Severity),
		incident.ConfidenceScore,
		incident.WitnessCount,
		incident.IsActive,
		incident.UpdatedAt,
		incident.ID,
	)
	if err != nil {
		return storeError("update incident", err)
	}

	// Если RowsAffected() == 0, значит инцидента с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("repository: incident %d not found for update: %w", incident.ID, service.ErrNotFound)
	}
	return nil
}

// findActiveCandidates выбирает активные инциденты данного типа рядом с точкой и блокирует их строки.
// Радиус расширен на небольшой запас: точную проверку по геодезическому расстоянию делает движок.
func findActiveCandidates(ctx context.Context, q querier, hazardType string, lat, lon, radiusMeters float64) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			is_active
			AND hazard_type = $1
			AND geog IS NOT NULL
			AND ST_DWithin(geog, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4)
		ORDER BY id
		FOR UPDATE;
	`
	rows, err := q.Query(ctx, query, hazardType, lon, lat, radiusMeters*1.001+1)
	if err != nil {
		return nil, storeError("find incident candidates", err)
	}
	incidents, err := collectIncidents(rows)
	if err != nil {
		return nil, storeError("scan incident candidates", err)
	}
	return incidents, nil
}

// GetByID возвращает инцидент по его id
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeError(fmt.Sprintf("get incident %d", id), err)
	}
	return incident, nil
}

// ListActive возвращает активные инциденты с пагинацией, новые первыми
func (r *IncidentRepository) ListActive(ctx context.Context, skip, limit int) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE is_active
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, storeError("list incidents", err)
	}
	incidents, err := collectIncidents(rows)
	if err != nil {
		return nil, storeError("scan incidents", err)
	}
	return incidents, nil
}

// ListAllActive возвращает все активные инциденты
func (r *IncidentRepository) ListAllActive(ctx context.Context) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE is_active
		ORDER BY created_at DESC, id DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storeError("list active incidents", err)
	}
	incidents, err := collectIncidents(rows)
	if err != nil {
		return nil, storeError("scan active incidents", err)
	}
	return incidents, nil
}

// FindActiveNear находит активные инциденты в радиусе от точки, ближайшие первыми
func (r *IncidentRepository) FindActiveNear(ctx context.Context, lat, lon, radiusMeters float64, hazardType *string) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			is_active
			AND geog IS NOT NULL
			AND ($4::text IS NULL OR hazard_type = $4)
			AND ST_DWithin(geog, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY ST_Distance(geog, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography), id;
	`
	rows, err := r.db.Query(ctx, query, lon, lat, radiusMeters, hazardType)
	if err != nil {
		return nil, storeError("find incidents near point", err)
	}
	incidents, err := collectIncidents(rows)
	if err != nil {
		return nil, storeError("scan incidents near point", err)
	}
	return incidents, nil
}

// Deactivate переводит инцидент в неактивное состояние. Повторная деактивация не ошибка.
func (r *IncidentRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE incidents SET
			is_active = FALSE,
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return storeError("deactivate incident", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("repository: incident %d not found for deactivate: %w", id, service.ErrNotFound)
	}
	return nil
}

func incidentCacheKey(id int64) string {
	return fmt.Sprintf("incident:%d", id)
}

func incidentVersionKey(id int64) string {
	return fmt.Sprintf("incident:%d:version", id)
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id int64) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// IncidentCacheVersion возвращает текущую версию инцидента в кэше (0, если инвалидаций не было)
func (r *IncidentRepository) IncidentCacheVersion(ctx context.Context, id int64) (int64, error) {
	version, err := r.redisClient.Get(ctx, incidentVersionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get incident cache version: %w", err)
	}
	return version, nil
}

// SetIncidentCache сохраняет инцидент в Redis, если с момента чтения version его не инвалидировали
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident, version int64) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}

	versionKey := incidentVersionKey(incident.ID)
	err = r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleCacheFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, incidentCacheKey(incident.ID), val, incidentCacheTTL)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, errStaleCacheFill) || errors.Is(err, redis.TxFailedErr) {
		// инцидент изменился после чтения из бд, устаревшую копию не кэшируем
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша и увеличивает его версию
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id int64) error {
	versionKey := incidentVersionKey(id)
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, incidentVersionTTL)
		pipe.Del(ctx, incidentCacheKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}
