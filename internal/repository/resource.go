package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

const resourceColumns = `
	id,
	name,
	description,
	resource_type,
	status,
	quantity,
	unit,
	location,
	latitude,
	longitude,
	incident_id,
	created_at,
	updated_at`

type ResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) service.ResourceRepository {
	return &ResourceRepository{db: db}
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	resource := &models.Resource{}
	err := row.Scan(
		&resource.ID,
		&resource.Name,
		&resource.Description,
		&resource.ResourceType,
		&resource.Status,
		&resource.Quantity,
		&resource.Unit,
		&resource.Location,
		&resource.Latitude,
		&resource.Longitude,
		&resource.IncidentID,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	resource.CreatedAt = resource.CreatedAt.UTC()
	resource.UpdatedAt = resource.UpdatedAt.UTC()
	return resource, nil
}

func collectResources(rows pgx.Rows) ([]*models.Resource, error) {
	defer rows.Close()

	resources := make([]*models.Resource, 0)
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return resources, nil
}

// Create создает запись о ресурсе
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (name, description, resource_type, status, quantity, unit, location,
			latitude, longitude, incident_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		resource.Name,
		resource.Description,
		resource.ResourceType,
		resource.Status,
		resource.Quantity,
		resource.Unit,
		resource.Location,
		resource.Latitude,
		resource.Longitude,
		resource.IncidentID,
		resource.CreatedAt,
		resource.UpdatedAt,
	).Scan(&resource.ID)
	if err != nil {
		return storeError("create resource", err)
	}
	return nil
}

// GetByID возвращает ресурс по id
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1;`

	resource, err := scanResource(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, storeError(fmt.Sprintf("get resource %d", id), err)
	}
	return resource, nil
}

// List возвращает ресурсы по фильтру, новые первыми. Пустые поля фильтра не ограничивают выборку.
func (r *ResourceRepository) List(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE
			($1::text = '' OR status = $1)
			AND ($2::text = '' OR resource_type = $2)
			AND ($3::bigint IS NULL OR incident_id = $3)
		ORDER BY created_at DESC, id DESC;
	`
	rows, err := r.db.Query(ctx, query, filter.Status, filter.ResourceType, filter.IncidentID)
	if err != nil {
		return nil, storeError("list resources", err)
	}
	resources, err := collectResources(rows)
	if err != nil {
		return nil, storeError("scan resources", err)
	}
	return resources, nil
}

// Update сохраняет все поля ресурса
func (r *ResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	query := `
		UPDATE resources SET
			name = $1,
			description = $2,
			resource_type = $3,
			status = $4,
			quantity = $5,
			unit = $6,
			location = $7,
			latitude = $8,
			longitude = $9,
			incident_id = $10,
			updated_at = $11
		WHERE id = $12;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		resource.Name,
		resource.Description,
		resource.ResourceType,
		resource.Status,
		resource.Quantity,
		resource.Unit,
		resource.Location,
		resource.Latitude,
		resource.Longitude,
		resource.IncidentID,
		resource.UpdatedAt,
		resource.ID,
	)
	if err != nil {
		return storeError("update resource", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("repository: resource %d not found for update: %w", resource.ID, service.ErrNotFound)
	}
	return nil
}

// Delete удаляет ресурс
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1;`, id)
	if err != nil {
		return storeError("delete resource", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("repository: resource %d not found for delete: %w", id, service.ErrNotFound)
	}
	return nil
}
