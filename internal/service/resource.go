package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=resource.go -destination=mocks/mock_resource.go -package=mocks

// ResourceRepository определяет контракт для работы с бд ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	List(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id int64) error
}

// ResourceUpdate - частичное обновление ресурса, nil поля не меняются
type ResourceUpdate struct {
	Name         *string
	Description  *string
	ResourceType *string
	Status       *string
	Quantity     *float64
	Unit         *string
	Location     *string
	Latitude     *float64
	Longitude    *float64
	IncidentID   *int64
}

// ResourceService определяет контракт учета ресурсов
type ResourceService interface {
	CreateResource(ctx context.Context, resource *models.Resource) error
	GetResource(ctx context.Context, id int64) (*models.Resource, error)
	ListResources(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error)
	UpdateResource(ctx context.Context, id int64, update ResourceUpdate) (*models.Resource, error)
	DeleteResource(ctx context.Context, id int64) error
}

type resourceService struct {
	repo   ResourceRepository
	clock  clockwork.Clock
	logger *logrus.Logger
}

func NewResourceService(repo ResourceRepository, clock clockwork.Clock, logger *logrus.Logger) ResourceService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &resourceService{repo: repo, clock: clock, logger: logger}
}

var resourceTypes = map[string]struct{}{
	models.ResourceWater: {}, models.ResourceFood: {}, models.ResourceMedical: {}, models.ResourceShelter: {},
	models.ResourceTransport: {}, models.ResourcePersonnel: {}, models.ResourceEquipment: {}, models.ResourceOther: {},
}

var resourceStatuses = map[string]struct{}{
	models.ResourceStatusNeeded: {}, models.ResourceStatusAvailable: {},
	models.ResourceStatusInTransit: {}, models.ResourceStatusDelivered: {},
}

func validateResource(r *models.Resource) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, ok := resourceTypes[r.ResourceType]; !ok {
		return fmt.Errorf("%w: unknown resource_type %q", ErrValidation, r.ResourceType)
	}
	if _, ok := resourceStatuses[r.Status]; !ok {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, r.Status)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrValidation)
	}
	return nil
}

// CreateResource создает ресурс
func (s *resourceService) CreateResource(ctx context.Context, resource *models.Resource) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "resource",
		"method":  "CreateResource",
		"type":    resource.ResourceType,
	})

	if resource.Status == "" {
		resource.Status = models.ResourceStatusNeeded
	}
	if resource.Unit == "" {
		resource.Unit = "units"
	}
	if err := validateResource(resource); err != nil {
		return err
	}

	now := s.clock.Now().UTC()
	resource.CreatedAt, resource.UpdatedAt = now, now
	if err := s.repo.Create(ctx, resource); err != nil {
		log.WithError(err).Error("Failed to create resource in repository")
		return fmt.Errorf("service: could not create resource: %w", err)
	}

	log.WithField("resource_id", resource.ID).Info("Resource created successfully")
	return nil
}

// GetResource получает ресурс по ID
func (s *resourceService) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get resource %d: %w", id, err)
	}
	return resource, nil
}

// ListResources возвращает ресурсы по фильтру, новые первыми
func (s *resourceService) ListResources(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error) {
	resources, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "resource",
			"method":  "ListResources",
		}).WithError(err).Error("Failed to list resources from repository")
		return nil, fmt.Errorf("service: could not list resources: %w", err)
	}
	return resources, nil
}

// UpdateResource обновляет заданные поля ресурса
func (s *resourceService) UpdateResource(ctx context.Context, id int64, update ResourceUpdate) (*models.Resource, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "UpdateResource",
		"resource_id": id,
	})

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent resource")
		return nil, fmt.Errorf("service: resource %d not found for update: %w", id, err)
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = update.Description
	}
	if update.ResourceType != nil {
		existing.ResourceType = *update.ResourceType
	}
	if update.Status != nil {
		existing.Status = *update.Status
	}
	if update.Quantity != nil {
		existing.Quantity = *update.Quantity
	}
	if update.Unit != nil {
		existing.Unit = *update.Unit
	}
	if update.Location != nil {
		existing.Location = update.Location
	}
	if update.Latitude != nil {
		existing.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		existing.Longitude = update.Longitude
	}
	if update.IncidentID != nil {
		existing.IncidentID = update.IncidentID
	}
	if err := validateResource(existing); err != nil {
		return nil, err
	}

	existing.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update resource in repository")
		return nil, fmt.Errorf("service: could not update resource: %w", err)
	}
	log.Info("Resource updated successfully")
	return existing, nil
}

// DeleteResource удаляет ресурс
func (s *resourceService) DeleteResource(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "DeleteResource",
		"resource_id": id,
	})
	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete resource")
		return fmt.Errorf("service: could not delete resource %d: %w", id, err)
	}
	log.Info("Resource deleted")
	return nil
}
