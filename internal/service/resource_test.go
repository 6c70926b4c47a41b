package service_test

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/shenikar/crisisflow/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestResourceService(t *testing.T) (service.ResourceService, *mocks.MockResourceRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockResourceRepository(ctrl)
	return service.NewResourceService(repo, clockwork.NewFakeClockAt(testNow), newSilentLogger()), repo
}

func TestCreateResource_Defaults(t *testing.T) {
	svc, repo := newTestResourceService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Resource) error {
		r.ID = 1
		return nil
	})

	resource := &models.Resource{Name: "Bottled water", ResourceType: models.ResourceWater, Quantity: 200}
	require.NoError(t, svc.CreateResource(ctx, resource))
	assert.Equal(t, int64(1), resource.ID)
	assert.Equal(t, models.ResourceStatusNeeded, resource.Status)
	assert.Equal(t, "units", resource.Unit)
	assert.Equal(t, testNow, resource.CreatedAt)
}

func TestCreateResource_Validation(t *testing.T) {
	svc, repo := newTestResourceService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	cases := []*models.Resource{
		{Name: "", ResourceType: models.ResourceWater},
		{Name: "x", ResourceType: "rockets"},
		{Name: "x", ResourceType: models.ResourceFood, Status: "lost"},
		{Name: "x", ResourceType: models.ResourceFood, Quantity: -1},
		{Name: "x", ResourceType: models.ResourceFood, Latitude: floatPtr(1)},
	}
	for _, r := range cases {
		err := svc.CreateResource(context.Background(), r)
		assert.ErrorIs(t, err, service.ErrValidation)
	}
}

func TestUpdateResource_Partial(t *testing.T) {
	svc, repo := newTestResourceService(t)
	ctx := context.Background()
	existing := &models.Resource{ID: 5, Name: "Tents", ResourceType: models.ResourceShelter, Status: models.ResourceStatusNeeded, Quantity: 10, Unit: "pcs"}

	repo.EXPECT().GetByID(ctx, int64(5)).Return(existing, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	status := models.ResourceStatusInTransit
	updated, err := svc.UpdateResource(ctx, 5, service.ResourceUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceStatusInTransit, updated.Status)
	assert.Equal(t, "Tents", updated.Name)
	assert.Equal(t, 10.0, updated.Quantity)
	assert.Equal(t, testNow, updated.UpdatedAt)
}

func TestUpdateResource_NotFound(t *testing.T) {
	svc, repo := newTestResourceService(t)
	repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(nil, service.ErrNotFound)

	_, err := svc.UpdateResource(context.Background(), 5, service.ResourceUpdate{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteResource(t *testing.T) {
	svc, repo := newTestResourceService(t)
	repo.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
	repo.EXPECT().Delete(gomock.Any(), int64(6)).Return(service.ErrNotFound)

	require.NoError(t, svc.DeleteResource(context.Background(), 5))
	assert.ErrorIs(t, svc.DeleteResource(context.Background(), 6), service.ErrNotFound)
}
