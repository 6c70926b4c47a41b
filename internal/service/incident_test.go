package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/shenikar/crisisflow/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (service.IncidentService, *mocks.MockIncidentRepository, *mocks.MockReportRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	reportsMock := mocks.NewMockReportRepository(ctrl)

	svc := service.NewIncidentService(repoMock, reportsMock, 500, newSilentLogger())
	return svc, repoMock, reportsMock
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	svc, repoMock, reportsMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedIncident := activeIncident(42, "Fire", 40, -74)

	// Ожидания
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, int64(42)).
		Return(expectedIncident, nil).
		Times(1)
	repoMock.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	reportsMock.EXPECT().ListByIncident(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	incident, err := svc.GetIncident(ctx, 42)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	// Подготовка
	svc, repoMock, reportsMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedIncident := activeIncident(42, "Fire", 40, -74)
	reports := []*models.Report{{ID: 1, RawText: "fire", IncidentID: int64Ptr(42)}}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, int64(42)).
		Return(nil, nil).
		Times(1)

	// 2. Версия кеша до чтения из БД
	repoMock.EXPECT().
		IncidentCacheVersion(ctx, int64(42)).
		Return(int64(3), nil).
		Times(1)

	// 3. Попадание в БД
	repoMock.EXPECT().
		GetByID(ctx, int64(42)).
		Return(expectedIncident, nil).
		Times(1)
	reportsMock.EXPECT().
		ListByIncident(ctx, int64(42)).
		Return(reports, nil).
		Times(1)

	// 4. Запись в кеш с прочитанной версией
	repoMock.EXPECT().
		SetIncidentCache(ctx, expectedIncident, int64(3)).
		Return(nil).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, 42)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
	assert.Equal(t, reports, incident.Reports)
}

func TestGetIncident_CacheErrorFallsBackToDB(t *testing.T) {
	svc, repoMock, reportsMock := newTestIncidentService(t)
	ctx := context.Background()
	expectedIncident := activeIncident(7, "Flood", 1, 1)

	repoMock.EXPECT().GetIncidentFromCache(ctx, int64(7)).Return(nil, fmt.Errorf("redis: connection refused"))
	repoMock.EXPECT().IncidentCacheVersion(ctx, int64(7)).Return(int64(0), nil)
	repoMock.EXPECT().GetByID(ctx, int64(7)).Return(expectedIncident, nil)
	reportsMock.EXPECT().ListByIncident(ctx, int64(7)).Return(nil, nil)
	repoMock.EXPECT().SetIncidentCache(ctx, expectedIncident, int64(0)).Return(fmt.Errorf("redis: connection refused"))

	incident, err := svc.GetIncident(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), incident.ID)
}

// Версия читается до загрузки из БД, иначе инвалидация между чтением и записью
// в кеш не отменила бы запись устаревшей копии.
func TestGetIncident_CacheFillUsesVersionReadBeforeDB(t *testing.T) {
	svc, repoMock, reportsMock := newTestIncidentService(t)
	ctx := context.Background()
	stale := activeIncident(9, "Fire", 40, -74)

	gomock.InOrder(
		repoMock.EXPECT().GetIncidentFromCache(ctx, int64(9)).Return(nil, nil),
		repoMock.EXPECT().IncidentCacheVersion(ctx, int64(9)).Return(int64(4), nil),
		repoMock.EXPECT().GetByID(ctx, int64(9)).Return(stale, nil),
		reportsMock.EXPECT().ListByIncident(ctx, int64(9)).Return(nil, nil),
		repoMock.EXPECT().SetIncidentCache(ctx, stale, int64(4)).Return(nil),
	)

	_, err := svc.GetIncident(ctx, 9)
	require.NoError(t, err)
}

func TestGetIncident_VersionErrorSkipsCacheFill(t *testing.T) {
	svc, repoMock, reportsMock := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetIncidentFromCache(ctx, int64(9)).Return(nil, nil)
	repoMock.EXPECT().IncidentCacheVersion(ctx, int64(9)).Return(int64(0), fmt.Errorf("redis: connection refused"))
	repoMock.EXPECT().GetByID(ctx, int64(9)).Return(activeIncident(9, "Fire", 40, -74), nil)
	reportsMock.EXPECT().ListByIncident(ctx, int64(9)).Return(nil, nil)
	repoMock.EXPECT().SetIncidentCache(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	incident, err := svc.GetIncident(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), incident.ID)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	svc, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetIncidentFromCache(ctx, int64(404)).
		Return(nil, nil).
		Times(1)

	repoMock.EXPECT().IncidentCacheVersion(ctx, int64(404)).Return(int64(0), nil)

	// 2. Промах в БД
	repoMock.EXPECT().
		GetByID(ctx, int64(404)).
		Return(nil, fmt.Errorf("incident 404: %w", service.ErrNotFound)).
		Times(1)

	// Действие
	incident, err := svc.GetIncident(ctx, 404)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// Два чтения без изменений между ними дают побайтно одинаковый JSON,
// даже если второе чтение обслужено кэшем.
func TestGetIncident_Idempotent(t *testing.T) {
	svc, repoMock, reportsMock := newTestIncidentService(t)
	ctx := context.Background()

	stored := activeIncident(5, "Fire", 40.123456789, -74.000001)
	stored.Severity = sevPtr(models.SeverityHigh)
	stored.ConfidenceScore = floatPtr(0.87)
	stored.Location = strPtr("Main Street")

	var cached []byte
	repoMock.EXPECT().GetIncidentFromCache(ctx, int64(5)).DoAndReturn(func(context.Context, int64) (*models.Incident, error) {
		if cached == nil {
			return nil, nil
		}
		incident := &models.Incident{}
		require.NoError(t, json.Unmarshal(cached, incident))
		return incident, nil
	}).Times(2)
	repoMock.EXPECT().IncidentCacheVersion(ctx, int64(5)).Return(int64(0), nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, int64(5)).Return(stored, nil).Times(1)
	reportsMock.EXPECT().ListByIncident(ctx, int64(5)).Return([]*models.Report{
		{ID: 1, RawText: "fire on main street", IncidentID: int64Ptr(5), Timestamp: testNow, Source: models.SourceWeb},
	}, nil).Times(1)
	repoMock.EXPECT().SetIncidentCache(ctx, gomock.Any(), int64(0)).DoAndReturn(func(_ context.Context, incident *models.Incident, _ int64) error {
		var err error
		cached, err = json.Marshal(incident)
		return err
	}).Times(1)

	first, err := svc.GetIncident(ctx, 5)
	require.NoError(t, err)
	second, err := svc.GetIncident(ctx, 5)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestListIncidents_NormalizesPaging(t *testing.T) {
	svc, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().ListActive(ctx, 0, 100).Return([]*models.Incident{}, nil)
	repoMock.EXPECT().ListActive(ctx, 10, 500).Return([]*models.Incident{}, nil)

	_, err := svc.ListIncidents(ctx, -5, 0)
	require.NoError(t, err)
	_, err = svc.ListIncidents(ctx, 10, 10_000)
	require.NoError(t, err)
}

func TestFindNearby(t *testing.T) {
	svc, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	expected := []*models.Incident{activeIncident(1, "Fire", 40, -74)}

	repoMock.EXPECT().FindActiveNear(ctx, 40.0, -74.0, 500.0, (*string)(nil)).Return(expected, nil)

	incidents, err := svc.FindNearby(ctx, 40, -74, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, expected, incidents)

	_, err = svc.FindNearby(ctx, 91, 0, 100, nil)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDeactivateIncident_Success(t *testing.T) {
	svc, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	gomock.InOrder(
		repoMock.EXPECT().Deactivate(ctx, int64(3)).Return(nil),
		repoMock.EXPECT().InvalidateIncidentCache(ctx, int64(3)).Return(nil),
	)

	require.NoError(t, svc.DeactivateIncident(ctx, 3))
}

func TestDeactivateIncident_NotFound(t *testing.T) {
	svc, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().Deactivate(ctx, int64(3)).Return(service.ErrNotFound)
	repoMock.EXPECT().InvalidateIncidentCache(gomock.Any(), gomock.Any()).Times(0)

	err := svc.DeactivateIncident(ctx, 3)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
