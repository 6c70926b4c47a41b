package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/shenikar/crisisflow/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAnalyticsService(t *testing.T) (service.AnalyticsService, *mocks.MockAnalyticsRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAnalyticsRepository(ctrl)
	return service.NewAnalyticsService(repo, clockwork.NewFakeClockAt(testNow), newSilentLogger()), repo
}

func TestReportHistory(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	ctx := context.Background()
	day1 := time.Date(2025, time.March, 13, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, time.March, 14, 1, 0, 0, 0, time.UTC)

	repo.EXPECT().
		ReportsSince(ctx, testNow.Add(-7*24*time.Hour), (*string)(nil)).
		Return([]*models.Report{
			{Timestamp: day1, HazardType: strPtr("Fire"), Severity: sevPtr(models.SeverityHigh), ConfidenceScore: floatPtr(0.9)},
			{Timestamp: day2, HazardType: strPtr("Fire"), Severity: sevPtr(models.SeverityHigh), ConfidenceScore: floatPtr(0.6)},
			{Timestamp: day2}, // без типа, уровня и уверенности
		}, nil)

	history, err := svc.ReportHistory(ctx, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, history.PeriodDays)
	assert.Equal(t, 3, history.TotalReports)
	assert.Equal(t, map[string]int{"2025-03-13": 1, "2025-03-14": 2}, history.ByDate)
	assert.Equal(t, map[string]int{"Low": 0, "Medium": 0, "High": 2}, history.BySeverity)
	assert.Equal(t, map[string]int{"Fire": 2, "Unknown": 1}, history.ByHazardType)
	assert.InDelta(t, 0.5, history.AverageConfidence, 1e-9)
}

func TestReportHistory_EmptyWindow(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	ctx := context.Background()
	hazard := strPtr("Flood")

	repo.EXPECT().ReportsSince(ctx, testNow.Add(-3*24*time.Hour), hazard).Return(nil, nil)

	history, err := svc.ReportHistory(ctx, 3, hazard)
	require.NoError(t, err)
	assert.Zero(t, history.TotalReports)
	assert.Zero(t, history.AverageConfidence)
	assert.Len(t, history.BySeverity, 3)
}

func TestIncidentTrends(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	ctx := context.Background()

	inactive := activeIncident(3, "Fire", 0, 0)
	inactive.IsActive = false
	inactive.WitnessCount = 10
	a := activeIncident(1, "Fire", 0, 0)
	a.WitnessCount = 3
	b := activeIncident(2, "Flood", 0, 0)
	b.WitnessCount = 2
	b.CreatedAt = testNow.Add(-48 * time.Hour)

	repo.EXPECT().IncidentsSince(ctx, testNow.Add(-30*24*time.Hour)).Return([]*models.Incident{a, b, inactive}, nil)

	trends, err := svc.IncidentTrends(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, trends.PeriodDays)
	assert.Equal(t, 3, trends.TotalIncidents)
	assert.Equal(t, 2, trends.ActiveIncidents)
	assert.Equal(t, 5, trends.TotalWitnesses)
	assert.Equal(t, 2.5, trends.AverageWitnessesPerIncident)
	assert.Equal(t, map[string]int{"2025-03-14": 2, "2025-03-12": 1}, trends.ByDate)
}

func TestIncidentTrends_NoActiveIncidents(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	repo.EXPECT().IncidentsSince(gomock.Any(), gomock.Any()).Return(nil, nil)

	trends, err := svc.IncidentTrends(context.Background(), 30)
	require.NoError(t, err)
	assert.Zero(t, trends.AverageWitnessesPerIncident)
}

func resourcesFixture() []*models.Resource {
	return []*models.Resource{
		{ResourceType: models.ResourceWater, Status: models.ResourceStatusNeeded, Quantity: 100},
		{ResourceType: models.ResourceWater, Status: models.ResourceStatusAvailable, Quantity: 40},
		{ResourceType: models.ResourceFood, Status: models.ResourceStatusAvailable, Quantity: 25},
		{ResourceType: models.ResourceMedical, Status: models.ResourceStatusInTransit, Quantity: 7},
	}
}

func TestResourceTrends_Deficits(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	ctx := context.Background()
	repo.EXPECT().ResourcesSince(ctx, testNow.Add(-7*24*time.Hour)).Return(resourcesFixture(), nil)

	trends, err := svc.ResourceTrends(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"water": 100}, trends.NeededByType)
	assert.Equal(t, map[string]float64{"water": 40, "food": 25}, trends.AvailableByType)
	assert.Equal(t, map[string]float64{"water": 60, "food": -25}, trends.Deficits)
}

func TestResourceSummary_AllTime(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	ctx := context.Background()
	repo.EXPECT().ResourcesSince(ctx, time.Time{}).Return(resourcesFixture(), nil)

	summary, err := svc.ResourceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ResourceBalance{Needed: 100, Available: 40, Deficit: 60}, summary.Summary["water"])
	assert.Equal(t, models.ResourceBalance{Needed: 0, Available: 25, Deficit: -25}, summary.Summary["food"])
	assert.NotContains(t, summary.Summary, "medical")
}

func TestDashboardStats(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	ctx := context.Background()
	repo.EXPECT().DashboardCounts(ctx, testNow.Add(-24*time.Hour)).Return(&models.DashboardCounts{
		TotalReports:       120,
		ActiveIncidents:    4,
		ResourcesNeeded:    6,
		ResourcesAvailable: 9,
		RecentReports:      12,
		RecentIncidents:    2,
	}, nil)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalReports)
	assert.Equal(t, models.RecentActivity{Reports: 12, Incidents: 2}, stats.RecentActivity24h)
}

func TestDashboardStats_StoreError(t *testing.T) {
	svc, repo := newTestAnalyticsService(t)
	repo.EXPECT().DashboardCounts(gomock.Any(), gomock.Any()).Return(nil, service.ErrStoreUnavailable)

	_, err := svc.DashboardStats(context.Background())
	assert.ErrorIs(t, err, service.ErrStoreUnavailable)
}
