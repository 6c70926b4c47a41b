//go:build integration

package repository_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/shenikar/crisisflow/internal/repository"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/shenikar/crisisflow/pkg/postgres"
	redisclient "github.com/shenikar/crisisflow/pkg/redis"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newSilentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgis/postgis:16-3.4-alpine",
		tcpostgres.WithDatabase("crisisflow"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := newSilentLogger()
	require.NoError(t, postgres.RunMigrations(connStr, "../../migrations", log))

	pool, err := postgres.NewPostgresDB(ctx, connStr, log)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type staticExtractor struct{ fields models.ExtractedFields }

func (e staticExtractor) Extract(context.Context, string, string, []byte) models.ExtractedFields {
	return e.fields
}

type nopGeocoder struct{}

func (nopGeocoder) Resolve(context.Context, *string) models.Coordinates { return models.Coordinates{} }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, models.Event) error { return nil }

type nopCache struct{}

func (nopCache) GetIncidentFromCache(context.Context, int64) (*models.Incident, error) {
	return nil, nil
}
func (nopCache) IncidentCacheVersion(context.Context, int64) (int64, error)      { return 0, nil }
func (nopCache) SetIncidentCache(context.Context, *models.Incident, int64) error { return nil }
func (nopCache) InvalidateIncidentCache(context.Context, int64) error            { return nil }

func fire(lat, lon float64, severity models.Severity) models.ExtractedFields {
	hazard := "Fire"
	location := fmt.Sprintf("%.4f,%.4f", lat, lon)
	confidence := 0.8
	return models.ExtractedFields{
		Location:        &location,
		HazardType:      &hazard,
		Severity:        &severity,
		ConfidenceScore: &confidence,
		Latitude:        &lat,
		Longitude:       &lon,
	}
}

func newReportService(pool *pgxpool.Pool, fields models.ExtractedFields) service.ReportService {
	clock := clockwork.NewRealClock()
	return service.NewReportService(service.ReportServiceDeps{
		Reports:   repository.NewReportRepository(pool),
		Store:     repository.NewClusterStore(pool, 0),
		Cache:     nopCache{},
		Engine:    service.NewClusteringEngine(500, clock),
		Extractor: staticExtractor{fields: fields},
		Geocoder:  nopGeocoder{},
		Publisher: nopPublisher{},
		Clock:     clock,
		Metrics:   observability.NewMetricsForTesting(),
		Logger:    newSilentLogger(),
	})
}

func TestIntegration_ConcurrentIngestCreatesSingleIncident(t *testing.T) {
	pool := setupDB(t)
	svc := newReportService(pool, fire(40.0, -74.0, models.SeverityMedium))

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Ingest(context.Background(), service.IngestRequest{RawText: fmt.Sprintf("fire #%d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	incidents, err := repository.NewIncidentRepository(pool, nil).ListAllActive(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, writers, incidents[0].WitnessCount)

	reports, err := repository.NewReportRepository(pool).ListByIncident(context.Background(), incidents[0].ID)
	require.NoError(t, err)
	assert.Len(t, reports, writers)
}

func TestIntegration_IncidentQueries(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	near := newReportService(pool, fire(40.0, -74.0, models.SeverityHigh))
	far := newReportService(pool, fire(41.0, -74.0, models.SeverityLow))
	r1, err := near.Ingest(ctx, service.IngestRequest{RawText: "fire downtown"})
	require.NoError(t, err)
	_, err = far.Ingest(ctx, service.IngestRequest{RawText: "fire up north"})
	require.NoError(t, err)

	incidents := repository.NewIncidentRepository(pool, nil)

	found, err := incidents.FindActiveNear(ctx, 40.001, -74.0, 1000, nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, *r1.IncidentID, found[0].ID)
	assert.Equal(t, models.SeverityHigh, *found[0].Severity)

	flood := "Flood"
	found, err = incidents.FindActiveNear(ctx, 40.001, -74.0, 1000, &flood)
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, incidents.Deactivate(ctx, *r1.IncidentID))
	active, err := incidents.ListActive(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	err = incidents.Deactivate(ctx, 999999)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = incidents.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestIntegration_ReportVerificationAndAnalytics(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	svc := newReportService(pool, fire(10.0, 10.0, models.SeverityMedium))
	report, err := svc.Ingest(ctx, service.IngestRequest{RawText: "smoke over the hill", Source: models.SourceSMS})
	require.NoError(t, err)

	reports := repository.NewReportRepository(pool)
	verified, err := reports.SetVerified(ctx, report.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, models.SourceSMS, verified.Source)

	resources := repository.NewResourceRepository(pool)
	now := time.Now().UTC()
	for _, r := range []*models.Resource{
		{Name: "Water", ResourceType: models.ResourceWater, Status: models.ResourceStatusNeeded, Quantity: 50, Unit: "l", CreatedAt: now, UpdatedAt: now},
		{Name: "Water", ResourceType: models.ResourceWater, Status: models.ResourceStatusAvailable, Quantity: 20, Unit: "l", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, resources.Create(ctx, r))
	}

	listed, err := resources.List(ctx, models.ResourceFilter{Status: models.ResourceStatusNeeded})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	analytics := service.NewAnalyticsService(repository.NewAnalyticsRepository(pool), nil, newSilentLogger())
	summary, err := analytics.ResourceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30.0, summary.Summary[models.ResourceWater].Deficit)

	stats, err := analytics.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalReports)
	assert.Equal(t, 1, stats.ActiveIncidents)
	assert.Equal(t, 1, stats.ResourcesNeeded)
	assert.Equal(t, 1, stats.RecentActivity24h.Reports)
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := redisclient.NewRedisClient(ctx, endpoint, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIntegration_IncidentCacheSkipsStaleFill(t *testing.T) {
	ctx := context.Background()
	cache := repository.NewIncidentRepository(nil, setupRedis(t))

	// читатель запомнил версию и загрузил инцидент из бд
	version, err := cache.IncidentCacheVersion(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	stale := &models.Incident{ID: 11, WitnessCount: 1, IsActive: true}

	// параллельное сообщение присоединилось к инциденту и инвалидировало кэш
	require.NoError(t, cache.InvalidateIncidentCache(ctx, 11))

	require.NoError(t, cache.SetIncidentCache(ctx, stale, version))
	cached, err := cache.GetIncidentFromCache(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, cached, "stale copy must not be cached")

	// следующее чтение видит новую версию и кэширует свежие данные
	version, err = cache.IncidentCacheVersion(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	fresh := &models.Incident{ID: 11, WitnessCount: 2, IsActive: true}
	require.NoError(t, cache.SetIncidentCache(ctx, fresh, version))

	cached, err = cache.GetIncidentFromCache(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 2, cached.WitnessCount)
}
