package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=analytics.go -destination=mocks/mock_analytics.go -package=mocks

// AnalyticsRepository - выборки для аналитики. Нулевой since означает "за все время".
type AnalyticsRepository interface {
	ReportsSince(ctx context.Context, since time.Time, hazardType *string) ([]*models.Report, error)
	IncidentsSince(ctx context.Context, since time.Time) ([]*models.Incident, error)
	ResourcesSince(ctx context.Context, since time.Time) ([]*models.Resource, error)
	DashboardCounts(ctx context.Context, since time.Time) (*models.DashboardCounts, error)
}

// AnalyticsService определяет контракт агрегатов только для чтения
type AnalyticsService interface {
	ReportHistory(ctx context.Context, days int, hazardType *string) (*models.ReportHistory, error)
	IncidentTrends(ctx context.Context, days int) (*models.IncidentTrends, error)
	ResourceTrends(ctx context.Context, days int) (*models.ResourceTrends, error)
	ResourceSummary(ctx context.Context) (*models.ResourceSummary, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

const dateLayout = "2006-01-02"

type analyticsService struct {
	repo   AnalyticsRepository
	clock  clockwork.Clock
	logger *logrus.Logger
}

func NewAnalyticsService(repo AnalyticsRepository, clock clockwork.Clock, logger *logrus.Logger) AnalyticsService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &analyticsService{repo: repo, clock: clock, logger: logger}
}

func (s *analyticsService) cutoff(days, defaultDays int) (int, time.Time) {
	if days <= 0 {
		days = defaultDays
	}
	return days, s.clock.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

// ReportHistory группирует сообщения за период по дате, уровню опасности и типу
func (s *analyticsService) ReportHistory(ctx context.Context, days int, hazardType *string) (*models.ReportHistory, error) {
	days, since := s.cutoff(days, 7)

	reports, err := s.repo.ReportsSince(ctx, since, hazardType)
	if err != nil {
		s.logError("ReportHistory", err)
		return nil, fmt.Errorf("service: could not load reports for history: %w", err)
	}

	history := &models.ReportHistory{
		PeriodDays:   days,
		TotalReports: len(reports),
		ByDate:       make(map[string]int),
		BySeverity: map[string]int{
			string(models.SeverityLow):    0,
			string(models.SeverityMedium): 0,
			string(models.SeverityHigh):   0,
		},
		ByHazardType: make(map[string]int),
	}

	var confidenceSum float64
	for _, r := range reports {
		history.ByDate[r.Timestamp.UTC().Format(dateLayout)]++
		if r.Severity != nil {
			history.BySeverity[string(*r.Severity)]++
		}
		hazard := models.UnknownHazard
		if r.HazardType != nil && *r.HazardType != "" {
			hazard = *r.HazardType
		}
		history.ByHazardType[hazard]++
		if r.ConfidenceScore != nil {
			confidenceSum += *r.ConfidenceScore
		}
	}
	if len(reports) > 0 {
		history.AverageConfidence = confidenceSum / float64(len(reports))
	}
	return history, nil
}

// IncidentTrends считает инциденты за период; свидетели учитываются только у активных
func (s *analyticsService) IncidentTrends(ctx context.Context, days int) (*models.IncidentTrends, error) {
	days, since := s.cutoff(days, 30)

	incidents, err := s.repo.IncidentsSince(ctx, since)
	if err != nil {
		s.logError("IncidentTrends", err)
		return nil, fmt.Errorf("service: could not load incidents for trends: %w", err)
	}

	trends := &models.IncidentTrends{
		PeriodDays:     days,
		TotalIncidents: len(incidents),
		ByDate:         make(map[string]int),
	}
	for _, inc := range incidents {
		trends.ByDate[inc.CreatedAt.UTC().Format(dateLayout)]++
		if inc.IsActive {
			trends.ActiveIncidents++
			trends.TotalWitnesses += inc.WitnessCount
		}
	}
	if trends.ActiveIncidents > 0 {
		trends.AverageWitnessesPerIncident = float64(trends.TotalWitnesses) / float64(trends.ActiveIncidents)
	}
	return trends, nil
}

// ResourceTrends считает потребности, доступность и дефицит по типам ресурсов за период
func (s *analyticsService) ResourceTrends(ctx context.Context, days int) (*models.ResourceTrends, error) {
	days, since := s.cutoff(days, 7)

	resources, err := s.repo.ResourcesSince(ctx, since)
	if err != nil {
		s.logError("ResourceTrends", err)
		return nil, fmt.Errorf("service: could not load resources for trends: %w", err)
	}

	needed, available := sumByType(resources)
	trends := &models.ResourceTrends{
		PeriodDays:      days,
		NeededByType:    needed,
		AvailableByType: available,
		Deficits:        make(map[string]float64),
	}
	for rtype, balance := range balances(needed, available) {
		trends.Deficits[rtype] = balance.Deficit
	}
	return trends, nil
}

// ResourceSummary - баланс ресурсов за все время
func (s *analyticsService) ResourceSummary(ctx context.Context) (*models.ResourceSummary, error) {
	resources, err := s.repo.ResourcesSince(ctx, time.Time{})
	if err != nil {
		s.logError("ResourceSummary", err)
		return nil, fmt.Errorf("service: could not load resources for summary: %w", err)
	}

	needed, available := sumByType(resources)
	return &models.ResourceSummary{
		Needed:    needed,
		Available: available,
		Summary:   balances(needed, available),
	}, nil
}

// DashboardStats - общие счетчики и активность за последние 24 часа
func (s *analyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	since := s.clock.Now().UTC().Add(-24 * time.Hour)

	counts, err := s.repo.DashboardCounts(ctx, since)
	if err != nil {
		s.logError("DashboardStats", err)
		return nil, fmt.Errorf("service: could not load dashboard counts: %w", err)
	}

	return &models.DashboardStats{
		TotalReports:       counts.TotalReports,
		ActiveIncidents:    counts.ActiveIncidents,
		ResourcesNeeded:    counts.ResourcesNeeded,
		ResourcesAvailable: counts.ResourcesAvailable,
		RecentActivity24h: models.RecentActivity{
			Reports:   counts.RecentReports,
			Incidents: counts.RecentIncidents,
		},
	}, nil
}

func (s *analyticsService) logError(method string, err error) {
	s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  method,
	}).WithError(err).Error("Failed to load analytics data")
}

func sumByType(resources []*models.Resource) (needed, available map[string]float64) {
	needed = make(map[string]float64)
	available = make(map[string]float64)
	for _, r := range resources {
		switch r.Status {
		case models.ResourceStatusNeeded:
			needed[r.ResourceType] += r.Quantity
		case models.ResourceStatusAvailable:
			available[r.ResourceType] += r.Quantity
		}
	}
	return needed, available
}

// balances строит дефицит = потребность - доступность для каждого встреченного типа
func balances(needed, available map[string]float64) map[string]models.ResourceBalance {
	result := make(map[string]models.ResourceBalance, len(needed)+len(available))
	for rtype := range needed {
		result[rtype] = models.ResourceBalance{}
	}
	for rtype := range available {
		result[rtype] = models.ResourceBalance{}
	}
	for rtype := range result {
		result[rtype] = models.ResourceBalance{
			Needed:    needed[rtype],
			Available: available[rtype],
			Deficit:   needed[rtype] - available[rtype],
		}
	}
	return result
}
