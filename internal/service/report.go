package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks

// ReportRepository определяет контракт для чтения и обновления сообщений
type ReportRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, skip, limit int) ([]*models.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Report, error)
	ListByIncident(ctx context.Context, incidentID int64) ([]*models.Report, error)
	SetVerified(ctx context.Context, id int64, verified bool) (*models.Report, error)
}

// Extractor извлекает структурированные поля из текста и изображения. Никогда не возвращает ошибку:
// при любом сбое внешнего сервиса результат строится детерминированным правилом.
type Extractor interface {
	Extract(ctx context.Context, provider, text string, image []byte) models.ExtractedFields
}

// Geocoder переводит текстовый адрес в координаты. Неудача дает пустые координаты, а не ошибку.
type Geocoder interface {
	Resolve(ctx context.Context, label *string) models.Coordinates
}

// ImageStore сохраняет изображение сообщения и возвращает ключ объекта
type ImageStore interface {
	Save(ctx context.Context, data []byte, contentType string) (string, error)
}

// EventPublisher доставляет доменные события подписчикам
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// IngestRequest - входные данные конвейера приема сообщений
type IngestRequest struct {
	RawText     string
	ImageBase64 string
	Source      string
	Provider    string
	UserID      *string
}

// ReportService определяет контракт для бизнес-логики сообщений
type ReportService interface {
	Ingest(ctx context.Context, req IngestRequest) (*models.Report, error)
	GetReport(ctx context.Context, id int64) (*models.Report, error)
	ListReports(ctx context.Context, skip, limit int) ([]*models.Report, error)
	VerifyReport(ctx context.Context, id int64, verified bool) (*models.Report, error)
}

// ReportServiceDeps - зависимости сервиса сообщений
type ReportServiceDeps struct {
	Reports   ReportRepository
	Store     ClusterStore
	Cache     IncidentCache
	Engine    *ClusteringEngine
	Extractor Extractor
	Geocoder  Geocoder
	Images    ImageStore // nil, если хранилище изображений не настроено
	Publisher EventPublisher
	Clock     clockwork.Clock
	Metrics   *observability.Metrics
	Logger    *logrus.Logger
}

type reportService struct {
	reports   ReportRepository
	store     ClusterStore
	cache     IncidentCache
	engine    *ClusteringEngine
	extractor Extractor
	geocoder  Geocoder
	images    ImageStore
	publisher EventPublisher
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

func NewReportService(deps ReportServiceDeps) ReportService {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &reportService{
		reports:   deps.Reports,
		store:     deps.Store,
		cache:     deps.Cache,
		engine:    deps.Engine,
		extractor: deps.Extractor,
		geocoder:  deps.Geocoder,
		images:    deps.Images,
		publisher: deps.Publisher,
		clock:     clock,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

// GetReport получает сообщение по ID
func (s *reportService) GetReport(ctx context.Context, id int64) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "report",
			"method":    "GetReport",
			"report_id": id,
		}).WithError(err).Warn("Failed to get report in repository")
		return nil, fmt.Errorf("service: could not get report %d: %w", id, err)
	}
	return report, nil
}

// ListReports возвращает сообщения с пагинацией, новые первыми
func (s *reportService) ListReports(ctx context.Context, skip, limit int) ([]*models.Report, error) {
	skip, limit = normalizePage(skip, limit)
	reports, err := s.reports.List(ctx, skip, limit)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "report",
			"method":  "ListReports",
		}).WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}
	return reports, nil
}

// VerifyReport выставляет флаг проверки сообщения
func (s *reportService) VerifyReport(ctx context.Context, id int64, verified bool) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "VerifyReport",
		"report_id": id,
		"verified":  verified,
	})

	report, err := s.reports.SetVerified(ctx, id, verified)
	if err != nil {
		log.WithError(err).Warn("Failed to set verification flag")
		return nil, fmt.Errorf("service: could not verify report %d: %w", id, err)
	}

	// карточка инцидента в кэше содержит сообщения
	if report.IncidentID != nil {
		if err := s.cache.InvalidateIncidentCache(ctx, *report.IncidentID); err != nil {
			log.WithError(err).Warn("Failed to invalidate incident cache")
		}
	}

	log.Info("Report verification updated")
	return report, nil
}
