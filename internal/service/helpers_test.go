package service_test

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

func strPtr(v string) *string                         { return &v }
func floatPtr(v float64) *float64                     { return &v }
func sevPtr(v models.Severity) *models.Severity       { return &v }
func int64Ptr(v int64) *int64                         { return &v }
func metersNorth(lat float64, meters float64) float64 { return lat + meters/111_000.0 }

func newSilentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

type extractorFunc func(ctx context.Context, provider, text string, image []byte) models.ExtractedFields

func (f extractorFunc) Extract(ctx context.Context, provider, text string, image []byte) models.ExtractedFields {
	return f(ctx, provider, text, image)
}

// tableExtractor возвращает заранее заданные поля по тексту сообщения
func tableExtractor(table map[string]models.ExtractedFields) service.Extractor {
	return extractorFunc(func(_ context.Context, _, text string, _ []byte) models.ExtractedFields {
		return table[text]
	})
}

type geocoderFunc func(ctx context.Context, label *string) models.Coordinates

func (f geocoderFunc) Resolve(ctx context.Context, label *string) models.Coordinates {
	return f(ctx, label)
}

var noGeocoder = geocoderFunc(func(context.Context, *string) models.Coordinates { return models.Coordinates{} })

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Event(nil), p.events...)
}

func (p *recordingPublisher) Types() []models.EventType {
	events := p.Events()
	types := make([]models.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// memStore - транзакционное хранилище в памяти. Одна транзакция за раз, изменения
// применяются только при успешном завершении fn.
type memStore struct {
	mu           sync.Mutex
	nextIncident int64
	nextReport   int64
	incidents    map[int64]*models.Incident
	reports      map[int64]*models.Report
	lockCalls    [][]string

	// failures подставляются в следующие транзакции по очереди
	failures []error
	// failReport - ошибка записи сообщения внутри транзакции
	failReport error
}

func newMemStore() *memStore {
	return &memStore{
		incidents: make(map[int64]*models.Incident),
		reports:   make(map[int64]*models.Report),
	}
}

func (s *memStore) WithinClusterLock(_ context.Context, lockKeys []string, fn func(tx service.ClusterTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lockCalls = append(s.lockCalls, lockKeys)
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		if err != nil {
			return err
		}
	}

	tx := &memTx{store: s, incidents: make(map[int64]*models.Incident), failWrite: s.failReport}
	if err := fn(tx); err != nil {
		return err
	}
	for id, inc := range tx.incidents {
		s.incidents[id] = copyIncident(inc)
	}
	for _, r := range tx.reports {
		c := *r
		s.reports[r.ID] = &c
	}
	return nil
}

func (s *memStore) Incidents() []*models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*models.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		result = append(result, copyIncident(inc))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *memStore) Report(id int64) *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[id]
}

func (s *memStore) ReportCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

func (s *memStore) addIncident(inc *models.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inc.ID > s.nextIncident {
		s.nextIncident = inc.ID
	}
	s.incidents[inc.ID] = copyIncident(inc)
}

type memTx struct {
	store     *memStore
	incidents map[int64]*models.Incident
	reports   []*models.Report
	failWrite error
}

func (tx *memTx) FindActiveCandidates(_ context.Context, hazardType string, _, _, _ float64) ([]*models.Incident, error) {
	var result []*models.Incident
	for _, inc := range tx.store.incidents {
		if inc.IsActive && inc.HazardType != nil && *inc.HazardType == hazardType && inc.HasCoordinates() {
			result = append(result, copyIncident(inc))
		}
	}
	// порядок выдачи намеренно обратный, движок сам выбирает наименьший id
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (tx *memTx) CreateIncident(_ context.Context, incident *models.Incident) error {
	tx.store.nextIncident++
	incident.ID = tx.store.nextIncident
	tx.incidents[incident.ID] = copyIncident(incident)
	return nil
}

func (tx *memTx) UpdateIncident(_ context.Context, incident *models.Incident) error {
	if _, ok := tx.store.incidents[incident.ID]; !ok {
		return service.ErrNotFound
	}
	tx.incidents[incident.ID] = copyIncident(incident)
	return nil
}

func (tx *memTx) CreateReport(_ context.Context, report *models.Report) error {
	if tx.failWrite != nil {
		return tx.failWrite
	}
	tx.store.nextReport++
	report.ID = tx.store.nextReport
	c := *report
	tx.reports = append(tx.reports, &c)
	return nil
}

func copyIncident(inc *models.Incident) *models.Incident {
	c := *inc
	return &c
}
