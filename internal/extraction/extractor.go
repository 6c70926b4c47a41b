package extraction

import (
	"context"
	"strings"
	"time"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

// ProviderDummy - провайдер, работающий только по ключевым словам
const ProviderDummy = "dummy"

// Provider извлекает поля через внешнюю модель и может вернуть ошибку
type Provider interface {
	ExtractText(ctx context.Context, text string) (models.ExtractedFields, error)
	ExtractImage(ctx context.Context, text string, image []byte) (models.ExtractedFields, error)
}

// Adapter выбирает провайдера, ограничивает вызов таймаутом и при любом сбое
// возвращает результат Rules
type Adapter struct {
	providers       map[string]Provider
	defaultProvider string
	timeout         time.Duration
	metrics         *observability.Metrics
	logger          *logrus.Logger
}

// NewAdapter создает адаптер. Провайдеры без ключа не регистрируются и обслуживаются правилами.
func NewAdapter(defaultProvider string, timeout time.Duration, metrics *observability.Metrics, logger *logrus.Logger) *Adapter {
	if defaultProvider == "" {
		defaultProvider = ProviderDummy
	}
	return &Adapter{
		providers:       make(map[string]Provider),
		defaultProvider: strings.ToLower(defaultProvider),
		timeout:         timeout,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register добавляет провайдера под именем name
func (a *Adapter) Register(name string, provider Provider) {
	a.providers[strings.ToLower(name)] = provider
}

var _ service.Extractor = (*Adapter)(nil)

// Extract никогда не возвращает ошибку
func (a *Adapter) Extract(ctx context.Context, provider, text string, image []byte) models.ExtractedFields {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = a.defaultProvider
	}

	log := a.logger.WithFields(logrus.Fields{
		"service":  "extraction",
		"method":   "Extract",
		"provider": name,
	})

	client, ok := a.providers[name]
	if !ok {
		if name != ProviderDummy {
			log.Warn("Extraction provider is not configured, using keyword rules")
		}
		a.metrics.ExtractionRequests.WithLabelValues(name, "rules").Inc()
		return Rules(text)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	fields, err := a.callProvider(ctx, client, text, image, log)
	a.metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Warn("Extraction provider failed, using keyword rules")
		a.metrics.ExtractionRequests.WithLabelValues(name, "fallback").Inc()
		a.metrics.ExtractionFallbacks.Inc()
		return Rules(text)
	}

	a.metrics.ExtractionRequests.WithLabelValues(name, "success").Inc()
	return fields
}

// callProvider пробует изображение, затем текст
func (a *Adapter) callProvider(ctx context.Context, client Provider, text string, image []byte, log *logrus.Entry) (models.ExtractedFields, error) {
	if len(image) > 0 {
		fields, err := client.ExtractImage(ctx, text, image)
		if err == nil {
			return fields, nil
		}
		log.WithError(err).Warn("Image extraction failed, retrying with text only")
	}
	return client.ExtractText(ctx, text)
}
