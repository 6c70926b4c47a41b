package geocoding

import (
	"context"
	"strings"
	"time"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

// Resolver приводит результат геокодера к координатам сообщения.
// Любая ошибка, таймаут или пустой адрес дают пустые координаты.
type Resolver struct {
	geocoder Geocoder
	timeout  time.Duration
	metrics  *observability.Metrics
	logger   *logrus.Logger
}

func NewResolver(geocoder Geocoder, timeout time.Duration, metrics *observability.Metrics, logger *logrus.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

var _ service.Geocoder = (*Resolver)(nil)

// Resolve возвращает координаты адреса label
func (r *Resolver) Resolve(ctx context.Context, label *string) models.Coordinates {
	if label == nil {
		r.metrics.GeocodeRequests.WithLabelValues("skipped").Inc()
		return models.Coordinates{}
	}
	query := strings.TrimSpace(*label)
	if query == "" || strings.EqualFold(query, models.LocationNotSpecified) {
		r.metrics.GeocodeRequests.WithLabelValues("skipped").Inc()
		return models.Coordinates{}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := r.geocoder.Geocode(ctx, query)
	r.metrics.GeocodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		r.logger.WithFields(logrus.Fields{
			"service":  "geocoding",
			"method":   "Resolve",
			"location": query,
		}).WithError(err).Warn("Geocoding failed, continuing without coordinates")
		return models.Coordinates{}
	}
	if !result.Found {
		r.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return models.Coordinates{}
	}

	r.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	lat, lon := result.Lat, result.Lon
	return models.Coordinates{Latitude: &lat, Longitude: &lon}
}
