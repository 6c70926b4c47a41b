package geocoding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newSilentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func unlimited() *rate.Limiter { return rate.NewLimiter(rate.Inf, 1) }

func strPtr(v string) *string { return &v }

type geocoderFunc func(ctx context.Context, query string) (Result, error)

func (f geocoderFunc) Geocode(ctx context.Context, query string) (Result, error) {
	return f(ctx, query)
}

func TestNominatimClient_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "5th and Main Street, San Francisco", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "crisisflow-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"lat": "37.7749", "lon": "-122.4194", "display_name": "San Francisco, CA"}]`)
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, "crisisflow-test", srv.Client(), unlimited())
	result, err := client.Geocode(context.Background(), "5th and Main Street, San Francisco")
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 37.7749, result.Lat)
	assert.Equal(t, -122.4194, result.Lon)
	assert.Equal(t, "San Francisco, CA", result.DisplayName)
}

func TestNominatimClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	result, err := NewNominatimClient(srv.URL, "ua", nil, unlimited()).Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestNominatimClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewNominatimClient(srv.URL, "ua", nil, unlimited()).Geocode(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestNominatimClient_RateLimitHonoursContext(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow()) // исчерпываем запас

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewNominatimClient("http://127.0.0.1:0", "ua", nil, limiter).Geocode(ctx, "x")
	assert.Error(t, err)
}

func TestCachedGeocoder_CachesFoundResultsOnly(t *testing.T) {
	var calls atomic.Int32
	inner := geocoderFunc(func(_ context.Context, query string) (Result, error) {
		calls.Add(1)
		if query == "nowhere" {
			return Result{}, nil
		}
		return Result{Lat: 1, Lon: 2, Found: true}, nil
	})
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, metrics)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := cached.Geocode(ctx, "Main Street")
		require.NoError(t, err)
		assert.True(t, result.Found)
	}
	_, _ = cached.Geocode(ctx, " main street ")
	_, _ = cached.Geocode(ctx, "nowhere")
	_, _ = cached.Geocode(ctx, "nowhere")

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 3.0, observability.MetricValue(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 3.0, observability.MetricValue(metrics.GeocodeCache.WithLabelValues("miss")))
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)
	cache.put("a", Result{Lat: 1, Found: true})
	cache.put("b", Result{Lat: 2, Found: true})
	_, _ = cache.get("a")
	cache.put("c", Result{Lat: 3, Found: true})

	_, ok := cache.get("b")
	assert.False(t, ok)
	a, ok := cache.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, a.Lat)
	assert.Equal(t, 2, cache.len())
}

func TestResolver(t *testing.T) {
	ok := geocoderFunc(func(context.Context, string) (Result, error) {
		return Result{Lat: 40.7, Lon: -74.0, Found: true}, nil
	})
	failing := geocoderFunc(func(context.Context, string) (Result, error) {
		return Result{}, errors.New("connection refused")
	})
	empty := geocoderFunc(func(context.Context, string) (Result, error) { return Result{}, nil })

	tests := []struct {
		name     string
		geocoder Geocoder
		label    *string
		resolved bool
	}{
		{"found", ok, strPtr("Brooklyn Bridge"), true},
		{"nil label", ok, nil, false},
		{"blank label", ok, strPtr("   "), false},
		{"not specified", ok, strPtr(models.LocationNotSpecified), false},
		{"provider error", failing, strPtr("Brooklyn Bridge"), false},
		{"not found", empty, strPtr("Atlantis"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.geocoder, time.Second, observability.NewMetricsForTesting(), newSilentLogger())
			coords := r.Resolve(context.Background(), tt.label)
			assert.Equal(t, tt.resolved, coords.Resolved())
			if !tt.resolved {
				assert.Nil(t, coords.Latitude)
				assert.Nil(t, coords.Longitude)
			}
		})
	}
}

func TestResolver_Timeout(t *testing.T) {
	slow := geocoderFunc(func(ctx context.Context, _ string) (Result, error) {
		<-ctx.Done()
		return Result{}, ctx.Err()
	})
	r := NewResolver(slow, 20*time.Millisecond, observability.NewMetricsForTesting(), newSilentLogger())

	start := time.Now()
	coords := r.Resolve(context.Background(), strPtr("Main Street"))
	assert.False(t, coords.Resolved())
	assert.Less(t, time.Since(start), time.Second)
}
