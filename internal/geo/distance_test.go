package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestDistance_MissingInputIsInfinite(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 *float64
	}{
		{"lat1", nil, ptr(1), ptr(1), ptr(1)},
		{"lon1", ptr(1), nil, ptr(1), ptr(1)},
		{"lat2", ptr(1), ptr(1), nil, ptr(1)},
		{"lon2", ptr(1), ptr(1), ptr(1), nil},
		{"all", nil, nil, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, math.IsInf(Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2), 1))
		})
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {55.7558, 37.6173}, {-33.8688, 151.2093}, {89.9, 10}, {40.7128, -74.006}}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(ptr(p[0]), ptr(p[1]), ptr(p[0]), ptr(p[1])))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{55.7558, 37.6173, 59.9343, 30.3351},
		{40.7128, -74.006, 34.0522, -118.2437},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 0, 0, 179.5},
	}
	for _, p := range pairs {
		ab := DistanceMeters(p[0], p[1], p[2], p[3])
		ba := DistanceMeters(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-6)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// Москва - Санкт-Петербург, около 634 км
	assert.InDelta(t, 634_000, DistanceMeters(55.7558, 37.6173, 59.9343, 30.3351), 3_000)

	// один градус широты на экваторе - 110574 м по эллипсоиду
	assert.InDelta(t, 110_574, DistanceMeters(0, 0, 1, 0), 5)

	// 40 метров к северу
	lat := 40.0
	d := DistanceMeters(lat, -74, lat+40/111_000.0, -74)
	assert.InDelta(t, 40, d, 0.5)
}

func TestDistance_NearlyAntipodalFallsBack(t *testing.T) {
	d := DistanceMeters(0, 0, 0.5, 179.7)
	assert.False(t, math.IsNaN(d))
	assert.Greater(t, d, 19_900_000.0)
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{name: "origin", lat: 0, lon: 0, want: true},
		{name: "poles and antimeridian", lat: -90, lon: 180, want: true},
		{name: "latitude too large", lat: 200, lon: 10, want: false},
		{name: "longitude too large", lat: 10, lon: 500, want: false},
		{name: "latitude below -90", lat: -90.0001, lon: 0, want: false},
		{name: "NaN", lat: math.NaN(), lon: 0, want: false},
		{name: "infinite", lat: 0, lon: math.Inf(-1), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinates(tt.lat, tt.lon))
		})
	}
}
