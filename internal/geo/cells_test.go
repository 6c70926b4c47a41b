package geo

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCells_SortedAndScopedByHazard(t *testing.T) {
	keys := Cells("Fire", 40.0, -74.0, 500)
	require.Len(t, keys, 9)
	assert.True(t, sort.StringsAreSorted(keys))
	for _, k := range keys {
		assert.Contains(t, k, "Fire|")
	}

	flood := Cells("Flood", 40.0, -74.0, 500)
	assert.NotEqual(t, keys, flood)
}

func sharedKeys(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		set[k] = struct{}{}
	}
	shared := 0
	for _, k := range b {
		if _, ok := set[k]; ok {
			shared++
		}
	}
	return shared
}

func TestCells_NearbyPointsShareCells(t *testing.T) {
	// две точки в 400 м друг от друга должны пересекаться хотя бы по одной ячейке
	a := Cells("Fire", 40.0, -74.0, 500)
	b := Cells("Fire", 40.0+400/111_000.0, -74.0, 500)
	assert.Positive(t, sharedKeys(a, b))
}

func TestCells_ShareAcrossStepBoundary(t *testing.T) {
	// ищем широту, на которой шаг сетки для радиуса 500 м удваивается (около 54.6°)
	boundary := 54.0
	for cellSizeDegrees(boundary, 500) == cellSizeDegrees(54.0, 500) {
		boundary += 0.0005
	}
	south, north := boundary-0.002, boundary+0.002
	require.NotEqual(t, cellSizeDegrees(south, 500), cellSizeDegrees(north, 500))
	require.LessOrEqual(t, DistanceMeters(south, 10, north, 10), 500.0)

	assert.Positive(t, sharedKeys(Cells("Fire", south, 10, 500), Cells("Fire", north, 10, 500)))
	assert.Positive(t, sharedKeys(Cells("Fire", 54.903, 10, 500), Cells("Fire", 54.907, 10, 500)))
}

func TestCells_EveryStepBoundaryIsShared(t *testing.T) {
	const radius = 500.0
	offset := 450 / minMetersPerDegree

	prev := cellSizeDegrees(0, radius)
	boundaries := 0
	for lat := 0.0; lat < 89.99; lat += 0.001 {
		step := cellSizeDegrees(lat, radius)
		if step == prev {
			continue
		}
		prev = step
		boundaries++

		south, north := lat-offset/2, lat+offset/2
		require.LessOrEqual(t, DistanceMeters(south, 30, north, 30), radius)
		assert.Positive(t, sharedKeys(Cells("Flood", south, 30, radius), Cells("Flood", north, 30, radius)),
			"boundary near lat %.3f", lat)
		assert.Positive(t, sharedKeys(Cells("Flood", -south, 30, radius), Cells("Flood", -north, 30, radius)),
			"boundary near lat %.3f", -lat)
	}
	assert.Greater(t, boundaries, 3)
}

func TestCells_EastWestNeighbours(t *testing.T) {
	for _, lat := range []float64{0, 45, 54.905, 70, 85, 89.5} {
		lon := 20.0
		// смещение по долготе примерно на 480 м на этой широте
		step := 480 / (111_320 * math.Cos(toRadians(lat)))
		require.LessOrEqual(t, DistanceMeters(lat, lon, lat, lon+step), 500.0, "lat %v", lat)
		assert.Positive(t, sharedKeys(Cells("Storm", lat, lon, 500), Cells("Storm", lat, lon+step, 500)), "lat %v", lat)
	}
}

func TestCells_PolarCap(t *testing.T) {
	assert.Equal(t, maxCellDegrees, cellSizeDegrees(90, 500))
	assert.Positive(t, sharedKeys(Cells("Storm", 89.999, 0, 500), Cells("Storm", 89.999, 180, 500)))
}

func TestCells_Deterministic(t *testing.T) {
	assert.Equal(t, Cells("Storm", 12.34, 56.78, 500), Cells("Storm", 12.34, 56.78, 500))
}

func TestCellSizeCoversRadius(t *testing.T) {
	for _, lat := range []float64{0, 30, 54.9, 60, 80, 89.5, 89.7} {
		step := cellSizeDegrees(lat, 500)
		// сторона ячейки по долготе в метрах не меньше радиуса
		widthMeters := DistanceMeters(lat, 0, lat, step)
		assert.GreaterOrEqual(t, widthMeters, 499.0, "lat %v", lat)
	}
}
