package geo

import (
	"fmt"
	"math"
	"sort"
)

// minMetersPerDegree - наименьшая длина градуса меридиана на WGS-84 (у экватора).
// Градус параллели на широте φ не короче minMetersPerDegree*cos(φ).
const minMetersPerDegree = 110574.0

// maxCellDegrees - шаг, при котором ячейка охватывает всю долготу (полярная шапка)
const maxCellDegrees = 512.0

// cellSizeDegrees подбирает размер ячейки сетки так, чтобы ее сторона была не меньше радиуса
// на широте lat. Тогда любой инцидент в пределах радиуса лежит в ячейке точки или в соседней.
func cellSizeDegrees(lat, radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		radiusMeters = 1
	}
	absLat := math.Min(math.Abs(lat), 90)
	size := radiusMeters / (minMetersPerDegree * math.Cos(toRadians(absLat)))
	// степень двойки от 1/1024 градуса, чтобы сетка совпадала у соседних широт
	step := 1.0 / 1024
	for step < size && step < maxCellDegrees {
		step *= 2
	}
	return step
}

// cellSteps возвращает все шаги сетки, которые выбрала бы точка в пределах радиуса от lat.
// Шаг монотонен по |lat|, поэтому у двух точек ближе радиуса всегда есть общий шаг:
// шаг на верхней границе полосы одной из них.
func cellSteps(lat, radiusMeters float64) []float64 {
	reach := math.Max(radiusMeters, 1) / minMetersPerDegree
	absLat := math.Abs(lat)
	low := cellSizeDegrees(math.Max(absLat-reach, 0), radiusMeters)
	high := cellSizeDegrees(absLat+reach, radiusMeters)

	steps := []float64{low}
	for step := low * 2; step <= high; step *= 2 {
		steps = append(steps, step)
	}
	return steps
}

// Cells возвращает отсортированные ключи ячеек, покрывающих круг заданного радиуса вокруг точки:
// для каждого возможного шага сетки ячейку точки и 8 соседних.
// Ключи используются как имена блокировок при поиске инцидента.
func Cells(hazardType string, lat, lon, radiusMeters float64) []string {
	seen := make(map[string]struct{}, 18)
	keys := make([]string, 0, 18)
	for _, step := range cellSteps(lat, radiusMeters) {
		row := int64(math.Floor((lat + 90) / step))
		col := int64(math.Floor((lon + 180) / step))
		cols := int64(math.Ceil(360 / step))

		for dr := int64(-1); dr <= 1; dr++ {
			for dc := int64(-1); dc <= 1; dc++ {
				c := ((col+dc)%cols + cols) % cols // долгота замыкается через антимеридиан
				key := fmt.Sprintf("%s|%g|%d|%d", hazardType, step, row+dr, c)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
