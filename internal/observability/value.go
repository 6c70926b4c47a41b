package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// MetricValue returns the current value of a counter or gauge, the sample count of a
// histogram, or 0 for other metric kinds.
func MetricValue(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0
	}
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	case out.Histogram != nil:
		return float64(out.GetHistogram().GetSampleCount())
	}
	return 0
}
