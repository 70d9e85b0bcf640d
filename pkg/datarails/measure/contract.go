package measure

import "time"

// Measure holds named metrics.
type Measure interface {
	// AddMetric returns the metric registered under name, creating it if needed.
	AddMetric(name string) Metric
	// GetMetric returns nil when no metric is registered under name.
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates durations.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	Count() int64
	SetTotalDuration(totalDuration time.Duration)
	GetTotalDuration() time.Duration
}
