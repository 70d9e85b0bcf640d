package measure

import (
	"sync"
)

type DefaultMeasure struct {
	mu    sync.Mutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{}
	m.steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.steps[name]
	if !ok {
		return nil
	}

	return mt
}

// AllMetrics returns a copy of the registered metrics.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		out[name] = mt
	}

	return out
}

var _ Measure = (*DefaultMeasure)(nil)
