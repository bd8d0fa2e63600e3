package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap lazily allocates one *T per key
// Only allocation locks; hot paths hold on to the pointer from Get
type MetricMap[T any] struct {
	mu      sync.Mutex
	metrics map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{metrics: make(map[string]*T)}
}

// Get returns the metric for key, creating a zero T on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.metrics[key]
	if !ok {
		p = new(T)
		m.metrics[key] = p
	}
	return p
}

func (m *MetricMap[T]) Has(key string) bool {
	m.mu.Lock()
	_, ok := m.metrics[key]
	m.mu.Unlock()
	return ok
}

// Range visits metrics by ascending key over a snapshot, fn may call Get
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.Lock()
	snap := maps.Clone(m.metrics)
	m.mu.Unlock()

	for _, k := range slices.Sorted(maps.Keys(snap)) {
		fn(k, snap[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.metrics)
}
