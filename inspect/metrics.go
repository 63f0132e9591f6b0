package inspect

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/storex"
)

// Metrics exposes store activity to Prometheus.
type Metrics struct {
	registry     *prometheus.Registry
	builds       *prometheus.CounterVec
	modules      *prometheus.GaugeVec
	replacements *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry. An empty prefix
// defaults to "storex".
func NewMetrics(prefix string) *Metrics {
	if prefix == "" {
		prefix = "storex"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_builds_total",
				Help: "Total number of successful store factory invocations",
			},
			[]string{"store"},
		),
		modules: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + "_modules",
				Help: "Number of modules in the most recently built store",
			},
			[]string{"store"},
		),
		replacements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_state_replacements_total",
				Help: "Total number of state cell replacements",
			},
			[]string{"cell"},
		),
	}
	m.registry.MustRegister(m.builds, m.modules, m.replacements)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hook returns an on-built hook counting builds of the store called name.
func (m *Metrics) Hook(name string) func(*storex.Store) {
	return func(store *storex.Store) {
		m.builds.WithLabelValues(name).Inc()
		m.modules.WithLabelValues(name).Set(float64(store.Len()))
	}
}

// Instrument counts every cell replacement on h, labelled by cell.
// Returns a function that stops counting.
func (m *Metrics) Instrument(h *storex.Host) func() {
	return h.OnChange(func(c *storex.Cell) {
		m.replacements.WithLabelValues(c.Label()).Inc()
	})
}
