package events

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts emissions and recovered handler panics per emitter name.
// A nil *Metrics records nothing.
type Metrics struct {
	emissions *prometheus.CounterVec
	panics    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		emissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracked",
			Subsystem: "events",
			Name:      "emissions_total",
			Help:      "Number of emissions that reached at least one handler.",
		}, []string{"emitter"}),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracked",
			Subsystem: "events",
			Name:      "handler_panics_total",
			Help:      "Number of handler panics recovered during emission.",
		}, []string{"emitter"}),
	}
	if reg != nil {
		reg.MustRegister(m.emissions, m.panics)
	}
	return m
}

// Collectors exposes the underlying collectors, for custom registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.emissions, m.panics}
}

func (m *Metrics) emitted(emitter string) {
	if m == nil {
		return
	}
	m.emissions.WithLabelValues(emitter).Inc()
}

func (m *Metrics) panicked(emitter string) {
	if m == nil {
		return
	}
	m.panics.WithLabelValues(emitter).Inc()
}
