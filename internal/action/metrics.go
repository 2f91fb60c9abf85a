package action

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the run's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	eventsTotal     *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// NewMetrics returns a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pdalert_events_total",
			Help: "Events handled, by event action and outcome.",
		}, []string{"event_action", "outcome"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pdalert_request_duration_seconds",
			Help:    "Duration of the Events API request.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.eventsTotal, m.requestDuration)
	return m
}

// ObserveEvent records one handled event.
func (m *Metrics) ObserveEvent(action string, outcome Outcome) {
	m.eventsTotal.WithLabelValues(action, string(outcome)).Inc()
}

// ObserveRequest records the duration of one request.
func (m *Metrics) ObserveRequest(d time.Duration) {
	m.requestDuration.Observe(d.Seconds())
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile writes the metrics in text exposition format, in the form the
// node_exporter textfile collector reads.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "action: failed to write metrics to %q", path)
	}
	return nil
}
