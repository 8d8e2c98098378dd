package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

type FeatureMetrics struct {
	service string

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    *prometheus.GaugeVec
	available   *prometheus.GaugeVec
}

func NewFeatureMetrics(service string, registerer prometheus.Registerer) *FeatureMetrics {
	invocations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feature",
			Name:      "invocations_total",
			Help:      "Feature invocations by outcome.",
		},
		[]string{"service", "feature", "outcome"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "feature",
			Name:      "duration_seconds",
			Help:      "Feature execution duration in seconds by outcome.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "feature", "outcome"},
	)
	inFlight := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feature",
			Name:      "in_flight",
			Help:      "Feature invocations currently running.",
		},
		[]string{"service", "feature"},
	)
	available := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feature",
			Name:      "available",
			Help:      "1 when the feature was usable at the last capability check.",
		},
		[]string{"service", "feature"},
	)

	if registerer != nil {
		registerer.MustRegister(invocations, duration, inFlight, available)
	}

	return &FeatureMetrics{
		service:     service,
		invocations: invocations,
		duration:    duration,
		inFlight:    inFlight,
		available:   available,
	}
}

func (m *FeatureMetrics) StartFeature(feature domain.Feature) {
	m.inFlight.WithLabelValues(m.service, string(feature)).Inc()
}

func (m *FeatureMetrics) FinishFeature(feature domain.Feature, kind domain.FailureKind, seconds float64) {
	m.inFlight.WithLabelValues(m.service, string(feature)).Dec()

	outcome := string(kind)
	if kind == domain.FailureNone {
		outcome = "success"
	}
	m.invocations.WithLabelValues(m.service, string(feature), outcome).Inc()
	m.duration.WithLabelValues(m.service, string(feature), outcome).Observe(seconds)
}

func (m *FeatureMetrics) ObserveAvailability(snapshot map[domain.Feature]domain.Availability) {
	for feature, a := range snapshot {
		v := 0.0
		if a.Usable {
			v = 1
		}
		m.available.WithLabelValues(m.service, string(feature)).Set(v)
	}
}
