package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts browser activity for the diagnostics endpoint.
type Metrics struct {
	Activations   prometheus.Counter
	Rejections    prometheus.Counter
	Records       prometheus.Gauge
	ImageFailures prometheus.Counter
}

// New registers the browser metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Activations: f.NewCounter(prometheus.CounterOpts{
			Name: "menagerie_activations_total",
			Help: "Accepted button activations",
		}),
		Rejections: f.NewCounter(prometheus.CounterOpts{
			Name: "menagerie_rejections_total",
			Help: "Activations rejected because the id did not resolve",
		}),
		Records: f.NewGauge(prometheus.GaugeOpts{
			Name: "menagerie_catalogue_records",
			Help: "Records in the loaded catalogue",
		}),
		ImageFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "menagerie_image_failures_total",
			Help: "Artwork loads that failed and were hidden",
		}),
	}
}

// IncActivation records an accepted activation.
func (m *Metrics) IncActivation() {
	if m != nil {
		m.Activations.Inc()
	}
}

// IncRejection records a rejected activation.
func (m *Metrics) IncRejection() {
	if m != nil {
		m.Rejections.Inc()
	}
}

// SetRecords records the catalogue size.
func (m *Metrics) SetRecords(n int) {
	if m != nil {
		m.Records.Set(float64(n))
	}
}

// IncImageFailure records a failed artwork load.
func (m *Metrics) IncImageFailure() {
	if m != nil {
		m.ImageFailures.Inc()
	}
}
