package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	valuationsTotal prometheus.Counter
	projections     prometheus.Counter
	simulatedPaths  prometheus.Counter
	historySent     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	signalLevel     *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		valuationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wealthsim_valuations_total",
				Help: "Total number of portfolio valuations computed",
			},
		),
		projections: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wealthsim_projections_total",
				Help: "Total number of Monte Carlo projections run",
			},
		),
		simulatedPaths: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "wealthsim_simulated_paths_total",
				Help: "Total number of simulation paths generated",
			},
		),
		historySent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthsim_history_messages_total",
				Help: "Total number of signals sent to the history backend",
			},
			[]string{"backend", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthsim_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		signalLevel: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wealthsim_signal_level",
				Help: "Last observed level for a market signal",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wealthsim_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordValuation records a computed portfolio valuation.
func (r *Recorder) RecordValuation() {
	r.valuationsTotal.Inc()
}

// RecordProjection records a completed projection and its path count.
func (r *Recorder) RecordProjection(paths int) {
	r.projections.Inc()
	r.simulatedPaths.Add(float64(paths))
}

// RecordHistorySent records a signal forwarded to the history backend.
func (r *Recorder) RecordHistorySent(backend, symbol string) {
	r.historySent.WithLabelValues(backend, symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSignalLevel records the last observed level for a symbol.
func (r *Recorder) RecordSignalLevel(symbol string, level float64) {
	r.signalLevel.WithLabelValues(symbol).Set(level)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
