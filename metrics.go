package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the application
type Metrics struct {
	// Signing metrics
	SignAttemptsTotal   *prometheus.CounterVec
	SignAttemptsSuccess *prometheus.CounterVec
	SignAttemptsFail    *prometheus.CounterVec
	SigningLatency      prometheus.Histogram

	// Key material metrics
	KeysGenerated prometheus.Counter
	KeysImported  prometheus.Counter
}

// NewMetrics initializes and registers Prometheus metrics
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers Prometheus metrics with a custom registry
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	metrics := &Metrics{
		SignAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signer_sign_attempts_total",
				Help: "The total number of signing attempts",
			},
			[]string{"operation"},
		),
		SignAttemptsSuccess: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signer_sign_attempts_success",
				Help: "The total number of successfull signing attempts",
			},
			[]string{"operation"},
		),
		SignAttemptsFail: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signer_sign_attempts_fail",
				Help: "The total number of failed signing attempts",
			},
			[]string{"operation"},
		),
		SigningLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "signer_signing_latency_seconds",
			Help: "Wall-clock duration of the curve signing computation",
			// Signing is sub-millisecond to low-millisecond on reference hardware.
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		KeysGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "signer_keys_generated_total",
			Help: "The total number of ephemeral keys generated",
		}),
		KeysImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "signer_keys_imported_total",
			Help: "The total number of keys reconstructed from caller-supplied bytes",
		}),
	}

	return metrics
}
