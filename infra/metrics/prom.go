// Package metrics exposes solve counters through Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SolveSink records assignment solves in Prometheus metrics.
type SolveSink struct {
	solves   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewSolveSink registers solve metrics on the default Prometheus registerer.
func NewSolveSink() (*SolveSink, error) {
	return NewSolveSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewSolveSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewSolveSinkWithRegistry(reg prometheus.Registerer) (*SolveSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewsolve_solves_total",
		Help: "Total number of assignment solves by outcome",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "crewsolve_duration_seconds",
		Help:    "Wall time spent solving one leg",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &SolveSink{solves: solves, duration: duration}, nil
}

// RecordSolve counts one solve under its outcome and observes its duration.
func (s *SolveSink) RecordSolve(status string, elapsed time.Duration) {
	s.solves.WithLabelValues(status).Inc()
	s.duration.Observe(elapsed.Seconds())
}
