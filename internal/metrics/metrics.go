// Package metrics exports solver activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/born-ml/solvers/internal/adam"
)

// common prefix for all metric names
const prefix = "solvers_adam_"

const (
	stateLabel = "state"
	paramLabel = "param"
)

// Recorder counts finished runs and rejected inputs. It implements both
// adam.Recorder and prometheus.Collector, so it can be passed to
// adam.WithRecorder and registered as is.
type Recorder struct {
	runs               *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	iterations         prometheus.Histogram
	objectiveEvals     prometheus.Histogram
	allMetrics         []prometheus.Collector
}

var _ adam.Recorder = (*Recorder)(nil)

// NewRecorder creates a Recorder with unregistered metrics.
func NewRecorder() *Recorder {
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "runs_total",
			Help: "Completed runs by terminal state",
		},
		[]string{stateLabel},
	)
	validationFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "validation_failures_total",
			Help: "Runs rejected before the first evaluation, by offending parameter",
		},
		[]string{paramLabel},
	)
	iterations := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "iterations",
			Help:    "Iterations performed per completed run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		},
	)
	objectiveEvals := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "objective_evaluations",
			Help:    "Objective evaluations per completed run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		},
	)
	return &Recorder{
		runs:               runs,
		validationFailures: validationFailures,
		iterations:         iterations,
		objectiveEvals:     objectiveEvals,
		allMetrics: []prometheus.Collector{
			runs,
			validationFailures,
			iterations,
			objectiveEvals,
		},
	}
}

func (r *Recorder) RecordRun(state adam.State, result *adam.Result) {
	r.runs.WithLabelValues(state.String()).Inc()
	r.iterations.Observe(float64(result.NIter()))
	r.objectiveEvals.Observe(float64(result.NObjEval()))
}

func (r *Recorder) RecordValidationFailure(param string) {
	if param == "" {
		param = "unknown"
	}
	r.validationFailures.WithLabelValues(param).Inc()
}

func (r *Recorder) Describe(ch chan<- *prometheus.Desc) {
	for _, metric := range r.allMetrics {
		metric.Describe(ch)
	}
}

func (r *Recorder) Collect(ch chan<- prometheus.Metric) {
	for _, metric := range r.allMetrics {
		metric.Collect(ch)
	}
}
