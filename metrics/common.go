package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the basic namespace where all metrics are defined under.
	Namespace = "aa"
)

// NewCounter creates a Counter metrics under the global namespace.
func NewCounter(name, subsystem, help string, labels []string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewHistogramWithBuckets creates a Histogram metrics with custom buckets.
func NewHistogramWithBuckets(name, subsystem, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets}, labels)
}

// Outcome labels of a finished operation.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeReverted = "reverted"
)

// Timer observes time since it was started.
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// StartTimer starts timer for the observer.
func StartTimer(observer prometheus.Observer, now time.Time) Timer {
	return Timer{start: now, observer: observer}
}

// Stop records the duration in seconds.
func (t Timer) Stop(now time.Time) time.Duration {
	elapsed := now.Sub(t.start)
	t.observer.Observe(elapsed.Seconds())
	return elapsed
}
