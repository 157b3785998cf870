package sql

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aamultisig/go-aamultisig/metrics"
)

const subsystem = "database"

var (
	// queryDuration in nanoseconds.
	queryDuration = metrics.NewHistogramWithBuckets(
		"query_duration",
		subsystem,
		"Duration of the query in nanoseconds",
		[]string{"query"},
		prometheus.ExponentialBuckets(100_000, 2, 20),
	)
	connWaitLatency = metrics.NewHistogramWithBuckets(
		"conn_wait_seconds",
		subsystem,
		"Time waiting for a pooled connection",
		[]string{},
		prometheus.ExponentialBuckets(0.0001, 2, 16),
	).WithLabelValues()
)
