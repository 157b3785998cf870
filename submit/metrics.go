package submit

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aamultisig/go-aamultisig/metrics"
)

const subsystem = "submit"

var (
	submissions = metrics.NewCounter(
		"broadcasts",
		subsystem,
		"number of broadcast attempts by outcome",
		[]string{"outcome"},
	)
	receipts = metrics.NewCounter(
		"receipts",
		subsystem,
		"number of awaited receipts by outcome",
		[]string{"outcome"},
	)
	inclusionLatency = metrics.NewHistogramWithBuckets(
		"inclusion_seconds",
		subsystem,
		"time from broadcast to receipt",
		[]string{},
		prometheus.ExponentialBuckets(0.5, 2, 10),
	).WithLabelValues()
)
