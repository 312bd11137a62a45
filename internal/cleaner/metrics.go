package cleaner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweepd_passes_total",
		Help: "Total cleanup passes started",
	})

	passesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweepd_passes_skipped_total",
		Help: "Passes skipped because no submit directory was configured",
	})

	recordsByOutcome = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweepd_records_total",
			Help: "Records processed by terminal outcome",
		},
		[]string{"outcome"},
	)

	passDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweepd_pass_duration_seconds",
		Help:    "Duration of cleanup passes",
		Buckets: prometheus.DefBuckets,
	})
)
