package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals //registered once per process
var (
	syncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pullgit",
		Subsystem: "sync",
		Name:      "total",
		Help:      "Sync attempts by outcome and failure reason.",
	}, []string{"outcome", "reason"})

	syncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pullgit",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Duration of clone and pull operations.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"outcome"})

	syncsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pullgit",
		Subsystem: "sync",
		Name:      "in_flight",
		Help:      "Syncs currently running.",
	})
)
