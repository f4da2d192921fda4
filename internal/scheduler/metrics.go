package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals //registered once per process
var (
	scheduledJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pullgit",
		Subsystem: "scheduler",
		Name:      "jobs",
		Help:      "Repositories with a live sync job.",
	})

	firesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pullgit",
		Subsystem: "scheduler",
		Name:      "fires_total",
		Help:      "Scheduled sync fires.",
	})
)
