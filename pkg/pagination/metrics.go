package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchTasks tracks executed fetch tasks by outcome
	FetchTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pager_fetch_tasks_total",
			Help: "Total number of source fetch tasks executed",
		},
		[]string{"outcome"}, // "ok", "short", "error"
	)

	// RecordsFetched tracks records returned by sources
	RecordsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pager_records_fetched_total",
			Help: "Total number of records fetched from sources",
		},
	)

	// Assembles tracks page assemblies by outcome
	Assembles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pager_assembles_total",
			Help: "Total number of global page assemblies",
		},
		[]string{"outcome"}, // "ok", "no_data", "error"
	)

	// AssembleDuration tracks how long a page assembly takes
	AssembleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pager_assemble_duration_seconds",
			Help:    "Duration of global page assembly in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
		},
	)
)
