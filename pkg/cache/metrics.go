package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks plan cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pager_plan_cache_hits_total",
			Help: "Total number of plan cache hits",
		},
	)

	// CacheMisses tracks plan cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pager_plan_cache_misses_total",
			Help: "Total number of plan cache misses",
		},
	)

	// CacheStoredBytes tracks bytes written to Redis
	CacheStoredBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pager_plan_cache_stored_bytes_total",
			Help: "Total number of bytes of plans written to the cache",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pager_plan_cache_errors_total",
			Help: "Total number of plan cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
