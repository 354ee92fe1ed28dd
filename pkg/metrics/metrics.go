// Package metrics provides the Prometheus metrics registry for the pager.
// All metrics are defined in their respective packages (pagination, cache)
// to maintain modularity and avoid circular dependencies.
//
// This package documents the available metrics and renders them as text
// for command-line output.
package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Namespace is the common prefix of every pager metric.
const Namespace = "pager_"

// Registry is the default Prometheus registry used by the pager.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer reads back what Registry collects.
var Gatherer = prometheus.DefaultGatherer

// WriteText writes every metric family from g whose name starts with prefix
// in the Prometheus text exposition format. An empty prefix writes all.
func WriteText(w io.Writer, g prometheus.Gatherer, prefix string) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Metrics Documentation
//
// Assembly Metrics (pkg/pagination):
//   - pager_fetch_tasks_total{outcome} (Counter): Fetch tasks by outcome (ok, short, error)
//   - pager_records_fetched_total (Counter): Records returned by sources
//   - pager_assembles_total{outcome} (Counter): Page assemblies by outcome (ok, no_data, error)
//   - pager_assemble_duration_seconds (Histogram): Page assembly duration
//
// Plan Cache Metrics (pkg/cache):
//   - pager_plan_cache_hits_total (Counter): Plan cache hits
//   - pager_plan_cache_misses_total (Counter): Plan cache misses
//   - pager_plan_cache_stored_bytes_total (Counter): Bytes of plans written to Redis
//   - pager_plan_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//	# Plan Cache Hit Rate
//	sum(rate(pager_plan_cache_hits_total[5m])) /
//	(sum(rate(pager_plan_cache_hits_total[5m])) + sum(rate(pager_plan_cache_misses_total[5m])))
//
//	# Short Fetch Rate
//	rate(pager_fetch_tasks_total{outcome="short"}[5m]) / rate(pager_fetch_tasks_total[5m])
//
//	# P95 Assembly Latency
//	histogram_quantile(0.95, rate(pager_assemble_duration_seconds_bucket[5m]))
