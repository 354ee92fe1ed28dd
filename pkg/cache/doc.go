// Package cache provides Redis-backed caching of resolved page plans.
//
// Resolution is referentially transparent: the same manifest snapshot, page
// request and resolver configuration always yield the same plan. Callers that
// resolve the same pages repeatedly (for instance several replicas serving
// the same listing) can share plans through Redis instead of recomputing
// them.
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Wrap a resolver with the cache
//	manager := cache.NewManager(redisClient)
//	resolver := cache.NewPlanResolver(manager, pageplan.NewResolver(pageplan.DefaultConfig()),
//		cache.DefaultTTL, logging.NewLogger("plan-cache"))
//
//	plan, err := resolver.Resolve(ctx, manifest, pageplan.PageRequest{PageNumber: 3, PageSize: 50})
//
// # Keys
//
// Keys are derived from an xxhash digest of the ordered manifest (source id,
// record count and page size), the page request and the resolver limits:
//
//	pager:plan:<digest>:page=3:size=50:max=50:src=50
//
// A manifest whose counts change produces a new digest, so stale plans are
// never served for a changed collection; they simply expire.
//
// # Integrity
//
// Plans read back from Redis are re-validated with ResolvedPlan.Validate.
// Entries that fail validation are reported as ErrInvalidEntry.
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - pager_plan_cache_hits_total - Cache hits
//   - pager_plan_cache_misses_total - Cache misses
//   - pager_plan_cache_stored_bytes_total - Bytes written to Redis
//   - pager_plan_cache_errors_total{operation} - Cache operation errors
package cache
