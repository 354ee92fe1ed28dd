package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

// PlanResolver resolves page plans through the cache.
type PlanResolver struct {
	manager  *Manager
	resolver *pageplan.Resolver
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewPlanResolver wraps resolver with manager. A non-positive ttl means DefaultTTL.
func NewPlanResolver(manager *Manager, resolver *pageplan.Resolver, ttl time.Duration, logger zerolog.Logger) *PlanResolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PlanResolver{
		manager:  manager,
		resolver: resolver,
		ttl:      ttl,
		logger:   logger,
	}
}

// Resolve returns the cached plan for (manifest, req) or resolves and caches
// it. Validation errors are returned as-is and never cached. Cache failures
// are logged and do not fail the call.
func (r *PlanResolver) Resolve(ctx context.Context, manifest pageplan.Manifest, req pageplan.PageRequest) (*pageplan.ResolvedPlan, error) {
	key := NewPlanKey(manifest, req, r.resolver.Config())

	entry, err := r.manager.Get(ctx, key)
	switch {
	case err == nil && entry.Plan.Request == req && entry.Plan.Total == manifest.Total():
		r.logger.Debug().
			Str("key", key.String()).
			Dur("ttl", entry.TTL()).
			Msg("Plan cache hit")
		return entry.Plan, nil
	case err == nil:
		r.logger.Warn().
			Str("key", key.String()).
			Int("cached_total", entry.Plan.Total).
			Int("total", manifest.Total()).
			Msg("Cached plan answers a different request or manifest - ignoring")
	case errors.Is(err, ErrCacheMiss):
		r.logger.Debug().Str("key", key.String()).Msg("Plan cache miss")
	default:
		r.logger.Warn().Err(err).Str("key", key.String()).Msg("Plan cache get error")
	}

	plan, err := r.resolver.Resolve(manifest, req)
	if err != nil {
		return nil, err
	}

	if err := r.manager.Set(ctx, key, newPlanEntry(plan, time.Now(), r.ttl)); err != nil {
		r.logger.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache plan")
	} else {
		r.logger.Debug().
			Str("key", key.String()).
			Bool("no_data", plan.NoData).
			Dur("ttl", r.ttl).
			Msg("Cached plan")
	}

	return plan, nil
}
