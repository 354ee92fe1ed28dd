package cache

import (
	"time"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

// PlanEntry is the JSON document stored per plan key.
type PlanEntry struct {
	// Plan is the resolved plan. NoData plans are stored as well.
	Plan *pageplan.ResolvedPlan `json:"plan"`

	// Expires mirrors the Redis key TTL so a reader can tell how fresh the plan is
	Expires time.Time `json:"expires"`

	// CachedAt is when the plan was resolved
	CachedAt time.Time `json:"cached_at"`
}

// newPlanEntry stamps plan with now and an expiry ttl later.
func newPlanEntry(plan *pageplan.ResolvedPlan, now time.Time, ttl time.Duration) *PlanEntry {
	return &PlanEntry{Plan: plan, Expires: now.Add(ttl), CachedAt: now}
}

// IsExpired reports whether the entry is past its expiry.
func (e *PlanEntry) IsExpired() bool {
	return e.expiredAt(time.Now())
}

// TTL is the remaining lifetime, never negative.
func (e *PlanEntry) TTL() time.Duration {
	return e.remainingAt(time.Now())
}

func (e *PlanEntry) expiredAt(now time.Time) bool {
	return now.After(e.Expires)
}

func (e *PlanEntry) remainingAt(now time.Time) time.Duration {
	return max(e.Expires.Sub(now), 0)
}
