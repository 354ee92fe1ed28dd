package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long resolved plans stay cached.
const DefaultTTL = 5 * time.Minute

var (
	// ErrCacheMiss means no usable plan is stored under the key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry means a stored plan could not be decoded or breaks a
	// plan invariant.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Manager stores plan entries in Redis as JSON, one key per PlanKey.
type Manager struct {
	redis *redis.Client
}

// NewManager creates a Manager. It panics if redisClient is nil.
func NewManager(redisClient *redis.Client) *Manager {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Manager{redis: redisClient}
}

// Get returns the entry stored under key. Expired entries are removed and
// reported as ErrCacheMiss; undecodable or inconsistent plans as
// ErrInvalidEntry.
func (m *Manager) Get(ctx context.Context, key PlanKey) (*PlanEntry, error) {
	data, err := m.redis.Get(ctx, key.String()).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	case err != nil:
		return nil, failed("get", fmt.Errorf("redis get: %w", err))
	}

	entry, err := decodeEntry(data)
	if err != nil {
		return nil, failed("get", err)
	}

	if entry.IsExpired() {
		_ = m.Delete(ctx, key)
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.Inc()
	return entry, nil
}

// Set stores entry until entry.Expires. An entry that is already expired is
// silently skipped.
func (m *Manager) Set(ctx context.Context, key PlanKey, entry *PlanEntry) error {
	if entry == nil || entry.Plan == nil {
		return errors.New("cache entry and plan cannot be nil")
	}

	ttl := entry.TTL()
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return failed("set", fmt.Errorf("marshal cache entry: %w", err))
	}
	if err := m.redis.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		return failed("set", fmt.Errorf("redis set: %w", err))
	}

	CacheStoredBytes.Add(float64(len(data)))
	return nil
}

// Delete removes the entry stored under key, if any.
func (m *Manager) Delete(ctx context.Context, key PlanKey) error {
	if err := m.redis.Del(ctx, key.String()).Err(); err != nil {
		return failed("delete", fmt.Errorf("redis del: %w", err))
	}
	return nil
}

// decodeEntry parses a stored entry and re-validates its plan.
func decodeEntry(data []byte) (*PlanEntry, error) {
	var entry PlanEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if entry.Plan == nil {
		return nil, fmt.Errorf("%w: missing plan", ErrInvalidEntry)
	}
	if err := entry.Plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return &entry, nil
}

// failed counts err against operation and returns it.
func failed(operation string, err error) error {
	CacheErrors.WithLabelValues(operation).Inc()
	return err
}
