package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/federated-pager/pkg/cache"
	"github.com/Sternrassler/federated-pager/pkg/manifest"
	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

// redisPingTimeout bounds the startup check of the plan cache.
const redisPingTimeout = 2 * time.Second

// resolveFlags are shared by every command that resolves a page.
type resolveFlags struct {
	manifestPath   string
	page           int
	size           int
	maxPageSize    int
	sourcePageSize int
	redisAddr      string
	cacheTTL       time.Duration
}

func addResolveFlags(cmd *cobra.Command, f *resolveFlags) {
	cmd.Flags().StringVar(&f.manifestPath, "manifest", "", "path to the YAML source manifest (required)")
	cmd.Flags().IntVar(&f.page, "page", 1, "global page number (1-based)")
	cmd.Flags().IntVar(&f.size, "size", pageplan.DefaultMaxPageSize, "global page size")
	cmd.Flags().IntVar(&f.maxPageSize, "max-page-size", pageplan.DefaultMaxPageSize, "largest accepted page size")
	cmd.Flags().IntVar(&f.sourcePageSize, "source-page-size", pageplan.DefaultSourcePageSize,
		"page size of sources that do not declare one")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", getEnv("PAGER_REDIS_ADDR", ""),
		"Redis address for the plan cache, empty disables caching (env PAGER_REDIS_ADDR)")
	cmd.Flags().DurationVar(&f.cacheTTL, "cache-ttl", cache.DefaultTTL, "plan cache TTL")
	_ = cmd.MarkFlagRequired("manifest")
}

func (f *resolveFlags) request() pageplan.PageRequest {
	return pageplan.PageRequest{PageNumber: f.page, PageSize: f.size}
}

func (f *resolveFlags) resolverConfig() pageplan.Config {
	return pageplan.Config{
		MaxPageSize:           f.maxPageSize,
		DefaultSourcePageSize: f.sourcePageSize,
	}
}

// resolution is a loaded manifest together with its resolved plan.
type resolution struct {
	manifest pageplan.Manifest
	resolver *pageplan.Resolver
	plan     *pageplan.ResolvedPlan
}

// resolve loads the manifest and resolves the requested page, going through
// the Redis plan cache when one is configured and reachable.
func (f *resolveFlags) resolve(ctx context.Context) (*resolution, error) {
	if f.maxPageSize < 1 {
		return nil, fmt.Errorf("max-page-size must be >= 1, got %d", f.maxPageSize)
	}
	if f.sourcePageSize < 1 {
		return nil, fmt.Errorf("source-page-size must be >= 1, got %d", f.sourcePageSize)
	}
	if f.cacheTTL < 0 {
		return nil, fmt.Errorf("cache-ttl must be >= 0, got %s", f.cacheTTL)
	}

	m, err := manifest.Load(f.manifestPath)
	if err != nil {
		return nil, err
	}
	resolver := pageplan.NewResolver(f.resolverConfig())
	req := f.request()
	logger := zerolog.Ctx(ctx)

	logger.Debug().
		Str("manifest", f.manifestPath).
		Int("sources", len(m)).
		Int("total", m.Total()).
		Msg("Loaded manifest")

	var plan *pageplan.ResolvedPlan
	if client := f.redisClient(ctx); client != nil {
		defer client.Close()
		planResolver := cache.NewPlanResolver(cache.NewManager(client), resolver, f.cacheTTL, *logger)
		plan, err = planResolver.Resolve(ctx, m, req)
	} else {
		plan, err = resolver.Resolve(m, req)
	}
	if err != nil {
		return nil, err
	}

	return &resolution{manifest: m, resolver: resolver, plan: plan}, nil
}

// redisClient returns a connected client, or nil when caching is disabled or
// Redis cannot be reached.
func (f *resolveFlags) redisClient(ctx context.Context) *redis.Client {
	if f.redisAddr == "" {
		return nil
	}
	logger := zerolog.Ctx(ctx)
	client := redis.NewClient(&redis.Options{Addr: f.redisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", f.redisAddr).Msg("Redis unavailable - resolving without plan cache")
		client.Close()
		return nil
	}
	logger.Debug().Str("addr", f.redisAddr).Msg("Connected to Redis")
	return client
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
