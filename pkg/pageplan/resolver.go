package pageplan

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxPageSize is the largest global page a caller may request.
	DefaultMaxPageSize = 50

	// DefaultSourcePageSize applies to sources that do not declare a page size.
	DefaultSourcePageSize = 50
)

// Config holds resolver configuration.
type Config struct {
	// MaxPageSize caps PageRequest.PageSize. It is independent of any
	// source's own page size.
	MaxPageSize int

	// DefaultSourcePageSize is used for sources with PageSize == 0.
	DefaultSourcePageSize int
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{
		MaxPageSize:           DefaultMaxPageSize,
		DefaultSourcePageSize: DefaultSourcePageSize,
	}
}

// Resolver turns page requests into resolved plans. It is immutable and safe
// for concurrent use.
type Resolver struct {
	config Config
}

// NewResolver creates a resolver. Non-positive config values fall back to
// the defaults.
func NewResolver(config Config) *Resolver {
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = DefaultMaxPageSize
	}
	if config.DefaultSourcePageSize <= 0 {
		config.DefaultSourcePageSize = DefaultSourcePageSize
	}
	return &Resolver{config: config}
}

// Config returns the effective configuration.
func (r *Resolver) Config() Config {
	return r.config
}

var defaultResolver = NewResolver(DefaultConfig())

// Resolve resolves req against manifest with the default configuration.
func Resolve(manifest Manifest, req PageRequest) (*ResolvedPlan, error) {
	return defaultResolver.Resolve(manifest, req)
}

// Resolve computes the plan for one global page.
//
// Malformed requests return an error wrapping ErrInvalidRequest, malformed
// manifests one wrapping ErrInvalidManifest. A well-formed request past the
// end of the data returns a plan with NoData set and a nil error.
func (r *Resolver) Resolve(manifest Manifest, req PageRequest) (*ResolvedPlan, error) {
	if err := r.validateRequest(req); err != nil {
		return nil, err
	}
	total, err := r.validateManifest(manifest)
	if err != nil {
		return nil, err
	}

	plan := &ResolvedPlan{Request: req, Total: total}

	start, end, ok := pageBounds(req)
	if !ok {
		// Page lies beyond any representable index.
		plan.StartIndex, plan.EndIndex, plan.NoData = math.MaxInt, math.MaxInt, true
		return plan, nil
	}
	plan.StartIndex, plan.EndIndex = start, end
	if start >= total {
		plan.NoData = true
		return plan, nil
	}
	plan.EndIndex = min(end, total-1)

	ranges := overlappingRanges(manifest, plan.StartIndex, plan.EndIndex)
	plan.Sources = make([]SourcePlan, 0, len(ranges))
	for i, rng := range ranges {
		pageSize := r.SourcePageSize(manifest[rng.index])
		tasks, err := PlanTasks(rng.LocalStart, rng.LocalEnd, pageSize)
		if err != nil {
			// Unreachable for validated input.
			return nil, fmt.Errorf("plan source %d (%s): %w", i, rng.SourceID, err)
		}
		plan.Sources = append(plan.Sources, SourcePlan{
			Range:    rng.SourceRange,
			PageSize: pageSize,
			Tasks:    tasks,
		})
	}

	return plan, nil
}

// SourcePageSize returns the page size tasks for src are expressed in.
func (r *Resolver) SourcePageSize(src Source) int {
	if src.PageSize > 0 {
		return src.PageSize
	}
	return r.config.DefaultSourcePageSize
}

func (r *Resolver) validateRequest(req PageRequest) error {
	if req.PageNumber < 1 {
		return invalidRequest("page_number", "must be >= 1 (got %d)", req.PageNumber)
	}
	if req.PageSize < 1 {
		return invalidRequest("page_size", "must be >= 1 (got %d)", req.PageSize)
	}
	if req.PageSize > r.config.MaxPageSize {
		return invalidRequest("page_size", "must be <= %d (got %d)", r.config.MaxPageSize, req.PageSize)
	}
	return nil
}

// validateManifest checks every source and returns the total record count.
func (r *Resolver) validateManifest(manifest Manifest) (int, error) {
	seen := make(map[string]struct{}, len(manifest))
	total := 0
	for i, src := range manifest {
		field := fmt.Sprintf("sources[%d]", i)
		if src.ID == "" {
			return 0, invalidManifest(field+".id", "must not be empty")
		}
		if _, dup := seen[src.ID]; dup {
			return 0, invalidManifest(field+".id", "duplicate source id %q", src.ID)
		}
		seen[src.ID] = struct{}{}

		if src.RecordCount < 0 {
			return 0, invalidManifest(field+".record_count", "must be >= 0 (got %d)", src.RecordCount)
		}
		if src.PageSize < 0 {
			return 0, invalidManifest(field+".page_size", "must be >= 0 (got %d)", src.PageSize)
		}
		if total > math.MaxInt-src.RecordCount {
			return 0, invalidManifest(field+".record_count", "total record count overflows")
		}
		total += src.RecordCount
	}
	return total, nil
}

// pageBounds returns the unclamped global bounds of the page, or false when
// the end index would overflow int.
func pageBounds(req PageRequest) (start, end int, ok bool) {
	if req.PageNumber-1 > (math.MaxInt-req.PageSize+1)/req.PageSize {
		return 0, 0, false
	}
	start = req.StartIndex()
	return start, start + req.PageSize - 1, true
}

type indexedRange struct {
	SourceRange
	index int
}

// overlappingRanges walks the manifest once with a running cumulative count
// and returns, in manifest order, the local part of every source that
// intersects the global interval [start, end].
func overlappingRanges(manifest Manifest, start, end int) []indexedRange {
	var ranges []indexedRange
	cumStart := 0
	for i, src := range manifest {
		if cumStart > end {
			break
		}
		if src.RecordCount == 0 {
			continue
		}
		cumEnd := cumStart + src.RecordCount - 1
		if cumEnd >= start {
			overlapStart := max(start, cumStart)
			overlapEnd := min(end, cumEnd)
			ranges = append(ranges, indexedRange{
				SourceRange: SourceRange{
					SourceID:   src.ID,
					LocalStart: overlapStart - cumStart,
					LocalEnd:   overlapEnd - cumStart,
				},
				index: i,
			})
		}
		cumStart += src.RecordCount
	}
	return ranges
}
