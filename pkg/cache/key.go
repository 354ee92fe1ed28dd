package cache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

// PlanKey identifies a cached plan.
type PlanKey struct {
	// ManifestDigest is the digest of the manifest snapshot (see ManifestDigest)
	ManifestDigest string

	// Request is the global page request
	Request pageplan.PageRequest

	// MaxPageSize and SourcePageSize are the resolver limits the plan was built with
	MaxPageSize    int
	SourcePageSize int
}

// NewPlanKey builds the key for resolving req against manifest with cfg.
func NewPlanKey(manifest pageplan.Manifest, req pageplan.PageRequest, cfg pageplan.Config) PlanKey {
	return PlanKey{
		ManifestDigest: ManifestDigest(manifest),
		Request:        req,
		MaxPageSize:    cfg.MaxPageSize,
		SourcePageSize: cfg.DefaultSourcePageSize,
	}
}

// String generates a deterministic cache key string.
// Format: pager:plan:<digest>:page=N:size=M:max=X:src=Y
//
// Example:
//
//	pager:plan:9c1185a5c5e9fc54:page=1:size=50:max=50:src=50
func (k PlanKey) String() string {
	parts := []string{
		"pager",
		"plan",
		k.ManifestDigest,
		fmt.Sprintf("page=%d", k.Request.PageNumber),
		fmt.Sprintf("size=%d", k.Request.PageSize),
		fmt.Sprintf("max=%d", k.MaxPageSize),
		fmt.Sprintf("src=%d", k.SourcePageSize),
	}
	return strings.Join(parts, ":")
}

// ManifestDigest returns a hex xxhash64 digest of the ordered manifest.
// Source order, ids, record counts and page sizes all contribute.
func ManifestDigest(manifest pageplan.Manifest) string {
	d := xxhash.New()
	for _, src := range manifest {
		// id is length-prefixed so no id can forge a field boundary
		_, _ = d.WriteString(strconv.Itoa(len(src.ID)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(src.ID)
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(strconv.Itoa(src.RecordCount))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(strconv.Itoa(src.PageSize))
		_, _ = d.WriteString(";")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
