package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

type memorySource struct {
	count    int
	pageSize int
}

// MemoryFetcher is a simulated data store. Source S serves records
// "S_Data_1" .. "S_Data_<count>" paginated at its own page size, so
// assembled pages are easy to check by eye.
type MemoryFetcher struct {
	sources map[string]memorySource

	mu    sync.Mutex
	calls map[string]int
}

// NewMemoryFetcher creates a simulated store for every source in manifest.
// Page sizes are taken from resolver so they match the plans it produces.
func NewMemoryFetcher(manifest pageplan.Manifest, resolver *pageplan.Resolver) *MemoryFetcher {
	sources := make(map[string]memorySource, len(manifest))
	for _, src := range manifest {
		sources[src.ID] = memorySource{count: src.RecordCount, pageSize: resolver.SourcePageSize(src)}
	}
	return &MemoryFetcher{
		sources: sources,
		calls:   make(map[string]int),
	}
}

// Fetch implements SourceFetcher. Like a real paginated source it never reads
// past the requested page and returns fewer records at the end of the data.
func (f *MemoryFetcher) Fetch(ctx context.Context, sourceID string, task pageplan.FetchTask) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, ok := f.sources[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, sourceID)
	}
	if task.PageNumber < 1 || task.OffsetInPage < 0 || task.Count < 0 {
		return nil, fmt.Errorf("malformed task %+v", task)
	}

	f.mu.Lock()
	f.calls[sourceID]++
	f.mu.Unlock()

	count := min(task.Count, src.pageSize-task.OffsetInPage)
	first := task.LocalStart(src.pageSize)
	last := min(first+count, src.count)

	records := make([]Record, 0, max(last-first, 0))
	for i := first; i < last; i++ {
		data, err := json.Marshal(fmt.Sprintf("%s_Data_%d", sourceID, i+1))
		if err != nil {
			return nil, fmt.Errorf("encode record: %w", err)
		}
		records = append(records, data)
	}
	return records, nil
}

// Calls returns how many fetches hit sourceID.
func (f *MemoryFetcher) Calls(sourceID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[sourceID]
}

// TotalCalls returns the number of fetches across all sources.
func (f *MemoryFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}
