package pageplan

// Source is one data source of the global collection.
type Source struct {
	// ID identifies the source. IDs are unique within a manifest.
	ID string `json:"id" yaml:"id"`

	// RecordCount is the number of records the source holds.
	RecordCount int `json:"record_count" yaml:"record_count"`

	// PageSize is the source's own fixed page size.
	// Zero means the resolver's default source page size.
	PageSize int `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// Manifest is the ordered list of sources. Order defines the concatenation
// that forms the global collection.
type Manifest []Source

// Total returns the sum of all record counts.
func (m Manifest) Total() int {
	total := 0
	for _, s := range m {
		total += s.RecordCount
	}
	return total
}

// PageRequest asks for one page of the global collection.
type PageRequest struct {
	// PageNumber is 1-based.
	PageNumber int `json:"page_number"`

	// PageSize is the number of records per global page.
	PageSize int `json:"page_size"`
}

// StartIndex returns the 0-based global index of the first record of the page.
func (r PageRequest) StartIndex() int {
	return (r.PageNumber - 1) * r.PageSize
}

// EndIndex returns the 0-based inclusive global index of the last record of
// the page, before clamping to the collection size.
func (r PageRequest) EndIndex() int {
	return r.StartIndex() + r.PageSize - 1
}

// SourceRange is the inclusive local interval a source contributes to a page.
type SourceRange struct {
	SourceID   string `json:"source_id"`
	LocalStart int    `json:"local_start"`
	LocalEnd   int    `json:"local_end"`
}

// Len returns the number of records in the range.
func (r SourceRange) Len() int {
	return r.LocalEnd - r.LocalStart + 1
}

// FetchTask is one call to a source's native paginated fetch interface.
// PageNumber is 1-based in the source's own page size.
type FetchTask struct {
	PageNumber   int `json:"page_number"`
	OffsetInPage int `json:"offset_in_page"`
	Count        int `json:"count"`
}

// LocalStart returns the first local index covered by the task.
func (t FetchTask) LocalStart(pageSize int) int {
	return (t.PageNumber-1)*pageSize + t.OffsetInPage
}

// LocalEnd returns the last local index covered by the task.
func (t FetchTask) LocalEnd(pageSize int) int {
	return t.LocalStart(pageSize) + t.Count - 1
}

// SourcePlan is the contribution of one source to a resolved page.
type SourcePlan struct {
	Range SourceRange `json:"range"`

	// PageSize is the source page size the tasks are expressed in.
	PageSize int `json:"page_size"`

	Tasks []FetchTask `json:"tasks"`
}

// ResolvedPlan maps a page request to the ordered per-source fetch tasks
// needed to satisfy it.
type ResolvedPlan struct {
	Request PageRequest `json:"request"`

	// StartIndex and EndIndex are the global inclusive bounds of the page.
	// EndIndex is clamped to Total-1 unless NoData is set.
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`

	// Total is the record count of the whole manifest.
	Total int `json:"total"`

	// NoData reports that the page lies entirely past the end of the data.
	// It is a normal outcome, not an error. Sources is empty when set.
	NoData bool `json:"no_data"`

	Sources []SourcePlan `json:"sources"`
}

// RecordCount returns the number of records the plan yields.
func (p *ResolvedPlan) RecordCount() int {
	n := 0
	for _, sp := range p.Sources {
		n += sp.Range.Len()
	}
	return n
}

// TaskCount returns the number of fetch tasks across all sources.
func (p *ResolvedPlan) TaskCount() int {
	n := 0
	for _, sp := range p.Sources {
		n += len(sp.Tasks)
	}
	return n
}
