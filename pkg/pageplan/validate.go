package pageplan

import (
	"fmt"
	"math"
)

// Validate re-checks the invariants of an existing plan: bounds and NoData
// re-derived from the request and total, range lengths summing to the page
// length, and tasks covering each range exactly once in order. It is used
// on plans that crossed a process boundary, such as cached ones.
func (p *ResolvedPlan) Validate() error {
	if p.Request.PageNumber < 1 || p.Request.PageSize < 1 {
		return invalidPlan("request", "malformed request %+v", p.Request)
	}
	if p.Total < 0 {
		return invalidPlan("total", "must be >= 0 (got %d)", p.Total)
	}

	// Bounds must be exactly what Resolve derives from request and total.
	start, end, ok := pageBounds(p.Request)
	if !ok {
		start, end = math.MaxInt, math.MaxInt
	}
	if p.StartIndex != start {
		return invalidPlan("start_index", "%d does not match request (%d)", p.StartIndex, start)
	}
	noData := !ok || start >= p.Total
	if p.NoData != noData {
		return invalidPlan("no_data", "is %v, want %v for start %d of %d", p.NoData, noData, start, p.Total)
	}

	if p.NoData {
		if len(p.Sources) != 0 {
			return invalidPlan("sources", "no-data plan carries %d sources", len(p.Sources))
		}
		if p.EndIndex != end {
			return invalidPlan("end_index", "%d does not match request (%d)", p.EndIndex, end)
		}
		return nil
	}

	if want := min(end, p.Total-1); p.EndIndex != want {
		return invalidPlan("end_index", "%d, want %d for request and total %d", p.EndIndex, want, p.Total)
	}
	if want, got := p.EndIndex-p.StartIndex+1, p.RecordCount(); want != got {
		return invalidPlan("sources", "ranges cover %d records, want %d", got, want)
	}

	seen := make(map[string]struct{}, len(p.Sources))
	for i, sp := range p.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		if _, dup := seen[sp.Range.SourceID]; dup {
			return invalidPlan(field, "source %q appears twice", sp.Range.SourceID)
		}
		seen[sp.Range.SourceID] = struct{}{}
		if err := sp.validate(field); err != nil {
			return err
		}
	}
	return nil
}

func (sp SourcePlan) validate(field string) error {
	r := sp.Range
	if r.LocalStart < 0 || r.LocalEnd < r.LocalStart {
		return invalidPlan(field+".range", "bad local range [%d, %d]", r.LocalStart, r.LocalEnd)
	}
	if sp.PageSize < 1 {
		return invalidPlan(field+".page_size", "must be >= 1 (got %d)", sp.PageSize)
	}
	if len(sp.Tasks) == 0 {
		return invalidPlan(field+".tasks", "no tasks")
	}

	next := r.LocalStart
	for j, t := range sp.Tasks {
		tf := fmt.Sprintf("%s.tasks[%d]", field, j)
		if t.PageNumber < 1 || t.Count < 1 || t.OffsetInPage < 0 {
			return invalidPlan(tf, "malformed task %+v", t)
		}
		if t.PageNumber-1 > (math.MaxInt-sp.PageSize)/sp.PageSize {
			return invalidPlan(tf, "page %d out of range for page size %d", t.PageNumber, sp.PageSize)
		}
		if t.OffsetInPage+t.Count > sp.PageSize {
			return invalidPlan(tf, "task %+v overruns page size %d", t, sp.PageSize)
		}
		if got := t.LocalStart(sp.PageSize); got != next {
			return invalidPlan(tf, "starts at %d, want %d", got, next)
		}
		next = t.LocalEnd(sp.PageSize) + 1
	}
	if next != r.LocalEnd+1 {
		return invalidPlan(field+".tasks", "cover up to %d, want %d", next-1, r.LocalEnd)
	}
	return nil
}
