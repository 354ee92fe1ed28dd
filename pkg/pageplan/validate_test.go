package pageplan

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validPlan(t *testing.T) *ResolvedPlan {
	t.Helper()
	manifest := Manifest{
		{ID: "A", RecordCount: 20, PageSize: 7},
		{ID: "B", RecordCount: 80, PageSize: 25},
	}
	plan, err := Resolve(manifest, PageRequest{PageNumber: 1, PageSize: 50})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return plan
}

func TestResolvedPlan_Validate(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(p *ResolvedPlan)
	}{
		{
			name:   "no-data plan with sources",
			tamper: func(p *ResolvedPlan) { p.NoData = true; p.StartIndex = p.Total },
		},
		{
			name:   "bounds out of order",
			tamper: func(p *ResolvedPlan) { p.EndIndex = p.StartIndex - 1 },
		},
		{
			name:   "end past total",
			tamper: func(p *ResolvedPlan) { p.Total = p.EndIndex },
		},
		{
			name:   "start does not match request",
			tamper: func(p *ResolvedPlan) { p.Request.PageNumber = 2 },
		},
		{
			name:   "range shorter than page",
			tamper: func(p *ResolvedPlan) { p.Sources[1].Range.LocalEnd-- },
		},
		{
			name: "duplicate source",
			tamper: func(p *ResolvedPlan) {
				p.Sources[1].Range.SourceID = p.Sources[0].Range.SourceID
			},
		},
		{
			name:   "gap between tasks",
			tamper: func(p *ResolvedPlan) { p.Sources[0].Tasks[1].OffsetInPage = 1 },
		},
		{
			name:   "zero-count task",
			tamper: func(p *ResolvedPlan) { p.Sources[0].Tasks[2].Count = 0 },
		},
		{
			name:   "task overruns page",
			tamper: func(p *ResolvedPlan) { p.Sources[1].PageSize = 20 },
		},
		{
			name:   "missing tasks",
			tamper: func(p *ResolvedPlan) { p.Sources[0].Tasks = nil },
		},
		{
			name: "last source dropped with end shrunk",
			tamper: func(p *ResolvedPlan) {
				p.Sources = p.Sources[:1]
				p.EndIndex = p.Sources[0].Range.LocalEnd
			},
		},
		{
			name:   "total does not cover page",
			tamper: func(p *ResolvedPlan) { p.Total = 40 },
		},
		{
			name:   "no-data flag on a page with data",
			tamper: func(p *ResolvedPlan) { p.NoData = true; p.Sources = nil },
		},
		{
			name:   "malformed request",
			tamper: func(p *ResolvedPlan) { p.Request.PageSize = 0 },
		},
		{
			name:   "negative total",
			tamper: func(p *ResolvedPlan) { p.Total = -1 },
		},
		{
			name: "tasks stop short",
			tamper: func(p *ResolvedPlan) {
				p.Sources[0].Tasks = p.Sources[0].Tasks[:2]
			},
		},
	}

	if err := validPlan(t).Validate(); err != nil {
		t.Fatalf("Validate() on resolved plan error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan(t)
			tt.tamper(plan)
			err := plan.Validate()
			if !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("expected ErrInvalidPlan, got %v", err)
			}
		})
	}
}

func TestResolvedPlan_Validate_NoData(t *testing.T) {
	pastEnd, err := Resolve(Manifest{{ID: "A", RecordCount: 100}}, PageRequest{PageNumber: 3, PageSize: 50})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := pastEnd.Validate(); err != nil {
		t.Fatalf("Validate() on resolved no-data plan error = %v", err)
	}

	tests := []struct {
		name string
		plan ResolvedPlan
	}{
		{
			name: "empty page 1 claimed for non-empty data",
			plan: ResolvedPlan{Request: PageRequest{PageNumber: 1, PageSize: 50}, Total: 100, NoData: true, EndIndex: 49},
		},
		{
			name: "start does not match request",
			plan: ResolvedPlan{Request: PageRequest{PageNumber: 1, PageSize: 50}, StartIndex: 500, EndIndex: 549, NoData: true},
		},
		{
			name: "end does not match request",
			plan: ResolvedPlan{Request: PageRequest{PageNumber: 3, PageSize: 50}, StartIndex: 100, EndIndex: 99, Total: 100, NoData: true},
		},
		{
			name: "overflowing page without max bounds",
			plan: ResolvedPlan{Request: PageRequest{PageNumber: math.MaxInt, PageSize: 50}, StartIndex: 0, Total: 100, NoData: true},
		},
		{
			name: "flag missing past the end",
			plan: ResolvedPlan{Request: PageRequest{PageNumber: 3, PageSize: 50}, StartIndex: 100, EndIndex: 99, Total: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.plan.Validate(); !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("expected ErrInvalidPlan, got %v", err)
			}
		})
	}
}

func TestResolvedPlan_Validate_TaskPageOverflow(t *testing.T) {
	const pageSize = 1 << 32
	plan := func(page int) *ResolvedPlan {
		return &ResolvedPlan{
			Request:  PageRequest{PageNumber: 1, PageSize: 10},
			EndIndex: 9,
			Total:    10,
			Sources: []SourcePlan{{
				Range:    SourceRange{SourceID: "A", LocalStart: 0, LocalEnd: 9},
				PageSize: pageSize,
				Tasks:    []FetchTask{{PageNumber: page, OffsetInPage: 0, Count: 10}},
			}},
		}
	}

	if err := plan(1).Validate(); err != nil {
		t.Fatalf("Validate() on page 1 error = %v", err)
	}

	// (page-1)*pageSize wraps to 0 in int arithmetic
	err := plan(pageSize + 1).Validate()
	if !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestValidationError(t *testing.T) {
	err := invalidRequest("page_size", "must be <= %d (got %d)", 50, 60)

	want := "invalid page request: page_size: must be <= 50 (got 60)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("expected errors.Is(err, ErrInvalidRequest)")
	}
	if errors.Is(err, ErrInvalidManifest) {
		t.Error("request error must not match ErrInvalidManifest")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("expected errors.As to find *ValidationError")
	}
	if vErr.Field != "page_size" {
		t.Errorf("Field = %q, want page_size", vErr.Field)
	}
}
