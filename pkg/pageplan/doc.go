// Package pageplan maps a global page request onto several independently
// paginated data sources.
//
// The global collection is the ordered concatenation of the sources listed in
// a Manifest. For a page request the Resolver computes which sources overlap
// the requested global index interval, the local sub-range needed from each
// one, and the fetch tasks (page, offset in page, count) required in each
// source's own pagination scheme.
//
// Example usage:
//
//	manifest := pageplan.Manifest{
//		{ID: "A", RecordCount: 20},
//		{ID: "B", RecordCount: 80, PageSize: 25},
//	}
//	plan, err := pageplan.Resolve(manifest, pageplan.PageRequest{PageNumber: 1, PageSize: 50})
//	if err != nil {
//		return err // wraps ErrInvalidRequest or ErrInvalidManifest
//	}
//	if plan.NoData {
//		// page lies past the end of all data
//	}
//	for _, sp := range plan.Sources {
//		for _, task := range sp.Tasks {
//			// fetch task.Count records at task.OffsetInPage of page task.PageNumber
//		}
//	}
//
// Resolution is pure: it performs no I/O, never logs and holds no state, so a
// Resolver can be shared between goroutines. Identical inputs always produce
// identical plans.
package pageplan
