// Package pagination assembles global pages by executing resolved plans
// against paginated sources.
//
// A pageplan.ResolvedPlan says which fetch tasks each source must run. The
// Assembler runs them through a SourceFetcher: sources are fetched in
// parallel within MaxConcurrency, tasks of one source run in order, and the
// results are concatenated in source order, then task order.
//
// Example usage:
//
//	plan, err := pageplan.Resolve(manifest, pageplan.PageRequest{PageNumber: 2, PageSize: 50})
//	if err != nil {
//		return err
//	}
//	assembler := pagination.NewAssembler(fetcher, pagination.DefaultConfig())
//	page, err := assembler.Assemble(ctx, plan)
//
// The assembler:
//   - Skips fetching entirely for NoData plans
//   - Applies a timeout to every fetch task
//   - Rejects fetch results whose length differs from the task count
//   - Cancels outstanding fetches on the first failure (no partial pages)
//   - Reports progress to an optional observer and via structured logs
package pagination
