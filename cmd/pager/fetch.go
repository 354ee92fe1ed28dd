package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/federated-pager/pkg/metrics"
	"github.com/Sternrassler/federated-pager/pkg/pagination"
)

// fetchOutput is the JSON document printed by the fetch command.
type fetchOutput struct {
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
	StartIndex int                 `json:"start_index"`
	EndIndex   int                 `json:"end_index"`
	Total      int                 `json:"total"`
	NoData     bool                `json:"no_data"`
	Records    []pagination.Record `json:"records"`
}

func newFetchCmd() *cobra.Command {
	var (
		flags       resolveFlags
		concurrency int
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Assemble a global page from the simulated source store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.resolve(cmd.Context())
			if err != nil {
				return err
			}

			cfg := pagination.DefaultConfig()
			if concurrency > 0 {
				cfg.MaxConcurrency = concurrency
			}
			logger := commandLogger(cmd)
			cfg.Progress = func(ev pagination.ProgressEvent) {
				logger.Debug().
					Str("source", ev.SourceID).
					Int("page", ev.Task.PageNumber).
					Int("records", ev.Records).
					Int("completed", ev.Completed).
					Int("total", ev.Total).
					Msg("Fetched source page")
			}

			store := pagination.NewMemoryFetcher(res.manifest, res.resolver)
			page, err := pagination.NewAssembler(store, cfg).Assemble(cmd.Context(), res.plan)
			if err != nil {
				return err
			}

			records := page.Records
			if records == nil {
				records = []pagination.Record{}
			}
			out := fetchOutput{
				Page:       res.plan.Request.PageNumber,
				Size:       res.plan.Request.PageSize,
				StartIndex: res.plan.StartIndex,
				EndIndex:   res.plan.EndIndex,
				Total:      res.plan.Total,
				NoData:     res.plan.NoData,
				Records:    records,
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}

			if showMetrics {
				return metrics.WriteText(cmd.ErrOrStderr(), metrics.Gatherer, metrics.Namespace)
			}
			return nil
		},
	}
	addResolveFlags(cmd, &flags)
	cmd.Flags().IntVar(&concurrency, "concurrency", pagination.DefaultConfig().MaxConcurrency,
		"maximum number of sources fetched in parallel")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print pager metrics to stderr after the page")

	return cmd
}
