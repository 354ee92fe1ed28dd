package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the source ranges and fetch tasks for a global page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.resolve(cmd.Context())
			if err != nil {
				return err
			}

			commandLogger(cmd).Info().
				Int("page", res.plan.Request.PageNumber).
				Int("size", res.plan.Request.PageSize).
				Bool("no_data", res.plan.NoData).
				Int("sources", len(res.plan.Sources)).
				Int("tasks", res.plan.TaskCount()).
				Msg("Resolved page")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.plan)
		},
	}
	addResolveFlags(cmd, &flags)

	return cmd
}
