package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Sternrassler/federated-pager/pkg/logging"
)

// NewRootCmd creates the root command with the plan and fetch subcommands.
func NewRootCmd() *cobra.Command {
	var (
		logLevel  string
		logPretty bool
	)

	cmd := &cobra.Command{
		Use:   "pager",
		Short: "Global pagination over independently paginated sources",
		Long: "pager maps a global page request onto the sources of a manifest " +
			"and fetches exactly the source pages that cover it.",
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			// Console output by default when a person is watching stderr
			pretty := logPretty
			if !cmd.Flags().Changed("log-pretty") {
				pretty = isTerminal(cmd.ErrOrStderr())
			}
			logger := logging.New(logging.Config{
				Level:  level,
				Pretty: pretty,
				Output: cmd.ErrOrStderr(),
			}).With().Str("component", "pager").Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))

			logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", getEnv("PAGER_LOG_LEVEL", string(logging.LevelInfo)),
		"log level: debug, info, warn or error (env PAGER_LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false,
		"human-readable log output (default when stderr is a terminal)")
	cmd.AddCommand(newPlanCmd(), newFetchCmd())

	return cmd
}

const rootCmdExample = `  # Show which source pages make up global page 3
  pager plan --manifest sources.yaml --page 3 --size 40

  # Allow larger pages and cache plans in Redis
  pager plan --manifest sources.yaml --page 2 --size 130 --max-page-size 200 --redis-addr localhost:6379

  # Assemble page 1 from the simulated store
  pager fetch --manifest sources.yaml --page 1 --size 50 --concurrency 8`

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// commandLogger returns the logger PersistentPreRunE attached to cmd.
func commandLogger(cmd *cobra.Command) *zerolog.Logger {
	return zerolog.Ctx(cmd.Context())
}
