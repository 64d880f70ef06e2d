// Package process implements the process command: turning raw crawled
// documents into normalized, chunked, annotated documents.
package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aquanets/aquacrawl/cmd/common"
)

// Command returns the process command for use in the root command.
func Command() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process raw documents into chunked, annotated documents",
		Long: `Process reads every raw document from the raw data directory, normalizes
and chunks its text, detects languages, extracts domain entities, and writes
the result to the processed data directory. Documents that fail are logged
and skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("initialize dependencies: %w", err)
			}

			runner := common.BuildRunner(deps)
			stats, err := runner.Run(cmd.Context(), limit)
			if stats != nil {
				common.RenderRunStats(stats)
			}

			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0,
		"process at most this many documents (0 means all)")

	return cmd
}
