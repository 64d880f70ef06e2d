// Package pipeline implements the pipeline command: a crawl session followed
// immediately by a processing run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aquanets/aquacrawl/cmd/common"
)

// Command returns the pipeline command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline",
		Short: "Crawl and process in one run",
		Long: `Pipeline runs a full crawl session and then processes everything in the
raw data directory, producing chunked documents in a single invocation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("initialize dependencies: %w", err)
			}

			return Run(cmd.Context(), deps)
		},
	}
}

// Run executes the crawl and processing stages with the given dependencies.
// It is shared with the schedule command.
func Run(ctx context.Context, deps *common.CommandDeps) error {
	crawlStats, err := common.BuildCrawler(ctx, deps).Run(ctx)
	if crawlStats != nil {
		common.RenderCrawlStats(crawlStats)
	}
	if err != nil {
		return fmt.Errorf("crawl stage: %w", err)
	}

	runStats, err := common.BuildRunner(deps).Run(ctx, 0)
	if runStats != nil {
		common.RenderRunStats(runStats)
	}
	if err != nil {
		return fmt.Errorf("process stage: %w", err)
	}

	return nil
}
