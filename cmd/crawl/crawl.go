// Package crawl implements the crawl command: one full crawl session against
// the configured site.
package crawl

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aquanets/aquacrawl/cmd/common"
)

// Command returns the crawl command for use in the root command.
func Command() *cobra.Command {
	var maxArticles int

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the configured site for relevant articles",
		Long: `Crawl traverses the configured category pages, classifies each candidate
article for relevance, and saves accepted articles as raw JSON documents.
When the article target is not met from categories alone, a keyword search
phase fills the remainder.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("initialize dependencies: %w", err)
			}

			if maxArticles > 0 {
				deps.Config.Crawl.MaxArticles = maxArticles
			}

			c := common.BuildCrawler(cmd.Context(), deps)
			stats, err := c.Run(cmd.Context())
			if stats != nil {
				common.RenderCrawlStats(stats)
			}

			return err
		},
	}

	cmd.Flags().IntVar(&maxArticles, "max-articles", 0,
		"override the configured article target (0 means use configuration)")

	return cmd
}
