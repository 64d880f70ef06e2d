package common

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aquanets/aquacrawl/internal/crawler"
	"github.com/aquanets/aquacrawl/internal/pipeline"
)

// durationPrecision rounds durations for display.
const durationPrecision = 100 * time.Millisecond

// RenderCrawlStats prints a crawl run summary table to stdout.
func RenderCrawlStats(stats *crawler.Stats) {
	t := newSummaryTable("Crawl Summary")
	t.AppendRows([]table.Row{
		{"Categories visited", stats.CategoriesVisited},
		{"Pages fetched", stats.PagesFetched},
		{"Candidates found", stats.CandidatesFound},
		{"Articles accepted", stats.Accepted},
		{"Articles rejected", stats.Rejected},
		{"Excluded titles", stats.ExcludedTitles},
		{"Failures", stats.Failed},
		{"Search queries", stats.SearchQueries},
		{"Duration", stats.Duration.Round(durationPrecision).String()},
	})
	t.Render()
}

// RenderRunStats prints a processing run summary table to stdout.
func RenderRunStats(stats *pipeline.RunStats) {
	t := newSummaryTable("Processing Summary")
	t.AppendRows([]table.Row{
		{"Documents processed", stats.Processed},
		{"Documents failed", stats.Failed},
	})
	t.Render()
}

// newSummaryTable creates a two-column table with the shared style.
func newSummaryTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Metric", "Value"})

	return t
}
