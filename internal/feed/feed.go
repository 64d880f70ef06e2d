// Package feed discovers article URLs through RSS/Atom feeds exposed by the
// target site's category pages.
package feed

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/aquanets/aquacrawl/internal/fetcher"
	"github.com/aquanets/aquacrawl/internal/logger"
	"github.com/aquanets/aquacrawl/internal/urlutil"
)

// Fetcher is the subset of the fetch client the feed prober needs.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Discoverer probes category URLs for feeds and collects their item links.
// Feed probing is best-effort: a category without a feed is silently skipped.
type Discoverer struct {
	fetcher Fetcher
	parser  *gofeed.Parser
	log     logger.Interface
}

// NewDiscoverer creates a feed discoverer backed by the given fetcher.
func NewDiscoverer(fetcher Fetcher, log logger.Interface) *Discoverer {
	return &Discoverer{
		fetcher: fetcher,
		parser:  gofeed.NewParser(),
		log:     log,
	}
}

// Discover probes each category URL for a feed at the conventional
// "<category>/feed/" path and returns the canonicalized item links of every
// feed found, deduplicated in first-seen order. Probe failures are logged at
// debug level and never abort discovery.
func (d *Discoverer) Discover(ctx context.Context, categoryURLs []string) []string {
	seen := make(map[string]bool)
	var links []string

	for _, categoryURL := range categoryURLs {
		if ctx.Err() != nil {
			return links
		}

		feedURL := strings.TrimRight(categoryURL, "/") + "/feed/"
		items, err := d.probe(ctx, feedURL)
		if err != nil {
			d.log.Debug("feed probe failed", "feed_url", feedURL, "error", err.Error())
			continue
		}

		d.log.Info("feed discovered", "feed_url", feedURL, "items", len(items))
		for _, item := range items {
			canonical := urlutil.Canonicalize(item)
			if canonical == "" || seen[canonical] {
				continue
			}
			seen[canonical] = true
			links = append(links, canonical)
		}
	}

	return links
}

// probe fetches and parses one feed URL, returning its item links.
func (d *Discoverer) probe(ctx context.Context, feedURL string) ([]string, error) {
	resp, err := d.fetcher.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := d.parser.ParseString(string(resp.Body))
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}

	return links, nil
}
