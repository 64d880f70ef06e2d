// Package crawler orchestrates a crawl run: category discovery, listing
// pagination, article fetching, relevance classification, and persistence.
// Everything runs sequentially on one goroutine; politeness lives in the
// fetch client's inter-request delays.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aquanets/aquacrawl/internal/config"
	"github.com/aquanets/aquacrawl/internal/domain"
	"github.com/aquanets/aquacrawl/internal/extract"
	"github.com/aquanets/aquacrawl/internal/fetcher"
	"github.com/aquanets/aquacrawl/internal/logger"
	"github.com/aquanets/aquacrawl/internal/relevance"
	"github.com/aquanets/aquacrawl/internal/urlutil"
)

// candidateBudgetFactor bounds candidate accumulation relative to the article
// target. Listing pages yield far more links than we will ever crawl.
const candidateBudgetFactor = 2

// Fetcher is the fetch surface the crawler needs.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Extractor converts fetched pages into structured articles and link lists.
type Extractor interface {
	Extract(html []byte, pageURL string) (*extract.Article, error)
	ArticleLinks(html []byte, pageURL string) ([]string, error)
	NavLinks(html []byte, pageURL string) ([]string, error)
}

// Store persists accepted documents.
type Store interface {
	SaveRaw(doc *domain.RawDocument) (string, error)
}

// LinkDiscoverer supplies extra candidate links, e.g. from category feeds.
type LinkDiscoverer interface {
	Discover(ctx context.Context, categoryURLs []string) []string
}

// Stats summarizes a crawl run.
type Stats struct {
	// CategoriesVisited is the number of category URLs traversed.
	CategoriesVisited int
	// PagesFetched is the number of listing and search pages fetched.
	PagesFetched int
	// CandidatesFound is the number of distinct article URLs queued.
	CandidatesFound int
	// Accepted is the number of relevant documents saved.
	Accepted int
	// Rejected is the number of documents classified off-domain.
	Rejected int
	// ExcludedTitles counts accepted documents whose title matched the
	// advisory exclusion table.
	ExcludedTitles int
	// Failed is the number of candidate URLs that could not be crawled.
	Failed int
	// SearchQueries is the number of keyword searches executed.
	SearchQueries int
	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Crawler runs crawl sessions against one configured site.
type Crawler struct {
	cfg        config.CrawlConfig
	fetcher    Fetcher
	extractor  Extractor
	classifier *relevance.Classifier
	store      Store
	feeds      LinkDiscoverer
	log        logger.Interface
}

// New creates a crawler. The feed discoverer is optional; nil disables feed
// probing regardless of configuration.
func New(
	cfg config.CrawlConfig,
	fetch Fetcher,
	extractor Extractor,
	classifier *relevance.Classifier,
	store Store,
	feeds LinkDiscoverer,
	log logger.Interface,
) *Crawler {
	return &Crawler{
		cfg:        cfg,
		fetcher:    fetch,
		extractor:  extractor,
		classifier: classifier,
		store:      store,
		feeds:      feeds,
		log:        log,
	}
}

// runState is the mutable state of one crawl run.
type runState struct {
	stats Stats
	// seen maps canonical URLs already queued or crawled.
	seen map[string]bool
	// overflow holds candidate links dropped by the accumulation budget;
	// the search fallback draws on them.
	overflow []string
}

// newTargets wraps candidate URLs with their discovery provenance.
func newTargets(urls []string, category string) []domain.CrawlTarget {
	targets := make([]domain.CrawlTarget, len(urls))
	now := time.Now().UTC()
	for i, u := range urls {
		targets[i] = domain.CrawlTarget{URL: u, Category: category, DiscoveredAt: now}
	}
	return targets
}

// Run executes one crawl session: category discovery, candidate collection,
// article crawling, and, when the article target is not met, a keyword search
// phase. Per-URL failures never abort the run; the returned stats describe
// whatever was achieved.
func (c *Crawler) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	state := &runState{seen: make(map[string]bool)}

	categories := c.discoverCategories(ctx, state)
	state.stats.CategoriesVisited = len(categories)

	candidates := c.collectCandidates(ctx, state, categories)

	if c.feeds != nil && c.cfg.EnableFeedDiscovery {
		candidates = c.mergeFeedLinks(ctx, state, candidates)
	}

	c.log.Info("candidate collection finished", "candidates", len(candidates))
	c.crawlArticles(ctx, state, candidates)

	if state.stats.Accepted < c.cfg.MaxArticles && ctx.Err() == nil {
		c.runSearchPhase(ctx, state)
	}

	state.stats.Duration = time.Since(start)
	c.log.Info("crawl run finished",
		"accepted", state.stats.Accepted,
		"rejected", state.stats.Rejected,
		"failed", state.stats.Failed,
		"duration", state.stats.Duration.String(),
	)

	return &state.stats, ctx.Err()
}

// discoverCategories combines the configured category URLs with relevant
// links harvested from the homepage navigation.
func (c *Crawler) discoverCategories(ctx context.Context, state *runState) []string {
	known := make(map[string]bool)
	var categories []string
	for _, categoryURL := range c.cfg.CategoryURLs {
		canonical := urlutil.Canonicalize(categoryURL)
		if canonical == "" || known[canonical] {
			continue
		}
		known[canonical] = true
		categories = append(categories, canonical)
	}

	resp, err := c.fetcher.Get(ctx, c.cfg.BaseURL)
	if err != nil {
		c.log.Warn("homepage fetch failed, using configured categories only",
			"error", err.Error())
		return categories
	}
	state.stats.PagesFetched++

	navLinks, err := c.extractor.NavLinks(resp.Body, c.cfg.BaseURL)
	if err != nil {
		c.log.Debug("nav link extraction failed", "error", err.Error())
		return categories
	}

	base := urlutil.Canonicalize(c.cfg.BaseURL)
	discovered := 0
	for _, link := range navLinks {
		if known[link] || link == base || !c.sameHost(link) {
			continue
		}
		// A nav link qualifies as a category only on URL-token evidence.
		if !c.classifier.IsRelevant(link, "", "") {
			continue
		}
		known[link] = true
		categories = append(categories, link)
		discovered++
	}

	if discovered > 0 {
		c.log.Info("categories discovered from navigation", "count", discovered)
	}

	return categories
}

// collectCandidates paginates every category and gathers distinct article
// targets, in discovery order, up to the accumulation budget. Pagination
// within a category stops early when a page contributes nothing new.
func (c *Crawler) collectCandidates(ctx context.Context, state *runState, categories []string) []domain.CrawlTarget {
	budget := c.cfg.MaxArticles * candidateBudgetFactor
	categorySet := make(map[string]bool, len(categories))
	for _, categoryURL := range categories {
		categorySet[categoryURL] = true
	}

	var candidates []domain.CrawlTarget
	for _, categoryURL := range categories {
		if ctx.Err() != nil {
			return candidates
		}

		for page := 1; page <= c.maxPages(c.cfg.MaxPagesPerCategory); page++ {
			links, err := c.fetchListing(ctx, state, listingPageURL(categoryURL, page))
			if err != nil {
				c.log.Warn("listing page failed",
					"category", categoryURL, "page", page, "error", err.Error())
				break
			}

			added := 0
			for _, link := range links {
				if state.seen[link] || categorySet[link] || !c.sameHost(link) {
					continue
				}
				state.seen[link] = true
				if len(candidates) >= budget {
					state.overflow = append(state.overflow, link)
					continue
				}
				candidates = append(candidates, domain.CrawlTarget{
					URL:          link,
					Category:     categoryURL,
					DiscoveredAt: time.Now().UTC(),
				})
				added++
			}

			if added == 0 {
				break
			}
		}
	}

	state.stats.CandidatesFound = len(candidates)

	return candidates
}

// mergeFeedLinks appends unseen feed item links to the candidate list.
func (c *Crawler) mergeFeedLinks(
	ctx context.Context,
	state *runState,
	candidates []domain.CrawlTarget,
) []domain.CrawlTarget {
	var links []string
	for _, link := range c.feeds.Discover(ctx, c.cfg.CategoryURLs) {
		if state.seen[link] || !c.sameHost(link) {
			continue
		}
		state.seen[link] = true
		links = append(links, link)
	}
	candidates = append(candidates, newTargets(links, "feed")...)

	state.stats.CandidatesFound = len(candidates)

	return candidates
}

// crawlArticles fetches, extracts, classifies, and saves each candidate until
// the article target is met. Failures and rejections are counted and skipped.
func (c *Crawler) crawlArticles(ctx context.Context, state *runState, targets []domain.CrawlTarget) {
	for _, target := range targets {
		if ctx.Err() != nil || state.stats.Accepted >= c.cfg.MaxArticles {
			return
		}

		c.crawlOne(ctx, state, target)
	}
}

// crawlOne processes a single candidate target.
func (c *Crawler) crawlOne(ctx context.Context, state *runState, target domain.CrawlTarget) {
	candidate := target.URL

	resp, err := c.fetcher.Get(ctx, candidate)
	if err != nil {
		if errors.Is(err, fetcher.ErrPermissionDenied) {
			c.log.Debug("candidate disallowed by robots rules", "url", candidate)
			return
		}
		state.stats.Failed++
		c.log.Warn("candidate fetch failed", "url", candidate, "error", err.Error())
		return
	}

	article, err := c.extractor.Extract(resp.Body, candidate)
	if err != nil {
		state.stats.Failed++
		c.log.Debug("candidate extraction failed", "url", candidate, "error", err.Error())
		return
	}

	if !c.classifier.IsRelevant(candidate, article.Title, article.BodyText) {
		state.stats.Rejected++
		c.log.Debug("candidate rejected", "url", candidate, "title", article.Title)
		return
	}

	if c.classifier.IsExcluded(article.Title) {
		state.stats.ExcludedTitles++
		c.log.Info("accepted despite exclusion keyword in title",
			"url", candidate, "title", article.Title)
	}

	doc := &domain.RawDocument{
		URL:           candidate,
		Title:         article.Title,
		PublishedDate: article.PublishedDate,
		Author:        article.Author,
		Summary:       article.Summary,
		BodyText:      article.BodyText,
		BodyHTML:      article.BodyHTML,
		Images:        article.Images,
		Tags:          article.Tags,
		Source:        c.cfg.Source,
		ContentType:   "article",
	}

	path, err := c.store.SaveRaw(doc)
	if err != nil {
		state.stats.Failed++
		c.log.Error("document save failed", "url", candidate, "error", err.Error())
		return
	}

	state.stats.Accepted++
	c.log.Info("article saved",
		"url", candidate,
		"title", article.Title,
		"category", target.Category,
		"path", path,
		"accepted", state.stats.Accepted,
		"target", c.cfg.MaxArticles,
	)
}

// fetchListing fetches one listing page and harvests its article links.
func (c *Crawler) fetchListing(ctx context.Context, state *runState, pageURL string) ([]string, error) {
	resp, err := c.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	state.stats.PagesFetched++

	links, err := c.extractor.ArticleLinks(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("harvest links: %w", err)
	}

	return links, nil
}

// sameHost reports whether rawURL is on the configured site's host.
func (c *Crawler) sameHost(rawURL string) bool {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	return strings.EqualFold(parsed.Host, base.Host)
}

// maxPages returns the page bound, treating non-positive configuration as a
// single page.
func (c *Crawler) maxPages(configured int) int {
	if configured < 1 {
		return 1
	}
	return configured
}

// listingPageURL builds the URL of the nth page of a listing. Page one is the
// listing itself. Query-style listings paginate with a page parameter, path
// style listings with a "page/<n>/" suffix.
func listingPageURL(listingURL string, page int) string {
	if page <= 1 {
		return listingURL
	}

	if strings.Contains(listingURL, "?") {
		return fmt.Sprintf("%s&page=%d", listingURL, page)
	}

	return fmt.Sprintf("%s/page/%d/", strings.TrimRight(listingURL, "/"), page)
}
