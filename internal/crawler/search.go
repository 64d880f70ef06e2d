package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// runSearchPhase fills the remaining article budget by keyword search. For
// each configured keyword the search endpoint patterns are tried in order;
// when none yields links, the phase falls back to filtering the overflow
// candidates by the keyword's URL slug.
func (c *Crawler) runSearchPhase(ctx context.Context, state *runState) {
	c.log.Info("search phase started",
		"accepted", state.stats.Accepted,
		"target", c.cfg.MaxArticles,
	)

	for _, keyword := range c.cfg.SearchKeywords {
		if ctx.Err() != nil || state.stats.Accepted >= c.cfg.MaxArticles {
			return
		}

		state.stats.SearchQueries++
		links := c.searchCandidates(ctx, state, keyword)
		if len(links) == 0 {
			links = c.overflowMatches(state, keyword)
			if len(links) > 0 {
				c.log.Info("search fell back to category candidates",
					"keyword", keyword, "matches", len(links))
			}
		}

		c.crawlArticles(ctx, state, newTargets(links, "search:"+keyword))
	}
}

// searchCandidates probes the configured search endpoint patterns with the
// keyword and, once one works, paginates it. A pattern works when its first
// page fetches successfully and yields at least one unseen article link.
func (c *Crawler) searchCandidates(ctx context.Context, state *runState, keyword string) []string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")

	for _, pattern := range c.cfg.SearchPathPatterns {
		if ctx.Err() != nil {
			return nil
		}

		searchURL := base + fmt.Sprintf(pattern, url.QueryEscape(keyword))
		links := c.harvestUnseen(ctx, state, searchURL)
		if len(links) == 0 {
			continue
		}

		c.log.Info("search endpoint found", "keyword", keyword, "url", searchURL)
		for page := 2; page <= c.maxPages(c.cfg.MaxSearchPages); page++ {
			more := c.harvestUnseen(ctx, state, listingPageURL(searchURL, page))
			if len(more) == 0 {
				break
			}
			links = append(links, more...)
		}

		return links
	}

	c.log.Debug("no search endpoint worked", "keyword", keyword)

	return nil
}

// harvestUnseen fetches one page and returns its unseen same-host article
// links, marking them seen. Fetch or harvest failures yield an empty list.
func (c *Crawler) harvestUnseen(ctx context.Context, state *runState, pageURL string) []string {
	links, err := c.fetchListing(ctx, state, pageURL)
	if err != nil {
		c.log.Debug("search page failed", "url", pageURL, "error", err.Error())
		return nil
	}

	var unseen []string
	for _, link := range links {
		if state.seen[link] || !c.sameHost(link) {
			continue
		}
		state.seen[link] = true
		unseen = append(unseen, link)
	}

	return unseen
}

// overflowMatches filters the budget-overflow candidates by the keyword's
// URL slug.
func (c *Crawler) overflowMatches(state *runState, keyword string) []string {
	slug := slugify(keyword)
	if slug == "" {
		return nil
	}

	var matches []string
	for _, link := range state.overflow {
		if strings.Contains(slugify(link), slug) {
			matches = append(matches, link)
		}
	}

	return matches
}

// slugify lowercases, strips Vietnamese diacritics, and hyphenates a string
// so keywords can be matched against URL paths.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripDiacritics(s)

	return strings.ReplaceAll(s, " ", "-")
}

// stripDiacritics removes combining marks after NFD decomposition. The letter
// đ does not decompose and is mapped explicitly.
func stripDiacritics(s string) string {
	s = strings.ReplaceAll(s, "đ", "d")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
