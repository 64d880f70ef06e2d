package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aquanets/aquacrawl/internal/urlutil"
)

// ArticleLinks harvests candidate article URLs from a listing page. Each
// selector group in the table is tried in order and the first group yielding
// links wins. Links are absolutized against pageURL, canonicalized, and
// deduplicated in first-seen order.
func (e *SiteExtractor) ArticleLinks(html []byte, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	for _, selector := range e.selectors.ArticleLinks {
		if links := harvestLinks(doc.Find(selector), pageURL); len(links) > 0 {
			return links, nil
		}
	}

	return nil, nil
}

// NavLinks harvests navigation links from a page, typically the homepage,
// for category discovery.
func (e *SiteExtractor) NavLinks(html []byte, pageURL string) ([]string, error) {
	if e.selectors.Nav == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return harvestLinks(doc.Find(e.selectors.Nav), pageURL), nil
}

// harvestLinks resolves and canonicalizes the href of every anchor in the
// selection, keeping only http(s) links and dropping duplicates in order.
func harvestLinks(anchors *goquery.Selection, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]bool)
	var links []string
	anchors.Each(func(_ int, anchor *goquery.Selection) {
		href, exists := anchor.Attr("href")
		if !exists {
			return
		}

		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		resolved := absoluteURL(base, href)
		if !strings.HasPrefix(resolved, "http://") && !strings.HasPrefix(resolved, "https://") {
			return
		}

		canonical := urlutil.Canonicalize(resolved)
		if seen[canonical] {
			return
		}
		seen[canonical] = true
		links = append(links, canonical)
	})

	return links
}
