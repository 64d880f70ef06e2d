package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// dataURIPrefix marks inline image sources that are never collected.
const dataURIPrefix = "data:"

// blockSelector lists the block-level elements whose text forms the article
// body, in document order.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote"

// Extractor converts raw HTML into structured article fields. The crawler
// consumes only this contract and stays independent of any specific site.
type Extractor interface {
	Extract(html []byte, pageURL string) (*Article, error)
}

// SiteExtractor extracts article fields using a per-site selector table.
type SiteExtractor struct {
	selectors SelectorConfig
}

// NewSiteExtractor creates an extractor for the given selector table.
func NewSiteExtractor(selectors SelectorConfig) *SiteExtractor {
	return &SiteExtractor{selectors: selectors}
}

// Extract parses the page and extracts article fields. Title and body are
// required; their absence yields ErrExtractionFailed. All other fields are
// optional and default to empty.
func (e *SiteExtractor) Extract(html []byte, pageURL string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := firstText(doc, e.selectors.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: no title at %s", ErrExtractionFailed, pageURL)
	}

	body := e.findBodyContainer(doc)
	if body == nil {
		return nil, fmt.Errorf("%w: no body at %s", ErrExtractionFailed, pageURL)
	}

	for _, selector := range e.selectors.BodyExcludes {
		body.Find(selector).Remove()
	}

	bodyHTML, err := goquery.OuterHtml(body)
	if err != nil {
		bodyHTML = ""
	}

	return &Article{
		Title:         title,
		PublishedDate: firstText(doc, e.selectors.Date),
		Author:        firstText(doc, e.selectors.Author),
		Summary:       firstText(doc, e.selectors.Summary),
		BodyText:      blockText(body),
		BodyHTML:      bodyHTML,
		Images:        collectImages(body, pageURL),
		Tags:          collectTags(doc, e.selectors.Tags),
	}, nil
}

// findBodyContainer returns the first matching body container, or nil.
func (e *SiteExtractor) findBodyContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.selectors.Body {
		container := doc.Find(selector).First()
		if container.Length() > 0 {
			return container
		}
	}
	return nil
}

// firstText returns the trimmed text of the first element matching any of
// the candidate selectors, in order.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// blockText extracts the container's text block by block, separating blocks
// with blank lines so paragraph structure survives for downstream chunking.
// Falls back to the container's raw text when no block elements exist.
func blockText(container *goquery.Selection) string {
	var blocks []string
	container.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		// Skip nested blocks (e.g. a p inside a blockquote): the ancestor
		// already contributes their text.
		if block.Parent().Closest(blockSelector).Length() > 0 {
			return
		}
		if text := strings.TrimSpace(block.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return strings.TrimSpace(container.Text())
	}

	return strings.Join(blocks, "\n\n")
}

// collectImages gathers absolute image URLs from the body container,
// skipping inline data URIs.
func collectImages(container *goquery.Selection, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var images []string
	container.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, exists := img.Attr("src")
		if !exists || src == "" || strings.HasPrefix(src, dataURIPrefix) {
			return
		}
		images = append(images, absoluteURL(base, src))
	})

	return images
}

// collectTags gathers tag texts using the tags selector.
func collectTags(doc *goquery.Document, selector string) []string {
	if selector == "" {
		return nil
	}

	var tags []string
	doc.Find(selector).Each(func(_ int, tag *goquery.Selection) {
		if text := strings.TrimSpace(tag.Text()); text != "" {
			tags = append(tags, text)
		}
	})

	return tags
}

// absoluteURL resolves href against base, returning href unchanged when it
// cannot be resolved.
func absoluteURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}
