// Package extract converts raw article HTML into structured fields using
// CSS selectors. Per-site selector tables keep the crawler itself
// site-agnostic.
package extract

import "errors"

// ErrExtractionFailed is returned when a required field (title or body)
// cannot be found in the page. Documents failing extraction are skipped, not
// retried.
var ErrExtractionFailed = errors.New("required article fields not found")

// Article holds the structured fields extracted from one article page.
// Optional fields are empty, never an error, when absent from the page.
type Article struct {
	// Title of the article (required)
	Title string
	// PublishedDate as displayed by the source, free-form (optional)
	PublishedDate string
	// Author byline (optional)
	Author string
	// Summary or lede paragraph (optional)
	Summary string
	// BodyText is the plain-text body with paragraphs separated by blank
	// lines (required)
	BodyText string
	// BodyHTML is the raw HTML of the body container
	BodyHTML string
	// Images are absolute URLs of images found in the body
	Images []string
	// Tags attached by the source
	Tags []string
}

// SelectorConfig lists the CSS selector candidates for each article field.
// Candidates are tried in order; the first match wins. Body excludes are
// removed from the body container before text extraction.
type SelectorConfig struct {
	Title        []string `mapstructure:"title"         yaml:"title"`
	Date         []string `mapstructure:"date"          yaml:"date"`
	Author       []string `mapstructure:"author"        yaml:"author"`
	Summary      []string `mapstructure:"summary"       yaml:"summary"`
	Body         []string `mapstructure:"body"          yaml:"body"`
	BodyExcludes []string `mapstructure:"body_excludes" yaml:"body_excludes"`
	Tags         string   `mapstructure:"tags"          yaml:"tags"`
	ArticleLinks []string `mapstructure:"article_links" yaml:"article_links"`
	Nav          string   `mapstructure:"nav"           yaml:"nav"`
}

// DefaultSelectors returns the selector table for the default target site
// (thuysanvietnam.com.vn).
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		Title:   []string{"h1.title", "h1.cms-title", "h1.detail-title"},
		Date:    []string{"span.cms-date", ".detail-time", ".time"},
		Author:  []string{".author", ".detail-author"},
		Summary: []string{".cms-desc", ".sapo", ".detail-sapo"},
		Body:    []string{".detail-content", ".cms-body", ".body-content"},
		BodyExcludes: []string{
			"script", "style", ".related-news", ".adv", ".banner", ".social-share",
		},
		Tags: ".tags a",
		ArticleLinks: []string{
			".list-news article a, .cms-list article a, .news-item a",
			".list-news a, .news-list a",
			"a.title, h3.title a, .list a",
			".search-result article a, .search-results a, .result-list a",
			".item-news a, .article-item a, .result-item a, .news-title a",
		},
		Nav: "nav ul li a, .menu a, .navigation a",
	}
}
