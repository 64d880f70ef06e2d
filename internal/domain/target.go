package domain

import "time"

// CrawlTarget is a candidate article URL discovered during traversal.
// Targets are immutable once enqueued and are deduplicated by canonical URL;
// discovery order is preserved.
type CrawlTarget struct {
	// Canonical URL of the candidate article
	URL string `json:"url"`
	// Category page the URL was discovered on, if any
	Category string `json:"category,omitempty"`
	// Time the URL was discovered
	DiscoveredAt time.Time `json:"discovered_at"`
}
