// Package urlutil provides URL canonicalization for crawl deduplication.
package urlutil

import "strings"

// trackingParams are query parameter keys that carry tracking state and never
// affect page identity. They are stripped during canonicalization.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"ref":          true,
	"source":       true,
	"ref_src":      true,
	"ref_url":      true,
}

// Canonicalize reduces a URL to its stable deduplication key: the fragment is
// stripped and known tracking parameters are removed, with the remaining
// parameters kept in their original relative order. Two URLs differing only
// in tracking parameters or fragment canonicalize to the same string.
func Canonicalize(rawURL string) string {
	// Fragment first: everything after # is never part of the key.
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}

	base, query, found := strings.Cut(rawURL, "?")
	if !found || query == "" {
		return base
	}

	kept := make([]string, 0, strings.Count(query, "&")+1)
	for pair := range strings.SplitSeq(query, "&") {
		key, _, hasValue := strings.Cut(pair, "=")
		if !hasValue || trackingParams[key] {
			continue
		}
		kept = append(kept, pair)
	}

	if len(kept) == 0 {
		return base
	}

	return base + "?" + strings.Join(kept, "&")
}
