// Package relevance implements the heuristic accept/reject decision on
// whether a candidate document belongs to the target domain.
package relevance

import (
	"strings"

	"github.com/aquanets/aquacrawl/internal/config"
)

// bodyOccurrenceThreshold is the minimum number of keyword occurrences in the
// body before a document is accepted on body evidence alone.
const bodyOccurrenceThreshold = 3

// Classifier scores candidate documents against weighted keyword tables.
// The decision is binary; there is no "unknown" verdict.
type Classifier struct {
	urlTokens []string
	topic     []string
	disease   []string
	technique []string
	exclude   []string
}

// New creates a classifier from the given keyword tables.
func New(keywords config.KeywordSets) *Classifier {
	return &Classifier{
		urlTokens: lowerAll(keywords.URLTokens),
		topic:     lowerAll(keywords.Topic),
		disease:   lowerAll(keywords.Disease),
		technique: lowerAll(keywords.Technique),
		exclude:   lowerAll(keywords.Exclude),
	}
}

// IsRelevant decides whether a document belongs to the target domain.
// The checks short-circuit in order: URL token match, title keyword match,
// then body occurrence counting. Occurrences are counted per match, not per
// distinct keyword: a single keyword repeated three times meets the
// threshold. That asymmetry biases toward recall and is intentional.
func (c *Classifier) IsRelevant(rawURL, title, body string) bool {
	urlLower := strings.ToLower(rawURL)
	if containsAny(urlLower, c.urlTokens) {
		return true
	}

	titleLower := strings.ToLower(title)
	if containsAny(titleLower, c.topic) ||
		containsAny(titleLower, c.disease) ||
		containsAny(titleLower, c.technique) {
		return true
	}

	if body == "" {
		return false
	}

	bodyLower := strings.ToLower(body)
	if countOccurrences(bodyLower, c.topic) >= bodyOccurrenceThreshold {
		return true
	}

	diseaseAndTechnique := countOccurrences(bodyLower, c.disease) +
		countOccurrences(bodyLower, c.technique)

	return diseaseAndTechnique >= bodyOccurrenceThreshold
}

// IsExcluded reports whether the title matches the off-topic exclusion table.
// Exclusion is advisory: callers use it to down-rank, not to veto, since
// mixed coverage is common on aquaculture news sites.
func (c *Classifier) IsExcluded(title string) bool {
	return containsAny(strings.ToLower(title), c.exclude)
}

// containsAny reports whether text contains any of the keywords. The text
// must already be lowercased.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// countOccurrences sums keyword occurrence counts over the text. The text
// must already be lowercased.
func countOccurrences(text string, keywords []string) int {
	total := 0
	for _, keyword := range keywords {
		total += strings.Count(text, keyword)
	}
	return total
}

// lowerAll lowercases every keyword in the table.
func lowerAll(keywords []string) []string {
	lowered := make([]string, len(keywords))
	for i, keyword := range keywords {
		lowered[i] = strings.ToLower(keyword)
	}
	return lowered
}
