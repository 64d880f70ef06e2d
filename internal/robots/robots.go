// Package robots implements robots.txt compliance for the crawler. Rules are
// parsed once per crawl session into an immutable prefix rule set and queried
// read-only for the session's lifetime.
package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// robotsTxtPath is the well-known path for robots.txt files.
const robotsTxtPath = "/robots.txt"

// maxRobotsBodyBytes limits the size of robots.txt responses we will read.
const maxRobotsBodyBytes = 512 * 1024 // 512 KB

// Directive prefixes recognized in a robots.txt document. Everything else is
// ignored.
const (
	directiveUserAgent = "user-agent:"
	directiveDisallow  = "disallow:"
	directiveAllow     = "allow:"
)

// RuleSet holds the allow/disallow URL prefixes that apply to our crawler
// identity. An empty rule set permits every URL (fail-open policy).
type RuleSet struct {
	allowed    []string
	disallowed []string
}

// Empty returns a rule set that permits everything.
func Empty() *RuleSet {
	return &RuleSet{}
}

// Parse builds a rule set from the raw text of a robots.txt document.
// A user-agent line opens a rule block; the block applies to us when its
// agent token is "*" or is a case-insensitive substring of userAgent.
// Disallow/allow paths are resolved against baseURL into absolute prefixes.
func Parse(robotsTxt, baseURL, userAgent string) *RuleSet {
	base, err := url.Parse(baseURL)
	if err != nil {
		return Empty()
	}

	rs := &RuleSet{}
	agentLower := strings.ToLower(userAgent)
	applies := false

	for line := range strings.Lines(robotsTxt) {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, directiveUserAgent):
			agent := strings.TrimSpace(lower[len(directiveUserAgent):])
			applies = agent == "*" || (agent != "" && strings.Contains(agentLower, agent))
		case applies && strings.HasPrefix(lower, directiveDisallow):
			if prefix := resolvePath(base, line[len(directiveDisallow):]); prefix != "" {
				rs.disallowed = append(rs.disallowed, prefix)
			}
		case applies && strings.HasPrefix(lower, directiveAllow):
			if prefix := resolvePath(base, line[len(directiveAllow):]); prefix != "" {
				rs.allowed = append(rs.allowed, prefix)
			}
		}
	}

	return rs
}

// resolvePath resolves a directive path against the base URL. Empty paths
// yield no rule.
func resolvePath(base *url.URL, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	ref, err := url.Parse(path)
	if err != nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}

// IsAllowed reports whether the given URL may be crawled. A URL matching no
// disallowed prefix is permitted. A URL matching a disallowed prefix is still
// permitted when some allowed prefix matching it is strictly longer than the
// longest matching disallowed prefix.
func (rs *RuleSet) IsAllowed(rawURL string) bool {
	longestDisallowed := 0
	for _, prefix := range rs.disallowed {
		if strings.HasPrefix(rawURL, prefix) && len(prefix) > longestDisallowed {
			longestDisallowed = len(prefix)
		}
	}

	if longestDisallowed == 0 {
		return true
	}

	for _, prefix := range rs.allowed {
		if strings.HasPrefix(rawURL, prefix) && len(prefix) > longestDisallowed {
			return true
		}
	}

	return false
}

// RuleCount returns the number of registered allow and disallow prefixes.
func (rs *RuleSet) RuleCount() (allowed, disallowed int) {
	return len(rs.allowed), len(rs.disallowed)
}

// Fetch retrieves and parses the robots.txt of the site at baseURL. A fetch
// failure or a non-2xx status yields an empty rule set, never an error: an
// unreachable robots.txt permits everything.
func Fetch(ctx context.Context, client *http.Client, baseURL, userAgent string) *RuleSet {
	robotsURL := strings.TrimRight(baseURL, "/") + robotsTxtPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if err != nil {
		return Empty()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return Empty()
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Empty()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		return Empty()
	}

	return Parse(string(body), baseURL, userAgent)
}

// String describes the rule set for logging.
func (rs *RuleSet) String() string {
	return fmt.Sprintf("robots rules: %d allowed, %d disallowed", len(rs.allowed), len(rs.disallowed))
}
