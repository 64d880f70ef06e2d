// Package fetcher performs rate-limited, retrying HTTP fetches under the
// politeness rules of the target site.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aquanets/aquacrawl/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// PermissionChecker answers whether a URL may be crawled.
type PermissionChecker interface {
	IsAllowed(rawURL string) bool
}

// Response is the outcome of a successful fetch.
type Response struct {
	// StatusCode is the HTTP status of the final attempt.
	StatusCode int
	// Body is the response body, bounded by maxResponseBodyBytes.
	Body []byte
	// URL is the URL that was requested.
	URL string
}

// Config holds the static request shape for a fetch session.
type Config struct {
	// UserAgents is the identity pool; one is picked at random per attempt.
	UserAgents []string
	// Headers is the base header set sent with every request.
	Headers map[string]string
	// Delay is the base inter-request delay. Each retry scales it by the
	// attempt index plus one (linear backoff).
	Delay time.Duration
	// MaxRetries is the maximum number of attempts per fetch.
	MaxRetries int
	// Timeout is the per-HTTP-call timeout.
	Timeout time.Duration
}

// Client fetches URLs sequentially with inter-request delays, per-attempt
// identity rotation, and bounded linear-backoff retry. It never fetches a
// URL the permission checker denies.
type Client struct {
	httpClient *http.Client
	rules      PermissionChecker
	log        logger.Interface
	cfg        Config
}

// New creates a fetch client. A nil rules checker permits everything.
func New(cfg Config, rules PermissionChecker, log logger.Interface) *Client {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		rules:      rules,
		log:        log,
		cfg:        cfg,
	}
}

// Get fetches the URL with the GET method and no parameters.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	return c.Fetch(ctx, rawURL, http.MethodGet, nil, nil)
}

// Fetch performs an HTTP request with retry. Each attempt sleeps first (base
// delay on the first attempt, scaled by attempt+1 on retries), rotates the
// client identity, and counts any transport failure or non-2xx/3xx status as
// a failed attempt. Exhausting all attempts returns ErrFetchExhausted
// wrapping the last error. A URL denied by the permission checker returns
// ErrPermissionDenied without any network call.
func (c *Client) Fetch(
	ctx context.Context,
	rawURL, method string,
	params url.Values,
	body io.Reader,
) (*Response, error) {
	if c.rules != nil && !c.rules.IsAllowed(rawURL) {
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, rawURL)
	}

	requestURL := rawURL
	if len(params) > 0 {
		requestURL = appendQuery(rawURL, params)
	}

	var lastErr error
	for attempt := range c.cfg.MaxRetries {
		if err := c.sleep(ctx, attempt); err != nil {
			return nil, err
		}

		resp, err := c.doAttempt(ctx, requestURL, method, body)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		c.log.Warn("fetch attempt failed",
			"url", rawURL,
			"attempt", attempt+1,
			"max_attempts", c.cfg.MaxRetries,
			"error", err.Error(),
		)
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrFetchExhausted, c.cfg.MaxRetries, lastErr)
}

// sleep waits out the inter-request delay for the given attempt, honoring
// context cancellation. Retries wait attempt+1 times the base delay.
func (c *Client) sleep(ctx context.Context, attempt int) error {
	delay := c.cfg.Delay
	if attempt > 0 {
		delay = c.cfg.Delay * time.Duration(attempt+1)
	}

	if delay <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// doAttempt performs one HTTP request and reads the bounded body.
// A status outside the 2xx/3xx range counts as a failure.
func (c *Client) doAttempt(
	ctx context.Context,
	requestURL, method string,
	body io.Reader,
) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", c.randomUserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: requestURL}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data, URL: requestURL}, nil
}

// randomUserAgent picks a client identity uniformly at random from the pool.
func (c *Client) randomUserAgent() string {
	if len(c.cfg.UserAgents) == 0 {
		return ""
	}

	return c.cfg.UserAgents[rand.IntN(len(c.cfg.UserAgents))]
}

// appendQuery appends encoded parameters to a URL, keeping any existing query.
func appendQuery(rawURL string, params url.Values) string {
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}

	return rawURL + separator + params.Encode()
}
