package feed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aquanets/aquacrawl/internal/feed"
	"github.com/aquanets/aquacrawl/internal/fetcher"
	"github.com/aquanets/aquacrawl/internal/logger"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Tin tôm</title>
<item><title>Bài 1</title><link>https://example.com/news/1/?utm_source=rss</link></item>
<item><title>Bài 2</title><link>https://example.com/news/2/</link></item>
<item><title>Trùng</title><link>https://example.com/news/1/</link></item>
</channel>
</rss>`

// fakeFetcher serves canned bodies by URL.
type fakeFetcher struct {
	bodies map[string]string
	calls  []string
}

func (f *fakeFetcher) Get(_ context.Context, rawURL string) (*fetcher.Response, error) {
	f.calls = append(f.calls, rawURL)
	body, ok := f.bodies[rawURL]
	if !ok {
		return nil, errors.New("not found")
	}
	return &fetcher.Response{StatusCode: 200, Body: []byte(body), URL: rawURL}, nil
}

func TestDiscover_CollectsCanonicalItemLinks(t *testing.T) {
	t.Parallel()

	fake := &fakeFetcher{bodies: map[string]string{
		"https://example.com/tom/feed/": rssBody,
	}}
	d := feed.NewDiscoverer(fake, logger.NewNoOp())

	links := d.Discover(context.Background(), []string{"https://example.com/tom/"})

	want := []string{
		"https://example.com/news/1/",
		"https://example.com/news/2/",
	}
	if len(links) != len(want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}

func TestDiscover_SilentlySkipsMissingFeeds(t *testing.T) {
	t.Parallel()

	fake := &fakeFetcher{bodies: map[string]string{
		"https://example.com/benh-tom/feed/": rssBody,
	}}
	d := feed.NewDiscoverer(fake, logger.NewNoOp())

	links := d.Discover(context.Background(), []string{
		"https://example.com/tom/",      // no feed here
		"https://example.com/benh-tom/", // feed exists
	})

	if len(links) != 2 {
		t.Errorf("links = %v, want two links from the working feed", links)
	}
	if len(fake.calls) != 2 {
		t.Errorf("probed %d feeds, want 2", len(fake.calls))
	}
}

func TestDiscover_UnparsableFeedSkipped(t *testing.T) {
	t.Parallel()

	fake := &fakeFetcher{bodies: map[string]string{
		"https://example.com/tom/feed/": "<html>not a feed</html>",
	}}
	d := feed.NewDiscoverer(fake, logger.NewNoOp())

	if links := d.Discover(context.Background(), []string{"https://example.com/tom/"}); len(links) != 0 {
		t.Errorf("links = %v, want none from an unparsable feed", links)
	}
}
