package urlutil_test

import (
	"testing"

	"github.com/aquanets/aquacrawl/internal/urlutil"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no query unchanged",
			in:   "https://example.com/tom/article-1/",
			want: "https://example.com/tom/article-1/",
		},
		{
			name: "fragment stripped",
			in:   "https://example.com/article#comments",
			want: "https://example.com/article",
		},
		{
			name: "tracking params removed",
			in:   "https://example.com/a?utm_source=fb&utm_medium=social&fbclid=xyz",
			want: "https://example.com/a",
		},
		{
			name: "real params kept in order",
			in:   "https://example.com/a?page=2&utm_campaign=c&q=tom&gclid=1",
			want: "https://example.com/a?page=2&q=tom",
		},
		{
			name: "valueless pair dropped",
			in:   "https://example.com/a?flag&page=3",
			want: "https://example.com/a?page=3",
		},
		{
			name: "empty query stripped",
			in:   "https://example.com/a?",
			want: "https://example.com/a",
		},
		{
			name: "fragment after query",
			in:   "https://example.com/a?page=2#top",
			want: "https://example.com/a?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := urlutil.Canonicalize(tt.in); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalize_TrackingOnlyVariantsCollapse(t *testing.T) {
	t.Parallel()

	base := urlutil.Canonicalize("https://example.com/article")
	tracked := urlutil.Canonicalize("https://example.com/article?utm_source=zalo&ref=home#body")

	if base != tracked {
		t.Errorf("expected identical keys, got %q and %q", base, tracked)
	}
}
