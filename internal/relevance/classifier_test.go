package relevance_test

import (
	"strings"
	"testing"

	"github.com/aquanets/aquacrawl/internal/config"
	"github.com/aquanets/aquacrawl/internal/relevance"
)

// newTestClassifier builds a classifier with a small fixed keyword table.
func newTestClassifier(t *testing.T) *relevance.Classifier {
	t.Helper()

	return relevance.New(config.KeywordSets{
		URLTokens: []string{"tom", "tôm", "shrimp"},
		Topic:     []string{"tôm", "thủy sản", "shrimp"},
		Disease:   []string{"đốm trắng", "ems", "hoại tử gan tụy"},
		Technique: []string{"biofloc", "thâm canh", "ao nuôi"},
		Exclude:   []string{"bóng đá", "chứng khoán"},
	})
}

func TestIsRelevant(t *testing.T) {
	t.Parallel()

	c := newTestClassifier(t)

	tests := []struct {
		name  string
		url   string
		title string
		body  string
		want  bool
	}{
		{
			name: "url token match",
			url:  "https://example.com/tom/article-1/",
			want: true,
		},
		{
			name:  "title topic match with empty body",
			url:   "https://example.com/news/article-2/",
			title: "Kỹ thuật nuôi tôm thẻ chân trắng",
			want:  true,
		},
		{
			name:  "title disease match",
			url:   "https://example.com/news/article-3/",
			title: "Cảnh báo bệnh đốm trắng lan rộng",
			want:  true,
		},
		{
			name:  "off-topic everything",
			url:   "https://example.com/the-thao/tran-dau/",
			title: "Kết quả vòng loại",
			body:  "Trận đấu diễn ra sôi nổi.",
			want:  false,
		},
		{
			name: "body topic occurrences meet threshold",
			url:  "https://example.com/news/article-4/",
			body: "Giá thủy sản tăng. Xuất khẩu thủy sản đạt kỷ lục. Ngành thủy sản mở rộng.",
			want: true,
		},
		{
			name: "body below threshold",
			url:  "https://example.com/news/article-5/",
			body: "Giá thủy sản tăng nhẹ trong quý một.",
			want: false,
		},
		{
			name: "disease and technique combine",
			url:  "https://example.com/news/article-6/",
			body: "Bệnh EMS xuất hiện tại các ao nuôi. Mô hình biofloc hạn chế rủi ro.",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := c.IsRelevant(tt.url, tt.title, tt.body); got != tt.want {
				t.Errorf("IsRelevant(%q, %q, ...) = %v, want %v", tt.url, tt.title, got, tt.want)
			}
		})
	}
}

func TestIsRelevant_RepeatedKeywordCounts(t *testing.T) {
	t.Parallel()

	c := newTestClassifier(t)

	// One keyword repeated three times meets the threshold on its own.
	body := strings.Repeat("shrimp farming update. ", 3)

	if !c.IsRelevant("https://example.com/news/x/", "", body) {
		t.Error("expected three occurrences of a single keyword to be accepted")
	}
}

func TestIsExcluded(t *testing.T) {
	t.Parallel()

	c := newTestClassifier(t)

	if !c.IsExcluded("Bóng đá: kết quả đêm qua") {
		t.Error("expected exclusion keyword in title to match")
	}
	if c.IsExcluded("Nuôi tôm công nghệ cao") {
		t.Error("expected on-topic title not to match exclusion table")
	}
}

func TestIsRelevant_DefaultKeywords(t *testing.T) {
	t.Parallel()

	c := relevance.New(config.DefaultKeywords())

	if !c.IsRelevant("https://thuysanvietnam.com.vn/tom/gia-tom-hom-nay/", "", "") {
		t.Error("expected default URL tokens to accept a /tom/ URL")
	}
}
