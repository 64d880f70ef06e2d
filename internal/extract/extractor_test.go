package extract_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aquanets/aquacrawl/internal/extract"
)

const articleHTML = `<!DOCTYPE html>
<html>
<body>
<h1 class="title">Kỹ thuật nuôi tôm thẻ chân trắng</h1>
<span class="cms-date">15/08/2026</span>
<div class="author">Nguyễn Văn A</div>
<div class="cms-desc">Tóm tắt bài viết về kỹ thuật nuôi.</div>
<div class="detail-content">
  <p>Đoạn mở đầu về kỹ thuật nuôi tôm.</p>
  <p>Đoạn thứ hai nói về quản lý ao nuôi.</p>
  <script>var tracker = 1;</script>
  <div class="related-news"><a href="/lien-quan">Bài liên quan</a></div>
  <img src="/images/ao-nuoi.jpg" alt="">
  <img src="data:image/png;base64,AAAA" alt="">
  <p>Đoạn kết luận.</p>
</div>
<div class="tags"><a href="/tag/tom">tôm</a><a href="/tag/ky-thuat">kỹ thuật</a></div>
</body>
</html>`

func newTestExtractor(t *testing.T) *extract.SiteExtractor {
	t.Helper()

	return extract.NewSiteExtractor(extract.DefaultSelectors())
}

func TestExtract_FullArticle(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)

	article, err := e.Extract([]byte(articleHTML), "https://example.com/tom/bai-viet/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if article.Title != "Kỹ thuật nuôi tôm thẻ chân trắng" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.PublishedDate != "15/08/2026" {
		t.Errorf("PublishedDate = %q", article.PublishedDate)
	}
	if article.Author != "Nguyễn Văn A" {
		t.Errorf("Author = %q", article.Author)
	}
	if article.Summary != "Tóm tắt bài viết về kỹ thuật nuôi." {
		t.Errorf("Summary = %q", article.Summary)
	}

	paragraphs := strings.Split(article.BodyText, "\n\n")
	if len(paragraphs) != 3 {
		t.Fatalf("got %d body paragraphs, want 3: %q", len(paragraphs), article.BodyText)
	}
	if paragraphs[0] != "Đoạn mở đầu về kỹ thuật nuôi tôm." {
		t.Errorf("first paragraph = %q", paragraphs[0])
	}
	if strings.Contains(article.BodyText, "tracker") {
		t.Error("script content leaked into body text")
	}
	if strings.Contains(article.BodyText, "Bài liên quan") {
		t.Error("excluded related-news block leaked into body text")
	}

	if len(article.Images) != 1 {
		t.Fatalf("got %d images, want 1 (data URI skipped): %v", len(article.Images), article.Images)
	}
	if article.Images[0] != "https://example.com/images/ao-nuoi.jpg" {
		t.Errorf("image = %q, want absolute URL", article.Images[0])
	}

	if len(article.Tags) != 2 || article.Tags[0] != "tôm" {
		t.Errorf("Tags = %v", article.Tags)
	}
}

func TestExtract_MissingTitle(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)

	html := `<html><body><div class="detail-content"><p>Nội dung.</p></div></body></html>`
	_, err := e.Extract([]byte(html), "https://example.com/x/")

	if !errors.Is(err, extract.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_MissingBody(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)

	html := `<html><body><h1 class="title">Chỉ có tiêu đề</h1></body></html>`
	_, err := e.Extract([]byte(html), "https://example.com/x/")

	if !errors.Is(err, extract.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_SelectorFallbackOrder(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)

	// Neither h1.title nor h1.cms-title exists; the third candidate matches.
	html := `<html><body>
<h1 class="detail-title">Tiêu đề dự phòng</h1>
<div class="cms-body"><p>Nội dung chính.</p></div>
</body></html>`

	article, err := e.Extract([]byte(html), "https://example.com/x/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if article.Title != "Tiêu đề dự phòng" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.BodyText != "Nội dung chính." {
		t.Errorf("BodyText = %q", article.BodyText)
	}
}

func TestArticleLinks_DedupAndCanonicalize(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)

	html := `<html><body><div class="list-news">
<article><a href="/tom/bai-1/">Bài 1</a></article>
<article><a href="/tom/bai-1/?utm_source=home">Bài 1 lại</a></article>
<article><a href="/tom/bai-2/#top">Bài 2</a></article>
<article><a href="mailto:ai@example.com">Liên hệ</a></article>
</div></body></html>`

	links, err := e.ArticleLinks([]byte(html), "https://example.com/tom/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://example.com/tom/bai-1/",
		"https://example.com/tom/bai-2/",
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

func TestNavLinks(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)

	html := `<html><body><nav><ul>
<li><a href="/tom/">Tôm</a></li>
<li><a href="/thuy-san/">Thủy sản</a></li>
<li><a href="#menu">Menu</a></li>
</ul></nav></body></html>`

	links, err := e.NavLinks([]byte(html), "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("links = %v, want two category links", links)
	}
	if links[0] != "https://example.com/tom/" {
		t.Errorf("links[0] = %q", links[0])
	}
}
