package textproc_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aquanets/aquacrawl/internal/textproc"
)

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	t.Parallel()

	chunks := textproc.Chunk("Một đoạn ngắn.", 512, 50)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "Một đoạn ngắn." {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunk_EmptyText(t *testing.T) {
	t.Parallel()

	if chunks := textproc.Chunk("", 512, 50); len(chunks) != 0 {
		t.Errorf("got %d chunks for empty text, want 0", len(chunks))
	}
}

func TestChunk_PacksWholeParagraphs(t *testing.T) {
	t.Parallel()

	// Two short paragraphs fit one chunk with the separator; the third
	// starts a new chunk.
	p1 := strings.Repeat("a", 40)
	p2 := strings.Repeat("b", 40)
	p3 := strings.Repeat("c", 40)
	text := p1 + "\n\n" + p2 + "\n\n" + p3

	chunks := textproc.Chunk(text, 90, 50)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
	}
	if chunks[0] != p1+"\n\n"+p2 {
		t.Errorf("first chunk = %q, want packed paragraphs", chunks[0])
	}
	if chunks[1] != p3 {
		t.Errorf("second chunk = %q, want third paragraph", chunks[1])
	}
}

func TestChunk_NoOverlapBetweenParagraphChunks(t *testing.T) {
	t.Parallel()

	// Overlap applies only inside oversized paragraphs, never between
	// paragraph-packed chunks.
	p1 := strings.Repeat("x", 80)
	p2 := strings.Repeat("y", 80)

	chunks := textproc.Chunk(p1+"\n\n"+p2, 100, 50)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if strings.Contains(chunks[1], "x") {
		t.Error("second chunk carries text from the first paragraph")
	}
}

func TestChunk_OversizedParagraphWordSplit(t *testing.T) {
	t.Parallel()

	const (
		size    = 100
		overlap = 20
		carry   = overlap / 10
	)

	// A single ~1000-char paragraph of numbered words.
	var words []string
	for i := range 150 {
		words = append(words, fmt.Sprintf("word%03d", i))
	}
	paragraph := strings.Join(words, " ")

	chunks := textproc.Chunk(paragraph, size, overlap)

	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) > size {
			t.Errorf("chunk %d is %d bytes, exceeds %d", i, len(chunk), size)
		}
	}

	// Each chunk after the first starts with the last carry words of its
	// predecessor.
	for i := 1; i < len(chunks); i++ {
		prevWords := strings.Fields(chunks[i-1])
		tail := strings.Join(prevWords[len(prevWords)-carry:], " ")
		if !strings.HasPrefix(chunks[i], tail+" ") {
			t.Errorf("chunk %d does not start with predecessor tail %q: %q", i, tail, chunks[i])
		}
	}
}

func TestChunk_AllWordsSurviveSplitting(t *testing.T) {
	t.Parallel()

	var words []string
	for i := range 200 {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	paragraph := strings.Join(words, " ")

	chunks := textproc.Chunk(paragraph, 64, 20)

	got := make(map[string]bool)
	for _, chunk := range chunks {
		for _, word := range strings.Fields(chunk) {
			got[word] = true
		}
	}

	for _, word := range words {
		if !got[word] {
			t.Errorf("word %q missing from all chunks", word)
		}
	}
}

func TestChunk_UnsplittableWordBecomesOwnChunk(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("z", 150)
	text := "ngắn " + long + " cuối"

	chunks := textproc.Chunk(text, 100, 20)

	found := false
	for _, chunk := range chunks {
		if chunk == long {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the oversized word to form its own chunk: %q", chunks)
	}
}

func TestChunk_ZeroOverlapNoCarry(t *testing.T) {
	t.Parallel()

	var words []string
	for i := range 60 {
		words = append(words, fmt.Sprintf("word%02d", i))
	}
	paragraph := strings.Join(words, " ")

	chunks := textproc.Chunk(paragraph, 80, 0)

	seen := make(map[string]int)
	for _, chunk := range chunks {
		for _, word := range strings.Fields(chunk) {
			seen[word]++
		}
	}

	for word, count := range seen {
		if count != 1 {
			t.Errorf("word %q appears %d times with zero overlap", word, count)
		}
	}
}
