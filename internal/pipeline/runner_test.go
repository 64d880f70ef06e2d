package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aquanets/aquacrawl/internal/config"
	"github.com/aquanets/aquacrawl/internal/domain"
	"github.com/aquanets/aquacrawl/internal/logger"
	"github.com/aquanets/aquacrawl/internal/pipeline"
)

// fakeStore is an in-memory pipeline.Store.
type fakeStore struct {
	raw       map[string]*domain.RawDocument
	order     []string
	saved     []*domain.ProcessedDocument
	listErr   error
	saveErr   error
	loadCalls int
}

func (s *fakeStore) ListRaw() ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.order, nil
}

func (s *fakeStore) LoadRaw(name string) (*domain.RawDocument, error) {
	s.loadCalls++
	doc, ok := s.raw[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

func (s *fakeStore) SaveProcessed(doc *domain.ProcessedDocument) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, doc)
	return doc.ID + ".json", nil
}

func newFakeStore(docs ...*domain.RawDocument) *fakeStore {
	s := &fakeStore{raw: make(map[string]*domain.RawDocument)}
	for _, doc := range docs {
		name := doc.ID + ".json"
		s.raw[name] = doc
		s.order = append(s.order, name)
	}
	return s
}

func newTestRunner(t *testing.T, store pipeline.Store) *pipeline.Runner {
	t.Helper()

	processor := pipeline.NewProcessor(config.ProcessingConfig{
		ChunkSize:    512,
		ChunkOverlap: 50,
	}, logger.NewNoOp())

	return pipeline.NewRunner(processor, store, logger.NewNoOp())
}

func TestRun_ProcessesAllDocuments(t *testing.T) {
	t.Parallel()

	store := newFakeStore(
		&domain.RawDocument{ID: "a", BodyText: "Nội dung bài một."},
		&domain.RawDocument{ID: "b", BodyText: "Nội dung bài hai."},
	)
	runner := newTestRunner(t, store)

	stats, err := runner.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Processed != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 2 processed, 0 failed", stats)
	}
	if len(store.saved) != 2 {
		t.Errorf("saved %d documents, want 2", len(store.saved))
	}
}

func TestRun_LimitBoundsWork(t *testing.T) {
	t.Parallel()

	store := newFakeStore(
		&domain.RawDocument{ID: "a", BodyText: "Một."},
		&domain.RawDocument{ID: "b", BodyText: "Hai."},
		&domain.RawDocument{ID: "c", BodyText: "Ba."},
	)
	runner := newTestRunner(t, store)

	stats, err := runner.Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Processed != 2 {
		t.Errorf("Processed = %d, want 2", stats.Processed)
	}
	if store.loadCalls != 2 {
		t.Errorf("loadCalls = %d, want 2", store.loadCalls)
	}
}

func TestRun_SkipsFailingDocuments(t *testing.T) {
	t.Parallel()

	store := newFakeStore(
		&domain.RawDocument{ID: "good", BodyText: "Nội dung."},
		&domain.RawDocument{ID: "empty"}, // no body text, fails processing
		&domain.RawDocument{ID: "also-good", BodyText: "Nội dung khác."},
	)
	runner := newTestRunner(t, store)

	stats, err := runner.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Processed != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 2 processed, 1 failed", stats)
	}
}

func TestRun_ListFailureAborts(t *testing.T) {
	t.Parallel()

	store := &fakeStore{listErr: errors.New("disk gone")}
	runner := newTestRunner(t, store)

	if _, err := runner.Run(context.Background(), 0); err == nil {
		t.Fatal("expected error when listing fails")
	}
}

func TestRun_CancelledContextStops(t *testing.T) {
	t.Parallel()

	store := newFakeStore(
		&domain.RawDocument{ID: "a", BodyText: "Một."},
		&domain.RawDocument{ID: "b", BodyText: "Hai."},
	)
	runner := newTestRunner(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := runner.Run(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if stats.Processed != 0 {
		t.Errorf("Processed = %d, want 0", stats.Processed)
	}
}
