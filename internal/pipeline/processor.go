// Package pipeline turns raw crawled documents into processed documents:
// normalized text, overlapping chunks with metadata, language codes, and
// entity annotations.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aquanets/aquacrawl/internal/config"
	"github.com/aquanets/aquacrawl/internal/domain"
	"github.com/aquanets/aquacrawl/internal/logger"
	"github.com/aquanets/aquacrawl/internal/textproc"
)

// ErrEmptyDocument is returned when a document has no body text to process.
var ErrEmptyDocument = errors.New("document has no body text")

// Processor converts one raw document at a time. It is stateless between
// documents and never mutates its input.
type Processor struct {
	cfg config.ProcessingConfig
	log logger.Interface
}

// NewProcessor creates a processor with the given settings.
func NewProcessor(cfg config.ProcessingConfig, log logger.Interface) *Processor {
	return &Processor{cfg: cfg, log: log}
}

// Process normalizes, chunks, and annotates a raw document. The title,
// summary, and body are normalized independently. Each chunk carries its own
// detected language; the document language is detected from the full body.
// The input document is left untouched.
func (p *Processor) Process(raw *domain.RawDocument) (*domain.ProcessedDocument, error) {
	if raw.BodyText == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, raw.URL)
	}

	doc := raw.Clone()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	doc.Title = textproc.Normalize(doc.Title)
	doc.Summary = textproc.Normalize(doc.Summary)
	doc.BodyText = textproc.Normalize(doc.BodyText)

	if doc.Language == "" {
		doc.Language = textproc.DetectLanguage(doc.BodyText)
	}
	if doc.ContentType == "" {
		doc.ContentType = "article"
	}

	chunks := textproc.Chunk(doc.BodyText, p.cfg.ChunkSize, p.cfg.ChunkOverlap)

	processed := &domain.ProcessedDocument{
		RawDocument:   *doc,
		Chunks:        chunks,
		ChunkMetadata: p.chunkMetadata(doc, chunks),
		ProcessedAt:   time.Now().UTC(),
	}

	if p.cfg.ExtractEntities {
		processed.Entities = textproc.ExtractEntities(doc.BodyText)
	}

	p.log.Debug("document processed",
		"id", doc.ID,
		"chunks", len(chunks),
		"entities", len(processed.Entities),
		"language", doc.Language,
	)

	return processed, nil
}

// chunkMetadata builds the metadata record for each chunk, parallel to the
// chunk slice.
func (p *Processor) chunkMetadata(doc *domain.RawDocument, chunks []string) []domain.ChunkMetadata {
	if len(chunks) == 0 {
		return nil
	}

	metadata := make([]domain.ChunkMetadata, len(chunks))
	for i, chunk := range chunks {
		metadata[i] = domain.ChunkMetadata{
			ChunkID:     fmt.Sprintf("%s_chunk_%d", doc.ID, i),
			Index:       i,
			Text:        chunk,
			Language:    textproc.DetectLanguage(chunk),
			Length:      len(chunk),
			SourceID:    doc.ID,
			SourceTitle: doc.Title,
			SourceURL:   doc.URL,
		}
	}

	return metadata
}
