// Package domain provides the domain models shared across the crawler and
// the processing pipeline.
package domain

import "time"

// RawDocument is an article as emitted by the crawler: extractor output plus
// crawl provenance. It is immutable after creation; processing works on a
// copy (see Clone).
type RawDocument struct {
	// Unique identifier for the document
	ID string `json:"id"`
	// URL the document was fetched from
	URL string `json:"url"`
	// Title of the article
	Title string `json:"title"`
	// Publication date as displayed by the source (free-form)
	PublishedDate string `json:"published_date,omitempty"`
	// Author of the article
	Author string `json:"author,omitempty"`
	// Article summary or lede
	Summary string `json:"summary,omitempty"`
	// Plain-text body
	BodyText string `json:"body_text"`
	// Raw HTML of the body container
	BodyHTML string `json:"body_html,omitempty"`
	// Absolute URLs of images found in the body
	Images []string `json:"images,omitempty"`
	// Tags attached by the source
	Tags []string `json:"tags,omitempty"`
	// Source identifier (e.g. "thuysanvietnam")
	Source string `json:"source"`
	// ISO 639-1 language code, or "unknown"
	Language string `json:"language,omitempty"`
	// Content type (currently always "article")
	ContentType string `json:"content_type,omitempty"`
	// Time the document was crawled (stamped on save)
	CrawledAt time.Time `json:"crawled_at"`
	// Name of the crawler that produced the document
	Crawler string `json:"crawler,omitempty"`
}

// Clone returns a deep copy of the document. Slice fields are copied so the
// clone shares no mutable state with the original.
func (d *RawDocument) Clone() *RawDocument {
	clone := *d
	if d.Images != nil {
		clone.Images = append([]string(nil), d.Images...)
	}
	if d.Tags != nil {
		clone.Tags = append([]string(nil), d.Tags...)
	}
	return &clone
}

// ChunkMetadata describes a single chunk derived from a document body.
type ChunkMetadata struct {
	// Stable chunk identifier: "<documentId>_chunk_<index>"
	ChunkID string `json:"chunk_id"`
	// Zero-based position of the chunk within the document
	Index int `json:"index"`
	// Chunk text
	Text string `json:"text"`
	// Detected language of the chunk
	Language string `json:"language"`
	// Length of the chunk text in bytes
	Length int `json:"length"`
	// ID of the owning document
	SourceID string `json:"source_id"`
	// Title of the owning document
	SourceTitle string `json:"source_title,omitempty"`
	// URL of the owning document
	SourceURL string `json:"source_url,omitempty"`
}

// EntityMatch is an annotation extracted from a document body. Entity
// extraction is additive: chunking never depends on it.
type EntityMatch struct {
	// Entity category (species, disease, chemical, parameter, location, technique)
	Type string `json:"type"`
	// Matched text
	Value string `json:"value"`
}

// ProcessedDocument is a RawDocument augmented with normalized text, chunks,
// chunk metadata, and entity annotations. Each document exclusively owns its
// chunk and entity collections.
type ProcessedDocument struct {
	RawDocument

	// Raw chunk text, in document order
	Chunks []string `json:"chunks,omitempty"`
	// Per-chunk metadata parallel to Chunks
	ChunkMetadata []ChunkMetadata `json:"chunk_metadata,omitempty"`
	// Entity annotations extracted from the body
	Entities []EntityMatch `json:"entities,omitempty"`
	// Time the document was processed
	ProcessedAt time.Time `json:"processed_at"`
}
