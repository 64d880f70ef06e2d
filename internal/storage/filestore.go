// Package storage persists crawled and processed documents as pretty-printed
// JSON files on the local filesystem.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aquanets/aquacrawl/internal/domain"
	"github.com/aquanets/aquacrawl/internal/logger"
)

// crawlerName is stamped on every raw document this store saves.
const crawlerName = "aquacrawl"

// dirPermissions is the mode for created data directories.
const dirPermissions = 0o755

// filePermissions is the mode for written document files.
const filePermissions = 0o644

// FileStore writes raw documents to one directory and processed documents to
// another, one JSON file per document.
type FileStore struct {
	rawDir       string
	processedDir string
	log          logger.Interface
}

// NewFileStore creates a store over the given directories. Directories are
// created lazily on first save.
func NewFileStore(rawDir, processedDir string, log logger.Interface) *FileStore {
	return &FileStore{rawDir: rawDir, processedDir: processedDir, log: log}
}

// SaveRaw persists a crawled document, stamping its ID (when missing), crawl
// time, and crawler name. Returns the path of the written file.
func (s *FileStore) SaveRaw(doc *domain.RawDocument) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.CrawledAt = time.Now().UTC()
	doc.Crawler = crawlerName

	path := filepath.Join(s.rawDir, documentFilename(doc.Source, doc.ID))
	if err := writeJSON(path, doc); err != nil {
		return "", err
	}

	s.log.Debug("raw document saved", "path", path, "id", doc.ID)

	return path, nil
}

// SaveProcessed persists a processed document. Returns the path of the
// written file.
func (s *FileStore) SaveProcessed(doc *domain.ProcessedDocument) (string, error) {
	path := filepath.Join(s.processedDir, documentFilename(doc.Source, doc.ID))
	if err := writeJSON(path, doc); err != nil {
		return "", err
	}

	s.log.Debug("processed document saved", "path", path, "id", doc.ID)

	return path, nil
}

// LoadRaw reads one raw document by file name from the raw directory.
func (s *FileStore) LoadRaw(name string) (*domain.RawDocument, error) {
	data, err := os.ReadFile(filepath.Join(s.rawDir, name))
	if err != nil {
		return nil, fmt.Errorf("read raw document: %w", err)
	}

	var doc domain.RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode raw document %s: %w", name, err)
	}

	return &doc, nil
}

// ListRaw returns the file names of all raw documents, sorted.
func (s *FileStore) ListRaw() ([]string, error) {
	entries, err := os.ReadDir(s.rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list raw documents: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// documentFilename builds the file name "<source>_<id>.json", falling back
// to "<id>.json" when the source is empty. Path separators in either part
// are replaced so the name stays a single path element.
func documentFilename(source, id string) string {
	name := id
	if source != "" {
		name = source + "_" + id
	}
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")

	return name + ".json"
}

// writeJSON writes v to path as two-space indented JSON, creating the parent
// directory when needed.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}
