package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"LawCorpus/internal/domain"
	"LawCorpus/internal/ports"
)

// ErrCorpusNotFound is returned by Load when the corpus file does not exist.
var ErrCorpusNotFound = errors.New("corpus file not found")

// JSONRepository persists the corpus as a JSON array of section arrays.
type JSONRepository struct {
	path string
}

var _ ports.CorpusRepository = (*JSONRepository)(nil)

// NewJSONRepository binds the repository to a file path.
func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// Path returns the backing file.
func (r *JSONRepository) Path() string {
	return r.path
}

// Exists reports whether a corpus has already been persisted.
func (r *JSONRepository) Exists() bool {
	info, err := os.Stat(r.path)
	return err == nil && !info.IsDir()
}

// Save writes the corpus, creating parent directories as needed.
func (r *JSONRepository) Save(ctx context.Context, corpus domain.Corpus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if corpus == nil {
		corpus = domain.Corpus{}
	}
	return WriteJSON(r.path, normalise(corpus))
}

// Load reads the corpus back.
func (r *JSONRepository) Load(ctx context.Context) (domain.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, r.path)
		}
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var corpus domain.Corpus
	if err := json.Unmarshal(raw, &corpus); err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", r.path, err)
	}
	if corpus == nil {
		corpus = domain.Corpus{}
	}

	return normalise(corpus), nil
}

// WriteJSON encodes v with two-space indentation and without HTML escaping.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// normalise returns a copy in which null documents become empty arrays, so they
// round-trip as [].
func normalise(corpus domain.Corpus) domain.Corpus {
	out := make(domain.Corpus, len(corpus))
	for i, doc := range corpus {
		if doc == nil {
			doc = domain.Document{}
		}
		out[i] = doc
	}
	return out
}
