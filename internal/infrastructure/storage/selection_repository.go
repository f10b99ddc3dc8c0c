package storage

import (
	"context"

	"LawCorpus/internal/domain"
	"LawCorpus/internal/ports"
)

// JSONSelectionRepository writes sampled sections as a flat JSON array.
type JSONSelectionRepository struct {
	path string
}

var _ ports.SelectionRepository = (*JSONSelectionRepository)(nil)

// NewJSONSelectionRepository binds the repository to a file path.
func NewJSONSelectionRepository(path string) *JSONSelectionRepository {
	return &JSONSelectionRepository{path: path}
}

// SaveSelection overwrites the file with the selected sections.
func (r *JSONSelectionRepository) SaveSelection(ctx context.Context, sections []domain.Section) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sections == nil {
		sections = []domain.Section{}
	}
	return WriteJSON(r.path, sections)
}
