package ports

import (
	"context"

	"LawCorpus/internal/domain"
)

// CorpusSource pulls a fresh corpus from upstream portals.
type CorpusSource interface {
	FetchCorpus(ctx context.Context) (domain.Corpus, error)
}

// CorpusRepository persists the corpus between runs.
type CorpusRepository interface {
	Exists() bool
	Save(ctx context.Context, corpus domain.Corpus) error
	Load(ctx context.Context) (domain.Corpus, error)
}

// SelectionRepository stores sections sampled for evaluation datasets.
type SelectionRepository interface {
	SaveSelection(ctx context.Context, sections []domain.Section) error
}
