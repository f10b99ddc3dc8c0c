package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"LawCorpus/internal/domain"
	"LawCorpus/internal/ports"
)

// Origin selects where the corpus comes from.
type Origin string

const (
	// OriginWeb crawls the configured portals.
	OriginWeb Origin = "web"
	// OriginJSON loads a previously persisted corpus without crawling.
	OriginJSON Origin = "json"
)

// ParseOrigin validates a user-supplied origin name.
func ParseOrigin(value string) (Origin, error) {
	switch Origin(value) {
	case OriginWeb, OriginJSON:
		return Origin(value), nil
	default:
		return "", fmt.Errorf("unknown corpus origin %q (want %q or %q)", value, OriginWeb, OriginJSON)
	}
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.CorpusSource
	Repository ports.CorpusRepository
	Logger     *slog.Logger
}

// Pipeline implements the corpus acquisition workflow.
type Pipeline struct {
	source     ports.CorpusSource
	repository ports.CorpusRepository
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		logger:     logger,
	}
}

// Build produces a corpus from origin. Crawled corpora are persisted when persist is set.
func (p *Pipeline) Build(ctx context.Context, origin Origin, persist bool) (domain.Corpus, error) {
	switch origin {
	case OriginJSON:
		return p.load(ctx)
	case OriginWeb:
		return p.crawl(ctx, persist)
	default:
		return nil, fmt.Errorf("unknown corpus origin %q", origin)
	}
}

// Ensure loads the persisted corpus when it exists and otherwise crawls and persists one.
func (p *Pipeline) Ensure(ctx context.Context) (domain.Corpus, error) {
	if p.repository != nil && p.repository.Exists() {
		return p.load(ctx)
	}
	return p.crawl(ctx, true)
}

func (p *Pipeline) load(ctx context.Context) (domain.Corpus, error) {
	if p.repository == nil {
		return nil, fmt.Errorf("corpus repository is not configured")
	}

	corpus, err := p.repository.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	p.logger.Info("corpus loaded", "documents", len(corpus), "sections", corpus.SectionCount())
	return corpus, nil
}

func (p *Pipeline) crawl(ctx context.Context, persist bool) (domain.Corpus, error) {
	if p.source == nil {
		return nil, fmt.Errorf("corpus source is not configured")
	}

	corpus, err := p.source.FetchCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch corpus: %w", err)
	}

	if !persist || p.repository == nil {
		return corpus, nil
	}

	if err := p.repository.Save(ctx, corpus); err != nil {
		return nil, fmt.Errorf("persist corpus: %w", err)
	}
	p.logger.Info("saved scraped data", "documents", len(corpus), "sections", corpus.SectionCount())

	return corpus, nil
}
