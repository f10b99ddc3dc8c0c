package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"LawCorpus/internal/domain"
	"LawCorpus/internal/ports"
)

// Sampler keeps each section independently with a fixed probability.
type Sampler struct {
	probability float64
	rng         *rand.Rand
}

// NewSampler clamps probability to [0, 1]. A zero seed draws a random one.
func NewSampler(probability float64, seed int64) *Sampler {
	probability = min(max(probability, 0), 1)

	src := rand.NewPCG(uint64(seed), uint64(seed))
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{probability: probability, rng: rand.New(src)}
}

// Select flattens the corpus and returns the retained sections in corpus order.
func (s *Sampler) Select(corpus domain.Corpus) []domain.Section {
	selected := []domain.Section{}
	for _, section := range corpus.Flatten() {
		if s.rng.Float64() < s.probability {
			selected = append(selected, section)
		}
	}
	return selected
}

// DatasetBuilder samples a persisted corpus into an evaluation selection.
type DatasetBuilder struct {
	corpus  ports.CorpusRepository
	output  ports.SelectionRepository
	sampler *Sampler
	logger  *slog.Logger
}

// NewDatasetBuilder wires the repositories with a sampler.
func NewDatasetBuilder(corpus ports.CorpusRepository, output ports.SelectionRepository, sampler *Sampler, logger *slog.Logger) *DatasetBuilder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DatasetBuilder{corpus: corpus, output: output, sampler: sampler, logger: logger}
}

// Build loads the corpus, samples it and stores the selection when an output is set.
func (b *DatasetBuilder) Build(ctx context.Context) ([]domain.Section, error) {
	if b.corpus == nil || b.sampler == nil {
		return nil, fmt.Errorf("dataset builder misconfigured")
	}

	corpus, err := b.corpus.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	selected := b.sampler.Select(corpus)
	b.logger.Info("sections selected", "selected", len(selected), "total", corpus.SectionCount())

	if b.output != nil {
		if err := b.output.SaveSelection(ctx, selected); err != nil {
			return nil, fmt.Errorf("save selection: %w", err)
		}
	}

	return selected, nil
}
