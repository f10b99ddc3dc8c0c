package parser

import (
	"context"
	"fmt"
	"log/slog"

	"LawCorpus/internal/config"
	"LawCorpus/internal/domain"
	"LawCorpus/internal/ports"
	"LawCorpus/internal/scanner"
)

// StrategySource implements CorpusSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sources  []config.SourceConfig
	logger   *slog.Logger
}

var _ ports.CorpusSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sources.
func NewStrategySource(reg *scanner.Registry, sources []config.SourceConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		logger:   log,
	}
}

// FetchCorpus runs the scanner of every configured source and concatenates the
// resulting corpora in configuration order.
func (s *StrategySource) FetchCorpus(ctx context.Context) (domain.Corpus, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch corpus", "sources", len(s.sources))

	aggregated := domain.Corpus{}
	for _, src := range s.sources {
		s.debug("process source", "source", src.Name, "scanner", src.Scanner)
		strategy, err := s.registry.Resolve(src.Scanner)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}

		req := scanner.Request{
			SourceName: src.Name,
			SeedURL:    src.SeedURL,
			Options:    src.Options,
		}

		corpus, err := strategy.Scan(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan source %s: %w", src.Name, err)
		}

		s.debug("source produced documents", "source", src.Name, "documents", len(corpus))
		aggregated = append(aggregated, corpus...)
	}

	s.debug("strategy source done", "total_documents", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
