package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"LawCorpus/internal/config"
	"LawCorpus/internal/domain"
	"LawCorpus/internal/infrastructure/eurlex"
	"LawCorpus/internal/infrastructure/parser"
	"LawCorpus/internal/infrastructure/storage"
	"LawCorpus/internal/logging"
	"LawCorpus/internal/scanner"
	"LawCorpus/internal/segment"
	"LawCorpus/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg      config.Config
	registry *scanner.Registry
	logger   *slog.Logger
}

// New builds the crawler stack from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	timeout, err := cfg.Crawler.HTTPTimeout()
	if err != nil {
		return nil, err
	}

	client := http.DefaultClient
	if timeout > 0 {
		client = &http.Client{Timeout: timeout}
	}

	fetcher := eurlex.NewFetcher(client, cfg.Crawler.RequestsPerSecond, cfg.Crawler.UserAgent)
	segmenter := segment.New(cfg.Crawler.MaxSectionBytes, baseLogger.With("component", "segmenter"))
	crawler := eurlex.NewCrawler(fetcher, segmenter, eurlex.Options{
		Origin:    cfg.Crawler.Origin,
		BatchSize: cfg.Crawler.BatchSize,
	}, baseLogger.With("component", "scanner.eurlex"))

	registry := scanner.NewRegistry()
	registry.Register(crawler)

	return &Application{cfg: cfg, registry: registry, logger: baseLogger}, nil
}

// Run loads the persisted corpus or crawls and persists a fresh one.
func (a *Application) Run(ctx context.Context) (domain.Corpus, error) {
	return a.pipeline(a.cfg.Sources, a.cfg.Storage.CorpusPath).Ensure(ctx)
}

// Crawl downloads a corpus. A non-empty seedURL replaces the configured sources;
// a non-empty savePath persists the result there.
func (a *Application) Crawl(ctx context.Context, seedURL, savePath string) (domain.Corpus, error) {
	sources := a.cfg.Sources
	if seedURL != "" {
		sources = []config.SourceConfig{{Name: "cli", Scanner: "eurlex", SeedURL: seedURL}}
	}
	return a.pipeline(sources, savePath).Build(ctx, usecase.OriginWeb, savePath != "")
}

// Load reads a persisted corpus; an empty path uses the configured one.
func (a *Application) Load(ctx context.Context, path string) (domain.Corpus, error) {
	if path == "" {
		path = a.cfg.Storage.CorpusPath
	}
	return a.pipeline(nil, path).Build(ctx, usecase.OriginJSON, false)
}

// Sample selects sections of a persisted corpus and writes them to outPath.
func (a *Application) Sample(ctx context.Context, corpusPath, outPath string, probability float64, seed int64) ([]domain.Section, error) {
	if corpusPath == "" {
		corpusPath = a.cfg.Storage.CorpusPath
	}
	if outPath == "" {
		outPath = a.cfg.Sampling.OutputPath
	}
	if outPath == "" {
		return nil, fmt.Errorf("no output path for selection")
	}

	builder := usecase.NewDatasetBuilder(
		storage.NewJSONRepository(corpusPath),
		storage.NewJSONSelectionRepository(outPath),
		usecase.NewSampler(probability, seed),
		a.logger.With("component", "sampler"),
	)
	return builder.Build(ctx)
}

// Config exposes the effective configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

func (a *Application) pipeline(sources []config.SourceConfig, corpusPath string) *usecase.Pipeline {
	deps := usecase.PipelineDeps{
		Source: parser.NewStrategySource(a.registry, sources, a.logger.With("component", "source")),
		Logger: a.logger.With("component", "pipeline"),
	}
	if corpusPath != "" {
		deps.Repository = storage.NewJSONRepository(corpusPath)
	}
	return usecase.NewPipeline(deps)
}
