package eurlex

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"LawCorpus/internal/domain"
	"LawCorpus/internal/layout"
	"LawCorpus/internal/scanner"
	"LawCorpus/internal/segment"
)

const (
	// DefaultOrigin replaces the leading "." of relative document links.
	DefaultOrigin = "https://eur-lex.europa.eu"
	// DefaultBatchSize bounds the listing pages fetched at once.
	DefaultBatchSize = 50

	optionOrigin    = "origin"
	optionBatchSize = "batchSize"
)

// Options tunes a Crawler.
type Options struct {
	Origin    string
	BatchSize int
}

// Crawler walks every listing page of a search and builds the corpus of in-force acts.
type Crawler struct {
	fetcher   *Fetcher
	segmenter *segment.Segmenter
	origin    string
	batchSize int
	logger    *slog.Logger
}

var _ scanner.Scanner = (*Crawler)(nil)

// NewCrawler wires the shared fetcher and segmenter.
func NewCrawler(fetcher *Fetcher, segmenter *segment.Segmenter, opts Options, logger *slog.Logger) *Crawler {
	if fetcher == nil {
		fetcher = NewFetcher(nil, 0, "")
	}
	if segmenter == nil {
		segmenter = segment.New(segment.DefaultMaxBytes, logger)
	}
	if opts.Origin == "" {
		opts.Origin = DefaultOrigin
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Crawler{
		fetcher:   fetcher,
		segmenter: segmenter,
		origin:    opts.Origin,
		batchSize: opts.BatchSize,
		logger:    logger,
	}
}

// Name identifies the strategy inside the registry.
func (c *Crawler) Name() string {
	return "eurlex"
}

// Scan crawls the seed URL of the request.
func (c *Crawler) Scan(ctx context.Context, req scanner.Request) (domain.Corpus, error) {
	if req.SeedURL == "" {
		return nil, fmt.Errorf("no seed url provided for source %s", req.SourceName)
	}

	crawler, err := c.withOptions(req.Options)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.SourceName, err)
	}
	return crawler.Crawl(ctx, req.SeedURL)
}

// withOptions returns a copy of c with per-source "origin" and "batchSize"
// overrides applied. Unknown keys are ignored.
func (c *Crawler) withOptions(opts map[string]string) (*Crawler, error) {
	if len(opts) == 0 {
		return c, nil
	}

	clone := *c
	if origin := opts[optionOrigin]; origin != "" {
		if _, err := url.Parse(origin); err != nil {
			return nil, fmt.Errorf("invalid %s option %q: %w", optionOrigin, origin, err)
		}
		clone.origin = origin
	}
	if raw := opts[optionBatchSize]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s option %q", optionBatchSize, raw)
		}
		clone.batchSize = n
	}
	return &clone, nil
}

// Crawl discovers the page count and downloads every listing page in batches.
// Only discovery can fail the crawl; failing pages and documents are logged and
// left out of the corpus.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (domain.Corpus, error) {
	if _, err := url.Parse(seedURL); err != nil {
		return nil, fmt.Errorf("invalid seed url %s: %w", seedURL, err)
	}

	log := c.logger.With("run_id", uuid.NewString())

	pages, err := c.DiscoverPageCount(ctx, seedURL)
	if err != nil {
		return nil, fmt.Errorf("discover page count: %w", err)
	}
	log.Info("total pages to download", "pages", pages, "batch_size", c.batchSize)

	listing := func(ctx context.Context, page int) (domain.Corpus, error) {
		return c.crawlListing(ctx, buildPageURL(seedURL, page), page, log)
	}

	corpus := domain.Corpus{}
	for first := 1; first <= pages; first += c.batchSize {
		last := min(first+c.batchSize-1, pages)
		log.Info("processing batch", "batch", (first-1)/c.batchSize+1, "first_page", first, "last_page", last)

		for _, outcome := range c.runBatch(ctx, first, last, listing) {
			if outcome.err != nil {
				log.Error("error downloading page", "page", outcome.page, "error", outcome.err)
				continue
			}
			corpus = append(corpus, outcome.documents...)
		}
	}

	log.Info("crawl finished", "documents", len(corpus), "sections", corpus.SectionCount())
	return corpus, nil
}

type pageOutcome struct {
	page      int
	documents domain.Corpus
	err       error
}

// runBatch fetches pages first..last concurrently. Each task writes only its own
// outcome slot; the caller merges after every task has settled.
func (c *Crawler) runBatch(ctx context.Context, first, last int, listing func(context.Context, int) (domain.Corpus, error)) []pageOutcome {
	outcomes := make([]pageOutcome, last-first+1)

	var g errgroup.Group
	for i := range outcomes {
		page := first + i
		g.Go(func() error {
			docs, err := isolate(func() (domain.Corpus, error) {
				return listing(ctx, page)
			})
			outcomes[i] = pageOutcome{page: page, documents: docs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

type documentOutcome struct {
	url      string
	document domain.Document
	err      error
}

// crawlListing keeps the in-force entries of one listing page that offer an HTML
// rendition and downloads those documents concurrently.
func (c *Crawler) crawlListing(ctx context.Context, pageURL string, page int, log *slog.Logger) (domain.Corpus, error) {
	log.Debug("fetching page", "page", page, "url", pageURL)

	doc, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var targets []string
	for _, ref := range parseEntries(doc) {
		if !ref.InForce {
			continue
		}
		if !isHTMLRendition(ref.Href) {
			log.Info("skipping entry without html rendition", "page", page, "href", ref.Href)
			continue
		}
		targets = append(targets, ref.Href)
	}

	documents := domain.Corpus{}
	if len(targets) == 0 {
		return documents, nil
	}

	outcomes := make([]documentOutcome, len(targets))
	var g errgroup.Group
	for i, href := range targets {
		g.Go(func() error {
			outcomes[i] = c.downloadDocument(ctx, href, log)
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range outcomes {
		if outcome.err != nil {
			log.Error("error downloading html content", "page", page, "url", outcome.url, "error", outcome.err)
			continue
		}
		documents = append(documents, outcome.document)
	}

	return documents, nil
}

func (c *Crawler) downloadDocument(ctx context.Context, href string, log *slog.Logger) documentOutcome {
	docURL, err := resolveURL(c.origin, href)
	if err != nil {
		return documentOutcome{url: href, err: err}
	}

	document, err := isolate(func() (domain.Document, error) {
		return c.fetchDocument(ctx, docURL, log)
	})
	return documentOutcome{url: docURL, document: document, err: err}
}

// fetchDocument downloads one act and returns its segmented sections. An
// unrecognised layout is not an error and yields an empty document.
func (c *Crawler) fetchDocument(ctx context.Context, docURL string, log *slog.Logger) (domain.Document, error) {
	doc, err := c.fetcher.Fetch(ctx, docURL)
	if err != nil {
		return nil, err
	}

	format, raws := layout.Extract(doc)
	if format == layout.FormatUnknown {
		log.Warn("unknown document format", "url", docURL)
		return domain.Document{}, nil
	}
	log.Debug("using document format", "url", docURL, "format", format.String(), "raw_sections", len(raws))

	return c.segmenter.SplitAll(raws), nil
}

// isolate turns a panic inside a task into that task's error.
func isolate[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn()
}
