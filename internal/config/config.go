package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "LAWCORPUS_CONFIG"
	seedURLEnv    = "LAWCORPUS_SEED_URL"
	corpusPathEnv = "LAWCORPUS_CORPUS_PATH"
	logLevelEnv   = "LAWCORPUS_LOG_LEVEL"
	batchSizeEnv  = "LAWCORPUS_BATCH_SIZE"

	// DefaultSeedURL is the EUR-Lex quick search for regulations mentioning "industry".
	DefaultSeedURL    = "https://eur-lex.europa.eu/search.html?lang=en&text=industry&qid=1742919459451&type=quick&DTS_SUBDOM=LEGISLATION&scope=EURLEX&FM_CODED=REG"
	DefaultCorpusPath = "./data/scraped_data.json"
	defaultSamplePath = "./data/selected_data.json"
	defaultScanner    = "eurlex"

	defaultOrigin          = "https://eur-lex.europa.eu"
	defaultBatchSize       = 50
	defaultMaxSectionBytes = 10000
	defaultProbability     = 0.05
	defaultUserAgent       = "LawCorpus/1.0"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Crawler  CrawlerConfig  `yaml:"crawler" toml:"crawler"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Sampling SamplingConfig `yaml:"sampling" toml:"sampling"`
	Sources  []SourceConfig `yaml:"sources" toml:"sources"`
}

// LoggingConfig selects verbosity and output encoding.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// CrawlerConfig tunes the listing crawl.
type CrawlerConfig struct {
	SeedURL           string  `yaml:"seedUrl" toml:"seedUrl"`
	Origin            string  `yaml:"origin" toml:"origin"`
	BatchSize         int     `yaml:"batchSize" toml:"batchSize"`
	MaxSectionBytes   int     `yaml:"maxSectionBytes" toml:"maxSectionBytes"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" toml:"requestsPerSecond"`
	UserAgent         string  `yaml:"userAgent" toml:"userAgent"`
	// Timeout is a Go duration string; empty keeps the HTTP client default.
	Timeout string `yaml:"timeout" toml:"timeout"`
}

// HTTPTimeout parses Timeout; zero means no client-level timeout.
func (c CrawlerConfig) HTTPTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid crawler timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// StorageConfig points at the persisted corpus.
type StorageConfig struct {
	CorpusPath string `yaml:"corpusPath" toml:"corpusPath"`
}

// SamplingConfig drives evaluation-dataset selection.
type SamplingConfig struct {
	// Probability is nil when unset so that an explicit 0 survives merging.
	Probability *float64 `yaml:"probability" toml:"probability"`
	Seed        int64   `yaml:"seed" toml:"seed"`
	OutputPath  string  `yaml:"outputPath" toml:"outputPath"`
}

// Rate returns the configured probability, or the default when unset.
func (s SamplingConfig) Rate() float64 {
	if s.Probability == nil {
		return defaultProbability
	}
	return *s.Probability
}

// SourceConfig describes a single crawl source with its scanner strategy.
type SourceConfig struct {
	Name    string            `yaml:"name" toml:"name"`
	Scanner string            `yaml:"scanner" toml:"scanner"`
	SeedURL string            `yaml:"seedUrl" toml:"seedUrl"`
	Options map[string]string `yaml:"options" toml:"options"`
}

// Load reads the configuration file named by LAWCORPUS_CONFIG (if present) and
// applies environment overrides. Unreadable files fall back to defaults.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	return finish(cfg)
}

// LoadFile reads an explicit configuration file; unlike Load it fails on errors.
func LoadFile(path string) (Config, error) {
	fileCfg, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	return finish(mergeConfig(defaultConfig(), fileCfg)), nil
}

func finish(cfg Config) Config {
	cfg.applyEnvOverrides()
	if len(cfg.Sources) == 0 {
		cfg.Sources = []SourceConfig{{Name: "eurlex-default", Scanner: defaultScanner, SeedURL: cfg.Crawler.SeedURL}}
	}
	for i := range cfg.Sources {
		if cfg.Sources[i].Scanner == "" {
			cfg.Sources[i].Scanner = defaultScanner
		}
	}
	return cfg
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var fileCfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(raw, &fileCfg)
	default:
		err = yaml.Unmarshal(raw, &fileCfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(seedURLEnv); v != "" {
		c.Crawler.SeedURL = v
	}

	if v := os.Getenv(corpusPathEnv); v != "" {
		c.Storage.CorpusPath = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(batchSizeEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Crawler.BatchSize = n
		} else {
			log.Printf("config: ignoring invalid %s=%q", batchSizeEnv, v)
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Crawler.SeedURL != "" {
		base.Crawler.SeedURL = override.Crawler.SeedURL
	}
	if override.Crawler.Origin != "" {
		base.Crawler.Origin = override.Crawler.Origin
	}
	if override.Crawler.BatchSize > 0 {
		base.Crawler.BatchSize = override.Crawler.BatchSize
	}
	if override.Crawler.MaxSectionBytes > 0 {
		base.Crawler.MaxSectionBytes = override.Crawler.MaxSectionBytes
	}
	if override.Crawler.RequestsPerSecond > 0 {
		base.Crawler.RequestsPerSecond = override.Crawler.RequestsPerSecond
	}
	if override.Crawler.UserAgent != "" {
		base.Crawler.UserAgent = override.Crawler.UserAgent
	}
	if override.Crawler.Timeout != "" {
		base.Crawler.Timeout = override.Crawler.Timeout
	}

	if override.Storage.CorpusPath != "" {
		base.Storage.CorpusPath = override.Storage.CorpusPath
	}

	if override.Sampling.Probability != nil {
		rate := *override.Sampling.Probability
		base.Sampling.Probability = &rate
	}
	if override.Sampling.Seed != 0 {
		base.Sampling.Seed = override.Sampling.Seed
	}
	if override.Sampling.OutputPath != "" {
		base.Sampling.OutputPath = override.Sampling.OutputPath
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Crawler: CrawlerConfig{
			SeedURL:         DefaultSeedURL,
			Origin:          defaultOrigin,
			BatchSize:       defaultBatchSize,
			MaxSectionBytes: defaultMaxSectionBytes,
			UserAgent:       defaultUserAgent,
		},
		Storage:  StorageConfig{CorpusPath: DefaultCorpusPath},
		Sampling: SamplingConfig{OutputPath: defaultSamplePath},
	}
}
