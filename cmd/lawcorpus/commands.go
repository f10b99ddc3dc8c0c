package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"LawCorpus/internal/app"
	"LawCorpus/internal/config"
	"LawCorpus/internal/logging"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "lawcorpus",
		Short: "Build a segmented corpus of EU legal acts",
		Long: `lawcorpus crawls EUR-Lex search results, keeps the acts that are in force,
extracts their text according to the detected page layout and splits it into
sections of bounded size. The corpus is stored as JSON and can be sampled into
an evaluation dataset.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json, logfmt)")

	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(crawlCmd(opts))
	rootCmd.AddCommand(loadCmd(opts))
	rootCmd.AddCommand(sampleCmd(opts))

	return rootCmd
}

// setup resolves configuration and logging for a command and builds the application.
func (o *rootOptions) setup() (*app.Application, *slog.Logger, error) {
	cfg := config.Load()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(o.configPath); err != nil {
			return nil, nil, err
		}
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application stopped", "error", err)
		return nil, nil, err
	}
	return application, logger, nil
}

func runCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Load the stored corpus, crawling it first when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, err := opts.setup()
			if err != nil {
				return err
			}

			corpus, err := application.Run(cmd.Context())
			if err != nil {
				logger.Error("application stopped", "error", err)
				return err
			}

			cmd.Printf("%d documents, %d sections\n", len(corpus), corpus.SectionCount())
			return nil
		},
	}
}

func crawlCmd(opts *rootOptions) *cobra.Command {
	var (
		savePath string
		noSave   bool
	)

	cmd := &cobra.Command{
		Use:   "crawl [seed-url]",
		Short: "Crawl EUR-Lex and store the segmented corpus",
		Long: `Crawls every listing page reachable from the seed search URL.
Without a seed URL the configured sources are crawled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, err := opts.setup()
			if err != nil {
				return err
			}

			seedURL := ""
			if len(args) > 0 {
				seedURL = args[0]
			}

			target := savePath
			if target == "" {
				target = application.Config().Storage.CorpusPath
			}
			if noSave {
				target = ""
			}

			corpus, err := application.Crawl(cmd.Context(), seedURL, target)
			if err != nil {
				logger.Error("application stopped", "error", err)
				return err
			}

			cmd.Printf("crawled %d documents, %d sections\n", len(corpus), corpus.SectionCount())
			if target != "" {
				cmd.Printf("saved to %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&savePath, "save", "", "corpus output path (defaults to the configured corpus path)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the crawled corpus")

	return cmd
}

func loadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load [path]",
		Short: "Load a stored corpus and report its size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, err := opts.setup()
			if err != nil {
				return err
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			corpus, err := application.Load(cmd.Context(), path)
			if err != nil {
				logger.Error("application stopped", "error", err)
				return err
			}

			cmd.Printf("%d documents, %d sections\n", len(corpus), corpus.SectionCount())
			return nil
		},
	}
}

func sampleCmd(opts *rootOptions) *cobra.Command {
	var (
		probability float64
		seed        int64
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "sample [path]",
		Short: "Select a random subset of sections for evaluation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, err := opts.setup()
			if err != nil {
				return err
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			sampling := application.Config().Sampling
			if !cmd.Flags().Changed("probability") {
				probability = sampling.Rate()
			}
			if !cmd.Flags().Changed("seed") {
				seed = sampling.Seed
			}
			if probability < 0 || probability > 1 {
				return fmt.Errorf("probability must be within [0, 1], got %v", probability)
			}

			selected, err := application.Sample(cmd.Context(), path, outPath, probability, seed)
			if err != nil {
				logger.Error("application stopped", "error", err)
				return err
			}

			cmd.Printf("selected %d sections\n", len(selected))
			return nil
		},
	}

	cmd.Flags().Float64Var(&probability, "probability", 0.05, "probability of keeping each section")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&outPath, "out", "", "selection output path (defaults to the configured one)")

	return cmd
}
