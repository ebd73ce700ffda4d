package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/internal/config"
	"github.com/jonesrussell/newscrawl/internal/crawl"
	"github.com/jonesrussell/newscrawl/internal/feed"
	"github.com/jonesrussell/newscrawl/internal/fetch"
	"github.com/jonesrussell/newscrawl/internal/logger"
	"github.com/jonesrussell/newscrawl/internal/sink"
	"github.com/jonesrussell/newscrawl/internal/sites"
)

func newCrawlCommand() *cobra.Command {
	var sinkType string

	cmd := &cobra.Command{
		Use:   "crawl [source...]",
		Short: "Crawl one or more news sources",
		Long: `Crawl the named sources, or every registered source when none are given.
Article records are delivered to the sink selected in the configuration,
or to the one named with --sink.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if sinkType != "" {
				cfg.Sink.Type = sinkType
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			log, err := logger.New(&cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			return runCrawl(cmd.Context(), cfg, log, args)
		},
	}

	cmd.Flags().StringVar(&sinkType, "sink", "",
		"override the configured sink (jsonl, kafka, mongo, elastic, discard)")
	return cmd
}

// runCrawl crawls the requested sources one after another. A failing source
// is logged and skipped so a bad site never aborts the whole run.
func runCrawl(ctx context.Context, cfg *config.Config, log logger.Interface, names []string) error {
	registry := sites.Builtin()
	targets, err := resolveSites(registry, names)
	if err != nil {
		return err
	}

	log = log.With("run_id", uuid.NewString())
	log.Info("Starting crawl", "sources", len(targets), "sink", cfg.Sink.Type)

	reader := feed.NewReader(log)
	for _, site := range targets {
		if ctx.Err() != nil {
			break
		}
		if err := crawlSource(ctx, cfg, log, reader, site); err != nil {
			log.Error("Source crawl failed", "source", site.Name(), "error", err)
		}
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		log.Info("Crawl interrupted, shut down cleanly")
	}
	return nil
}

// crawlSource runs the full pipeline for one source: open a sink, seed from
// feeds when enabled, then drive the fetch engine from the start URLs.
func crawlSource(
	ctx context.Context,
	cfg *config.Config,
	log logger.Interface,
	reader *feed.Reader,
	site sites.Site,
) error {
	snk, err := buildSink(cfg, site.Name())
	if err != nil {
		return err
	}
	if err := snk.Open(ctx); err != nil {
		return fmt.Errorf("failed to open %s sink: %w", cfg.Sink.Type, err)
	}
	defer func() {
		if closeErr := snk.Close(); closeErr != nil {
			log.Warn("Failed to close sink", "source", site.Name(), "error", closeErr)
		}
	}()

	orch := crawl.NewOrchestrator(site, snk, crawl.Config{
		MaxLinksPerPage: cfg.Crawler.MaxLinksPerPage,
		MinBodyChars:    cfg.Crawler.MinBodyChars,
		SummaryMaxChars: cfg.Crawler.SummaryMaxChars,
		PageBudget:      cfg.Crawler.PageBudget,
	}, log)

	starts := site.StartURLs()
	if cfg.Crawler.SeedFromFeeds {
		items := reader.Seed(ctx, site)
		for _, item := range items {
			orch.AddAuthorHint(item.URL, item.Author)
			starts = append(starts, item.URL)
		}
		if len(items) > 0 {
			log.Info("Seeded from feeds", "source", site.Name(), "items", len(items))
		}
	}

	engine, err := fetch.NewEngine(fetch.Config{
		UserAgent:      cfg.Crawler.UserAgent,
		AllowedDomains: site.AllowedDomains(),
		Parallelism:    cfg.Crawler.Parallelism,
		RateLimit:      cfg.Crawler.RateLimit,
		RequestTimeout: cfg.Crawler.RequestTimeout,
		MaxDepth:       cfg.Crawler.MaxDepth,
	}, orch, log)
	if err != nil {
		return fmt.Errorf("failed to build fetch engine for %s: %w", site.Name(), err)
	}

	log.Info("Crawling source", "source", site.Name(), "start_urls", len(starts))
	runErr := engine.Run(ctx, starts)
	orch.LogSummary()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// resolveSites maps source names to registered sites, defaulting to all of
// them.
func resolveSites(registry *sites.Registry, names []string) ([]sites.Site, error) {
	if len(names) == 0 {
		names = registry.Names()
	}
	targets := make([]sites.Site, 0, len(names))
	for _, name := range names {
		site, ok := registry.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown source %q (registered: %s)",
				name, strings.Join(registry.Names(), ", "))
		}
		targets = append(targets, site)
	}
	return targets, nil
}

// buildSink constructs the sink selected by the configuration. The jsonl
// sink writes one file per source; the others share their backend across
// sources.
func buildSink(cfg *config.Config, source string) (sink.Sink, error) {
	switch cfg.Sink.Type {
	case config.SinkJSONL:
		return sink.NewJSONL(cfg.Sink.JSONLDir, source), nil
	case config.SinkKafka:
		return sink.NewKafka(cfg.Sink.KafkaBrokers, cfg.Sink.KafkaTopic), nil
	case config.SinkMongo:
		return sink.NewMongo(cfg.Sink.MongoURI, cfg.Sink.MongoDatabase, cfg.Sink.MongoCollection), nil
	case config.SinkElastic:
		return sink.NewElastic(cfg.Sink.ElasticAddresses, cfg.Sink.ElasticIndex), nil
	case config.SinkDiscard:
		return sink.NewDiscard(), nil
	default:
		return nil, fmt.Errorf("unknown sink type %q", cfg.Sink.Type)
	}
}
