// Package common provides the shared bootstrap for all subcommands:
// configuration loading, logger construction, and component wiring.
package common

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aquanets/aquacrawl/internal/config"
	"github.com/aquanets/aquacrawl/internal/crawler"
	"github.com/aquanets/aquacrawl/internal/extract"
	"github.com/aquanets/aquacrawl/internal/feed"
	"github.com/aquanets/aquacrawl/internal/fetcher"
	"github.com/aquanets/aquacrawl/internal/logger"
	"github.com/aquanets/aquacrawl/internal/pipeline"
	"github.com/aquanets/aquacrawl/internal/relevance"
	"github.com/aquanets/aquacrawl/internal/robots"
	"github.com/aquanets/aquacrawl/internal/storage"
)

// Values of the root command's persistent flags, bound in cmd/root.go.
var (
	// ConfigFile is the path to the configuration file.
	ConfigFile string

	// Debug enables debug logging for all commands.
	Debug bool
)

// CommandDeps holds the dependencies every subcommand starts from.
type CommandDeps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewCommandDeps loads the configuration and builds the logger.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if Debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &CommandDeps{Config: cfg, Logger: log}, nil
}

// BuildCrawler wires a ready-to-run crawler: robots rules, fetch client,
// extractor, classifier, file store, and optional feed discovery.
func BuildCrawler(ctx context.Context, deps *CommandDeps) *crawler.Crawler {
	cfg := deps.Config
	log := deps.Logger

	var rules fetcher.PermissionChecker
	if cfg.Crawl.RespectRobots {
		httpClient := &http.Client{Timeout: cfg.Crawl.RequestTimeout}
		ruleSet := robots.Fetch(ctx, httpClient, cfg.Crawl.BaseURL, cfg.Crawl.UserAgents[0])
		log.Info(ruleSet.String())
		rules = ruleSet
	}

	fetchClient := fetcher.New(fetcher.Config{
		UserAgents: cfg.Crawl.UserAgents,
		Headers:    cfg.Crawl.Headers,
		Delay:      cfg.Crawl.RequestDelay,
		MaxRetries: cfg.Crawl.MaxRetries,
		Timeout:    cfg.Crawl.RequestTimeout,
	}, rules, log.WithComponent("fetcher"))

	var feeds crawler.LinkDiscoverer
	if cfg.Crawl.EnableFeedDiscovery {
		feeds = feed.NewDiscoverer(fetchClient, log.WithComponent("feed"))
	}

	store := storage.NewFileStore(
		cfg.Storage.RawDir, cfg.Storage.ProcessedDir, log.WithComponent("storage"))

	return crawler.New(
		cfg.Crawl,
		fetchClient,
		extract.NewSiteExtractor(extract.DefaultSelectors()),
		relevance.New(cfg.Keywords),
		store,
		feeds,
		log.WithComponent("crawler"),
	)
}

// BuildRunner wires the processing pipeline runner over the file store.
func BuildRunner(deps *CommandDeps) *pipeline.Runner {
	cfg := deps.Config
	log := deps.Logger

	store := storage.NewFileStore(
		cfg.Storage.RawDir, cfg.Storage.ProcessedDir, log.WithComponent("storage"))
	processor := pipeline.NewProcessor(cfg.Processing, log.WithComponent("processor"))

	return pipeline.NewRunner(processor, store, log.WithComponent("pipeline"))
}
