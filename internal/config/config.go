// Package config provides configuration management for the crawler and
// processing pipeline. Configuration is loaded from a YAML file, environment
// variables, and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/aquanets/aquacrawl/internal/logger"
)

// Default configuration values.
const (
	defaultAppName             = "aquacrawl"
	defaultAppVersion          = "0.1.0"
	defaultRequestDelay        = 2 * time.Second
	defaultRequestTimeout      = 30 * time.Second
	defaultMaxRetries          = 3
	defaultMaxArticles         = 100
	defaultMaxPagesPerCategory = 2
	defaultMaxSearchPages      = 2
	defaultChunkSize           = 512
	defaultChunkOverlap        = 50
	defaultRawDir              = "data/raw"
	defaultProcessedDir        = "data/processed"
	defaultLogLevel            = "info"
	defaultLogEncoding         = "console"
)

// defaultUserAgents is the identity pool rotated per request.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1",
}

// defaultHeaders is the base header set sent with every request.
var defaultHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "vi-VN,vi;q=0.9,en-US;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Cache-Control":             "max-age=0",
}

// Config is the top-level application configuration. It is built once at
// startup and passed read-only into each component.
type Config struct {
	App        AppConfig        `mapstructure:"app"        yaml:"app"`
	Crawl      CrawlConfig      `mapstructure:"crawl"      yaml:"crawl"`
	Processing ProcessingConfig `mapstructure:"processing" yaml:"processing"`
	Storage    StorageConfig    `mapstructure:"storage"    yaml:"storage"`
	Keywords   KeywordSets      `mapstructure:"keywords"   yaml:"keywords"`
	Logging    logger.Config    `mapstructure:"logging"    yaml:"logging"`
}

// AppConfig holds application metadata.
type AppConfig struct {
	Name    string `mapstructure:"name"    yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"`
}

// CrawlConfig holds crawl-specific configuration: the target site, the HTTP
// request shape, politeness settings, and traversal bounds.
type CrawlConfig struct {
	// Source is the short source identifier stamped on documents.
	Source string `mapstructure:"source" yaml:"source"`
	// BaseURL is the root URL of the target site.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// CategoryURLs are the known category pages to traverse.
	CategoryURLs []string `mapstructure:"category_urls" yaml:"category_urls"`
	// SearchKeywords drive the secondary keyword-search phase.
	SearchKeywords []string `mapstructure:"search_keywords" yaml:"search_keywords"`
	// SearchPathPatterns are candidate search endpoint patterns, with %s
	// substituted by the url-escaped keyword.
	SearchPathPatterns []string `mapstructure:"search_path_patterns" yaml:"search_path_patterns"`
	// UserAgents is the client identity pool, rotated per request.
	UserAgents []string `mapstructure:"user_agents" yaml:"user_agents"`
	// Headers is the base header set sent with every request.
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
	// RequestDelay is the base inter-request delay.
	RequestDelay time.Duration `mapstructure:"request_delay" yaml:"request_delay"`
	// RequestTimeout is the per-HTTP-call timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// MaxRetries is the maximum number of fetch attempts per URL.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
	// RespectRobots enables robots.txt compliance.
	RespectRobots bool `mapstructure:"respect_robots" yaml:"respect_robots"`
	// MaxArticles bounds the number of accepted documents per run.
	MaxArticles int `mapstructure:"max_articles" yaml:"max_articles"`
	// MaxPagesPerCategory bounds pagination within one category.
	MaxPagesPerCategory int `mapstructure:"max_pages_per_category" yaml:"max_pages_per_category"`
	// MaxSearchPages bounds pagination within one search result set.
	MaxSearchPages int `mapstructure:"max_search_pages" yaml:"max_search_pages"`
	// EnableFeedDiscovery probes category RSS feeds for candidate links.
	EnableFeedDiscovery bool `mapstructure:"enable_feed_discovery" yaml:"enable_feed_discovery"`
}

// ProcessingConfig holds text processing configuration.
type ProcessingConfig struct {
	// ChunkSize is the maximum chunk length in bytes.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`
	// ChunkOverlap controls word-level overlap when splitting oversized
	// paragraphs (overlap/10 words are carried into the next sub-chunk).
	ChunkOverlap int `mapstructure:"chunk_overlap" yaml:"chunk_overlap"`
	// ExtractEntities enables regex entity annotation.
	ExtractEntities bool `mapstructure:"extract_entities" yaml:"extract_entities"`
}

// StorageConfig holds the data directory layout.
type StorageConfig struct {
	// RawDir is where crawled documents are written.
	RawDir string `mapstructure:"raw_dir" yaml:"raw_dir"`
	// ProcessedDir is where processed documents are written.
	ProcessedDir string `mapstructure:"processed_dir" yaml:"processed_dir"`
}

// Load reads configuration from the given file (optional), environment
// variables, and defaults, and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("AQUACRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; defaults and environment variables
		// are enough to run. An explicitly named file must exist, though.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decodeSettings(v.AllSettings())
	if err != nil {
		return nil, err
	}

	cfg.Keywords.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// decodeSettings decodes the merged viper settings into a Config, converting
// duration strings and comma-separated lists along the way.
func decodeSettings(settings map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values with viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", defaultAppName)
	v.SetDefault("app.version", defaultAppVersion)

	v.SetDefault("crawl.source", "thuysanvietnam")
	v.SetDefault("crawl.base_url", "https://thuysanvietnam.com.vn")
	v.SetDefault("crawl.category_urls", []string{
		"https://thuysanvietnam.com.vn/tom/",
		"https://thuysanvietnam.com.vn/nuoi-trong/",
		"https://thuysanvietnam.com.vn/nuoi-tom/",
		"https://thuysanvietnam.com.vn/benh-tom/",
		"https://thuysanvietnam.com.vn/ky-thuat-nuoi-tom/",
		"https://thuysanvietnam.com.vn/ky-thuat-nuoi-trong/",
		"https://thuysanvietnam.com.vn/con-giong/",
		"https://thuysanvietnam.com.vn/moi-truong-nuoi/",
	})
	v.SetDefault("crawl.search_keywords", []string{
		"tôm sú", "tôm thẻ chân trắng", "nuôi tôm", "bệnh tôm",
	})
	v.SetDefault("crawl.search_path_patterns", []string{
		"/tim-kiem?q=%s",
		"/tim-kiem/%s",
		"/search?q=%s",
	})
	v.SetDefault("crawl.user_agents", defaultUserAgents)
	v.SetDefault("crawl.headers", defaultHeaders)
	v.SetDefault("crawl.request_delay", defaultRequestDelay)
	v.SetDefault("crawl.request_timeout", defaultRequestTimeout)
	v.SetDefault("crawl.max_retries", defaultMaxRetries)
	v.SetDefault("crawl.respect_robots", true)
	v.SetDefault("crawl.max_articles", defaultMaxArticles)
	v.SetDefault("crawl.max_pages_per_category", defaultMaxPagesPerCategory)
	v.SetDefault("crawl.max_search_pages", defaultMaxSearchPages)
	v.SetDefault("crawl.enable_feed_discovery", false)

	v.SetDefault("processing.chunk_size", defaultChunkSize)
	v.SetDefault("processing.chunk_overlap", defaultChunkOverlap)
	v.SetDefault("processing.extract_entities", true)

	v.SetDefault("storage.raw_dir", defaultRawDir)
	v.SetDefault("storage.processed_dir", defaultProcessedDir)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.encoding", defaultLogEncoding)
}

// Validate checks the configuration for values that would make a run
// meaningless or unsafe.
func (c *Config) Validate() error {
	if c.Crawl.BaseURL == "" {
		return errors.New("crawl.base_url must be specified")
	}
	if len(c.Crawl.UserAgents) == 0 {
		return errors.New("crawl.user_agents must not be empty")
	}
	if c.Crawl.MaxRetries < 1 {
		return fmt.Errorf("crawl.max_retries must be at least 1, got %d", c.Crawl.MaxRetries)
	}
	if c.Crawl.MaxArticles < 1 {
		return fmt.Errorf("crawl.max_articles must be at least 1, got %d", c.Crawl.MaxArticles)
	}
	if c.Processing.ChunkSize < 1 {
		return fmt.Errorf("processing.chunk_size must be positive, got %d", c.Processing.ChunkSize)
	}
	if c.Processing.ChunkOverlap < 0 {
		return fmt.Errorf("processing.chunk_overlap must not be negative, got %d", c.Processing.ChunkOverlap)
	}
	if c.Processing.ChunkOverlap >= c.Processing.ChunkSize {
		return fmt.Errorf("processing.chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.Processing.ChunkOverlap, c.Processing.ChunkSize)
	}
	if c.Storage.RawDir == "" || c.Storage.ProcessedDir == "" {
		return errors.New("storage directories must be specified")
	}
	return nil
}
