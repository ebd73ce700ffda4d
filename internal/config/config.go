// Package config provides configuration management for the crawler. Values
// load from an optional YAML file with environment variable overrides
// (NEWSCRAWL_ prefix); a .env file is honored when present.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/crawl"
	"github.com/jonesrussell/newscrawl/internal/logger"
)

// envPrefix namespaces environment overrides, e.g. NEWSCRAWL_SINK_TYPE.
const envPrefix = "NEWSCRAWL"

// Sink type identifiers.
const (
	SinkJSONL   = "jsonl"
	SinkKafka   = "kafka"
	SinkMongo   = "mongo"
	SinkElastic = "elastic"
	SinkDiscard = "discard"
)

// Crawler defaults.
const (
	defaultUserAgent      = "newscrawl/1.0 (+https://github.com/jonesrussell/newscrawl)"
	defaultParallelism    = 4
	defaultRateLimit      = 2 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultMaxDepth       = 3
)

// CrawlerConfig controls the fetch engine and the per-page pipeline.
type CrawlerConfig struct {
	UserAgent       string        `mapstructure:"user_agent"`
	Parallelism     int           `mapstructure:"parallelism"`
	RateLimit       time.Duration `mapstructure:"rate_limit"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	MaxDepth        int           `mapstructure:"max_depth"`
	MaxLinksPerPage int           `mapstructure:"max_links_per_page"`
	MinBodyChars    int           `mapstructure:"min_body_chars"`
	SummaryMaxChars int           `mapstructure:"summary_max_chars"`
	PageBudget      int           `mapstructure:"page_budget"`
	SeedFromFeeds   bool          `mapstructure:"seed_from_feeds"`
}

// SinkConfig selects and configures the delivery backend.
type SinkConfig struct {
	Type string `mapstructure:"type"`

	JSONLDir string `mapstructure:"jsonl_dir"`

	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`

	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`

	ElasticAddresses []string `mapstructure:"elastic_addresses"`
	ElasticIndex     string   `mapstructure:"elastic_index"`
}

// Config is the root configuration.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Sink    SinkConfig    `mapstructure:"sink"`
	Logger  logger.Config `mapstructure:"logger"`
}

// Load reads configuration from the given file path (optional) plus
// environment overrides and applies defaults.
func Load(path string) (*Config, error) {
	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.user_agent", defaultUserAgent)
	v.SetDefault("crawler.parallelism", defaultParallelism)
	v.SetDefault("crawler.rate_limit", defaultRateLimit)
	v.SetDefault("crawler.request_timeout", defaultRequestTimeout)
	v.SetDefault("crawler.max_depth", defaultMaxDepth)
	v.SetDefault("crawler.max_links_per_page", crawl.DefaultMaxLinksPerPage)
	v.SetDefault("crawler.min_body_chars", crawl.DefaultMinBodyChars)
	v.SetDefault("crawler.summary_max_chars", article.DefaultSummaryMaxChars)
	v.SetDefault("crawler.seed_from_feeds", true)

	v.SetDefault("sink.type", SinkJSONL)
	v.SetDefault("sink.jsonl_dir", "./data")
	v.SetDefault("sink.kafka_brokers", []string{"localhost:9092"})
	v.SetDefault("sink.kafka_topic", "raw_news")
	v.SetDefault("sink.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("sink.mongo_database", "news_db")
	v.SetDefault("sink.mongo_collection", "raw_news")
	v.SetDefault("sink.elastic_addresses", []string{"http://localhost:9200"})
	v.SetDefault("sink.elastic_index", "news_articles")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch c.Sink.Type {
	case SinkJSONL, SinkDiscard:
	case SinkKafka:
		if len(c.Sink.KafkaBrokers) == 0 {
			return errors.New("sink.kafka_brokers must not be empty for the kafka sink")
		}
	case SinkMongo:
		if c.Sink.MongoURI == "" {
			return errors.New("sink.mongo_uri must not be empty for the mongo sink")
		}
	case SinkElastic:
		if len(c.Sink.ElasticAddresses) == 0 {
			return errors.New("sink.elastic_addresses must not be empty for the elastic sink")
		}
	default:
		return fmt.Errorf("unknown sink type %q", c.Sink.Type)
	}

	if c.Crawler.Parallelism < 0 {
		return errors.New("crawler.parallelism must not be negative")
	}
	if c.Crawler.MaxLinksPerPage < 0 {
		return errors.New("crawler.max_links_per_page must not be negative")
	}
	return nil
}
