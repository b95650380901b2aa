package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"gopkg.in/yaml.v3"
)

// DefaultNASAAPIKey is NASA's shared, heavily rate-limited demo key.
const DefaultNASAAPIKey = "DEMO_KEY"

// Config holds all service settings. Values come from environment variables,
// falling back to an optional YAML file (CONFIG_PATH) and then to defaults.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	StaticDir          string
	CORSAllowedOrigins []string

	// NASA NeoWs feed.
	NASAAPIKey  string
	NeoFeedURL  string
	FeedTimeout time.Duration

	// JPL Small-Body Database enrichment.
	SBDBEnabled   bool
	SBDBURL       string
	SBDBTimeout   time.Duration
	SBDBCacheSize int

	// Shared feed cache. Disabled when ValkeyAddr is empty.
	ValkeyAddr   string
	FeedCacheTTL time.Duration

	// Scenario publishing. Disabled when KafkaBrokers is empty.
	KafkaBrokers       []string
	KafkaScenarioTopic string
}

// fileConfig mirrors the YAML layout of CONFIG_PATH.
type fileConfig struct {
	HTTPAddr           string   `yaml:"httpAddr"`
	LogLevel           string   `yaml:"logLevel"`
	LogFormat          string   `yaml:"logFormat"`
	StaticDir          string   `yaml:"staticDir"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins"`

	NASA struct {
		APIKey  string `yaml:"apiKey"`
		FeedURL string `yaml:"feedUrl"`
		Timeout string `yaml:"timeout"`
	} `yaml:"nasa"`

	SBDB struct {
		Enabled   bool   `yaml:"enabled"`
		URL       string `yaml:"url"`
		Timeout   string `yaml:"timeout"`
		CacheSize int    `yaml:"cacheSize"`
	} `yaml:"sbdb"`

	Valkey struct {
		Addr         string `yaml:"addr"`
		FeedCacheTTL string `yaml:"feedCacheTtl"`
	} `yaml:"valkey"`

	Kafka struct {
		Brokers       []string `yaml:"brokers"`
		ScenarioTopic string   `yaml:"scenarioTopic"`
	} `yaml:"kafka"`
}

// Load reads configuration from environment variables, applying file values
// and defaults where unset.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := readFile(path, &file); err != nil {
			return nil, err
		}
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parseDuration("FEED_TIMEOUT", or(file.NASA.Timeout, "12s"))
	if err != nil {
		return nil, err
	}
	sbdbTimeout, err := parseDuration("SBDB_TIMEOUT", or(file.SBDB.Timeout, "12s"))
	if err != nil {
		return nil, err
	}
	feedCacheTTL, err := parseDuration("FEED_CACHE_TTL", or(file.Valkey.FeedCacheTTL, "1h"))
	if err != nil {
		return nil, err
	}

	sbdbEnabled := file.SBDB.Enabled
	if v := os.Getenv("SBDB_ENABLED"); v != "" {
		sbdbEnabled = v == "true"
	}

	cacheSizeDefault := 256
	if file.SBDB.CacheSize > 0 {
		cacheSizeDefault = file.SBDB.CacheSize
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", or(file.HTTPAddr, ":8080")),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", or(file.LogLevel, "info")),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", or(file.LogFormat, "json")),
		ShutdownTimeout: shutdownTimeout,

		StaticDir:          sharedcfg.EnvOrDefault("STATIC_DIR", or(file.StaticDir, "static")),
		CORSAllowedOrigins: parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", or(strings.Join(file.CORSAllowedOrigins, ","), "*"))),

		NASAAPIKey:  sharedcfg.EnvOrDefault("NASA_API_KEY", or(file.NASA.APIKey, DefaultNASAAPIKey)),
		NeoFeedURL:  sharedcfg.EnvOrDefault("NEO_FEED_URL", or(file.NASA.FeedURL, "https://api.nasa.gov/neo/rest/v1/feed")),
		FeedTimeout: feedTimeout,

		SBDBEnabled:   sbdbEnabled,
		SBDBURL:       sharedcfg.EnvOrDefault("SBDB_URL", or(file.SBDB.URL, "https://ssd-api.jpl.nasa.gov/sbdb.api")),
		SBDBTimeout:   sbdbTimeout,
		SBDBCacheSize: parsePositiveInt("SBDB_CACHE_SIZE", cacheSizeDefault),

		ValkeyAddr:   sharedcfg.EnvOrDefault("VALKEY_ADDR", file.Valkey.Addr),
		FeedCacheTTL: feedCacheTTL,

		KafkaBrokers:       parseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", strings.Join(file.Kafka.Brokers, ","))),
		KafkaScenarioTopic: sharedcfg.EnvOrDefault("KAFKA_SCENARIO_TOPIC", or(file.Kafka.ScenarioTopic, "impact-scenarios")),
	}

	if cfg.NASAAPIKey == "" {
		return nil, errors.New("NASA_API_KEY is required")
	}
	if cfg.NeoFeedURL == "" {
		return nil, errors.New("NEO_FEED_URL is required")
	}
	if cfg.SBDBEnabled && cfg.SBDBURL == "" {
		return nil, errors.New("SBDB_ENABLED is true but SBDB_URL is not set")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaScenarioTopic == "" {
		return nil, errors.New("KAFKA_SCENARIO_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// FeedCacheEnabled reports whether the shared Valkey feed cache is configured.
func (c *Config) FeedCacheEnabled() bool {
	return c.ValkeyAddr != ""
}

// PublishingEnabled reports whether scenario records are written to Kafka.
func (c *Config) PublishingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func readFile(path string, into *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func parseBrokers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return sharedcfg.ParseBrokers(raw)
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
