package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	AI      AIConfig      `toml:"ai"`
	Market  MarketConfig  `toml:"market"`
	Server  ServerConfig  `toml:"server"`
	Article ArticleConfig `toml:"article"`
	Usage   UsageConfig   `toml:"usage"`
	Log     LogConfig     `toml:"log"`
}

// AIConfig holds LLM provider credentials and model selection. Provider is
// the default for text endpoints; both providers are constructed when their
// keys are present.
type AIConfig struct {
	Provider        string `toml:"provider"`
	OpenAIAPIKey    string `toml:"openai_api_key"`
	OpenAIModel     string `toml:"openai_model"`
	ImageModel      string `toml:"image_model"`
	AnthropicAPIKey string `toml:"anthropic_api_key"`
	AnthropicModel  string `toml:"anthropic_model"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// MarketConfig holds the analyst ratings data source settings.
type MarketConfig struct {
	Provider     string `toml:"provider"`
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	LookbackDays int    `toml:"lookback_days"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// ArticleConfig bounds article input fed into prompts.
type ArticleConfig struct {
	MaxWords            int `toml:"max_words"`
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
}

// UsageConfig controls the SQLite usage log.
type UsageConfig struct {
	Enabled      bool   `toml:"enabled"`
	DatabasePath string `toml:"database_path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

const (
	defaultAIProvider     = "openai"
	defaultOpenAIModel    = "gpt-4o"
	defaultImageModel     = "dall-e-3"
	defaultAnthropicModel = "claude-haiku-4-5"
	defaultAITimeout      = 60
	defaultMarketProvider = "benzinga"
	defaultLookbackDays   = 90
	defaultPort           = 8080
	defaultMaxWords       = 2000
	defaultFetchTimeout   = 30
	defaultDatabasePath   = "data/usage.db"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

const defaultConfigContent = `[ai]
provider = "openai"               # default provider: "openai" or "anthropic"
openai_api_key = ""               # or set OPENAI_API_KEY
openai_model = "gpt-4o"
image_model = "dall-e-3"
anthropic_api_key = ""            # or set ANTHROPIC_API_KEY
anthropic_model = "claude-haiku-4-5"
timeout_seconds = 60

[market]
provider = "benzinga"             # "benzinga" or "finnhub"
api_key = ""                      # or set MARKET_API_KEY
lookback_days = 90

[server]
port = 8080

[article]
max_words = 2000
fetch_timeout_seconds = 30

[usage]
enabled = false
database_path = "data/usage.db"

[log]
level = "info"                    # debug, info, warn, error
format = "text"                   # text or json
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// "port = 0" must be an error, not silently replaced by the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks numeric values that were explicitly set in the TOML
// file, before zero values are replaced by defaults.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("market", "lookback_days") && cfg.Market.LookbackDays < 1 {
		return fmt.Errorf("invalid market.lookback_days %d: must be >= 1", cfg.Market.LookbackDays)
	}
	if md.IsDefined("ai", "timeout_seconds") && cfg.AI.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid ai.timeout_seconds %d: must be >= 1", cfg.AI.TimeoutSeconds)
	}
	if md.IsDefined("article", "max_words") && cfg.Article.MaxWords < 1 {
		return fmt.Errorf("invalid article.max_words %d: must be >= 1", cfg.Article.MaxWords)
	}
	if md.IsDefined("article", "fetch_timeout_seconds") && cfg.Article.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("invalid article.fetch_timeout_seconds %d: must be >= 1", cfg.Article.FetchTimeoutSeconds)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = defaultAIProvider
	}
	if cfg.AI.OpenAIModel == "" {
		cfg.AI.OpenAIModel = defaultOpenAIModel
	}
	if cfg.AI.ImageModel == "" {
		cfg.AI.ImageModel = defaultImageModel
	}
	if cfg.AI.AnthropicModel == "" {
		cfg.AI.AnthropicModel = defaultAnthropicModel
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = defaultAITimeout
	}
	if cfg.Market.Provider == "" {
		cfg.Market.Provider = defaultMarketProvider
	}
	if cfg.Market.LookbackDays == 0 {
		cfg.Market.LookbackDays = defaultLookbackDays
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Article.MaxWords == 0 {
		cfg.Article.MaxWords = defaultMaxWords
	}
	if cfg.Article.FetchTimeoutSeconds == 0 {
		cfg.Article.FetchTimeoutSeconds = defaultFetchTimeout
	}
	if cfg.Usage.DatabasePath == "" {
		cfg.Usage.DatabasePath = defaultDatabasePath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaultLogFormat
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for market.api_key:
//  1. MARKET_API_KEY (generic, highest)
//  2. BENZINGA_API_KEY or FINNHUB_API_KEY, matching market.provider
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.AI.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.OpenAIAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AI.AnthropicAPIKey = v
	}

	switch cfg.Market.Provider {
	case "benzinga":
		if v := os.Getenv("BENZINGA_API_KEY"); v != "" {
			cfg.Market.APIKey = v
		}
	case "finnhub":
		if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
			cfg.Market.APIKey = v
		}
	}
	if v := os.Getenv("MARKET_API_KEY"); v != "" {
		cfg.Market.APIKey = v
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	return nil
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"openai\" or \"anthropic\"", cfg.AI.Provider)
	}

	switch cfg.Market.Provider {
	case "benzinga", "finnhub":
	default:
		return fmt.Errorf("invalid market.provider %q: must be \"benzinga\" or \"finnhub\"", cfg.Market.Provider)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.Market.LookbackDays < 1 {
		return fmt.Errorf("invalid market.lookback_days %d: must be >= 1", cfg.Market.LookbackDays)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: must be debug, info, warn or error", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"text\" or \"json\"", cfg.Log.Format)
	}

	if cfg.AI.OpenAIAPIKey == "" && cfg.AI.AnthropicAPIKey == "" {
		slog.Warn("no AI API key configured: set OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}
	if cfg.Market.APIKey == "" {
		slog.Warn("market.api_key is empty: analyst-ratings will be unavailable")
	}

	return nil
}
