package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	News     NewsConfig     `mapstructure:"news"`
	Market   MarketConfig   `mapstructure:"market"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// NewsConfig holds news search settings. An empty APIKey is allowed:
// the news stage degrades to an empty headline list instead of failing.
type NewsConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	MaxHeadlines int    `mapstructure:"max_headlines"`
	Language     string `mapstructure:"language"`
}

// MarketConfig holds market data settings. Adjusted selects
// split/dividend-adjusted closes instead of raw closes.
type MarketConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Days     int    `mapstructure:"days"`
	Adjusted bool   `mapstructure:"adjusted"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI settings. BaseURL may point at any
// OpenAI-compatible chat-completion host.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// PipelineConfig holds the briefing pipeline settings.
type PipelineConfig struct {
	DefaultTicker  string  `mapstructure:"default_ticker"`
	DefaultQuery   string  `mapstructure:"default_query"`
	MaxPromptChars int     `mapstructure:"max_prompt_chars"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
}

// CacheConfig holds TTL cache settings for the serve mode.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	NewsTTL   time.Duration `mapstructure:"news_ttl"`
	MarketTTL time.Duration `mapstructure:"market_ttl"`
}

// ArchiveConfig holds brief archive settings.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.News.MaxHeadlines <= 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.Market.Days <= 0 {
		c.Market.Days = 5
	}
	if c.Pipeline.DefaultTicker == "" {
		c.Pipeline.DefaultTicker = "AAPL"
	}
	if c.Pipeline.DefaultQuery == "" {
		c.Pipeline.DefaultQuery = "Apple OR AAPL OR stock market"
	}
	if c.Pipeline.MaxPromptChars <= 0 {
		c.Pipeline.MaxPromptChars = 25000
	}
	if c.Pipeline.MaxTokens <= 0 {
		c.Pipeline.MaxTokens = 400
	}
	if c.Pipeline.Temperature == 0 {
		c.Pipeline.Temperature = 0.6
	}
	if c.Cache.NewsTTL == 0 {
		c.Cache.NewsTTL = 10 * time.Minute
	}
	if c.Cache.MarketTTL == 0 {
		c.Cache.MarketTTL = 5 * time.Minute
	}
	if c.Archive.Type == "" {
		c.Archive.Type = "localfs"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks the configuration for errors. Missing API credentials
// are deliberately not errors here: the affected pipeline stage degrades
// to its documented placeholder instead of failing the whole run.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Pipeline.Temperature < 0 || c.Pipeline.Temperature > 2 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("temperature must be between 0 and 2, got %f", c.Pipeline.Temperature))
	}
	if c.Pipeline.MaxPromptChars < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_prompt_chars must be positive, got %d", c.Pipeline.MaxPromptChars))
	}

	switch c.LLM.Provider {
	case "", "claude", "openai", "ollama":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown llm provider: %s", c.LLM.Provider))
	}

	switch c.Archive.Type {
	case "localfs", "s3":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type: %s", c.Archive.Type))
	}
	if c.Archive.Enabled && c.Archive.Type == "s3" && c.Archive.S3.Bucket == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("s3 bucket required when archive type is s3"))
	}

	return nil
}
