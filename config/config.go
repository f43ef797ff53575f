package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort string `yaml:"server_port"`
	JWTSecret  string `yaml:"jwt_secret"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	MarketAPIURL  string        `yaml:"market_api_url"`
	MarketAPIKey  string        `yaml:"market_api_key"`
	MarketTimeout time.Duration `yaml:"market_timeout"`

	ChatAPIURL  string        `yaml:"chat_api_url"`
	ChatAPIKey  string        `yaml:"chat_api_key"`
	ChatModel   string        `yaml:"chat_model"`
	ChatTimeout time.Duration `yaml:"chat_timeout"`

	TokenCacheSize   int  `yaml:"token_cache_size"`
	ListingLimit     int  `yaml:"listing_limit"`
	SearchLimit      int  `yaml:"search_limit"`
	SearchFetchLimit int  `yaml:"search_fetch_limit"`
	SeedSampleTokens bool `yaml:"seed_sample_tokens"`

	ChatRatePerSec float64 `yaml:"chat_rate_per_sec"`
	ChatBurst      int     `yaml:"chat_burst"`

	RequireSignature bool          `yaml:"require_signature"`
	ChallengeTTL     time.Duration `yaml:"challenge_ttl"`
}

// DefaultJWTSecret is only fit for local runs; it is refused when signed
// login is required.
const DefaultJWTSecret = "secret"

func defaults() Config {
	return Config{
		ServerPort:       "8080",
		JWTSecret:        DefaultJWTSecret,
		LogLevel:         "info",
		LogFormat:        "json",
		MarketAPIURL:     "https://pro-api.coinmarketcap.com",
		MarketTimeout:    10 * time.Second,
		ChatAPIURL:       "https://openrouter.ai/api/v1",
		ChatModel:        "openai/gpt-3.5-turbo",
		ChatTimeout:      30 * time.Second,
		TokenCacheSize:   10000,
		ListingLimit:     100,
		SearchLimit:      50,
		SearchFetchLimit: 2000,
		SeedSampleTokens: true,
		ChatRatePerSec:   1,
		ChatBurst:        5,
		ChallengeTTL:     5 * time.Minute,
	}
}

// LoadConfig starts from defaults, applies the YAML file named by
// CONFIG_FILE when set, then lets environment variables win.
func LoadConfig() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	var errs []error
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.MarketAPIURL = getEnv("MARKET_API_URL", cfg.MarketAPIURL)
	cfg.MarketAPIKey = getEnv("MARKET_API_KEY", cfg.MarketAPIKey)
	cfg.MarketTimeout = getEnvDuration("MARKET_TIMEOUT", cfg.MarketTimeout, &errs)
	cfg.ChatAPIURL = getEnv("CHAT_API_URL", cfg.ChatAPIURL)
	cfg.ChatAPIKey = getEnv("CHAT_API_KEY", cfg.ChatAPIKey)
	cfg.ChatModel = getEnv("CHAT_MODEL", cfg.ChatModel)
	cfg.ChatTimeout = getEnvDuration("CHAT_TIMEOUT", cfg.ChatTimeout, &errs)
	cfg.TokenCacheSize = getEnvInt("TOKEN_CACHE_SIZE", cfg.TokenCacheSize, &errs)
	cfg.ListingLimit = getEnvInt("LISTING_LIMIT", cfg.ListingLimit, &errs)
	cfg.SearchLimit = getEnvInt("SEARCH_LIMIT", cfg.SearchLimit, &errs)
	cfg.SearchFetchLimit = getEnvInt("SEARCH_FETCH_LIMIT", cfg.SearchFetchLimit, &errs)
	cfg.SeedSampleTokens = getEnvBool("SEED_SAMPLE_TOKENS", cfg.SeedSampleTokens, &errs)
	cfg.ChatRatePerSec = getEnvFloat("CHAT_RATE_PER_SEC", cfg.ChatRatePerSec, &errs)
	cfg.ChatBurst = getEnvInt("CHAT_BURST", cfg.ChatBurst, &errs)
	cfg.RequireSignature = getEnvBool("REQUIRE_SIGNATURE", cfg.RequireSignature, &errs)
	cfg.ChallengeTTL = getEnvDuration("CHALLENGE_TTL", cfg.ChallengeTTL, &errs)
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigOrPanic() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %q", c.ServerPort)
	}
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if c.RequireSignature && c.JWTSecret == DefaultJWTSecret {
		return errors.New("jwt secret must be changed from the default when signatures are required")
	}
	if c.MarketTimeout <= 0 || c.ChatTimeout <= 0 || c.ChallengeTTL <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.TokenCacheSize <= 0 {
		return errors.New("token cache size must be positive")
	}
	if c.ListingLimit <= 0 || c.SearchLimit <= 0 || c.SearchFetchLimit <= 0 {
		return errors.New("listing and search limits must be positive")
	}
	if c.ChatRatePerSec <= 0 || c.ChatBurst <= 0 {
		return errors.New("chat rate limit must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
