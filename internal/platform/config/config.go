package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL           string
	Port                  string `validate:"required,numeric"`
	IsProduction          bool
	EnableDBCheck         bool
	JWTSecret             string `validate:"required,min=16"`
	AdminRefreshRateLimit string `validate:"required"`
	// CORSAllowedOrigins empty means any origin.
	CORSAllowedOrigins []string

	Resilience ResilienceConfig
	Providers  ProvidersConfig
	Refresh    RefreshConfig
	Kafka      KafkaConfig
	Redis      RedisConfig
}

// ResilienceConfig tunes the time limiter, retry and circuit breaker
// wrapped around every provider call.
type ResilienceConfig struct {
	ProviderOrder        []string
	Timeout              time.Duration `validate:"gt=0"`
	RetryMaxAttempts     int           `validate:"min=1,max=10"`
	RetryWait            time.Duration `validate:"gte=0"`
	WindowSize           int           `validate:"min=1"`
	MinimumCalls         int           `validate:"min=1,ltefield=WindowSize"`
	FailureRateThreshold float64       `validate:"gt=0,lte=100"`
	OpenWait             time.Duration `validate:"gt=0"`
	HalfOpenCalls        int           `validate:"min=1"`
}

// ProvidersConfig locates the external rate sources. An empty mock URL
// leaves that source unregistered; an empty fixer key leaves fixer disabled.
type ProvidersConfig struct {
	MockABaseURL   string `validate:"omitempty,url"`
	MockBBaseURL   string `validate:"omitempty,url"`
	FixerBaseURL   string `validate:"omitempty,url"`
	FixerAccessKey string
	FixerFixedBase string `validate:"omitempty,len=3,uppercase"`
}

// RefreshConfig drives the scheduled refresh. A zero interval disables it.
type RefreshConfig struct {
	Interval  time.Duration `validate:"gte=0"`
	OnStartup bool
}

// KafkaConfig enables refresh events when brokers are listed.
type KafkaConfig struct {
	Brokers      []string
	RefreshTopic string `validate:"required_with=Brokers"`
}

// RedisConfig enables the rate cache and a shared rate-limit store when URL is set.
type RedisConfig struct {
	URL          string        `validate:"omitempty,url"`
	RateCacheTTL time.Duration `validate:"gte=0"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("ADMIN_REFRESH_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.SetDefault("PROVIDER_ORDER", "mock-a,mock-b,fixer")
	v.SetDefault("PROVIDER_TIMEOUT", "2s")
	v.SetDefault("RETRY_MAX_ATTEMPTS", 2)
	v.SetDefault("RETRY_WAIT", "100ms")
	v.SetDefault("CB_WINDOW_SIZE", 10)
	v.SetDefault("CB_MIN_CALLS", 5)
	v.SetDefault("CB_FAILURE_RATE_THRESHOLD", 50)
	v.SetDefault("CB_OPEN_WAIT", "10s")
	v.SetDefault("CB_HALF_OPEN_CALLS", 3)

	v.SetDefault("MOCK_A_BASE_URL", "")
	v.SetDefault("MOCK_B_BASE_URL", "")
	v.SetDefault("FIXER_BASE_URL", "http://data.fixer.io/api")
	v.SetDefault("FIXER_ACCESS_KEY", "")
	v.SetDefault("FIXER_FIXED_BASE", "")

	v.SetDefault("REFRESH_INTERVAL", "1h")
	v.SetDefault("REFRESH_ON_STARTUP", false)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_REFRESH_TOPIC", "rates.refreshed")

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_CACHE_TTL", "5m")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           v.GetString("PGSQL_URL"),
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		AdminRefreshRateLimit: v.GetString("ADMIN_REFRESH_RATE_LIMIT"),
		CORSAllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Resilience: ResilienceConfig{
			ProviderOrder:        splitList(v.GetString("PROVIDER_ORDER")),
			Timeout:              v.GetDuration("PROVIDER_TIMEOUT"),
			RetryMaxAttempts:     v.GetInt("RETRY_MAX_ATTEMPTS"),
			RetryWait:            v.GetDuration("RETRY_WAIT"),
			WindowSize:           v.GetInt("CB_WINDOW_SIZE"),
			MinimumCalls:         v.GetInt("CB_MIN_CALLS"),
			FailureRateThreshold: v.GetFloat64("CB_FAILURE_RATE_THRESHOLD"),
			OpenWait:             v.GetDuration("CB_OPEN_WAIT"),
			HalfOpenCalls:        v.GetInt("CB_HALF_OPEN_CALLS"),
		},
		Providers: ProvidersConfig{
			MockABaseURL:   v.GetString("MOCK_A_BASE_URL"),
			MockBBaseURL:   v.GetString("MOCK_B_BASE_URL"),
			FixerBaseURL:   v.GetString("FIXER_BASE_URL"),
			FixerAccessKey: v.GetString("FIXER_ACCESS_KEY"),
			FixerFixedBase: strings.ToUpper(strings.TrimSpace(v.GetString("FIXER_FIXED_BASE"))),
		},
		Refresh: RefreshConfig{
			Interval:  v.GetDuration("REFRESH_INTERVAL"),
			OnStartup: v.GetBool("REFRESH_ON_STARTUP"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			RefreshTopic: v.GetString("KAFKA_REFRESH_TOPIC"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("REDIS_URL"),
			RateCacheTTL: v.GetDuration("RATE_CACHE_TTL"),
		},
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.Providers.MockABaseURL == "" && cfg.Providers.MockBBaseURL == "" && cfg.Providers.FixerAccessKey == "" {
		log.Println("Warning: no rate provider configured; refresh passes will find no data.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
