package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port           string `mapstructure:"port"`
	Environment    string `mapstructure:"environment"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`

	DatabaseDriver string `mapstructure:"database_driver"`
	DatabasePath   string `mapstructure:"database_path"`
	DatabaseURL    string `mapstructure:"database_url"`
	SQLLog         bool   `mapstructure:"sql_log"`

	LokiURL       string `mapstructure:"loki_url"`
	OTLPEndpoint  string `mapstructure:"otlp_endpoint"`
	TraceExporter string `mapstructure:"trace_exporter"`
	MetricsPort   string `mapstructure:"metrics_port"`

	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	// RateLimitBatchRequests caps POST /customers/batch, which fans out to up to 100 lookups.
	RateLimitBatchRequests int `mapstructure:"rate_limit_batch_requests"`

	EnforceHTTPS bool `mapstructure:"enforce_https"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("service_name", "customerapp")
	v.SetDefault("service_version", "1.0.0")

	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_path", "customers.db")
	v.SetDefault("database_url", "")
	v.SetDefault("sql_log", false)

	v.SetDefault("loki_url", "")
	v.SetDefault("otlp_endpoint", "localhost:4317")
	v.SetDefault("trace_exporter", "otlp")
	v.SetDefault("metrics_port", "9091")

	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_requests", 60)
	v.SetDefault("rate_limit_window", time.Minute)
	v.SetDefault("rate_limit_batch_requests", 10)

	v.SetDefault("enforce_https", false)

	v.SetDefault("shutdown_timeout", 10*time.Second)
}

func GetDefaultConfig() *AppConfig {
	v := viper.New()
	setDefaults(v)

	var cfg AppConfig
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// Load reads the optional env files, then the process environment, on top
// of the defaults.
func Load(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.RateLimitEnabled && (cfg.RateLimitRequests <= 0 || cfg.RateLimitBatchRequests <= 0 || cfg.RateLimitWindow <= 0) {
		return nil, fmt.Errorf("rate limit requires positive RATE_LIMIT_REQUESTS, RATE_LIMIT_BATCH_REQUESTS and RATE_LIMIT_WINDOW")
	}

	return &cfg, nil
}
