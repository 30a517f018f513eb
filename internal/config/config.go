package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tejusbharadwaj/gridcast/internal/engine"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. GRIDCAST_SERVER_PORT for server.port.
const EnvPrefix = "GRIDCAST"

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	HTTP      HTTPConfig      `mapstructure:"http" yaml:"http"`
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	Predictor PredictorConfig `mapstructure:"predictor" yaml:"predictor"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" yaml:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" yaml:"port"`
	Host           string        `mapstructure:"host" yaml:"host"`
	CacheSize      int           `mapstructure:"cache_size" yaml:"cache_size"`
	RateLimit      float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
	MaxRange       time.Duration `mapstructure:"max_range" yaml:"max_range"`
}

type HTTPConfig struct {
	Enabled        bool     `mapstructure:"enabled" yaml:"enabled"`
	Port           int      `mapstructure:"port" yaml:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// EngineConfig mirrors engine.Params in a file-friendly form.
type EngineConfig struct {
	OverloadThreshold float64       `mapstructure:"overload_threshold" yaml:"overload_threshold"`
	Cadence           time.Duration `mapstructure:"cadence" yaml:"cadence"`
	ForecastHorizon   time.Duration `mapstructure:"forecast_horizon" yaml:"forecast_horizon"`
	HistoryWindow     time.Duration `mapstructure:"history_window" yaml:"history_window"`
	Timezone          string        `mapstructure:"timezone" yaml:"timezone"`
}

type PredictorConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load reads configuration from file and environment variables. An empty
// path yields the defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// First unmarshal into a map so syntax errors surface before expansion
		var rawConfig map[string]interface{}
		if err := yaml.Unmarshal(data, &rawConfig); err != nil {
			return nil, fmt.Errorf("failed to unmarshal raw config: %w", err)
		}

		data, err = yaml.Marshal(rawConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal raw config: %w", err)
		}

		// Expand environment variables
		expandedData := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expandedData)); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.HTTP.Enabled && (c.HTTP.Port <= 0 || c.HTTP.Port > 65535) {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	if c.Engine.OverloadThreshold <= 0 {
		return fmt.Errorf("overload threshold must be positive")
	}
	if c.Engine.Cadence <= 0 {
		return fmt.Errorf("cadence must be positive")
	}
	if _, err := time.LoadLocation(c.Engine.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Engine.Timezone, err)
	}
	return nil
}

// Params converts the engine section into engine parameters.
func (c EngineConfig) Params() (engine.Params, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return engine.Params{}, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return engine.Params{
		OverloadThreshold: c.OverloadThreshold,
		Cadence:           c.Cadence,
		ForecastHorizon:   c.ForecastHorizon,
		HistoryWindow:     c.HistoryWindow,
		Location:          loc,
	}, nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.cache_size", 1000)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("server.max_range", 2*365*24*time.Hour)

	v.SetDefault("http.enabled", true)
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.allowed_origins", []string{"*"})

	v.SetDefault("engine.overload_threshold", 15000.0)
	v.SetDefault("engine.cadence", 5*time.Minute)
	v.SetDefault("engine.forecast_horizon", 24*time.Hour)
	v.SetDefault("engine.history_window", 6*time.Hour)
	v.SetDefault("engine.timezone", "UTC")

	v.SetDefault("predictor.url", "http://127.0.0.1:5000/predict")
	v.SetDefault("predictor.timeout", 30*time.Second)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.schedule", "*/5 * * * *")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
