// Package config loads application configuration and installs the logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	// APIToken is the encoded WiGLE API credential (env: WIGLE_API_TOKEN).
	APIToken string       `yaml:"api_token" mapstructure:"api_token"`
	BaseURL  string       `yaml:"base_url" mapstructure:"base_url"`
	Search   SearchConfig `yaml:"search" mapstructure:"search"`
	Output   OutputConfig `yaml:"output" mapstructure:"output"`
	Log      LogConfig    `yaml:"log" mapstructure:"log"`
}

// SearchConfig configures the retrieval engine.
type SearchConfig struct {
	Kind            string          `yaml:"kind" mapstructure:"kind"`
	PageSize        int             `yaml:"page_size" mapstructure:"page_size"`
	MaxAttempts     int             `yaml:"max_attempts" mapstructure:"max_attempts"`
	Backoff         []time.Duration `yaml:"backoff" mapstructure:"backoff"`
	MaxCooldown     time.Duration   `yaml:"max_cooldown" mapstructure:"max_cooldown"`
	RequestInterval time.Duration   `yaml:"request_interval" mapstructure:"request_interval"`
	Timeout         time.Duration   `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig configures result persistence.
type OutputConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WIGLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. api_token defaults empty so the env binding is visible
	// to Unmarshal even without a config file.
	v.SetDefault("api_token", "")
	v.SetDefault("base_url", "https://api.wigle.net")
	v.SetDefault("search.kind", "network")
	v.SetDefault("search.page_size", 100)
	v.SetDefault("search.max_attempts", 3)
	v.SetDefault("search.backoff", []string{"5s", "30s"})
	v.SetDefault("search.max_cooldown", "2m")
	v.SetDefault("search.request_interval", "5s")
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.format", "csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
