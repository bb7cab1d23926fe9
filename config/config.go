package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Export   ExportConfig   `mapstructure:"export"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExportConfig locates the Workday course listings export.
type ExportConfig struct {
	URL             string        `mapstructure:"url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// DatabaseConfig is optional; an empty URL disables the catalog store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig is optional; an empty Addr disables the snapshot cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AMQPConfig is optional; an empty URL disables refresh notifications.
type AMQPConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads defaults, then the config file, then LISTINGS_* environment
// variables (export.url -> LISTINGS_EXPORT_URL). An empty path searches
// for config.yaml in . and ./config; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("export.url", "https://courselistings.wpi.edu/assets/prod-data.json")
	v.SetDefault("export.timeout", "60s")
	v.SetDefault("export.max_body_bytes", 64<<20)
	v.SetDefault("export.refresh_interval", "0s")

	v.SetDefault("database.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "listings")
	v.SetDefault("redis.ttl", "168h")

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.queue", "catalog.refreshed")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("LISTINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Export.URL == "" {
		return errors.New("config: export.url is required")
	}
	if c.Export.Timeout <= 0 {
		return errors.New("config: export.timeout must be positive")
	}
	if c.Export.MaxBodyBytes <= 0 {
		return errors.New("config: export.max_body_bytes must be positive")
	}
	if c.Export.RefreshInterval < 0 {
		return errors.New("config: export.refresh_interval must not be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}
	return nil
}
