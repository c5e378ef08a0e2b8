package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	SourceURL      string `mapstructure:"source_url"`
}

// Timeout falls back to ten seconds when the configured value is not positive.
func (c HTTPClient) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Source struct {
	TimeZone string `mapstructure:"time_zone"`
}

const (
	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	CacheDriverBadger = "badger"
)

type Cache struct {
	Driver        string `mapstructure:"driver"`
	MaxItems      int64  `mapstructure:"max_items"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	BadgerDir     string `mapstructure:"badger_dir"`
}

type DbServer struct {
	Enabled     bool   `mapstructure:"enabled"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Pass        string `mapstructure:"pass"`
	Name        string `mapstructure:"name"`
	MaxConns    int32  `mapstructure:"max_conns"`
}

func (c DbServer) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Pass, c.Host, c.Port, c.Name,
	)
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

func (s Scheduler) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshIntervalSec) * time.Second
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Source     Source     `mapstructure:"source"`
	Cache      Cache      `mapstructure:"cache"`
	DbServer   DbServer   `mapstructure:"db_server"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
}

// Init reads config.yaml from the working directory.
func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

// Load reads the YAML file at path, overlays environment variables (an optional .env file
// is loaded first) and validates the result.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("http_client.source_url", "https://www.tcmb.gov.tr/kurlar/today.xml")
	v.SetDefault("logging.level", "info")
	v.SetDefault("source.time_zone", "Europe/Istanbul")
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.max_items", 64)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("scheduler.refresh_interval_sec", 600)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// db server env vars
	_ = v.BindEnv("db_server.enabled", "DB_ENABLED")
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// cache env vars
	_ = v.BindEnv("cache.driver", "CACHE_DRIVER")
	_ = v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("cache.redis_password", "REDIS_PASSWORD")

	// misc
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	c.Cache.Driver = strings.ToLower(strings.TrimSpace(c.Cache.Driver))
	switch c.Cache.Driver {
	case CacheDriverNone, CacheDriverMemory, CacheDriverBadger:
	case CacheDriverRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis cache driver")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if c.HTTPClient.SourceURL == "" {
		return errors.New("http_client.source_url is required")
	}
	return nil
}
