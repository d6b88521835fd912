// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	BodyLimitBytes  int64         `yaml:"body_limit_bytes"` // registration payloads carry base64 images
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"` // trace|debug|info|warn|error
	Format   string `yaml:"format"`                // json|console
	Sampling bool   `yaml:"sampling"`              // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url" env:"DATABASE_URL"`
	MaxConns int32  `yaml:"max_conns"`
	Migrate  bool   `yaml:"migrate"` // apply embedded migrations on startup
}

type RedisConfig struct {
	URL       string        `yaml:"url" env:"REDIS_URL"`
	Password  string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int           `yaml:"db"`
	RateLimit int           `yaml:"rate_limit"` // registrations per client per window, 0 disables
	Window    time.Duration `yaml:"window"`
}

type StorageConfig struct {
	Region          string `yaml:"region" env:"AWS_REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket" env:"AWS_BUCKET_NAME"`
	MaxDimension    int    `yaml:"max_dimension"`
	Quality         int    `yaml:"quality"`
	MaxPixels       int    `yaml:"max_pixels"` // decoded size limit per input image
}

type RegistrationConfig struct {
	ProductConcurrency int `yaml:"product_concurrency"`
}

type AdminConfig struct {
	APIKey     string        `yaml:"api_key" env:"ADMIN_API_KEY"`
	JWTSecret  string        `yaml:"jwt_secret" env:"ADMIN_JWT_SECRET"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Enabled reports whether the admin API should be mounted.
func (a AdminConfig) Enabled() bool { return a.APIKey != "" && a.JWTSecret != "" }

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Storage      StorageConfig      `yaml:"storage"`
	Registration RegistrationConfig `yaml:"registration"`
	Admin        AdminConfig        `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the yaml file at path, applies environment overrides,
// fills defaults and validates required settings.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b, dev)
}

// Parse is LoadConfig without the file read.
func Parse(b []byte, dev bool) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BodyLimitBytes <= 0 {
		cfg.Server.BodyLimitBytes = 512 << 20
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 5 * time.Minute
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Redis.Window <= 0 {
		cfg.Redis.Window = time.Hour
	}
	if cfg.Storage.MaxDimension <= 0 {
		cfg.Storage.MaxDimension = 1200
	}
	if cfg.Storage.Quality <= 0 || cfg.Storage.Quality > 100 {
		cfg.Storage.Quality = 80
	}
	if cfg.Storage.MaxPixels <= 0 {
		cfg.Storage.MaxPixels = 25_000_000
	}
	if cfg.Registration.ProductConcurrency <= 0 {
		cfg.Registration.ProductConcurrency = 8
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 12 * time.Hour
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Storage.Region == "" || cfg.Storage.Bucket == "" {
		return nil, errors.New("storage.region and storage.bucket are required")
	}
	if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}
	if cfg.Redis.RateLimit > 0 && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when redis.rate_limit is set")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
