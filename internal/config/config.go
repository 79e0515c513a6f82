// Package config loads and validates service configuration from a YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort       = 8060
	defaultServerTimeout    = 30
	defaultDatabasePort     = 5432
	defaultMaxOpenConns     = 25
	defaultMaxIdleConns     = 5
	defaultConnMaxLifetime  = 5
	defaultRedisAddress     = "localhost:6379"
	defaultFetchTimeout     = 10 * time.Second
	defaultAnalysisTimeout  = 60 * time.Second
	defaultAnalysisWorkers  = 4
	defaultMaxContentLength = 5000
	defaultAnalysisModel    = "claude-3-5-haiku-latest"
	defaultMaxTokens        = 1024
	defaultFetchRPS         = 2
	defaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

type Config struct {
	Debug     bool            `env:"APP_DEBUG" yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Agent     AgentConfig     `yaml:"agent"`
	Platforms PlatformsConfig `yaml:"platforms"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"     yaml:"host"`
	Port            int           `env:"DB_PORT"     yaml:"port"`
	User            string        `env:"DB_USER"     yaml:"user"`
	Password        string        `env:"DB_PASSWORD" yaml:"password"`
	DBName          string        `env:"DB_NAME"     yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection configuration for ingest event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"` // Feature flag for event publishing
}

// AnalysisConfig configures the Claude analysis gateway.
type AnalysisConfig struct {
	APIKey    string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model     string        `env:"ANALYSIS_MODEL"    yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// AgentConfig configures orchestration behavior.
type AgentConfig struct {
	MaxContentLength int           `yaml:"max_content_length"`
	AnalysisWorkers  int           `yaml:"analysis_workers"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
}

// PlatformConfig holds per-platform fetch settings.
type PlatformConfig struct {
	BaseURL           string `yaml:"base_url"`
	UserAgent         string `yaml:"user_agent"`
	RequestsPerSecond int    `yaml:"requests_per_second"`
}

type PlatformsConfig struct {
	Bilibili PlatformConfig `yaml:"bilibili"`
	Douyin   PlatformConfig `yaml:"douyin"`
	Weibo    PlatformConfig `yaml:"weibo"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.Port <= 0 {
		return errors.New("database.port is required and must be positive")
	}
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Agent.MaxContentLength <= 0 {
		return errors.New("agent.max_content_length must be positive")
	}
	if c.Agent.AnalysisWorkers <= 0 {
		return errors.New("agent.analysis_workers must be positive")
	}
	return nil
}

// Load reads the config file (if present), applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(cfg)

	// Env always wins, including over defaults.
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDatabasePort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime * time.Minute
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.Analysis.Model == "" {
		cfg.Analysis.Model = defaultAnalysisModel
	}
	if cfg.Analysis.MaxTokens == 0 {
		cfg.Analysis.MaxTokens = defaultMaxTokens
	}
	if cfg.Analysis.Timeout == 0 {
		cfg.Analysis.Timeout = defaultAnalysisTimeout
	}
	if cfg.Agent.MaxContentLength == 0 {
		cfg.Agent.MaxContentLength = defaultMaxContentLength
	}
	if cfg.Agent.AnalysisWorkers == 0 {
		cfg.Agent.AnalysisWorkers = defaultAnalysisWorkers
	}
	if cfg.Agent.FetchTimeout == 0 {
		cfg.Agent.FetchTimeout = defaultFetchTimeout
	}

	setPlatformDefaults(&cfg.Platforms.Bilibili, "https://api.bilibili.com")
	setPlatformDefaults(&cfg.Platforms.Douyin, "https://www.douyin.com")
	setPlatformDefaults(&cfg.Platforms.Weibo, "https://m.weibo.cn")
}

func setPlatformDefaults(pc *PlatformConfig, baseURL string) {
	if pc.BaseURL == "" {
		pc.BaseURL = baseURL
	}
	if pc.UserAgent == "" {
		pc.UserAgent = defaultUserAgent
	}
	if pc.RequestsPerSecond == 0 {
		pc.RequestsPerSecond = defaultFetchRPS
	}
}
