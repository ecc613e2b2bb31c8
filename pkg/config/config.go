package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	Backend    BackendConfig
	Session    SessionConfig
	DB         DBConfig
	Redis      RedisConfig
	PartnerJWT PartnerJWTConfig
	RateLimit  RateLimitConfig
	Search     SearchConfig
	Watcher    WatcherConfig
	CORS       CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPDASH_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPDASH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPDASH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPDASH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the shop REST backend. A zero timeout means the
// HTTP client never gives up on its own.
type BackendConfig struct {
	BaseURL string        `envconfig:"SHOPDASH_BACKEND_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"SHOPDASH_BACKEND_TIMEOUT" default:"0s"`
}

type SessionConfig struct {
	Store    string `envconfig:"SHOPDASH_SESSION_STORE" default:"memory"`
	SyncShop bool   `envconfig:"SHOPDASH_SESSION_SYNC_SHOP" default:"false"`
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPDASH_DB_DSN" default:"file:shopdash.db?cache=shared"`
	Driver string `envconfig:"SHOPDASH_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"SHOPDASH_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"SHOPDASH_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPDASH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPDASH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPDASH_REDIS_URL"`
	Password     string        `envconfig:"SHOPDASH_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPDASH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPDASH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPDASH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPDASH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPDASH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPDASH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PartnerJWTConfig signs the tokens handed to delivery partners after phone
// lookup.
type PartnerJWTConfig struct {
	Secret            string `envconfig:"SHOPDASH_PARTNER_JWT_SECRET" default:"dev-partner-secret"`
	Issuer            string `envconfig:"SHOPDASH_PARTNER_JWT_ISSUER" default:"shopdash"`
	ExpirationMinutes int    `envconfig:"SHOPDASH_PARTNER_JWT_EXPIRATION_MINUTES" default:"720"`
}

func (j PartnerJWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RateLimitConfig throttles the public partner login. It is only enforced
// when a redis URL is configured.
type RateLimitConfig struct {
	PartnerLoginWindow     time.Duration `envconfig:"SHOPDASH_PARTNER_LOGIN_WINDOW" default:"1m"`
	PartnerLoginIPLimit    int           `envconfig:"SHOPDASH_PARTNER_LOGIN_IP_LIMIT" default:"20"`
	PartnerLoginPhoneLimit int           `envconfig:"SHOPDASH_PARTNER_LOGIN_PHONE_LIMIT" default:"5"`
}

type SearchConfig struct {
	Debounce time.Duration `envconfig:"SHOPDASH_SEARCH_DEBOUNCE" default:"300ms"`
}

// WatcherConfig controls delivery status polling. Zero disables the watcher.
type WatcherConfig struct {
	Interval time.Duration `envconfig:"SHOPDASH_WATCHER_INTERVAL" default:"30s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPDASH_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("%s is not a valid url: %w", EnvBackendURL, err)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvBackendTimeout)
	}

	store := strings.ToLower(strings.TrimSpace(c.Session.Store))
	switch store {
	case StoreMemory, StoreSQLite, StorePostgres:
	case StoreRedis:
		if strings.TrimSpace(c.Redis.URL) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvRedisURL, EnvSessionStore, StoreRedis)
		}
	default:
		return fmt.Errorf("%s must be one of memory, redis, sqlite, postgres (got %q)", EnvSessionStore, c.Session.Store)
	}
	c.Session.Store = store

	if store == StoreSQLite || store == StorePostgres {
		c.DB.Driver = store
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvSessionStore, store)
		}
	}

	if c.Search.Debounce < 0 {
		return fmt.Errorf("%s must not be negative", EnvSearchDebounce)
	}
	if c.Watcher.Interval < 0 {
		return fmt.Errorf("%s must not be negative", EnvWatcherInterval)
	}
	return nil
}
