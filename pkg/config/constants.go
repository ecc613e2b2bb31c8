package config

const (
	EnvPrefix = "SHOPDASH"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "SHOPDASH_APP_ENV"
	EnvPort            = "SHOPDASH_APP_PORT"
	EnvLogLevel        = "SHOPDASH_LOG_LEVEL"
	EnvBackendURL      = "SHOPDASH_BACKEND_URL"
	EnvBackendTimeout  = "SHOPDASH_BACKEND_TIMEOUT"
	EnvSessionStore    = "SHOPDASH_SESSION_STORE"
	EnvSessionSyncShop = "SHOPDASH_SESSION_SYNC_SHOP"
	EnvRedisURL        = "SHOPDASH_REDIS_URL"
	EnvDBDSN           = "SHOPDASH_DB_DSN"
	EnvDBDriver        = "SHOPDASH_DB_DRIVER"
	EnvPartnerSecret   = "SHOPDASH_PARTNER_JWT_SECRET"
	EnvSearchDebounce  = "SHOPDASH_SEARCH_DEBOUNCE"
	EnvWatcherInterval = "SHOPDASH_WATCHER_INTERVAL"
	EnvCORSOrigins     = "SHOPDASH_CORS_ALLOWED_ORIGINS"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)
