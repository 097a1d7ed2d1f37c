package config

const EnvPrefix = "WISHVAULT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv        = "WISHVAULT_APP_ENV"
	EnvPort          = "WISHVAULT_APP_PORT"
	EnvDBDSN         = "WISHVAULT_DB_DSN"
	EnvDBHost        = "WISHVAULT_DB_HOST"
	EnvDBUser        = "WISHVAULT_DB_USER"
	EnvDBName        = "WISHVAULT_DB_NAME"
	EnvRedisURL      = "WISHVAULT_REDIS_URL"
	EnvSessionSecret = "WISHVAULT_SESSION_SECRET"
	EnvCSRFEnabled   = "WISHVAULT_CSRF_ENABLED"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
