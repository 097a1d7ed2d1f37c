package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	CSRF          CSRFConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Feed          FeedConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WISHVAULT_APP_ENV" required:"true"`
	Port         string `envconfig:"WISHVAULT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WISHVAULT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WISHVAULT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"WISHVAULT_DB_DSN"`

	LegacyHost     string `envconfig:"WISHVAULT_DB_HOST"`
	LegacyPort     int    `envconfig:"WISHVAULT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WISHVAULT_DB_USER"`
	LegacyPassword string `envconfig:"WISHVAULT_DB_PASSWORD"`
	LegacyName     string `envconfig:"WISHVAULT_DB_NAME"`
	LegacySSLMode  string `envconfig:"WISHVAULT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WISHVAULT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WISHVAULT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WISHVAULT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WISHVAULT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WISHVAULT_REDIS_URL"`
	Password     string        `envconfig:"WISHVAULT_REDIS_PASSWORD"`
	DB           int           `envconfig:"WISHVAULT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WISHVAULT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WISHVAULT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WISHVAULT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WISHVAULT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WISHVAULT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis URL was configured. Redis is optional;
// without it the feed cache is skipped and rate limiting stays in memory.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type SessionConfig struct {
	Secret       string        `envconfig:"WISHVAULT_SESSION_SECRET" required:"true"`
	TTL          time.Duration `envconfig:"WISHVAULT_SESSION_TTL" default:"168h"`
	CookieName   string        `envconfig:"WISHVAULT_SESSION_COOKIE_NAME" default:"session"`
	CookieSecure bool          `envconfig:"WISHVAULT_SESSION_COOKIE_SECURE" default:"true"`
}

type CSRFConfig struct {
	Enabled      bool   `envconfig:"WISHVAULT_CSRF_ENABLED" default:"true"`
	CookieName   string `envconfig:"WISHVAULT_CSRF_COOKIE_NAME" default:"csrf_secret"`
	CookieSecure bool   `envconfig:"WISHVAULT_CSRF_COOKIE_SECURE" default:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WISHVAULT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WISHVAULT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WISHVAULT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WISHVAULT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WISHVAULT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WISHVAULT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"WISHVAULT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"3"`
	LoginIPLimit       int           `envconfig:"WISHVAULT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"3"`
	RegisterWindow     time.Duration `envconfig:"WISHVAULT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"1m"`
	RegisterEmailLimit int           `envconfig:"WISHVAULT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"5"`
	RegisterIPLimit    int           `envconfig:"WISHVAULT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"5"`
}

type FeedConfig struct {
	PageSize int           `envconfig:"WISHVAULT_FEED_PAGE_SIZE" default:"10"`
	CacheTTL time.Duration `envconfig:"WISHVAULT_FEED_CACHE_TTL" default:"60s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WISHVAULT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
