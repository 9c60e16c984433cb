package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the namespace shared by every LUMIERE_* variable.
const EnvPrefix = "lumiere"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LUMIERE_DB_DSN"
	EnvDBHost = "LUMIERE_DB_HOST"
	EnvDBUser = "LUMIERE_DB_USER"
	EnvDBName = "LUMIERE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
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

// LoadDB parses only the database settings. Used by the migration and
// operator CLIs, which have no need for the server's required JWT and
// operator credentials.
func LoadDB() (*DBConfig, error) {
	var cfg DBConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing db config: %w", err)
	}
	if err := cfg.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"LUMIERE_APP_ENV" required:"true"`
	Port         string   `envconfig:"LUMIERE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"LUMIERE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"LUMIERE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"LUMIERE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUMIERE_DB_DSN"`
	Driver string `envconfig:"LUMIERE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUMIERE_DB_HOST"`
	LegacyPort     int    `envconfig:"LUMIERE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUMIERE_DB_USER"`
	LegacyPassword string `envconfig:"LUMIERE_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUMIERE_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUMIERE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUMIERE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUMIERE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUMIERE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUMIERE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when neither URL nor Address is set the API runs
// without redis and auth rate limiting is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"LUMIERE_REDIS_URL"`
	Address      string        `envconfig:"LUMIERE_REDIS_ADDR"`
	Password     string        `envconfig:"LUMIERE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUMIERE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUMIERE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUMIERE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUMIERE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUMIERE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUMIERE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// JWTConfig intentionally has no fallback secret: the process refuses to
// start without one.
type JWTConfig struct {
	Secret            string `envconfig:"LUMIERE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUMIERE_JWT_ISSUER" default:"lumiere"`
	ExpirationMinutes int    `envconfig:"LUMIERE_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"LUMIERE_BCRYPT_COST" default:"10"`
}

// AdminConfig backs the single operator identity (id 0) that is never
// persisted. Both values are required at startup.
type AdminConfig struct {
	Email    string `envconfig:"LUMIERE_ADMIN_EMAIL" required:"true"`
	Password string `envconfig:"LUMIERE_ADMIN_PASSWORD" required:"true"`
	Name     string `envconfig:"LUMIERE_ADMIN_NAME" default:"Store Operator"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LUMIERE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"LUMIERE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LUMIERE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"LUMIERE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"LUMIERE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"LUMIERE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LUMIERE_AUTO_MIGRATE" default:"false"`
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
