package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "antojo"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ANTOJO_DB_DSN"
	EnvDBHost = "ANTOJO_DB_HOST"
	EnvDBUser = "ANTOJO_DB_USER"
	EnvDBName = "ANTOJO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"ANTOJO_APP_ENV" required:"true"`
	Port         string `envconfig:"ANTOJO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ANTOJO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ANTOJO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ANTOJO_DB_DSN"`
	Driver string `envconfig:"ANTOJO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ANTOJO_DB_HOST"`
	LegacyPort     int    `envconfig:"ANTOJO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ANTOJO_DB_USER"`
	LegacyPassword string `envconfig:"ANTOJO_DB_PASSWORD"`
	LegacyName     string `envconfig:"ANTOJO_DB_NAME"`
	LegacySSLMode  string `envconfig:"ANTOJO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ANTOJO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ANTOJO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ANTOJO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ANTOJO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ANTOJO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ANTOJO_REDIS_ADDR"`
	Password     string        `envconfig:"ANTOJO_REDIS_PASSWORD"`
	DB           int           `envconfig:"ANTOJO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ANTOJO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ANTOJO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ANTOJO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ANTOJO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ANTOJO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ANTOJO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ANTOJO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ANTOJO_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ANTOJO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ANTOJO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ANTOJO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ANTOJO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ANTOJO_ARGON_KEY_LEN" default:"32"`
}

// CartConfig controls the persisted cart snapshot store.
type CartConfig struct {
	Namespace   string        `envconfig:"ANTOJO_CART_NAMESPACE" default:"antojo-cart"`
	SnapshotTTL time.Duration `envconfig:"ANTOJO_CART_SNAPSHOT_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ANTOJO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ANTOJO_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"ANTOJO_GCP_PROJECT_ID" required:"true"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"ANTOJO_PUBSUB_ORDERS_TOPIC" default:"antojo-order-events"`
	OrdersSubscription string `envconfig:"ANTOJO_PUBSUB_ORDERS_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int    `envconfig:"ANTOJO_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int    `envconfig:"ANTOJO_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int    `envconfig:"ANTOJO_OUTBOX_MAX_ATTEMPTS" default:"10"`
	MetricsAddr    string `envconfig:"ANTOJO_OUTBOX_METRICS_ADDR" default:""`
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
