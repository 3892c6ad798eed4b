package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DevJWTSecret is the fallback signing secret; it is rejected outside development.
	DevJWTSecret = "dev-secret"

	UploadsDriverLocal = "local"
	UploadsDriverMinIO = "minio"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Uploads      UploadsConfig
	Cache        CacheConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	FrontendURL           string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	RateLimitPerMinute    int
	RateLimitBurst        int
}

// UploadsConfig selects where cover images are kept.
type UploadsConfig struct {
	Driver   string
	Dir      string
	MaxBytes int64
	MinIO    MinIOConfig
}

// MinIOConfig holds object storage credentials for the minio driver.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// CacheConfig controls the public listing cache.
type CacheConfig struct {
	TTLSeconds int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
	Workers    int
	QueueSize  int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "portfolio-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", getEnv("PORT", "3000")),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Postgres: PostgresConfig{
			DSN:            getEnv("POSTGRES_DSN", os.Getenv("DATABASE_URL")),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", getEnv("JWT_SECRET", DevJWTSecret)),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 7*24*60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
			RateLimitPerMinute:    getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 30),
			RateLimitBurst:        getEnvAsInt("AUTH_RATE_LIMIT_BURST", 10),
		},
		Uploads: UploadsConfig{
			Driver:   strings.ToLower(getEnv("UPLOADS_DRIVER", UploadsDriverLocal)),
			Dir:      getEnv("UPLOADS_DIR", "uploads"),
			MaxBytes: int64(getEnvAsInt("UPLOADS_MAX_BYTES", 5*1024*1024)),
			MinIO: MinIOConfig{
				Endpoint:  os.Getenv("MINIO_ENDPOINT"),
				AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
				SecretKey: os.Getenv("MINIO_SECRET_KEY"),
				Bucket:    getEnv("MINIO_BUCKET", "covers"),
				UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			},
		},
		Cache: CacheConfig{
			TTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 300),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			Workers:    getEnvAsInt("NOTIFY_WORKERS", 2),
			QueueSize:  getEnvAsInt("NOTIFY_QUEUE_SIZE", 64),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if !c.App.IsDevelopment() && c.Auth.JWTSecret == DevJWTSecret {
		errs = append(errs, errors.New("AUTH_JWT_SECRET must be set outside development"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	switch c.Uploads.Driver {
	case UploadsDriverLocal:
	case UploadsDriverMinIO:
		if c.Uploads.MinIO.Endpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required for the minio uploads driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown UPLOADS_DRIVER %q", c.Uploads.Driver))
	}
	if c.Uploads.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOADS_MAX_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether internal error details may be exposed.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// TTL returns the cache entry lifetime; zero disables caching.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
