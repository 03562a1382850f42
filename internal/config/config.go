package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by persistence.Open.
const (
	StoreBackendMemory   = "memory"
	StoreBackendSQLite   = "sqlite"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Email match modes for registration and feedback lookups.
const (
	EmailMatchExact = "exact"
	EmailMatchFold  = "fold"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Store        StoreConfig
	SQLite       SQLiteConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Event        EventConfig
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
}

// StoreConfig selects and shapes the key/value backend.
type StoreConfig struct {
	Backend      string
	Namespace    string
	SilentWrites bool
}

// SQLiteConfig holds the database file location.
type SQLiteConfig struct {
	Path string
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

// AuthConfig defines the mocked credential values and client token parameters.
type AuthConfig struct {
	ClientTokenSecret     string
	ClientTokenTTLMinutes int
	CookieSecure          bool
	BcryptCost            int
	AdminEmail            string
	AdminPassword         string
	DemoOTP               string
	EmailMatch            string
}

// EventConfig describes the event shown on the home page and the portal tiles.
type EventConfig struct {
	Name        string
	Date        string
	Venue       string
	Time        string
	VideoURL    string
	PDFURL      string
	FeedbackURL string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom    string
	WebhookURL   string
	AMQPURL      string
	AMQPExchange string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory))
	switch backend {
	case StoreBackendMemory, StoreBackendSQLite, StoreBackendRedis, StoreBackendPostgres:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q", backend)
	}

	emailMatch := strings.ToLower(getEnv("AUTH_EMAIL_MATCH", EmailMatchExact))
	if emailMatch != EmailMatchExact && emailMatch != EmailMatchFold {
		return nil, fmt.Errorf("invalid AUTH_EMAIL_MATCH %q", emailMatch)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "eventhub-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Backend:      backend,
			Namespace:    getEnv("STORE_NAMESPACE", "eventhub"),
			SilentWrites: getEnvAsBool("STORE_SILENT_WRITES", false),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "eventhub.db"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
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
			ClientTokenSecret:     getEnv("AUTH_CLIENT_TOKEN_SECRET", "dev-secret"),
			ClientTokenTTLMinutes: getEnvAsInt("AUTH_CLIENT_TOKEN_TTL_MINUTES", 60*24*30),
			CookieSecure:          getEnvAsBool("AUTH_COOKIE_SECURE", false),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			AdminEmail:            getEnv("AUTH_ADMIN_EMAIL", "admin@eventhub.com"),
			AdminPassword:         getEnv("AUTH_ADMIN_PASSWORD", "admin123"),
			DemoOTP:               getEnv("AUTH_DEMO_OTP", "123456"),
			EmailMatch:            emailMatch,
		},
		Event: EventConfig{
			Name:        getEnv("EVENT_NAME", "Tech Conference 2026"),
			Date:        getEnv("EVENT_DATE", "December 15-16, 2026"),
			Venue:       getEnv("EVENT_VENUE", "Convention Center, Delhi"),
			Time:        getEnv("EVENT_TIME", "9:00 AM - 6:00 PM"),
			VideoURL:    getEnv("EVENT_VIDEO_URL", "https://www.youtube.com/embed/qcTG5NXzuR0"),
			PDFURL:      getEnv("EVENT_PDF_URL", "/sample.pdf"),
			FeedbackURL: getEnv("EVENT_FEEDBACK_URL", "/feedback-form.html"),
		},
		Notification: NotificationConfig{
			EmailFrom:    getEnv("NOTIFY_EMAIL_FROM", "noreply@eventhub.com"),
			WebhookURL:   getEnv("NOTIFY_WEBHOOK_URL", ""),
			AMQPURL:      getEnv("NOTIFY_AMQP_URL", ""),
			AMQPExchange: getEnv("NOTIFY_AMQP_EXCHANGE", "eventhub.events"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ClientTokenTTL returns how long an issued client token stays valid.
func (a AuthConfig) ClientTokenTTL() time.Duration {
	return time.Duration(a.ClientTokenTTLMinutes) * time.Minute
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
