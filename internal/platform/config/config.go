package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	Port             string
	IsProduction     bool
	DBMaxConns       int32
	DBMinConns       int32
	DBConnectTimeout time.Duration
	MigrationsPath   string
	RunMigrations    bool
	DefaultAPIKey    string
	JWTSecret        string // Bearer-token callers are accepted only when set

	IdempotencyTTL          time.Duration
	IdempotencyLease        time.Duration
	IdempotencyWait         time.Duration
	IdempotencyPollInterval time.Duration
	IdempotencyPurgeEvery   time.Duration
	PostingTimeout          time.Duration

	RejectDuplicateAccounts bool

	RateLimit          string // ulule/limiter formatted rate, e.g. "300-M"
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("DEFAULT_API_KEY", "dev-api-key-123")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("IDEMPOTENCY_TTL", "48h")
	v.SetDefault("IDEMPOTENCY_LEASE", "30s")
	v.SetDefault("IDEMPOTENCY_WAIT", "5s")
	v.SetDefault("IDEMPOTENCY_POLL_INTERVAL", "100ms")
	v.SetDefault("IDEMPOTENCY_PURGE_INTERVAL", "1h")
	v.SetDefault("POSTING_TIMEOUT", "10s")
	v.SetDefault("REJECT_DUPLICATE_ACCOUNTS", true)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:             v.GetString("PGSQL_URL"),
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		DBMaxConns:              v.GetInt32("DB_MAX_CONNS"),
		DBMinConns:              v.GetInt32("DB_MIN_CONNS"),
		DBConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		MigrationsPath:          v.GetString("MIGRATIONS_PATH"),
		RunMigrations:           v.GetBool("RUN_MIGRATIONS"),
		DefaultAPIKey:           v.GetString("DEFAULT_API_KEY"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		IdempotencyTTL:          v.GetDuration("IDEMPOTENCY_TTL"),
		IdempotencyLease:        v.GetDuration("IDEMPOTENCY_LEASE"),
		IdempotencyWait:         v.GetDuration("IDEMPOTENCY_WAIT"),
		IdempotencyPollInterval: v.GetDuration("IDEMPOTENCY_POLL_INTERVAL"),
		IdempotencyPurgeEvery:   v.GetDuration("IDEMPOTENCY_PURGE_INTERVAL"),
		PostingTimeout:          v.GetDuration("POSTING_TIMEOUT"),
		RejectDuplicateAccounts: v.GetBool("REJECT_DUPLICATE_ACCOUNTS"),
		RateLimit:               v.GetString("RATE_LIMIT"),
		ShutdownTimeout:         v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.DefaultAPIKey == "" {
		log.Println("Warning: DEFAULT_API_KEY not set. Only existing keys and bearer tokens can write.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that other components rely on.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("PGSQL_URL is required"))
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, got %d", c.DBMinConns))
	}
	if c.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL must be positive"))
	}
	if c.PostingTimeout <= 0 {
		errs = append(errs, errors.New("POSTING_TIMEOUT must be positive"))
	}
	// A lapsed lease may be re-claimed, so a posting must always finish first.
	if c.PostingTimeout >= c.IdempotencyLease {
		errs = append(errs, fmt.Errorf("POSTING_TIMEOUT (%s) must be shorter than IDEMPOTENCY_LEASE (%s)", c.PostingTimeout, c.IdempotencyLease))
	}
	if c.IdempotencyPollInterval <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_POLL_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}
