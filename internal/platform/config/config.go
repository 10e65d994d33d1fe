// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	strutil "propaudit/pkg/platform/strings"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Auth     Auth
	Ledger   Ledger
	Fraud    Fraud
	Catalog  Catalog
	LogLevel string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Database holds Postgres settings. An empty URL selects in-memory stores.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// RedisConfig holds Redis settings. An empty URL disables the distributed
// ledger lock.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka holds the audit topic settings. No brokers means audit events stay
// in the database or in memory.
type Kafka struct {
	Brokers        []string
	AuditTopic     string
	ProduceTimeout time.Duration
}

type Auth struct {
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// Ledger holds credit defaults and debit retry policy.
type Ledger struct {
	StartingCredits    int
	CreditsPerProperty int
	AutoProvision      bool
	MaxRetries         int
	RetryBackoff       time.Duration
	LockTTL            time.Duration
}

type Fraud struct {
	AnalysisTimeout time.Duration
}

// Catalog points at an override for the embedded catalog document.
type Catalog struct {
	Path string
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds the configuration from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over its values.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	r := reader{}
	cfg := Config{
		Server: Server{
			Addr:            r.str("PROPAUDIT_ADDR", ":8080"),
			RequestTimeout:  r.duration("REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: r.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: Database{
			URL:             r.str("DATABASE_URL", ""),
			MaxOpenConns:    r.int("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    r.int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: r.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			Migrate:         r.bool("DB_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:          r.str("REDIS_URL", ""),
			PoolSize:     r.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: r.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:        r.list("KAFKA_BROKERS"),
			AuditTopic:     r.str("KAFKA_AUDIT_TOPIC", "propaudit.audit"),
			ProduceTimeout: r.duration("KAFKA_PRODUCE_TIMEOUT", 5*time.Second),
		},
		Auth: Auth{
			JWTSigningKey: r.str("JWT_SIGNING_KEY", devSigningKey),
			JWTIssuer:     r.str("JWT_ISSUER", "propaudit"),
			JWTAudience:   r.str("JWT_AUDIENCE", "propaudit-api"),
		},
		Ledger: Ledger{
			StartingCredits:    r.int("LEDGER_STARTING_CREDITS", 5),
			CreditsPerProperty: r.int("LEDGER_CREDITS_PER_PROPERTY", 1),
			AutoProvision:      r.bool("LEDGER_AUTO_PROVISION", true),
			MaxRetries:         r.int("LEDGER_MAX_RETRIES", 3),
			RetryBackoff:       r.duration("LEDGER_RETRY_BACKOFF", 25*time.Millisecond),
			LockTTL:            r.duration("LEDGER_LOCK_TTL", 5*time.Second),
		},
		Fraud: Fraud{
			AnalysisTimeout: r.duration("FRAUD_ANALYSIS_TIMEOUT", 5*time.Second),
		},
		Catalog:  Catalog{Path: r.str("CATALOG_PATH", "")},
		LogLevel: r.str("LOG_LEVEL", "info"),
	}
	if len(r.errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(r.errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Ledger.StartingCredits < 0 {
		return fmt.Errorf("LEDGER_STARTING_CREDITS must not be negative")
	}
	if c.Ledger.CreditsPerProperty <= 0 {
		return fmt.Errorf("LEDGER_CREDITS_PER_PROPERTY must be positive")
	}
	if c.Ledger.MaxRetries < 1 {
		return fmt.Errorf("LEDGER_MAX_RETRIES must be at least 1")
	}
	if c.Auth.JWTSigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	return nil
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (c Config) UsesDevSigningKey() bool {
	return c.Auth.JWTSigningKey == devSigningKey
}

// reader collects parse failures so every bad variable is reported at once.
type reader struct {
	errs []string
}

func (r *reader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) int(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return v
}

func (r *reader) bool(key string, def bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return v
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %v", key, err))
		return def
	}
	return v
}

func (r *reader) list(key string) []string {
	return strutil.SplitList(r.str(key, ""))
}
