package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	AI       AIConfig
	Auth     AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

// DatabaseConfig selects between the embedded SQLite store and a managed
// Postgres instance. Driver is "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver        string
	MigrationsDir string

	SQLitePath string

	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

// AIConfig configures the external CV-structuring service. An empty APIKey
// enables the deterministic fallback parser instead of network calls.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type AuthConfig struct {
	// BootstrapAdminEmail is force-granted the admin role on first sign-in.
	BootstrapAdminEmail string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultModel     = "gpt-4.1-mini"
	defaultAITimeout = 2 * time.Minute
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Driver:        strings.ToLower(opt("DB_DRIVER", DriverSQLite)),
		MigrationsDir: opt("DB_MIGRATIONS_DIR", "migrations"),
		SQLitePath:    opt("SQLITE_PATH", "./dossiers.db"),
		DBHost:        opt("DB_HOST", ""),
		DBPort:        opt("DB_PORT", "5432"),
		DBName:        opt("DB_NAME", ""),
		DBUser:        opt("DB_USER", ""),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBSSLMode:     opt("DB_SSL_MODE", "disable"),
	}
	if d, err := time.ParseDuration(opt("DB_CONNECT_TIMEOUT", "10s")); err == nil {
		cfg.Database.ConnectTimeout = d
	}
	if n, err := strconv.ParseInt(opt("DB_POOL_MAX_CONNS", "0"), 10, 32); err == nil && n > 0 {
		cfg.Database.PoolMaxConns = int32(n)
	}

	cfg.AI = AIConfig{
		APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL: opt("OPENAI_BASE_URL", ""),
		Model:   opt("OPENAI_CV_MODEL", defaultModel),
		Timeout: defaultAITimeout,
	}
	if v := opt("OPENAI_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AI.Timeout = d
		}
	}

	cfg.Auth = AuthConfig{
		BootstrapAdminEmail: strings.ToLower(opt("BOOTSTRAP_ADMIN_EMAIL", "")),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.Database.Driver)
	}

	return cfg, nil
}
