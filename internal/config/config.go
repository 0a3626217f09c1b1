// Package config handles loading dashboard configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for running next to a device
// in access-point mode.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Session store backends.
const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// Settings repository backends.
const (
	SettingsStoreMemory  = "memory"
	SettingsStoreMariaDB = "mariadb"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// LogLevel overrides log verbosity: "debug", "info", "warn", "error".
	// Empty means debug in development and info otherwise.
	LogLevel string

	// SecretKey signs the client cookie and seals secret settings.
	SecretKey string

	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed.
	TrustedProxies []string

	// Device holds how the dashboard reaches the telemetry unit.
	Device DeviceConfig

	// Session holds the persisted session store settings.
	Session SessionConfig

	// Settings holds the settings repository backend.
	Settings SettingsConfig

	// Database holds MariaDB connection settings (settings store "mariadb").
	Database DatabaseConfig

	// Redis holds Redis connection settings (session store "redis").
	Redis RedisConfig

	// Upload holds firmware bundle upload settings.
	Upload UploadConfig
}

// DeviceConfig holds device API reachability settings.
type DeviceConfig struct {
	// GatewayURL is the fixed base URL of the device in access-point mode.
	GatewayURL string

	// HostAPI replaces the page origin when the dashboard itself is served
	// from localhost (development against a real device).
	HostAPI string

	// ValidateTimeout bounds a token-validate round trip.
	ValidateTimeout time.Duration

	// LoginTimeout bounds a login round trip.
	LoginTimeout time.Duration

	// LogoutTimeout bounds a logout round trip.
	LogoutTimeout time.Duration

	// RequestTimeout bounds all other device calls (scan, connect, upload).
	RequestTimeout time.Duration
}

// SessionConfig holds persisted session store settings.
type SessionConfig struct {
	// Store selects the backend: "file", "redis" or "memory".
	Store string

	// Name is the named store entry (file document / redis key prefix).
	Name string

	// FilePath is where the file backend keeps its JSON document.
	FilePath string

	// TTL is how long an idle client state survives in Redis or the file store.
	TTL time.Duration
}

// SettingsConfig selects the settings repository.
type SettingsConfig struct {
	// Store selects the backend: "memory" or "mariadb".
	Store string
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars.
// If DATABASE_URL is set, it takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "molinar").
	User string

	// Password is the MariaDB password (default: "molinar").
	Password string

	// Name is the database name (default: "molinar").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// fields using the driver's Config.FormatDSN() so special characters in
// passwords survive.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// UploadConfig holds firmware bundle upload settings.
type UploadConfig struct {
	// Pause is the delay between two file uploads to the device.
	Pause time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Env:       getEnv("ENV", "development"),
		Port:      getEnvInt("PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", ""),
		SecretKey: getEnv("SECRET_KEY", ""),

		TrustedProxies: getEnvList("TRUSTED_PROXIES"),

		Device: DeviceConfig{
			GatewayURL:      strings.TrimRight(getEnv("DEVICE_GATEWAY_URL", "http://192.168.4.1"), "/"),
			HostAPI:         strings.TrimRight(getEnv("DEVICE_HOST_API", ""), "/"),
			ValidateTimeout: getEnvDuration("VALIDATE_TIMEOUT", 5*time.Second),
			LoginTimeout:    getEnvDuration("LOGIN_TIMEOUT", 10*time.Second),
			LogoutTimeout:   getEnvDuration("LOGOUT_TIMEOUT", 5*time.Second),
			RequestTimeout:  getEnvDuration("DEVICE_REQUEST_TIMEOUT", 30*time.Second),
		},

		Session: SessionConfig{
			Store:    strings.ToLower(getEnv("SESSION_STORE", SessionStoreFile)),
			Name:     getEnv("SESSION_NAME", "app-store"),
			FilePath: getEnv("SESSION_FILE", "./data/app-store.json"),
			TTL:      getEnvDuration("SESSION_TTL", 720*time.Hour),
		},

		Settings: SettingsConfig{
			Store: strings.ToLower(getEnv("SETTINGS_STORE", SettingsStoreMemory)),
		},

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "molinar"),
			Password:        getEnv("DB_PASSWORD", "molinar"),
			Name:            getEnv("DB_NAME", "molinar"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Upload: UploadConfig{
			Pause: getEnvDuration("UPLOAD_PAUSE", 100*time.Millisecond),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Provide a dev-only default secret so local dev works without .env.
	if cfg.SecretKey == "" {
		cfg.SecretKey = "dev-secret-key-do-not-use-in-production!!"
	}

	return cfg, nil
}

// validate rejects unknown backends and, in production, a weak secret.
func (c *Config) validate() error {
	switch c.Session.Store {
	case SessionStoreFile, SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("SESSION_STORE must be %q, %q or %q, got %q", SessionStoreFile, SessionStoreRedis, SessionStoreMemory, c.Session.Store)
	}

	switch c.Settings.Store {
	case SettingsStoreMemory, SettingsStoreMariaDB:
	default:
		return fmt.Errorf("SETTINGS_STORE must be %q or %q, got %q", SettingsStoreMemory, SettingsStoreMariaDB, c.Settings.Store)
	}

	if c.Device.ValidateTimeout <= 0 {
		return fmt.Errorf("VALIDATE_TIMEOUT must be positive")
	}

	// Case-insensitive check catches common variants like "Production", "prod".
	envLower := strings.ToLower(c.Env)
	if envLower == "production" || envLower == "prod" {
		if c.SecretKey == "" {
			return fmt.Errorf("SECRET_KEY is required in production")
		}
		if len(c.SecretKey) < 32 {
			return fmt.Errorf("SECRET_KEY must be at least 32 characters in production")
		}
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvList reads a comma-separated env var, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "5s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
