// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Inventory InventoryConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// InventoryConfig holds CSV loading and export settings.
type InventoryConfig struct {
	// Dir is the directory loaded at startup and by POST /api/load without a body.
	// Supports both INVENTORY_DIR and DATA_DIR.
	Dir string `env:"INVENTORY_DIR" envAlt:"DATA_DIR"`

	// Encoding is the IANA name of the source file encoding (default: ISO-8859-1)
	Encoding string `env:"INVENTORY_ENCODING" default:"ISO-8859-1"`

	// Delimiter is the single-character field separator (default: ,)
	Delimiter string `env:"INVENTORY_DELIMITER" default:","`

	// MaxFileSize is the maximum size of one CSV file in bytes (default: 100MB)
	MaxFileSize int64 `env:"INVENTORY_MAX_FILE_SIZE" default:"104857600"`

	// LoadWait is how long a load waits for a running load (default: 30s)
	LoadWait time.Duration `env:"INVENTORY_LOAD_WAIT" default:"30s"`

	// Watch reloads Dir when its CSV files change (default: false)
	Watch bool `env:"INVENTORY_WATCH" default:"false"`

	// WatchDebounce is the quiet period before a triggered reload (default: 500ms)
	WatchDebounce time.Duration `env:"INVENTORY_WATCH_DEBOUNCE" default:"500ms"`

	// ExportDir is where POST /api/report/export writes reports (default: exports)
	ExportDir string `env:"INVENTORY_EXPORT_DIR" default:"exports"`
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *InventoryConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
