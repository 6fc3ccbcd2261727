package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads configuration from environment variables, applies the
// `default` tag for anything unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct fills every `env`-tagged field of v, descending into the
// section structs.
func loadStruct(v reflect.Value) error {
	for i := 0; i < v.NumField(); i++ {
		field, tag := v.Field(i), v.Type().Field(i).Tag

		if field.Kind() == reflect.Struct {
			if err := loadStruct(field); err != nil {
				return err
			}
			continue
		}

		name := tag.Get("env")
		if name == "" {
			continue
		}
		value, ok := lookupEnv(name, tag.Get("envAlt"), tag.Get("default"))
		if !ok {
			continue
		}
		if err := setField(field, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, value, err)
		}
	}
	return nil
}

// lookupEnv returns the primary variable, then the alternate, then the
// default. ok is false when all three are empty.
func lookupEnv(name, alt, def string) (string, bool) {
	for _, key := range []string{name, alt} {
		if key == "" {
			continue
		}
		if value := os.Getenv(key); value != "" {
			return value, true
		}
	}
	return def, def != ""
}

func setField(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))

	case field.Kind() == reflect.Int || field.Kind() == reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)

	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case field.Kind() == reflect.String:
		field.SetString(value)

	case field.Type() == reflect.TypeOf([]string(nil)):
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Sprintf(format, args...))
		}
	}

	s := c.Server
	check(s.Port <= 0 || s.Port > 65535, "SERVER_PORT (%d) must be 1-65535", s.Port)
	check(s.ReadTimeout < 0, "SERVER_READ_TIMEOUT must be non-negative")
	check(s.ShutdownTimeout <= 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	check(s.RequestTimeout <= 0, "SERVER_REQUEST_TIMEOUT must be positive")

	inv := c.Inventory
	switch {
	case utf8.RuneCountInString(inv.Delimiter) != 1:
		check(true, "INVENTORY_DELIMITER (%q) must be a single character", inv.Delimiter)
	case strings.ContainsAny(inv.Delimiter, "\r\n\""):
		check(true, "INVENTORY_DELIMITER (%q) cannot be a quote or line break", inv.Delimiter)
	}
	check(inv.MaxFileSize <= 0, "INVENTORY_MAX_FILE_SIZE must be positive")
	check(inv.LoadWait <= 0, "INVENTORY_LOAD_WAIT must be positive")
	check(inv.Watch && inv.Dir == "", "INVENTORY_WATCH is true but INVENTORY_DIR is empty")
	check(inv.Watch && inv.WatchDebounce <= 0, "INVENTORY_WATCH_DEBOUNCE must be positive")
	check(inv.ExportDir == "", "INVENTORY_EXPORT_DIR is required")

	check(c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0,
		"RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		check(true, "LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		check(true, "LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format)
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: {Host: %q, Port: %d}, "+
		"Inventory: {Dir: %q, Encoding: %q, Delimiter: %q, MaxFileSize: %d, Watch: %v, ExportDir: %q}, "+
		"Rate: {Enabled: %v, RequestsPerMinute: %d}, Logging: {Level: %q, Format: %q}}",
		c.Server.Host, c.Server.Port,
		c.Inventory.Dir, c.Inventory.Encoding, c.Inventory.Delimiter, c.Inventory.MaxFileSize,
		c.Inventory.Watch, c.Inventory.ExportDir,
		c.Rate.Enabled, c.Rate.RequestsPerMinute,
		c.Logging.Level, c.Logging.Format)
}
