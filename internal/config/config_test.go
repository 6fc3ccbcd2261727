package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Minute},
		Inventory: InventoryConfig{
			Encoding:      "ISO-8859-1",
			Delimiter:     ",",
			MaxFileSize:   1,
			LoadWait:      time.Second,
			WatchDebounce: time.Second,
			ExportDir:     "exports",
		},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Inventory.Encoding != "ISO-8859-1" {
		t.Errorf("Inventory.Encoding = %q, want %q", cfg.Inventory.Encoding, "ISO-8859-1")
	}
	if cfg.Inventory.DelimiterRune() != ',' {
		t.Errorf("Inventory.DelimiterRune() = %q, want ','", cfg.Inventory.DelimiterRune())
	}
	if cfg.Inventory.MaxFileSize != 104857600 {
		t.Errorf("Inventory.MaxFileSize = %d, want %d", cfg.Inventory.MaxFileSize, 104857600)
	}
	if cfg.Inventory.Watch {
		t.Error("Inventory.Watch = true, want false")
	}
	if cfg.Inventory.Dir != "" {
		t.Errorf("Inventory.Dir = %q, want empty", cfg.Inventory.Dir)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
	if !cfg.Security.EnableCSP {
		t.Error("Security.EnableCSP = false, want true")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("INVENTORY_DIR", "/data/stock")
	t.Setenv("INVENTORY_DELIMITER", ";")
	t.Setenv("INVENTORY_WATCH", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Inventory.Dir != "/data/stock" {
		t.Errorf("Inventory.Dir = %q, want %q", cfg.Inventory.Dir, "/data/stock")
	}
	if cfg.Inventory.DelimiterRune() != ';' {
		t.Errorf("Inventory.DelimiterRune() = %q, want ';'", cfg.Inventory.DelimiterRune())
	}
	if !cfg.Inventory.Watch {
		t.Error("Inventory.Watch = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/inventory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Inventory.Dir != "/srv/inventory" {
		t.Errorf("Inventory.Dir = %q, want %q", cfg.Inventory.Dir, "/srv/inventory")
	}
}

func TestLoad_PrimaryEnvWinsOverAlt(t *testing.T) {
	t.Setenv("INVENTORY_DIR", "/srv/primary")
	t.Setenv("DATA_DIR", "/srv/alt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Inventory.Dir != "/srv/primary" {
		t.Errorf("Inventory.Dir = %q, want %q", cfg.Inventory.Dir, "/srv/primary")
	}
}

func TestSetField(t *testing.T) {
	var target struct {
		S string
		N int64
		D time.Duration
		B bool
		L []string
		F float64
	}
	v := reflect.ValueOf(&target).Elem()

	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{name: "string", field: "S", value: "x"},
		{name: "integer", field: "N", value: "42"},
		{name: "bad integer", field: "N", value: "4k", wantErr: true},
		{name: "duration", field: "D", value: "2s"},
		{name: "bare number is not a duration", field: "D", value: "2", wantErr: true},
		{name: "bool", field: "B", value: "true"},
		{name: "bad bool", field: "B", value: "maybe", wantErr: true},
		{name: "list drops blanks", field: "L", value: "a, ,b"},
		{name: "unsupported kind", field: "F", value: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := setField(v.FieldByName(tt.field), tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("setField(%s, %q) error = %v, wantErr %v", tt.field, tt.value, err, tt.wantErr)
			}
		})
	}

	if target.S != "x" || target.N != 42 || target.D != 2*time.Second || !target.B {
		t.Errorf("setField results = %+v", target)
	}
	if len(target.L) != 2 || target.L[0] != "a" || target.L[1] != "b" {
		t.Errorf("L = %q, want [a b]", target.L)
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("INVENTORY_LOAD_WAIT", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Inventory.LoadWait != 90*time.Second {
		t.Errorf("Inventory.LoadWait = %v, want %v", cfg.Inventory.LoadWait, 90*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("INVENTORY_MAX_FILE_SIZE", "big")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric INVENTORY_MAX_FILE_SIZE")
	}
	if !strings.Contains(err.Error(), "INVENTORY_MAX_FILE_SIZE") {
		t.Errorf("error should mention INVENTORY_MAX_FILE_SIZE: %v", err)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = 99999 }, wantErr: "SERVER_PORT"},
		{name: "multi-char delimiter", mutate: func(c *Config) { c.Inventory.Delimiter = ";;" }, wantErr: "INVENTORY_DELIMITER"},
		{name: "quote delimiter", mutate: func(c *Config) { c.Inventory.Delimiter = `"` }, wantErr: "INVENTORY_DELIMITER"},
		{name: "zero file size", mutate: func(c *Config) { c.Inventory.MaxFileSize = 0 }, wantErr: "INVENTORY_MAX_FILE_SIZE"},
		{name: "watch without dir", mutate: func(c *Config) { c.Inventory.Watch = true }, wantErr: "INVENTORY_DIR"},
		{name: "rate limit without budget", mutate: func(c *Config) { c.Rate.RequestsPerMinute = 0 }, wantErr: "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{name: "invalid log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "invalid log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := validConfig()
	cfg.Inventory.Dir = "/data/stock"
	str := cfg.String()
	if !strings.Contains(str, "/data/stock") || !strings.Contains(str, "ISO-8859-1") {
		t.Errorf("String() = %q, want inventory dir and encoding", str)
	}
}
