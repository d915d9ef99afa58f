package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Enabled() {
		t.Error("Database.Enabled() = true without DATABASE_URL")
	}
	if cfg.Storage.FilePath != "" {
		t.Errorf("Storage.FilePath = %q, want empty", cfg.Storage.FilePath)
	}
	if cfg.Probe.Timeout != 2*time.Second {
		t.Errorf("Probe.Timeout = %v, want 2s", cfg.Probe.Timeout)
	}
	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %s, want development", cfg.App.Environment)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("App.LogLevel = %s, want info", cfg.App.LogLevel)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	envVars := map[string]string{
		"SERVER_PORT":       "9090",
		"SERVER_HOST":       "127.0.0.1",
		"DATABASE_URL":      "postgres://u:p@localhost:5432/shorturl",
		"DB_MAX_CONNS":      "25",
		"DB_MIN_CONNS":      "5",
		"STORAGE_FILE_PATH": "/tmp/urls.jsonl",
		"PROBE_TIMEOUT":     "500ms",
		"APP_ENV":           "test",
		"LOG_LEVEL":         "debug",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if !cfg.Database.Enabled() {
		t.Error("Database.Enabled() = false with DATABASE_URL set")
	}
	if cfg.Database.MaxConns != 25 {
		t.Errorf("Database.MaxConns = %d, want 25", cfg.Database.MaxConns)
	}
	if cfg.Storage.FilePath != "/tmp/urls.jsonl" {
		t.Errorf("Storage.FilePath = %s", cfg.Storage.FilePath)
	}
	if cfg.Probe.Timeout != 500*time.Millisecond {
		t.Errorf("Probe.Timeout = %v, want 500ms", cfg.Probe.Timeout)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "not-an-env")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid APP_ENV")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidPoolSizes(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shorturl")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "10")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error when min connections exceed max")
	}
}

func TestDatabaseConfig_ValidateSkippedWhenDisabled(t *testing.T) {
	// Pool sizes are irrelevant without a database URL.
	cfg := DatabaseConfig{URL: "", MaxConns: 0, MinConns: 0}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for disabled database", err)
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{
		Port:            "8080",
		Host:            "0.0.0.0",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     time.Minute,
		ShutdownTimeout: 30 * time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	broken := valid
	broken.ReadTimeout = 0
	if err := broken.Validate(); err == nil {
		t.Error("Validate() expected error for zero read timeout")
	}

	broken = valid
	broken.Port = ""
	if err := broken.Validate(); err == nil {
		t.Error("Validate() expected error for empty port")
	}
}
