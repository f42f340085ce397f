package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_PORT", "STORE_DRIVER", "DATABASE_URL", "RABBITMQ_URL", "RABBIT_URI", "GEMINI_MODEL", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "8000" {
		t.Fatalf("port=%s want=8000", cfg.Port)
	}
	if cfg.StoreDriver != DriverSQLite || cfg.DatabaseURL != "job_hunting.db" {
		t.Fatalf("store defaults: %s %s", cfg.StoreDriver, cfg.DatabaseURL)
	}
	if cfg.RabbitURI != "" {
		t.Fatalf("rabbit should be off by default, got %q", cfg.RabbitURI)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("model=%s", cfg.GeminiModel)
	}
	if len(cfg.CORSOrigins) != 3 {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("API_PORT", "9000")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("RABBIT_URI", "amqp://x")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	if cfg.Port != "9000" || cfg.StoreDriver != DriverMongo || cfg.RabbitURI != "amqp://x" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.AITimeout != 3*time.Second {
		t.Fatalf("ai timeout=%v", cfg.AITimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors=%v", cfg.CORSOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("level=%v", cfg.LogLevel)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	if got := Load().ShutdownTimeout; got != 10*time.Second {
		t.Fatalf("want default 10s, got %v", got)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("WEB_ADDR=:4000\nAPI_URL=http://api.local\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEB_ADDR", "")
	os.Unsetenv("WEB_ADDR") // t.Setenv restaura no cleanup
	t.Setenv("API_URL", "http://already.set")

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := LoadWeb()
	if cfg.Addr != ":4000" {
		t.Fatalf("addr=%s", cfg.Addr)
	}
	// godotenv não sobrescreve o que já existe
	if cfg.APIURL != "http://already.set" {
		t.Fatalf("api url=%s", cfg.APIURL)
	}

	if err := LoadDotenv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}

func TestInitLogger_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := initLogger(&buf, slog.LevelWarn)
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("want one json line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "shown" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestParseLocation(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "")
	if got := Load().Location; got != time.Local {
		t.Fatalf("default location=%v want Local", got)
	}

	t.Setenv("APP_TIMEZONE", "UTC")
	if got := Load().Location; got != time.UTC {
		t.Fatalf("location=%v want UTC", got)
	}
	if got := LoadWeb().Location; got != time.UTC {
		t.Fatalf("web location=%v want UTC", got)
	}

	t.Setenv("APP_TIMEZONE", "Not/AZone")
	if got := Load().Location; got != time.Local {
		t.Fatalf("invalid zone=%v want Local", got)
	}
}
