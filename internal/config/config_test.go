package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

var keys = []string{"ADDR", "TLS_CERT", "TLS_KEY", "DATABASE_URL", "TOKEN_KEY", "LOG_LEVEL", "RATE_LIMIT", "RATE_BURST", "SHUTDOWN_TIMEOUT"}

// clearEnv unsets every key for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":443" || cfg.LogLevel != slog.LevelInfo || cfg.RateLimit != rate.Limit(1) || cfg.RateBurst != 3 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 5*time.Second || cfg.TLS() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing TOKEN_KEY to fail validation")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	env := "ADDR=:8080\nTOKEN_KEY=secret\nLOG_LEVEL=debug\nRATE_LIMIT=2.5\nRATE_BURST=10\nSHUTDOWN_TIMEOUT=1s\n"
	if err := os.WriteFile(path, []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RATE_BURST", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || string(cfg.TokenKey) != "secret" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("dotenv values not applied: %+v", cfg)
	}
	if cfg.RateLimit != 2.5 || cfg.ShutdownTimeout != time.Second {
		t.Errorf("dotenv values not applied: %+v", cfg)
	}
	if cfg.RateBurst != 7 {
		t.Errorf("environment should win over .env, got burst %d", cfg.RateBurst)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":        "loud",
		"RATE_LIMIT":       "-1",
		"RATE_BURST":       "zero",
		"SHUTDOWN_TIMEOUT": "soon",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("%s=%s: expected an error", k, v)
			}
		})
	}
}

func TestValidate_TLSPair(t *testing.T) {
	cfg := Config{TokenKey: []byte("k"), TLSCert: "server.crt"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a certificate without a key")
	}
	cfg.TLSKey = "server.key"
	if err := cfg.Validate(); err != nil || !cfg.TLS() {
		t.Errorf("valid TLS pair rejected: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("solver stalled", "method", "brent")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "solver stalled") || !strings.Contains(out, "method=brent") {
		t.Errorf("unexpected log output: %q", out)
	}
}
