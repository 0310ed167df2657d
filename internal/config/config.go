package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/time/rate"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	DatabaseURL     string
	TokenKey        []byte
	LogLevel        slog.Level
	RateLimit       rate.Limit
	RateBurst       int
	ShutdownTimeout time.Duration
}

// Load reads the given .env files (".env" when none are named) and then the
// process environment. Missing .env files are not an error; variables already
// set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:        getenv("ADDR", ":443"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: getenv("DATABASE_URL", "user=postgres dbname=postgres password=password sslmode=disable"),
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	limit, err := strconv.ParseFloat(getenv("RATE_LIMIT", "1"), 64)
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT: want a positive number, got %q", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = rate.Limit(limit)
	if cfg.RateBurst, err = strconv.Atoi(getenv("RATE_BURST", "3")); err != nil || cfg.RateBurst < 1 {
		return Config{}, fmt.Errorf("RATE_BURST: want a positive integer, got %q", os.Getenv("RATE_BURST"))
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	return cfg, nil
}

// Validate checks what the HTTP server needs beyond Load's defaults.
func (c Config) Validate() error {
	if len(c.TokenKey) == 0 {
		return errors.New("TOKEN_KEY environment variable is not set")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return nil
}

func (c Config) TLS() bool { return c.TLSCert != "" }

// NewLogger returns a tint-backed slog logger.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
