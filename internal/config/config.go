// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL      string
	Environment     string
	AppName         string
	AppVersion      string
	ListenAddr      string
	DBPath          string
	SecretKey       []byte // 32-byte AES-256 key; nil when encryption at rest is disabled.
	CheckTTL        time.Duration
	RefreshInterval time.Duration
	RefreshLead     time.Duration
}

// IsDevelopment reports whether the configured environment is the local
// development environment, which disables the access gate entirely.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration from environment variables and returns a validated
// Config. PRODUSPANEL_API_BASE_URL is required in non-development environments;
// it defaults to the local backend otherwise. Optional variables with defaults:
// PRODUSPANEL_ENV (development), PRODUSPANEL_LISTEN_ADDR (127.0.0.1:8080),
// PRODUSPANEL_DB_PATH (produspanel.db), PRODUSPANEL_CHECK_TTL (5m),
// PRODUSPANEL_REFRESH_INTERVAL (1m), PRODUSPANEL_REFRESH_LEAD (2m).
// PRODUSPANEL_SECRET_KEY, when set, must be 64 hex characters (a 32-byte
// AES-256 key) and enables encryption of stored tokens at rest.
func Load() (*Config, error) {
	environment := "development"
	if v, ok := os.LookupEnv("PRODUSPANEL_ENV"); ok && v != "" {
		environment = v
	}

	baseURL := os.Getenv("PRODUSPANEL_API_BASE_URL")
	if baseURL == "" {
		if environment != "development" {
			return nil, fmt.Errorf("PRODUSPANEL_API_BASE_URL is required when PRODUSPANEL_ENV is %q", environment)
		}
		baseURL = "http://localhost:8000/api"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	appName := "ProDus Registro de Horas"
	if v, ok := os.LookupEnv("PRODUSPANEL_APP_NAME"); ok && v != "" {
		appName = v
	}

	appVersion := "1.0.0"
	if v, ok := os.LookupEnv("PRODUSPANEL_APP_VERSION"); ok && v != "" {
		appVersion = v
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("PRODUSPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "produspanel.db"
	if v, ok := os.LookupEnv("PRODUSPANEL_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("PRODUSPANEL_SECRET_KEY"); ok && v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("PRODUSPANEL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("PRODUSPANEL_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	checkTTL := 5 * time.Minute
	if v, ok := os.LookupEnv("PRODUSPANEL_CHECK_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PRODUSPANEL_CHECK_TTL has invalid duration %q: %w", v, err)
		}
		checkTTL = parsed
	}

	refreshInterval := time.Minute
	if v, ok := os.LookupEnv("PRODUSPANEL_REFRESH_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PRODUSPANEL_REFRESH_INTERVAL has invalid duration %q: %w", v, err)
		}
		refreshInterval = parsed
	}

	refreshLead := 2 * time.Minute
	if v, ok := os.LookupEnv("PRODUSPANEL_REFRESH_LEAD"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PRODUSPANEL_REFRESH_LEAD has invalid duration %q: %w", v, err)
		}
		refreshLead = parsed
	}

	return &Config{
		APIBaseURL:      baseURL,
		Environment:     environment,
		AppName:         appName,
		AppVersion:      appVersion,
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		SecretKey:       secretKey,
		CheckTTL:        checkTTL,
		RefreshInterval: refreshInterval,
		RefreshLead:     refreshLead,
	}, nil
}
