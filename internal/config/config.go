// Package config loads server configuration from command-line flags,
// environment variables, a .env file and defaults, in that order of
// precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Directory DirectoryConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // default 8080
	BaseURL      string        // public origin used in absolute links, optional
	ReadTimeout  time.Duration // default 15s
	WriteTimeout time.Duration // default 15s
	IdleTimeout  time.Duration // default 60s
	CORSOrigins  []string      // allowed origins for /api, default "*"
}

// DirectoryConfig holds directory data and rendering configuration.
type DirectoryConfig struct {
	// DataPath overrides the embedded listing data. Empty uses the embedded file.
	DataPath         string
	PlaceholderImage string
	SuggestionEmail  string
	// CacheTTL bounds how long rendered pages are memoized. Zero disables caching.
	CacheTTL time.Duration
}

// RateLimitConfig holds per-client request limits for the API.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Defaults.
const (
	DefaultPort             = "8080"
	DefaultPlaceholderImage = "/images/directory/placeholder.jpg"
	DefaultSuggestionEmail  = "directory@italianiuk.org"
)

// LoadConfig loads configuration from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration with precedence:
// 1. Command-line flags in args (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("italianiuk-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	port := fs.String("port", "", "Server port (default: 8080)")
	baseURL := fs.String("base-url", "", "Public base URL, e.g. https://italianiuk.org")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed origins (default: *)")

	dataPath := fs.String("data", "", "Listing data file (default: embedded data)")
	placeholder := fs.String("placeholder-image", "", "Image used for cities without photos")
	suggestEmail := fs.String("suggestion-email", "", "Address receiving directory suggestions")
	cacheTTL := fs.String("cache-ttl", "", "Rendered page cache TTL, 0 disables (default: 10m)")

	rateLimit := fs.String("rate-limit", "", "Enable API rate limiting (default: true)")
	rateRPS := fs.String("rate-limit-rps", "", "Requests per second per client (default: 10)")
	rateBurst := fs.String("rate-limit-burst", "", "Burst per client (default: 20)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine. godotenv never overrides variables already set.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*port, "SERVER_PORT", DefaultPort),
			BaseURL:     strings.TrimRight(getConfigValue(*baseURL, "SERVER_BASE_URL", ""), "/"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Directory: DirectoryConfig{
			DataPath:         getConfigValue(*dataPath, "DIRECTORY_DATA_PATH", ""),
			PlaceholderImage: getConfigValue(*placeholder, "DIRECTORY_PLACEHOLDER_IMAGE", DefaultPlaceholderImage),
			SuggestionEmail:  getConfigValue(*suggestEmail, "DIRECTORY_SUGGESTION_EMAIL", DefaultSuggestionEmail),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolConfigValue(*rateLimit, "RATE_LIMIT_ENABLED", true),
		},
	}

	var err error
	durations := []struct {
		dst      *time.Duration
		flag     string
		envKey   string
		fallback string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.Directory.CacheTTL, *cacheTTL, "DIRECTORY_CACHE_TTL", "10m"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.envKey, d.fallback)
		if *d.dst, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
	}

	rps := getConfigValue(*rateRPS, "RATE_LIMIT_RPS", "10")
	if cfg.RateLimit.RPS, err = strconv.ParseFloat(rps, 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", rps, err)
	}
	burst := getConfigValue(*rateBurst, "RATE_LIMIT_BURST", "20")
	if cfg.RateLimit.Burst, err = strconv.Atoi(burst); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", burst, err)
	}

	if cfg.Directory.DataPath, err = expandPath(cfg.Directory.DataPath); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %q", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if c.Directory.PlaceholderImage == "" {
		return errors.New("placeholder image cannot be empty")
	}
	if _, err := mail.ParseAddress(c.Directory.SuggestionEmail); err != nil {
		return fmt.Errorf("invalid suggestion email %q: %w", c.Directory.SuggestionEmail, err)
	}
	if c.Directory.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive when enabled")
	}

	return nil
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// expandPath expands ~ and makes a non-empty path absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return filepath.Clean(abs), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (any case) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	v := strings.ToLower(getConfigValue(flagValue, envKey, ""))
	if v == "" {
		return defaultValue
	}
	return v == "true" || v == "1" || v == "yes"
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
