// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Generation defaults
const (
	DefaultLanguageValue   = "python"
	DefaultClientNameValue = "HarClient"
)

// Config holds all configuration for the generators and the MCP server.
type Config struct {
	// Generation
	Language    string // HARGEN_LANGUAGE, default "python"
	ClientName  string // HARGEN_CLIENT_NAME, default "HarClient"
	Annotate    bool   // HARGEN_ANNOTATE, default true
	ValidateHAR bool   // HARGEN_VALIDATE, default false

	// Capture loading
	LoadTimeout        time.Duration // HARGEN_LOAD_TIMEOUT_MS, default 30000ms (30s)
	BodyCacheMaxItems  int           // HARGEN_BODY_CACHE_MAX_ITEMS, default 512
	MaxBodyBytes       int           // HARGEN_MAX_BODY_BYTES, default 2_000_000
	MaxCallsPerCapture int           // HARGEN_MAX_CALLS, default 10000

	// Logging configuration
	LogLevel      string // HARGEN_LOG_LEVEL, default "info"
	LogFile       string // HARGEN_LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // HARGEN_LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // HARGEN_LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // HARGEN_LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // HARGEN_LOG_COMPRESS, default true
	LogJSON       bool   // HARGEN_LOG_JSON, default false
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Language:    getEnvString("HARGEN_LANGUAGE", DefaultLanguageValue),
		ClientName:  getEnvString("HARGEN_CLIENT_NAME", DefaultClientNameValue),
		Annotate:    getEnvBool("HARGEN_ANNOTATE", true),
		ValidateHAR: getEnvBool("HARGEN_VALIDATE", false),

		LoadTimeout:        getEnvDurationMs("HARGEN_LOAD_TIMEOUT_MS", 30000),
		BodyCacheMaxItems:  getEnvInt("HARGEN_BODY_CACHE_MAX_ITEMS", 512),
		MaxBodyBytes:       getEnvInt("HARGEN_MAX_BODY_BYTES", 2_000_000),
		MaxCallsPerCapture: getEnvInt("HARGEN_MAX_CALLS", 10000),

		LogLevel:      getEnvString("HARGEN_LOG_LEVEL", "info"),
		LogFile:       getEnvString("HARGEN_LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("HARGEN_LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("HARGEN_LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("HARGEN_LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("HARGEN_LOG_COMPRESS", true),
		LogJSON:       getEnvBool("HARGEN_LOG_JSON", false),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
