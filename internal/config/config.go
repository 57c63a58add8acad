package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration. It is read once at process start
// and never reloaded.
type Config struct {
	BaseURL string
	// DevelopmentMode enables fixture substitution and demo logins even
	// when the live API answers.
	DevelopmentMode bool
	// OfflineMode enables fixture substitution and demo logins when the
	// live API is unreachable.
	OfflineMode  bool
	APITimeout   time.Duration
	ProbeTimeout time.Duration
	// MaxRetries and RetryDelay are reserved knobs; current request logic
	// performs a single attempt per call.
	MaxRetries int
	RetryDelay time.Duration
	// TokenPath is the file holding the durable bearer token.
	TokenPath string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		BaseURL:         getEnv("LMS_BASE_URL", "https://themirmakhmudov.jprq.site"),
		DevelopmentMode: getEnvBool("LMS_DEVELOPMENT_MODE", false),
		OfflineMode:     getEnvBool("LMS_OFFLINE_MODE", false),
		APITimeout:      time.Duration(getEnvInt("LMS_API_TIMEOUT_MS", 10000)) * time.Millisecond,
		ProbeTimeout:    time.Duration(getEnvInt("LMS_PROBE_TIMEOUT_MS", 5000)) * time.Millisecond,
		MaxRetries:      getEnvInt("LMS_MAX_RETRIES", 3),
		RetryDelay:      time.Duration(getEnvInt("LMS_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		TokenPath:       getEnv("LMS_TOKEN_PATH", defaultTokenPath()),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
	}
}

// defaultTokenPath places the token under the per-user config directory,
// falling back to the working directory when none is resolvable.
func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".lms-token"
	}
	return filepath.Join(dir, "lms", "lms-token")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
