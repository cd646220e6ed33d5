package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errInvalidBackendURL     = errors.New("config: ANALYSIS_BACKEND_URL must be an absolute http(s) URL")
	errInvalidTimeout        = errors.New("config: ANALYSIS_TIMEOUT must be a positive duration")
	errEmptyDefaultFilePath  = errors.New("config: DEFAULT_FILE_PATH must not be empty")
	errInvalidLocale         = errors.New("config: REPORT_LOCALE must be a BCP 47 language tag")
	errInvalidTimeZone       = errors.New("config: REPORT_TIMEZONE must be an IANA time zone")
	errInvalidRedisURL       = errors.New("config: REDIS_URL must be a redis:// or rediss:// URL")
	errInvalidCacheTTL       = errors.New("config: CACHE_TTL must be a positive duration")
	errConcurrencyOutOfRange = errors.New("config: BATCH_CONCURRENCY must be 1-32")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port             string
	LogLevel         string
	BackendURL       string
	AnalysisTimeout  time.Duration
	DefaultFilePath  string
	Locale           string
	TimeZone         string
	RedisURL         string
	CacheTTL         time.Duration
	BatchConcurrency int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "ERROR"),
		BackendURL:       getEnv("ANALYSIS_BACKEND_URL", "http://localhost:5000"),
		AnalysisTimeout:  getEnvAsDuration("ANALYSIS_TIMEOUT", 5*time.Minute),
		DefaultFilePath:  getEnv("DEFAULT_FILE_PATH", "trace.har"),
		Locale:           getEnv("REPORT_LOCALE", "en-US"),
		TimeZone:         getEnv("REPORT_TIMEZONE", "UTC"),
		RedisURL:         os.Getenv("REDIS_URL"),
		CacheTTL:         getEnvAsDuration("CACHE_TTL", 10*time.Minute),
		BatchConcurrency: getEnvAsInt("BATCH_CONCURRENCY", 4),
	}

	return cfg, cfg.validate()
}

// Location returns the report time zone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// CacheEnabled reports whether analysis results are cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// Validate checks the configuration, for callers that override loaded
// values, and reports every problem found.
func (c Config) Validate() error {
	return c.validate()
}

func (c Config) validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("%w: %q", errInvalidPort, c.Port))
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", errInvalidBackendURL, c.BackendURL))
	}

	if c.AnalysisTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %s", errInvalidTimeout, c.AnalysisTimeout))
	}

	if c.DefaultFilePath == "" {
		errs = append(errs, errEmptyDefaultFilePath)
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", errInvalidLocale, c.Locale))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", errInvalidTimeZone, c.TimeZone))
	}

	if c.RedisURL != "" {
		u, err := url.Parse(c.RedisURL)
		if err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			errs = append(errs, errInvalidRedisURL)
		}
		if c.CacheTTL <= 0 {
			errs = append(errs, fmt.Errorf("%w: got %s", errInvalidCacheTTL, c.CacheTTL))
		}
	}

	if c.BatchConcurrency < 1 || c.BatchConcurrency > 32 {
		errs = append(errs, fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.BatchConcurrency))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// getEnvAsDuration returns 0 for unparseable values so validation rejects
// them instead of silently using the fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return v
}
