package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// Search results API
	SerpAPIKey     string
	SerpAPIURL     string
	SerpEngine     string
	SerpNum        int           // results requested per keyword
	SerpTimeout    time.Duration // per request
	SerpRatePerSec float64

	// SMTP
	SMTPHost        string
	SMTPPort        int
	SMTPTLS         string // "tls", "starttls" or "none"
	EmailSender     string // From address, also the SMTP username
	EmailPassword   string
	EmailSenderName string
	AlertEmails     []string

	// Optional backends
	DatabaseURL string // check statistics, disabled when empty
	RedisURL    string // session storage, in-memory when empty

	// OIDC, disabled when issuer is empty
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for encrypting cookies

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
	LogFile   string // rotated file output in addition to stdout

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "SERP Checker"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		SerpAPIKey:     getEnv("SERPAPI_API_KEY", ""),
		SerpAPIURL:     getEnv("SERPAPI_URL", "https://serpapi.com/search"),
		SerpEngine:     getEnv("SERPAPI_ENGINE", "google"),
		SerpNum:        getEnvInt("SERPAPI_NUM", 100),
		SerpTimeout:    getEnvDuration("SERPAPI_TIMEOUT", 30*time.Second),
		SerpRatePerSec: getEnvFloat("SERPAPI_RATE", 1),

		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 465),
		SMTPTLS:         getEnv("SMTP_TLS", "tls"),
		EmailSender:     getEnv("EMAIL_SENDER", ""),
		EmailPassword:   getEnv("EMAIL_PASSWORD", ""),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", ""),
		AlertEmails:     splitList(getEnv("ALERT_EMAIL", "")),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogFile:   getEnv("LOG_FILE", ""),

		SiteTitle: getEnv("SITE_TITLE", "SERP Checker"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if enough SMTP settings are present to send alerts.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort > 0 && c.EmailSender != "" && len(c.AlertEmails) > 0
}

// IsAuthEnabled returns true if the UI is gated behind OIDC login.
func (c *Config) IsAuthEnabled() bool {
	return c.OIDCIssuer != ""
}

// IsStatsEnabled returns true if check statistics are recorded in Postgres.
func (c *Config) IsStatsEnabled() bool {
	return c.DatabaseURL != ""
}
