// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Port          int
	DatabaseURL   string // empty selects the in-memory store
	JWTSecret     string
	PublicDir     string
	UploadDir     string
	RedisAddr     string // empty selects the in-memory denylist
	RedisPassword string
	SecureCookies bool
	LogLevel      string
	LogFormat     string
	OIDC          OIDCConfig
}

// OIDCConfig contains the optional SSO login settings. SSO is enabled only
// when issuer, client id, client secret, and redirect URL are all set.
type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether the SSO login path should be wired up.
func (o OIDCConfig) Enabled() bool {
	return o.Issuer != "" && o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

// Load reads configuration from environment variables. It fails when
// JWT_SECRET is unset rather than falling back to a guessable default.
func Load() (*Config, error) {
	port, err := getEnvInt("PORT", 3001)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          port,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PublicDir:     getEnv("PUBLIC_DIR", "public"),
		UploadDir:     getEnv("UPLOAD_DIR", "public/images"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SecureCookies: os.Getenv("SECURE_COOKIES") == "true",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		OIDC: OIDCConfig{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required to sign session tokens")
	}

	return cfg, nil
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, DB: %s, PublicDir: %s, SSO: %t, Secrets: ***}",
		c.Port, c.DatabaseURL, c.PublicDir, c.OIDC.Enabled())
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default
// fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}
