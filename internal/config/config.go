// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the full service configuration. Every field has either a default
// or is marked required, so a zero environment fails fast at startup instead
// of at first request.
type Config struct {
	BindAddr string `env:"BIND_ADDR,default=:3000"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	// Session storage. An empty RedisAddr selects the in-memory store,
	// which is only suitable for a single replica.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	// SessionSecret is the hex-encoded AES-256 key sealing session records.
	SessionSecret string `env:"SESSION_SECRET,required"`
	// SessionSecretFallbacks holds hex-encoded previous keys, semicolon
	// separated, kept readable during rotation.
	SessionSecretFallbacks []string `env:"SESSION_SECRET_FALLBACKS"`

	CookieName    string        `env:"COOKIE_NAME,default=penalty_appeal_session"`
	CookieDomain  string        `env:"COOKIE_DOMAIN"`
	CookieSecure  bool          `env:"COOKIE_SECURE,default=true"`
	SessionExpiry time.Duration `env:"SESSION_EXPIRY,default=1h"`

	// Downstream services. Empty URLs disable the corresponding processor.
	CompanyLookupURL string `env:"COMPANY_LOOKUP_URL"`
	EmailServiceURL  string `env:"EMAIL_SERVICE_URL"`
	FileTransferURL  string `env:"FILE_TRANSFER_URL"`
	FileTransferKey  string `env:"FILE_TRANSFER_API_KEY"`

	// SupportEmail receives a copy of every submission confirmation.
	SupportEmail string `env:"SUPPORT_EMAIL"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if _, err := cfg.ActiveKey(); err != nil {
		return nil, err
	}
	if _, err := cfg.FallbackKeys(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ActiveKey decodes the session secret into the 32-byte key the encryption
// middleware requires.
func (c *Config) ActiveKey() ([]byte, error) {
	key, err := hex.DecodeString(c.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("SESSION_SECRET is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("SESSION_SECRET must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// FallbackKeys decodes the rotation fallbacks.
func (c *Config) FallbackKeys() ([][]byte, error) {
	keys := make([][]byte, 0, len(c.SessionSecretFallbacks))
	for i, s := range c.SessionSecretFallbacks {
		key, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("SESSION_SECRET_FALLBACKS[%d] is not valid hex: %w", i, err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("SESSION_SECRET_FALLBACKS[%d] must decode to 32 bytes, got %d", i, len(key))
		}
		keys = append(keys, key)
	}
	return keys, nil
}
