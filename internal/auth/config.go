package auth

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AuthConfig holds session token settings, loaded from config/auth.yaml
// with environment fallbacks.
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	Issuer          string `yaml:"issuer"`
	Audience        string `yaml:"audience"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

// LoadAuthConfig reads the auth configuration from a yaml file. A missing
// file is not an error; defaults and the fallback secret apply.
func LoadAuthConfig(path string, fallbackSecret string) (*AuthConfig, error) {
	cfg := &AuthConfig{
		Issuer:          "makeitall-backend",
		Audience:        "makeitall",
		TokenTTLMinutes: 480,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.JWTSecret = fallbackSecret
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("read auth config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse auth config: %w", err)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = fallbackSecret
	}
	return cfg, cfg.Validate()
}

// Validate checks required auth configuration fields
func (c *AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	return nil
}

// TokenTTL returns the configured token lifetime
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
