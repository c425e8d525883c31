package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret:        "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  720 * time.Hour,
			PasswordHashCost: 10,
		},
		Topics: TopicsConfig{
			MaxTopicsPerUser: 1000,
			MaxNameLength:    200,
			MaxNotesLength:   20000,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.JWTSecret = "too-short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short jwt secret")
	}
}

func TestValidate_BadHashCost(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.PasswordHashCost = 99
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range hash cost")
	}
}

func TestValidate_RefreshTTLNotLonger(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.RefreshTokenTTL = cfg.Auth.AccessTokenTTL
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when refresh TTL does not exceed access TTL")
	}
}

func TestValidate_TopicLimits(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Topics.MaxTopicsPerUser = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero topic limit")
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/db")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.JWTIssuer != "revisemaster" {
		t.Errorf("default issuer: got %q", cfg.Auth.JWTIssuer)
	}
	if cfg.Topics.MaxTopicsPerUser != 1000 {
		t.Errorf("default topic limit: got %d", cfg.Topics.MaxTopicsPerUser)
	}
}
