package config

import (
	"testing"
	"time"
)

func TestLoad_defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_EXPIRES_IN", "USER_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected 24h token expiry, got %s", cfg.JWTExpirationDur)
	}
	if cfg.UserCacheTTL != 10*time.Minute {
		t.Errorf("expected 10m cache ttl, got %s", cfg.UserCacheTTL)
	}
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRES_IN", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.DBDriver)
	}
	if cfg.JWTExpirationDur != time.Hour {
		t.Errorf("expected 1h token expiry, got %s", cfg.JWTExpirationDur)
	}
}

func TestLoad_invalid_duration_falls_back(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "tomorrow")
	t.Setenv("USER_CACHE_TTL", "-5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback of 24h, got %s", cfg.JWTExpirationDur)
	}
	if cfg.UserCacheTTL != 10*time.Minute {
		t.Errorf("expected fallback of 10m, got %s", cfg.UserCacheTTL)
	}
}
