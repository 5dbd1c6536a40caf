package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	if cfg.AppPort != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.AppPort)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Errorf("expected 5 minute OTP TTL, got %v", cfg.OTPTTL)
	}
	if cfg.OTPMaxAttempts != 5 {
		t.Errorf("expected 5 max attempts, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.OTPBypass {
		t.Error("expected bypass mode off by default")
	}
	if cfg.OTPTestCode != "9999" {
		t.Errorf("expected default test code 9999, got %q", cfg.OTPTestCode)
	}
	if cfg.TokenExpires != 24*time.Hour {
		t.Errorf("expected 24h token expiry, got %v", cfg.TokenExpires)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("OTP_BYPASS", "true")
	t.Setenv("OTP_TTL_MINUTES", "10")
	t.Setenv("OTP_MAX_ATTEMPTS", "3")
	t.Setenv("JWT_TTL_HOURS", "72")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := Load()

	if cfg.AppPort != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.AppPort)
	}
	if !cfg.OTPBypass {
		t.Error("expected bypass mode on")
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Errorf("expected 10 minute OTP TTL, got %v", cfg.OTPTTL)
	}
	if cfg.OTPMaxAttempts != 3 {
		t.Errorf("expected 3 max attempts, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.TokenExpires != 72*time.Hour {
		t.Errorf("expected 72h token expiry, got %v", cfg.TokenExpires)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("unexpected redis url %q", cfg.RedisURL)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("OTP_MAX_ATTEMPTS", "not-a-number")
	if got := getEnvInt("OTP_MAX_ATTEMPTS", 5); got != 5 {
		t.Errorf("expected fallback 5, got %d", got)
	}
}
