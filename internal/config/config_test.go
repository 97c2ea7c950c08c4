package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_PATH", "SESSION_BACKEND", "SESSION_TTL", "SESSION_TTL_SECONDS", "REDIS_DB", "COOKIE_SECURE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.HTTPAddr != "0.0.0.0:5000" {
		t.Fatalf("expected default HTTP_ADDR, got %s", cfg.HTTPAddr)
	}
	if cfg.DBPath != "points.db" {
		t.Fatalf("expected default DB_PATH, got %s", cfg.DBPath)
	}
	if cfg.SessionBackend != "memory" {
		t.Fatalf("expected memory session backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 0 {
		t.Fatalf("expected sessions without expiry, got %s", cfg.SessionTTL)
	}
	if cfg.CookieSecure {
		t.Fatalf("expected insecure cookies by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:18080")
	t.Setenv("DB_PATH", "/tmp/grades.db")
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SESSION_TTL_SECONDS", "3600")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()
	if cfg.HTTPAddr != "127.0.0.1:18080" {
		t.Fatalf("expected HTTP_ADDR override, got %s", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/grades.db" {
		t.Fatalf("expected DB_PATH override, got %s", cfg.DBPath)
	}
	if cfg.SecretKey != "test-secret" {
		t.Fatalf("expected SECRET_KEY override, got %s", cfg.SecretKey)
	}
	if cfg.SessionBackend != "redis" || cfg.RedisAddr != "redis:6379" || cfg.RedisDB != 3 {
		t.Fatalf("unexpected redis settings: %+v", cfg)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected SESSION_TTL 1h, got %s", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Fatalf("expected COOKIE_SECURE override")
	}
}
