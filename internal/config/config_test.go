// internal/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "cart_db" {
		t.Errorf("default db name = %q, want cart_db", cfg.Database.Name)
	}
	if !cfg.IsDevelopment() {
		t.Error("default environment should be development")
	}
	if cfg.JWT.AccessTokenExpiry != 24*time.Hour {
		t.Errorf("default access expiry = %v, want 24h", cfg.JWT.AccessTokenExpiry)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SERVER_READ_TIMEOUT", "15s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("redis db = %d, want 3", cfg.Redis.DB)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("read timeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if len(cfg.Security.CORSAllowedOrigins) != 2 {
		t.Errorf("cors origins = %v, want two entries", cfg.Security.CORSAllowedOrigins)
	}
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for short JWT secret")
	}
}

func TestDSNComposition(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			Name:     "cart_db",
			User:     "cart_user",
			Password: "secret",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{Host: "localhost", Port: "6379"},
	}

	wantDSN := "host=localhost port=5432 user=cart_user password=secret dbname=cart_db sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != wantDSN {
		t.Errorf("GetDatabaseDSN() = %q, want %q", got, wantDSN)
	}
	if got := cfg.GetRedisAddr(); got != "localhost:6379" {
		t.Errorf("GetRedisAddr() = %q, want localhost:6379", got)
	}
}
