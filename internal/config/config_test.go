package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort: got %s, want 8080", cfg.ServerPort)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry: got %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("MaxUploadBytes: got %d", cfg.MaxUploadBytes)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins: got %v, want nil", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort: got %s", cfg.ServerPort)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("JWTExpiry: got %v", cfg.JWTExpiry)
	}
	if !cfg.MinioUseSSL {
		t.Error("MinioUseSSL: got false, want true")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("AllowedOrigins: got %v", cfg.AllowedOrigins)
	}
}

func TestGetEnvIntBadValue(t *testing.T) {
	t.Setenv("MAX_DB_CONNS", "not-a-number")
	cfg := Load()
	if cfg.MaxDBConns != 16 {
		t.Errorf("MaxDBConns: got %d, want fallback 16", cfg.MaxDBConns)
	}
}
