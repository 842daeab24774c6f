package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "BACKEND_URL", "BACKEND_TIMEOUT", "SESSION_TTL", "OBJECT_STORE_ENDPOINT", "R2_S3_ENDPOINT", "R2_ACCOUNT_ID", "OBJECT_STORE_BUCKET", "R2_BUCKET", "OBJECT_STORE_PUBLIC_BASE_URL", "R2_PUBLIC_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Env != "development" {
		t.Fatalf("expected development env, got %s", cfg.Env)
	}
	if cfg.BackendURL != "http://localhost:9091" {
		t.Fatalf("unexpected backend url %s", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 0 {
		t.Fatalf("expected no backend timeout, got %s", cfg.BackendTimeout)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.SessionTTL)
	}
	if cfg.ReceiptArchiveEnabled() {
		t.Fatalf("expected receipt archive disabled without object store settings")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://orders.internal:9091/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "-1h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OBJECT_STORE_ENDPOINT", "")
	t.Setenv("R2_S3_ENDPOINT", "")
	t.Setenv("R2_ACCOUNT_ID", "acc123")
	t.Setenv("R2_BUCKET", "receipts")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example")
	t.Setenv("RECEIPT_ARCHIVE_PREFIX", "/archive/")

	cfg := Load()
	if cfg.BackendURL != "http://orders.internal:9091" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.BackendURL)
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Fatalf("unexpected backend timeout %s", cfg.BackendTimeout)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("expected invalid ttl to fall back, got %s", cfg.SessionTTL)
	}
	if !cfg.SessionCookieSecure {
		t.Fatalf("expected secure cookie")
	}
	if len(cfg.CorsAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CorsAllowedOrigins)
	}
	if cfg.ObjectStoreEndpoint != "https://acc123.r2.cloudflarestorage.com" {
		t.Fatalf("unexpected endpoint %s", cfg.ObjectStoreEndpoint)
	}
	if cfg.ReceiptArchivePrefix != "archive" {
		t.Fatalf("unexpected prefix %s", cfg.ReceiptArchivePrefix)
	}
	if !cfg.ReceiptArchiveEnabled() {
		t.Fatalf("expected receipt archive enabled")
	}
}
