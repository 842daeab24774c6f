package storage

import (
	"context"
	"testing"
)

func TestNewObjectStoreValidatesConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{name: "missing endpoint", cfg: Config{Bucket: "receipts", PublicBaseURL: "https://cdn.example.com"}},
		{name: "missing bucket", cfg: Config{Endpoint: "r2.example.com", PublicBaseURL: "https://cdn.example.com"}},
		{name: "missing public base", cfg: Config{Endpoint: "r2.example.com", Bucket: "receipts"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewObjectStore(context.Background(), tc.cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewObjectStoreAndPublicURL(t *testing.T) {
	store, err := NewObjectStore(context.Background(), Config{
		Endpoint:        "account.r2.cloudflarestorage.com",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "receipts",
		PublicBaseURL:   "https://cdn.example.com/",
	})
	if err != nil {
		t.Fatalf("new object store: %v", err)
	}

	got := store.PublicURL("/receipts/4821/20240501T120000Z.pdf")
	want := "https://cdn.example.com/receipts/4821/20240501T120000Z.pdf"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestPutObjectRequiresKey(t *testing.T) {
	store := &ObjectStore{bucket: "receipts", publicBase: "https://cdn.example.com"}
	if _, err := store.PutObject(context.Background(), " / ", []byte("x"), "application/pdf"); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestParseStorageClass(t *testing.T) {
	if sc := parseStorageClass("  "); sc != nil {
		t.Fatalf("expected nil for empty class")
	}
	sc := parseStorageClass("standard")
	if sc == nil || string(*sc) != "STANDARD" {
		t.Fatalf("expected STANDARD, got %v", sc)
	}
}
